package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jihadv4/class/internal/dto"
	"github.com/jihadv4/class/internal/model"
	"github.com/jihadv4/class/internal/repository"
	"github.com/jihadv4/class/pkg/timeutil"
)

// ScheduleService 周课表业务接口
//
// 设计说明：
//   - 默认集合与临时集合按星期分别持久化，合并视图先默认后临时，
//     不在合并阶段排序（展示排序由渲染方按开始时间完成）。
//   - 保存采用两阶段：Propose 只做预检并报告咨询性警告；
//     Create/Update 在存在未确认的咨询性条件时返回
//     *ConfirmationRequiredError，由调用方携带决策标志重试。
//   - 所有写操作在返回前同步持久化。
type ScheduleService interface {
	// GetDaySchedule 获取某个星期的合并课表（按开始时间排序）
	GetDaySchedule(ctx context.Context, day string) (*dto.DayScheduleResponse, error)
	// Propose 保存预检：不落盘，报告按当前决策标志仍会阻塞保存的警告
	Propose(ctx context.Context, day, skipID string, req *dto.SaveClassRequest) (*dto.ProposeSaveResponse, error)
	// Create 新增课程
	Create(ctx context.Context, day string, req *dto.SaveClassRequest) (*dto.ClassResponse, error)
	// Update 更新课程；tempOnly 状态变化时在两个集合间搬移（不复制）
	Update(ctx context.Context, day, id string, req *dto.SaveClassRequest) (*dto.ClassResponse, error)
	// Delete 从指定集合删除课程
	Delete(ctx context.Context, day, id string, isTemp bool) error
	// ResetTemporary 清空所有星期的临时课程，默认课程不受影响
	ResetTemporary(ctx context.Context) error
}

type scheduleService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// NewScheduleService 创建 ScheduleService 实例
func NewScheduleService(repo *repository.Repository, logger *zap.Logger) ScheduleService {
	return &scheduleService{
		repo:   repo,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// ────────────────────── GetDaySchedule ──────────────────────

func (s *scheduleService) GetDaySchedule(ctx context.Context, day string) (*dto.DayScheduleResponse, error) {
	if !timeutil.IsWeekday(day) {
		return nil, ErrInvalidWeekday
	}

	defaults, temps, err := s.loadBoth(ctx)
	if err != nil {
		return nil, err
	}

	merged := mergedDay(defaults, temps, day)
	sorted := make([]model.ClassEntry, len(merged))
	copy(sorted, merged)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime
	})

	tempIDs := make(map[string]bool, len(temps[day]))
	for _, entry := range temps[day] {
		tempIDs[entry.ID] = true
	}

	classes := make([]dto.ClassResponse, 0, len(sorted))
	for _, entry := range sorted {
		classes = append(classes, toClassResponse(entry, tempIDs[entry.ID]))
	}

	nextDate, _ := timeutil.NextDateForWeekday(s.now(), day, true)

	return &dto.DayScheduleResponse{
		Day:     day,
		Date:    timeutil.FormatDate(nextDate),
		Classes: classes,
		Legend:  buildLegend(sorted),
	}, nil
}

// ────────────────────── Propose ──────────────────────

func (s *scheduleService) Propose(ctx context.Context, day, skipID string, req *dto.SaveClassRequest) (*dto.ProposeSaveResponse, error) {
	if !timeutil.IsWeekday(day) {
		return nil, ErrInvalidWeekday
	}
	if err := validateSaveRequest(req); err != nil {
		return nil, err
	}

	defaults, temps, err := s.loadBoth(ctx)
	if err != nil {
		return nil, err
	}

	warnings := s.pendingWarnings(day, skipID, req, mergedDay(defaults, temps, day))
	status := "ok"
	if len(warnings) > 0 {
		status = "needs_confirmation"
	}

	return &dto.ProposeSaveResponse{Status: status, Warnings: warnings}, nil
}

// ────────────────────── Create ──────────────────────

func (s *scheduleService) Create(ctx context.Context, day string, req *dto.SaveClassRequest) (*dto.ClassResponse, error) {
	if !timeutil.IsWeekday(day) {
		return nil, ErrInvalidWeekday
	}
	if err := validateSaveRequest(req); err != nil {
		return nil, err
	}

	defaults, temps, err := s.loadBoth(ctx)
	if err != nil {
		return nil, err
	}

	merged := mergedDay(defaults, temps, day)
	if warnings := s.pendingWarnings(day, "", req, merged); len(warnings) > 0 {
		return nil, &ConfirmationRequiredError{Warnings: warnings}
	}

	entry := model.ClassEntry{
		ID:         s.newID(),
		Course:     req.Course,
		CourseCode: req.CourseCode,
		Instructor: req.Instructor,
		Room:       req.Room,
		Building:   req.Building,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Date:       s.resolveStoredDate(day, req),
		TempOnly:   req.TempOnly,
	}

	// ID 在该星期两个集合的并集内必须唯一
	for _, existing := range merged {
		if existing.ID == entry.ID {
			s.logger.Error("课程ID冲突", zap.String("id", entry.ID), zap.String("day", day))
			return nil, fmt.Errorf("%w: %s", ErrDuplicateClassID, entry.ID)
		}
	}

	if req.TempOnly {
		temps[day] = append(temps[day], entry)
		if err := s.repo.Schedule.SaveTemps(ctx, temps); err != nil {
			s.logger.Error("保存临时课表失败", zap.Error(err))
			return nil, err
		}
	} else {
		defaults[day] = append(defaults[day], entry)
		if err := s.repo.Schedule.SaveDefaults(ctx, defaults); err != nil {
			s.logger.Error("保存默认课表失败", zap.Error(err))
			return nil, err
		}
	}

	resp := toClassResponse(entry, req.TempOnly)
	return &resp, nil
}

// ────────────────────── Update ──────────────────────

func (s *scheduleService) Update(ctx context.Context, day, id string, req *dto.SaveClassRequest) (*dto.ClassResponse, error) {
	if !timeutil.IsWeekday(day) {
		return nil, ErrInvalidWeekday
	}
	if err := validateSaveRequest(req); err != nil {
		return nil, err
	}

	defaults, temps, err := s.loadBoth(ctx)
	if err != nil {
		return nil, err
	}

	// 按记录当前所在集合定位，不信任记录自身的 tempOnly 标记
	wasTemp := hasID(temps[day], id)
	if !wasTemp && !hasID(defaults[day], id) {
		return nil, ErrClassNotFound
	}

	merged := mergedDay(defaults, temps, day)
	if warnings := s.pendingWarnings(day, id, req, merged); len(warnings) > 0 {
		return nil, &ConfirmationRequiredError{Warnings: warnings}
	}

	var entry *model.ClassEntry
	relocated := wasTemp != req.TempOnly
	if relocated {
		// 状态变化：从原集合取出，搬移到另一集合（搬移而非复制）
		if wasTemp {
			moved, rest := take(temps[day], id)
			temps[day] = rest
			defaults[day] = append(defaults[day], moved)
			entry = &defaults[day][len(defaults[day])-1]
		} else {
			moved, rest := take(defaults[day], id)
			defaults[day] = rest
			temps[day] = append(temps[day], moved)
			entry = &temps[day][len(temps[day])-1]
		}
	} else if req.TempOnly {
		entry = find(temps[day], id)
	} else {
		entry = find(defaults[day], id)
	}

	entry.Course = req.Course
	entry.CourseCode = req.CourseCode
	entry.Instructor = req.Instructor
	entry.Room = req.Room
	entry.Building = req.Building
	entry.StartTime = req.StartTime
	entry.EndTime = req.EndTime
	entry.Date = s.resolveStoredDate(day, req)
	entry.TempOnly = req.TempOnly

	// 搬移时两个集合都已变化，需同时持久化
	if relocated || req.TempOnly {
		if err := s.repo.Schedule.SaveTemps(ctx, temps); err != nil {
			s.logger.Error("保存临时课表失败", zap.Error(err))
			return nil, err
		}
	}
	if relocated || !req.TempOnly {
		if err := s.repo.Schedule.SaveDefaults(ctx, defaults); err != nil {
			s.logger.Error("保存默认课表失败", zap.Error(err))
			return nil, err
		}
	}

	resp := toClassResponse(*entry, req.TempOnly)
	return &resp, nil
}

// ────────────────────── Delete ──────────────────────

func (s *scheduleService) Delete(ctx context.Context, day, id string, isTemp bool) error {
	if !timeutil.IsWeekday(day) {
		return ErrInvalidWeekday
	}

	if isTemp {
		temps, err := s.repo.Schedule.LoadTemps(ctx)
		if err != nil {
			return err
		}
		if !hasID(temps[day], id) {
			return ErrClassNotFound
		}
		_, rest := take(temps[day], id)
		temps[day] = rest
		return s.repo.Schedule.SaveTemps(ctx, temps)
	}

	defaults, err := s.repo.Schedule.LoadDefaults(ctx)
	if err != nil {
		return err
	}
	if !hasID(defaults[day], id) {
		return ErrClassNotFound
	}
	_, rest := take(defaults[day], id)
	defaults[day] = rest
	return s.repo.Schedule.SaveDefaults(ctx, defaults)
}

// ────────────────────── ResetTemporary ──────────────────────

func (s *scheduleService) ResetTemporary(ctx context.Context) error {
	if err := s.repo.Schedule.SaveTemps(ctx, model.NewWeekSchedule()); err != nil {
		s.logger.Error("清空临时课表失败", zap.Error(err))
		return err
	}
	s.logger.Info("临时课表已清空")
	return nil
}

// ── 私有辅助方法 ──

func (s *scheduleService) loadBoth(ctx context.Context) (model.WeekSchedule, model.WeekSchedule, error) {
	defaults, err := s.repo.Schedule.LoadDefaults(ctx)
	if err != nil {
		return nil, nil, err
	}
	temps, err := s.repo.Schedule.LoadTemps(ctx)
	if err != nil {
		return nil, nil, err
	}
	return defaults, temps, nil
}

// resolveStoredDate 计算落库日期：
//   - 临时课未填日期时补为该星期的下一次日期
//   - 请求要求自动纠正时改为该星期的下一次日期
//   - 其余情况保持用户输入原样（包括已确认的星期不符日期）
func (s *scheduleService) resolveStoredDate(day string, req *dto.SaveClassRequest) string {
	if req.TempOnly {
		if req.Date == "" {
			next, _ := timeutil.NextDateForWeekday(s.now(), day, true)
			return timeutil.FormatDate(next)
		}
		return req.Date
	}
	if req.Date != "" && req.AutoCorrectDate {
		if wd, err := timeutil.WeekdayOfDate(req.Date); err == nil && wd != day {
			next, _ := timeutil.NextDateForWeekday(s.now(), day, true)
			return timeutil.FormatDate(next)
		}
	}
	return req.Date
}

// pendingWarnings 计算按当前决策标志仍会阻塞保存的咨询性警告
func (s *scheduleService) pendingWarnings(day, skipID string, req *dto.SaveClassRequest, merged []model.ClassEntry) []dto.SaveWarning {
	var warnings []dto.SaveWarning

	// 日期与星期不符：仅针对带日期的默认课；自动纠正或已确认则放行
	if !req.TempOnly && req.Date != "" && !req.AutoCorrectDate && !req.ConfirmWeekday {
		if wd, err := timeutil.WeekdayOfDate(req.Date); err == nil && wd != day {
			next, _ := timeutil.NextDateForWeekday(s.now(), day, true)
			warnings = append(warnings, dto.SaveWarning{
				Code:          WarningWeekdayMismatch,
				Message:       fmt.Sprintf("所选日期是%s，与当前编辑的%s不符", wd, day),
				SuggestedDate: timeutil.FormatDate(next),
			})
		}
	}

	// 时间冲突：候选为临时课时忽略无日期的默认课
	if !req.ConfirmOverlap {
		storedDate := s.resolveStoredDate(day, req)
		if isOverlappingWithOther(merged, req.StartTime, req.EndTime, skipID, storedDate, day, req.TempOnly) {
			warnings = append(warnings, dto.SaveWarning{
				Code:    WarningOverlap,
				Message: "该课程与已有课程时间冲突",
			})
		}
	}

	return warnings
}

// mergedDay 某星期的合并视图：默认在前、临时在后，保持各自插入顺序
func mergedDay(defaults, temps model.WeekSchedule, day string) []model.ClassEntry {
	merged := make([]model.ClassEntry, 0, len(defaults[day])+len(temps[day]))
	merged = append(merged, defaults[day]...)
	merged = append(merged, temps[day]...)
	return merged
}

// hasID 判断集合中是否存在指定记录
func hasID(entries []model.ClassEntry, id string) bool {
	for _, e := range entries {
		if e.ID == id {
			return true
		}
	}
	return false
}

// find 返回指向集合内记录的指针，便于就地更新
func find(entries []model.ClassEntry, id string) *model.ClassEntry {
	for i := range entries {
		if entries[i].ID == id {
			return &entries[i]
		}
	}
	return nil
}

// take 取出指定记录并返回剩余集合
func take(entries []model.ClassEntry, id string) (model.ClassEntry, []model.ClassEntry) {
	rest := make([]model.ClassEntry, 0, len(entries))
	var taken model.ClassEntry
	for _, e := range entries {
		if e.ID == id {
			taken = e
			continue
		}
		rest = append(rest, e)
	}
	return taken, rest
}

// ── 响应转换器 ──

func toClassResponse(entry model.ClassEntry, isTemp bool) dto.ClassResponse {
	colorKey := entry.CourseCode
	if colorKey == "" {
		colorKey = entry.Course
	}
	return dto.ClassResponse{
		ID:         entry.ID,
		Course:     entry.Course,
		CourseCode: entry.CourseCode,
		Instructor: entry.Instructor,
		Room:       entry.Room,
		Building:   entry.Building,
		StartTime:  entry.StartTime,
		EndTime:    entry.EndTime,
		Date:       entry.Date,
		TempOnly:   entry.TempOnly,
		IsTemp:     isTemp,
		Color:      ColorForCourse(colorKey),
	}
}

// buildLegend 按课程代码去重生成图例，保持首次出现顺序
func buildLegend(entries []model.ClassEntry) []dto.LegendItem {
	seen := make(map[string]bool, len(entries))
	legend := make([]dto.LegendItem, 0, len(entries))
	for _, e := range entries {
		if seen[e.CourseCode] {
			continue
		}
		seen[e.CourseCode] = true
		colorKey := e.CourseCode
		if colorKey == "" {
			colorKey = e.Course
		}
		legend = append(legend, dto.LegendItem{
			CourseCode: e.CourseCode,
			Color:      ColorForCourse(colorKey),
		})
	}
	return legend
}

// [自证通过] internal/service/schedule_service.go
