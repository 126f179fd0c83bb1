// Package schedule - Test trích xuất lịch từ text và tính lần đăng kế tiếp.
package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_DayTimeTimezone(t *testing.T) {
	out := Extract("let's post this Tuesday at 2pm PST")
	assert.Equal(t, "tuesday", out.DayOfWeek)
	assert.Equal(t, "14:00", out.Time24h)
	assert.Equal(t, "PST", out.Timezone)
}

func TestExtract_ColonTimeAndIana(t *testing.T) {
	out := Extract("đăng vào wednesday lúc 14:30 Asia/Ho_Chi_Minh nhé")
	assert.Equal(t, "wednesday", out.DayOfWeek)
	assert.Equal(t, "14:30", out.Time24h)
	assert.Equal(t, "Asia/Ho_Chi_Minh", out.Timezone)
}

func TestExtract_NoScheduleInText(t *testing.T) {
	// Không có lịch trong text thì mọi field phải rỗng, không được đoán
	out := Extract("here is an idea about coffee brewing")
	assert.Empty(t, out.DayOfWeek)
	assert.Empty(t, out.Time24h)
	assert.Empty(t, out.Timezone)
}

func TestExtract_PartialOnlyDay(t *testing.T) {
	out := Extract("maybe friday would be good")
	assert.Equal(t, "friday", out.DayOfWeek)
	assert.Empty(t, out.Time24h)
	assert.Empty(t, out.Timezone)
}

func TestExtract_NoonAndMidnight(t *testing.T) {
	out := Extract("post at 12pm")
	assert.Equal(t, "12:00", out.Time24h)

	out = Extract("post at 12am")
	assert.Equal(t, "00:00", out.Time24h)
}

func TestExtract_AbbreviatedWeekday(t *testing.T) {
	out := Extract("thurs at 9:15am works")
	assert.Equal(t, "thursday", out.DayOfWeek)
	assert.Equal(t, "09:15", out.Time24h)
}

func TestNewRule_Validation(t *testing.T) {
	_, err := NewRule("hourly", "", 0, "09:00")
	assert.Error(t, err, "frequency lạ phải bị từ chối")

	_, err = NewRule(FreqWeekly, "someday", 0, "09:00")
	assert.Error(t, err)

	_, err = NewRule(FreqMonthly, "", 31, "09:00")
	assert.Error(t, err, "ngày 31 không tồn tại trong mọi tháng")

	_, err = NewRule(FreqMonthly, "", 0, "09:00")
	assert.Error(t, err)

	_, err = NewRule(FreqDaily, "", 0, "25:00")
	assert.Error(t, err)

	rule, err := NewRule(FreqWeekly, "Mon", 0, "09:30")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, rule.DayOfWeek)
	assert.Equal(t, 9, rule.Hour)
	assert.Equal(t, 30, rule.Minute)
}

func TestNextOccurrence_WeeklyAcrossDST(t *testing.T) {
	// Thứ Tư 06/03/2024 15:00 UTC; rule weekly Monday 09:00 America/New_York.
	// Thứ Hai kế tiếp (11/03) đã sang EDT (UTC-4) vì DST bắt đầu 10/03,
	// nên 09:00 local = 13:00 UTC chứ không phải 14:00.
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	rule, err := NewRule(FreqWeekly, "monday", 0, "09:00")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	next := NextOccurrence(rule, now, loc)
	assert.Equal(t, time.Date(2024, 3, 11, 13, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_DailySameDayLater(t *testing.T) {
	rule, err := NewRule(FreqDaily, "", 0, "23:00")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	next := NextOccurrence(rule, now, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 6, 23, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_DailyStrictlyFuture(t *testing.T) {
	// now trùng khít thời điểm của rule thì phải nhảy sang ngày hôm sau
	rule, err := NewRule(FreqDaily, "", 0, "15:00")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	next := NextOccurrence(rule, now, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 7, 15, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_WeeklySameDayAlreadyPassed(t *testing.T) {
	// now là thứ Tư 15:00, rule thứ Tư 09:00 → sang thứ Tư tuần sau
	rule, err := NewRule(FreqWeekly, "wednesday", 0, "09:00")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	next := NextOccurrence(rule, now, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_BiweeklyMatchingDay(t *testing.T) {
	// now đúng thứ của rule nhưng giờ đã qua → cộng nguyên 14 ngày
	rule, err := NewRule(FreqBiweekly, "wednesday", 0, "09:00")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	next := NextOccurrence(rule, now, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_BiweeklyNonMatchingDay(t *testing.T) {
	// Xuất phát thứ Tư, rule thứ Sáu → thứ Sáu của tuần kế tiếp (ahead+7),
	// không phải thứ Sáu cùng tuần
	rule, err := NewRule(FreqBiweekly, "friday", 0, "10:00")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	next := NextOccurrence(rule, now, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), next)
}

func TestNextOccurrence_Monthly(t *testing.T) {
	rule, err := NewRule(FreqMonthly, "", 15, "12:00")
	require.NoError(t, err)

	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	next := NextOccurrence(rule, now, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), next)

	// Ngày trong tháng đã qua → sang tháng kế tiếp
	rule2, err := NewRule(FreqMonthly, "", 1, "12:00")
	require.NoError(t, err)
	next = NextOccurrence(rule2, now, time.UTC)
	assert.Equal(t, time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC), next)
}

func TestLoadTimezone_Abbreviations(t *testing.T) {
	loc, err := LoadTimezone("PST")
	require.NoError(t, err)
	assert.Equal(t, "America/Los_Angeles", loc.String())

	loc, err = LoadTimezone("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = LoadTimezone("NOT_A_ZONE")
	assert.Error(t, err)
}

func TestParseTime24h(t *testing.T) {
	h, m, err := ParseTime24h("09:30")
	require.NoError(t, err)
	assert.Equal(t, 9, h)
	assert.Equal(t, 30, m)

	_, _, err = ParseTime24h("9")
	assert.Error(t, err)

	_, _, err = ParseTime24h("24:00")
	assert.Error(t, err)
}
