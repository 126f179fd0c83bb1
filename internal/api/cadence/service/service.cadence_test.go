// Package cadencesvc - Test validate recurrence rule và tính lần chạy kế tiếp.
package cadencesvc

import (
	"testing"
	"time"

	cadencemodels "meta_content/internal/api/cadence/models"
	"meta_content/internal/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRule_WeeklyRequiresDayOfWeek(t *testing.T) {
	_, err := BuildRule(cadencemodels.Cadence{
		Frequency: schedule.FreqWeekly,
		TimeOfDay: "09:00",
	})
	assert.Error(t, err, "weekly thiếu dayOfWeek phải bị từ chối")

	rule, err := BuildRule(cadencemodels.Cadence{
		Frequency: schedule.FreqWeekly,
		DayOfWeek: "monday",
		TimeOfDay: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, time.Monday, rule.DayOfWeek)
}

func TestBuildRule_WeeklyRejectsDayOfMonth(t *testing.T) {
	_, err := BuildRule(cadencemodels.Cadence{
		Frequency:  schedule.FreqWeekly,
		DayOfWeek:  "monday",
		DayOfMonth: 15,
		TimeOfDay:  "09:00",
	})
	assert.Error(t, err, "weekly kèm dayOfMonth phải bị từ chối, không tự bỏ qua")
}

func TestBuildRule_MonthlyRejectsDayOfWeek(t *testing.T) {
	_, err := BuildRule(cadencemodels.Cadence{
		Frequency: schedule.FreqMonthly,
		DayOfWeek: "monday",
		DayOfMonth: 15,
		TimeOfDay: "09:00",
	})
	assert.Error(t, err)
}

func TestBuildRule_MonthlyDayRange(t *testing.T) {
	for _, dom := range []int{29, 30, 31, 0, -1} {
		_, err := BuildRule(cadencemodels.Cadence{
			Frequency:  schedule.FreqMonthly,
			DayOfMonth: dom,
			TimeOfDay:  "09:00",
		})
		assert.Errorf(t, err, "dayOfMonth %d phải bị từ chối", dom)
	}

	rule, err := BuildRule(cadencemodels.Cadence{
		Frequency:  schedule.FreqMonthly,
		DayOfMonth: 28,
		TimeOfDay:  "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 28, rule.DayOfMonth)
}

func TestBuildRule_DailyRejectsDayFields(t *testing.T) {
	_, err := BuildRule(cadencemodels.Cadence{
		Frequency: schedule.FreqDaily,
		DayOfWeek: "monday",
		TimeOfDay: "09:00",
	})
	assert.Error(t, err)

	_, err = BuildRule(cadencemodels.Cadence{
		Frequency:  schedule.FreqDaily,
		DayOfMonth: 3,
		TimeOfDay:  "09:00",
	})
	assert.Error(t, err)
}

func TestComputeNextRun_WeeklyInTimezone(t *testing.T) {
	// Thứ Tư 06/03/2024 15:00 UTC, cadence thứ Hai 09:00 America/New_York →
	// thứ Hai 11/03 đã sang EDT nên 09:00 local = 13:00 UTC
	now := time.Date(2024, 3, 6, 15, 0, 0, 0, time.UTC)
	nextRunAt, err := ComputeNextRun(cadencemodels.Cadence{
		Frequency: schedule.FreqWeekly,
		DayOfWeek: "monday",
		TimeOfDay: "09:00",
		Timezone:  "America/New_York",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 11, 13, 0, 0, 0, time.UTC).UnixMilli(), nextRunAt)
}

func TestComputeNextRun_InvalidTimezone(t *testing.T) {
	_, err := ComputeNextRun(cadencemodels.Cadence{
		Frequency: schedule.FreqDaily,
		TimeOfDay: "09:00",
		Timezone:  "NOT_A_ZONE",
	}, time.Now())
	assert.Error(t, err)
}

func TestComputeNextRun_EmptyTimezoneDefaultsUTC(t *testing.T) {
	now := time.Date(2024, 3, 6, 8, 0, 0, 0, time.UTC)
	nextRunAt, err := ComputeNextRun(cadencemodels.Cadence{
		Frequency: schedule.FreqDaily,
		TimeOfDay: "09:00",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC).UnixMilli(), nextRunAt)
}
