package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-scheduler-server/internal/schedule"
)

func TestExpandLeaveRange_ThreeDays(t *testing.T) {
	days, err := schedule.ExpandLeaveRange("2025-06-10", "2025-06-12", "Holiday")
	require.NoError(t, err)
	require.Len(t, days, 3)
	require.Equal(t, "2025-06-10", days[0].Date)
	require.Equal(t, "2025-06-11", days[1].Date)
	require.Equal(t, "2025-06-12", days[2].Date)
	for _, day := range days {
		require.Equal(t, "Holiday", day.Reason)
	}
}

func TestExpandLeaveRange_SingleDayWhenEndOmitted(t *testing.T) {
	days, err := schedule.ExpandLeaveRange("2025-06-10", "", "Holiday")
	require.NoError(t, err)
	require.Len(t, days, 1)
	require.Equal(t, "2025-06-10", days[0].Date)
	require.Equal(t, "Holiday", days[0].Reason)
}

func TestExpandLeaveRange_AcrossMonthBoundary(t *testing.T) {
	days, err := schedule.ExpandLeaveRange("2025-06-29", "2025-07-02", "Conference")
	require.NoError(t, err)
	require.Len(t, days, 4)
	require.Equal(t, "2025-06-30", days[1].Date)
	require.Equal(t, "2025-07-01", days[2].Date)
}

func TestExpandLeaveRange_EndBeforeStart(t *testing.T) {
	_, err := schedule.ExpandLeaveRange("2025-06-12", "2025-06-10", "Holiday")
	require.Error(t, err)
}

func TestExpandLeaveRange_InvalidDates(t *testing.T) {
	_, err := schedule.ExpandLeaveRange("", "", "Holiday")
	require.Error(t, err)

	_, err = schedule.ExpandLeaveRange("June 10", "", "Holiday")
	require.Error(t, err)

	_, err = schedule.ExpandLeaveRange("2025-06-10", "bad", "Holiday")
	require.Error(t, err)
}
