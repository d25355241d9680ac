package schedule_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-scheduler-server/internal/schedule"
)

func TestSlotMinutes(t *testing.T) {
	cases := []struct {
		label string
		want  int
	}{
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"01:00 AM", 60},
		{"09:00 AM", 540},
		{"11:30 AM", 690},
		{"12:00 PM", 720},
		{"12:30 PM", 750},
		{"02:30 PM", 870},
		{"04:30 PM", 990},
		{"11:30 PM", 1410},
	}
	for _, tc := range cases {
		got, err := schedule.SlotMinutes(tc.label)
		require.NoError(t, err, tc.label)
		require.Equal(t, tc.want, got, tc.label)
	}
}

func TestSlotMinutes_LowercaseMeridiem(t *testing.T) {
	got, err := schedule.SlotMinutes("09:00 am")
	require.NoError(t, err)
	require.Equal(t, 540, got)
}

func TestSlotMinutes_Invalid(t *testing.T) {
	for _, label := range []string{"", "09:00", "9 AM", "13:00 PM", "09:60 AM", "09:00 XM", "junk"} {
		_, err := schedule.SlotMinutes(label)
		require.Error(t, err, label)
	}
}

func TestSlotBefore(t *testing.T) {
	// "02:00 PM" sorts before "09:00 AM" as a plain string; chronologically
	// it must come after.
	require.True(t, schedule.SlotBefore("09:00 AM", "02:00 PM"))
	require.False(t, schedule.SlotBefore("02:00 PM", "09:00 AM"))
	require.True(t, schedule.SlotBefore("11:30 AM", "12:00 PM"))
	require.False(t, schedule.SlotBefore("09:00 AM", "09:00 AM"))
}

func TestSlotBefore_SortsLabelsChronologically(t *testing.T) {
	labels := []string{"02:00 PM", "09:00 AM", "12:00 PM", "11:30 AM"}
	sort.SliceStable(labels, func(i, j int) bool {
		return schedule.SlotBefore(labels[i], labels[j])
	})
	require.Equal(t, []string{"09:00 AM", "11:30 AM", "12:00 PM", "02:00 PM"}, labels)
}

func TestSlotBefore_InvalidLabelSortsLast(t *testing.T) {
	require.True(t, schedule.SlotBefore("04:30 PM", "junk"))
	require.False(t, schedule.SlotBefore("junk", "09:00 AM"))
}

func TestShiftMinutes(t *testing.T) {
	got, err := schedule.ShiftMinutes("09:00")
	require.NoError(t, err)
	require.Equal(t, 540, got)

	got, err = schedule.ShiftMinutes("17:00")
	require.NoError(t, err)
	require.Equal(t, 1020, got)

	got, err = schedule.ShiftMinutes("00:00")
	require.NoError(t, err)
	require.Equal(t, 0, got)
}

func TestShiftMinutes_Invalid(t *testing.T) {
	for _, value := range []string{"", "9", "24:00", "10:60", "noon"} {
		_, err := schedule.ShiftMinutes(value)
		require.Error(t, err, value)
	}
}
