package models_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-scheduler-server/internal/models"
)

func TestAppointmentStatusTransitions(t *testing.T) {
	cases := []struct {
		from    models.AppointmentStatus
		to      models.AppointmentStatus
		allowed bool
	}{
		{models.StatusPending, models.StatusConfirmed, true},
		{models.StatusPending, models.StatusCancelled, true},
		{models.StatusPending, models.StatusCompleted, false},
		{models.StatusConfirmed, models.StatusCompleted, true},
		{models.StatusConfirmed, models.StatusCancelled, true},
		{models.StatusConfirmed, models.StatusPending, false},
		{models.StatusCompleted, models.StatusCancelled, false},
		{models.StatusCompleted, models.StatusConfirmed, false},
		{models.StatusCancelled, models.StatusPending, false},
		{models.StatusCancelled, models.StatusConfirmed, false},
	}
	for _, tc := range cases {
		require.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestAppointmentStatusIsTerminal(t *testing.T) {
	require.False(t, models.StatusPending.IsTerminal())
	require.False(t, models.StatusConfirmed.IsTerminal())
	require.True(t, models.StatusCompleted.IsTerminal())
	require.True(t, models.StatusCancelled.IsTerminal())
}
