package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/schedule"
)

var testSlots = []string{
	"09:00 AM", "09:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"02:00 PM", "02:30 PM", "03:00 PM", "03:30 PM", "04:00 PM", "04:30 PM",
}

func testDoctor() *models.Doctor {
	return &models.Doctor{
		BaseModel:     models.BaseModel{ID: "doc-1"},
		FirstName:     "James",
		LastName:      "Johnson",
		Role:          "General Practitioner",
		ScheduleStart: "09:00",
		ScheduleEnd:   "17:00",
	}
}

// clock fixes "now" at 2025-06-10 14:00 local.
func clock() time.Time {
	return time.Date(2025, 6, 10, 14, 0, 0, 0, time.Local)
}

func TestEvaluateSlot_Booked(t *testing.T) {
	doc := testDoctor()
	appts := []models.Appointment{
		{
			BaseModel: models.BaseModel{ID: "appt-1"},
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Date:      "2025-06-12",
			Time:      "09:00 AM",
			Status:    models.StatusConfirmed,
		},
	}

	decision := schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID:     "doc-1",
		Date:         "2025-06-12",
		Time:         "09:00 AM",
		Appointments: appts,
		Doctor:       doc,
		Now:          clock(),
	})
	require.False(t, decision.Available)
	require.Equal(t, schedule.ReasonBooked, decision.Reason)
}

func TestEvaluateSlot_BookedExcludesSelf(t *testing.T) {
	doc := testDoctor()
	appts := []models.Appointment{
		{
			BaseModel: models.BaseModel{ID: "appt-1"},
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Date:      "2025-06-12",
			Time:      "09:00 AM",
			Status:    models.StatusConfirmed,
		},
	}

	decision := schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID:             "doc-1",
		Date:                 "2025-06-12",
		Time:                 "09:00 AM",
		Appointments:         appts,
		Doctor:               doc,
		ExcludeAppointmentID: "appt-1",
		Now:                  clock(),
	})
	require.True(t, decision.Available)
}

func TestEvaluateSlot_CancelledDoesNotConflict(t *testing.T) {
	doc := testDoctor()
	appts := []models.Appointment{
		{
			BaseModel: models.BaseModel{ID: "appt-1"},
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Date:      "2025-06-12",
			Time:      "09:00 AM",
			Status:    models.StatusCancelled,
		},
	}

	decision := schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID:     "doc-1",
		Date:         "2025-06-12",
		Time:         "09:00 AM",
		Appointments: appts,
		Doctor:       doc,
		Now:          clock(),
	})
	require.True(t, decision.Available)
}

func TestEvaluateSlot_PastRules(t *testing.T) {
	doc := testDoctor()
	now := clock() // 2025-06-10 14:00

	// Whole past day.
	decision := schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-09", Time: "09:00 AM",
		Doctor: doc, Now: now,
	})
	require.False(t, decision.Available)
	require.Equal(t, schedule.ReasonPassed, decision.Reason)

	// Today, slot exactly at the current minute is past.
	decision = schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-10", Time: "02:00 PM",
		Doctor: doc, Now: now,
	})
	require.False(t, decision.Available)
	require.Equal(t, schedule.ReasonPassed, decision.Reason)

	// Today, next slot is still bookable.
	decision = schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-10", Time: "02:30 PM",
		Doctor: doc, Now: now,
	})
	require.True(t, decision.Available)

	// Tomorrow morning is never past, whatever the current time.
	decision = schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-11", Time: "09:00 AM",
		Doctor: doc, Now: now,
	})
	require.True(t, decision.Available)
}

func TestEvaluateSlot_LeaveDisablesWholeDay(t *testing.T) {
	doc := testDoctor()
	doc.Leaves = []models.DoctorLeave{
		{DoctorID: "doc-1", Date: "2025-06-12", Reason: "Conference"},
	}

	for _, label := range testSlots {
		decision := schedule.EvaluateSlot(schedule.SlotRequest{
			DoctorID: "doc-1", Date: "2025-06-12", Time: label,
			Doctor: doc, Now: clock(),
		})
		require.False(t, decision.Available, label)
		require.Equal(t, "Conference", decision.Reason, label)
	}
}

func TestEvaluateSlot_ShiftWindow(t *testing.T) {
	doc := testDoctor() // 09:00-17:00
	decision := schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-12", Time: "09:00 AM",
		Doctor: doc, Now: clock(),
	})
	require.True(t, decision.Available)

	narrow := testDoctor() // 10:00-16:00
	narrow.ScheduleStart = "10:00"
	narrow.ScheduleEnd = "16:00"

	decision = schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-12", Time: "09:00 AM",
		Doctor: narrow, Now: clock(),
	})
	require.False(t, decision.Available)
	require.Equal(t, schedule.ReasonClosed, decision.Reason)

	decision = schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-12", Time: "03:30 PM",
		Doctor: narrow, Now: clock(),
	})
	require.True(t, decision.Available)

	// Shift end is exclusive.
	decision = schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-12", Time: "04:00 PM",
		Doctor: narrow, Now: clock(),
	})
	require.False(t, decision.Available)
	require.Equal(t, schedule.ReasonClosed, decision.Reason)
}

func TestEvaluateSlot_NoDoctorDisablesSlot(t *testing.T) {
	decision := schedule.EvaluateSlot(schedule.SlotRequest{
		Date: "2025-06-12", Time: "09:00 AM", Now: clock(),
	})
	require.False(t, decision.Available)

	decision = schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Date: "2025-06-12", Time: "09:00 AM", Now: clock(),
	})
	require.False(t, decision.Available)
}

func TestEvaluateSlot_NoDateSkipsPastRule(t *testing.T) {
	doc := testDoctor()
	decision := schedule.EvaluateSlot(schedule.SlotRequest{
		DoctorID: "doc-1", Time: "09:00 AM", Doctor: doc, Now: clock(),
	})
	require.True(t, decision.Available)
}

func TestResolveDay(t *testing.T) {
	doc := testDoctor()
	appts := []models.Appointment{
		{
			BaseModel: models.BaseModel{ID: "appt-1"},
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Date:      "2025-06-12",
			Time:      "10:00 AM",
			Status:    models.StatusPending,
		},
	}

	decisions := schedule.ResolveDay(testSlots, schedule.SlotRequest{
		DoctorID:     "doc-1",
		Date:         "2025-06-12",
		Appointments: appts,
		Doctor:       doc,
		Now:          clock(),
	})
	require.Len(t, decisions, len(testSlots))

	byTime := map[string]schedule.SlotDecision{}
	for _, d := range decisions {
		byTime[d.Time] = d
	}
	require.False(t, byTime["10:00 AM"].Available)
	require.Equal(t, schedule.ReasonBooked, byTime["10:00 AM"].Reason)
	require.True(t, byTime["09:00 AM"].Available)
	require.True(t, byTime["04:30 PM"].Available)
}
