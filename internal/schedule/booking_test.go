package schedule_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/schedule"
)

func TestValidateBooking_MissingFields(t *testing.T) {
	err := schedule.ValidateBooking(schedule.BookingForm{}, nil, testDoctor(), clock())
	require.Error(t, err)

	var validationErr *schedule.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "patientId")
	require.Contains(t, validationErr.Fields, "doctorId")
	require.Contains(t, validationErr.Fields, "date")
	require.Contains(t, validationErr.Fields, "time")
}

func TestValidateBooking_UnknownDoctor(t *testing.T) {
	form := schedule.BookingForm{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2025-06-12", Time: "09:00 AM",
	}
	err := schedule.ValidateBooking(form, nil, nil, clock())

	var validationErr *schedule.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Fields, "doctorId")
}

func TestValidateBooking_DoctorOnLeave(t *testing.T) {
	doc := testDoctor()
	doc.Leaves = []models.DoctorLeave{
		{DoctorID: "doc-1", Date: "2025-06-12", Reason: "Holiday"},
	}

	form := schedule.BookingForm{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2025-06-12", Time: "09:00 AM",
	}
	err := schedule.ValidateBooking(form, nil, doc, clock())

	var conflictErr *schedule.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, "date", conflictErr.Field)
	require.Contains(t, conflictErr.Message, "Holiday")
}

func TestValidateBooking_SlotBooked(t *testing.T) {
	appts := []models.Appointment{
		{
			BaseModel: models.BaseModel{ID: "appt-1"},
			DoctorID:  "doc-1",
			PatientID: "pat-2",
			Date:      "2025-06-12",
			Time:      "09:00 AM",
			Status:    models.StatusConfirmed,
		},
	}

	form := schedule.BookingForm{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2025-06-12", Time: "09:00 AM",
	}
	err := schedule.ValidateBooking(form, appts, testDoctor(), clock())

	var conflictErr *schedule.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, "time", conflictErr.Field)
}

func TestValidateBooking_PatientSameDayConflict(t *testing.T) {
	// Patient P already sees Dr. Johnson at 09:00 AM; booking with a second
	// doctor later that day must name the existing appointment.
	appts := []models.Appointment{
		{
			BaseModel: models.BaseModel{ID: "appt-1"},
			DoctorID:  "doc-a",
			PatientID: "pat-1",
			Date:      "2025-06-12",
			Time:      "09:00 AM",
			Status:    models.StatusPending,
			Doctor:    models.Doctor{LastName: "Johnson"},
		},
	}
	docB := testDoctor()
	docB.ID = "doc-b"
	docB.LastName = "Davis"

	form := schedule.BookingForm{
		PatientID: "pat-1", DoctorID: "doc-b", Date: "2025-06-12", Time: "10:00 AM",
	}
	err := schedule.ValidateBooking(form, appts, docB, clock())

	var conflictErr *schedule.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, "patientId", conflictErr.Field)
	require.Contains(t, conflictErr.Message, "09:00 AM")
	require.Contains(t, conflictErr.Message, "Dr. Johnson")

	// Rescheduling that same appointment must not conflict with itself.
	form.ExcludeAppointmentID = "appt-1"
	require.NoError(t, schedule.ValidateBooking(form, appts, docB, clock()))
}

func TestValidateBooking_TerminalStateLocked(t *testing.T) {
	appts := []models.Appointment{
		{
			BaseModel: models.BaseModel{ID: "appt-1"},
			DoctorID:  "doc-1",
			PatientID: "pat-1",
			Date:      "2025-06-12",
			Time:      "09:00 AM",
			Status:    models.StatusCompleted,
		},
	}

	form := schedule.BookingForm{
		PatientID:            "pat-1",
		DoctorID:             "doc-1",
		Date:                 "2025-06-12",
		Time:                 "10:00 AM",
		ExcludeAppointmentID: "appt-1",
	}
	err := schedule.ValidateBooking(form, appts, testDoctor(), clock())

	var conflictErr *schedule.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Contains(t, conflictErr.Message, "Completed")
}

func TestValidateBooking_PastSlotRejected(t *testing.T) {
	form := schedule.BookingForm{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2025-06-09", Time: "09:00 AM",
	}
	err := schedule.ValidateBooking(form, nil, testDoctor(), clock())

	var conflictErr *schedule.ConflictError
	require.ErrorAs(t, err, &conflictErr)
	require.Equal(t, "time", conflictErr.Field)
}

func TestValidateBooking_OK(t *testing.T) {
	form := schedule.BookingForm{
		PatientID: "pat-1", DoctorID: "doc-1", Date: "2025-06-12", Time: "09:00 AM",
	}
	require.NoError(t, schedule.ValidateBooking(form, nil, testDoctor(), clock()))
}
