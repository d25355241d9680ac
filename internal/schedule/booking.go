package schedule

import (
	"fmt"
	"time"

	"clinic-scheduler-server/internal/models"
)

// BookingForm is the validated shape of a booking or reschedule submission.
// PatientID, DoctorID, Date and Time are required; the rest is descriptive.
// ExcludeAppointmentID identifies the appointment being edited so it does
// not conflict with itself.
type BookingForm struct {
	PatientID            string
	DoctorID             string
	Date                 string // "2006-01-02"
	Time                 string // slot label
	DurationMinutes      int
	VisitType            string
	Notes                string
	Status               models.AppointmentStatus
	ExcludeAppointmentID string
}

// ValidateBooking runs the full pre-persistence check for a booking.
// It returns a *ValidationError for missing fields, a *ConflictError when
// the booking collides with existing clinic state, and nil when the form
// may be handed to the store. appointments must contain at least every
// non-cancelled appointment for the target doctor and the target patient
// on the requested date.
func ValidateBooking(form BookingForm, appointments []models.Appointment, doctor *models.Doctor, now time.Time) error {
	fields := map[string]string{}
	if form.PatientID == "" {
		fields["patientId"] = "patient is required"
	}
	if form.DoctorID == "" {
		fields["doctorId"] = "doctor is required"
	}
	if form.Date == "" {
		fields["date"] = "date is required"
	}
	if form.Time == "" {
		fields["time"] = "time is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	if doctor == nil {
		return &ValidationError{Fields: map[string]string{"doctorId": "doctor not found"}}
	}

	// Editing a Completed or Cancelled appointment is never allowed.
	if form.ExcludeAppointmentID != "" {
		for _, appt := range appointments {
			if appt.ID == form.ExcludeAppointmentID && appt.Status.IsTerminal() {
				return &ConflictError{
					Field:   "status",
					Message: fmt.Sprintf("a %s appointment can no longer be changed", appt.Status),
				}
			}
		}
	}

	// The doctor must not be on leave for the selected date. This repeats
	// the per-slot leave rule as a form-level error because the date may be
	// chosen after the doctor.
	for _, leave := range doctor.Leaves {
		if leave.Date == form.Date {
			return &ConflictError{
				Field:   "date",
				Message: fmt.Sprintf("Dr. %s is on leave on %s (%s)", doctor.LastName, form.Date, leave.Reason),
			}
		}
	}

	// Per-slot rules: booked, past, shift window.
	decision := EvaluateSlot(SlotRequest{
		DoctorID:             form.DoctorID,
		Date:                 form.Date,
		Time:                 form.Time,
		Appointments:         appointments,
		Doctor:               doctor,
		ExcludeAppointmentID: form.ExcludeAppointmentID,
		Now:                  now,
	})
	if !decision.Available {
		switch decision.Reason {
		case ReasonBooked:
			return &ConflictError{Field: "time", Message: "that slot is already booked"}
		case ReasonPassed:
			return &ConflictError{Field: "time", Message: "that time has already passed"}
		default:
			return &ConflictError{Field: "time", Message: "that time is outside the doctor's working hours"}
		}
	}

	// One appointment per patient per day, across all doctors.
	for _, appt := range appointments {
		if appt.Status == models.StatusCancelled {
			continue
		}
		if form.ExcludeAppointmentID != "" && appt.ID == form.ExcludeAppointmentID {
			continue
		}
		if appt.PatientID == form.PatientID && appt.Date == form.Date {
			withDoctor := appt.DoctorID
			if appt.Doctor.LastName != "" {
				withDoctor = "Dr. " + appt.Doctor.LastName
			}
			return &ConflictError{
				Field:   "patientId",
				Message: fmt.Sprintf("patient already has an appointment on %s at %s with %s", appt.Date, appt.Time, withDoctor),
			}
		}
	}

	return nil
}
