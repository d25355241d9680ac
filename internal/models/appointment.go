package models

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "Pending"
	StatusConfirmed AppointmentStatus = "Confirmed"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
)

// IsTerminal reports whether the status permits no further transitions.
// Completed and Cancelled appointments are locked: no edit, no reschedule,
// no cancellation.
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransitionTo reports whether a status change from s to next is allowed.
// Pending -> Confirmed -> Completed, with Cancelled reachable from Pending
// or Confirmed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCompleted || next == StatusCancelled
	default:
		return false
	}
}

// Appointment represents a scheduled clinic visit. Date is a local calendar
// day ("2006-01-02") and Time is one of the clinic's slot labels
// (e.g. "09:00 AM"); both are stored as strings, never timezone-shifted.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;uniqueIndex:uidx_active_slot,priority:1" json:"doctorId"`
	Date            string            `gorm:"size:10;index;uniqueIndex:uidx_active_slot,priority:2" json:"date"`
	Time            string            `gorm:"size:8;uniqueIndex:uidx_active_slot,priority:3" json:"time"`
	DurationMinutes int               `gorm:"default:30" json:"durationMinutes"`
	VisitType       string            `gorm:"size:100" json:"visitType"`
	Notes           string            `gorm:"type:text" json:"notes"`
	Status          AppointmentStatus `gorm:"size:20;default:'Pending'" json:"status"`

	// SlotGuard is generated from Status: '1' while the appointment is live,
	// NULL once cancelled. MySQL unique indexes ignore NULLs, so the
	// uidx_active_slot index enforces at most one non-cancelled appointment
	// per (doctor, date, time) without blocking rebooking of a freed slot.
	SlotGuard *string `gorm:"->;type:char(1) GENERATED ALWAYS AS (IF(status = 'Cancelled', NULL, '1')) STORED;uniqueIndex:uidx_active_slot,priority:4" json:"-"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"-"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"-"`
}
