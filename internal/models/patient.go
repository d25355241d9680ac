package models

import "time"

// PatientStatus represents the registration state of a patient.
type PatientStatus string

const (
	PatientActive   PatientStatus = "Active"
	PatientInactive PatientStatus = "Inactive"
	PatientPending  PatientStatus = "Pending"
)

// Patient represents a registered clinic patient.
type Patient struct {
	BaseModel
	Name        string        `gorm:"size:255;not null" json:"name"`
	Phone       string        `gorm:"size:30" json:"phone"`
	Email       string        `gorm:"size:255" json:"email"`
	DateOfBirth string        `gorm:"size:10" json:"dob"`
	Status      PatientStatus `gorm:"size:20;default:'Active'" json:"status"`
	LastVisit   *time.Time    `json:"lastVisit,omitempty"`

	// Relations (not always preloaded)
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}
