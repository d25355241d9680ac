package models

// Doctor represents a clinic doctor together with their daily shift window.
// ScheduleStart and ScheduleEnd are 24-hour "HH:MM" time-of-day bounds; the
// availability resolver converts them to minutes-since-midnight.
type Doctor struct {
	BaseModel
	FirstName     string `gorm:"size:100;not null" json:"firstName"`
	LastName      string `gorm:"size:100;not null" json:"lastName"`
	Email         string `gorm:"size:255" json:"email"`
	Phone         string `gorm:"size:30" json:"phone"`
	Role          string `gorm:"size:100" json:"role"`
	ScheduleStart string `gorm:"size:5;default:'09:00'" json:"scheduleStart"`
	ScheduleEnd   string `gorm:"size:5;default:'17:00'" json:"scheduleEnd"`
	Status        string `gorm:"size:20;default:'Active'" json:"status"`

	// Relations
	Leaves       []DoctorLeave `gorm:"foreignKey:DoctorID" json:"leaves"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
}

// DoctorLeave blocks a doctor's slots for one calendar day. A multi-day
// leave is stored as one row per day so individual days can be removed.
type DoctorLeave struct {
	BaseModel
	DoctorID string `gorm:"size:36;index" json:"doctorId"`
	Date     string `gorm:"size:10;index" json:"date"`
	Reason   string `gorm:"size:255" json:"reason"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`
}
