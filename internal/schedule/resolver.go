// Package schedule is the clinic's availability resolver: pure functions
// that decide which predefined time slots are bookable for a doctor on a
// date, and validate a prospective booking before it is persisted. The
// package performs no I/O; callers fetch appointments and doctor records up
// front and inject the current time, so every decision is deterministic
// and testable with a fixed clock.
package schedule

import (
	"time"

	"clinic-scheduler-server/internal/models"
)

// Disabled-slot reasons surfaced to the booking UI. A doctor leave uses the
// leave's own reason string instead.
const (
	ReasonBooked = "Booked"
	ReasonPassed = "Passed"
	ReasonClosed = "Closed"
)

// SlotDecision is the resolver's verdict for one slot label.
type SlotDecision struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

// SlotRequest carries everything EvaluateSlot needs to judge a single
// (doctor, date, time) candidate. Appointments is the full set for the
// doctor and patient involved; cancelled rows are ignored during conflict
// checks. ExcludeAppointmentID lets a reschedule skip conflicts with the
// appointment being edited.
type SlotRequest struct {
	DoctorID             string
	Date                 string // "2006-01-02", may be empty
	Time                 string // slot label, e.g. "09:00 AM"
	Appointments         []models.Appointment
	Doctor               *models.Doctor
	ExcludeAppointmentID string
	Now                  time.Time
}

// EvaluateSlot runs the booking rules in order: booked, past, leave, shift
// window. The first failing rule determines the reason. Without a doctor
// the slot is unavailable (the UI must prompt for one first); without a
// date the past check is skipped.
func EvaluateSlot(req SlotRequest) SlotDecision {
	decision := SlotDecision{Time: req.Time}

	if req.DoctorID == "" || req.Doctor == nil {
		decision.Reason = ReasonClosed
		return decision
	}

	slotMin, err := SlotMinutes(req.Time)
	if err != nil {
		decision.Reason = ReasonClosed
		return decision
	}

	// Rule 1: already booked by a non-cancelled appointment.
	for _, appt := range req.Appointments {
		if appt.Status == models.StatusCancelled {
			continue
		}
		if req.ExcludeAppointmentID != "" && appt.ID == req.ExcludeAppointmentID {
			continue
		}
		if appt.DoctorID == req.DoctorID && appt.Date == req.Date && appt.Time == req.Time {
			decision.Reason = ReasonBooked
			return decision
		}
	}

	// Rule 2: the slot is in the past relative to the injected clock.
	if req.Date != "" {
		if _, err := parseDay(req.Date, req.Now); err != nil {
			decision.Reason = ReasonClosed
			return decision
		}
		today := DateOf(req.Now)
		switch {
		case req.Date < today:
			decision.Reason = ReasonPassed
			return decision
		case req.Date == today:
			nowMin := req.Now.Hour()*60 + req.Now.Minute()
			if slotMin <= nowMin {
				decision.Reason = ReasonPassed
				return decision
			}
		}
	}

	// Rule 3: the doctor is on leave that day; every slot carries the
	// leave's reason.
	for _, leave := range req.Doctor.Leaves {
		if leave.Date == req.Date {
			decision.Reason = leave.Reason
			return decision
		}
	}

	// Rule 4: the slot must fall inside the doctor's shift window
	// [scheduleStart, scheduleEnd).
	startMin, err := ShiftMinutes(req.Doctor.ScheduleStart)
	if err != nil {
		decision.Reason = ReasonClosed
		return decision
	}
	endMin, err := ShiftMinutes(req.Doctor.ScheduleEnd)
	if err != nil {
		decision.Reason = ReasonClosed
		return decision
	}
	if slotMin < startMin || slotMin >= endMin {
		decision.Reason = ReasonClosed
		return decision
	}

	decision.Available = true
	return decision
}

// ResolveDay evaluates every slot label in the clinic's configured set for
// one doctor and date, producing the availability grid the booking UI
// renders.
func ResolveDay(slots []string, req SlotRequest) []SlotDecision {
	decisions := make([]SlotDecision, 0, len(slots))
	for _, label := range slots {
		slotReq := req
		slotReq.Time = label
		decisions = append(decisions, EvaluateSlot(slotReq))
	}
	return decisions
}
