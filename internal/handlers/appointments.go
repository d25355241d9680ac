package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/config"
	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/schedule"
	"clinic-scheduler-server/internal/utils"
)

// AppointmentHandler handles appointment booking, rescheduling and status
// transitions. Every mutation re-runs the availability resolver inside the
// transaction that writes the row, and the uidx_active_slot unique index on
// non-cancelled (doctor, date, time) rows backstops concurrent bookings the
// snapshot reads cannot see: the loser's insert fails and surfaces as a
// conflict.
type AppointmentHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Cfg: cfg}
}

// AppointmentResponse mirrors the joined row the clinic frontend expects.
type AppointmentResponse struct {
	ID              string                   `json:"id"`
	Date            string                   `json:"date"`
	Time            string                   `json:"time"`
	DurationMinutes int                      `json:"durationMinutes"`
	VisitType       string                   `json:"visitType"`
	Notes           string                   `json:"notes"`
	Status          models.AppointmentStatus `json:"status"`
	PatientID       string                   `json:"patientId"`
	Patient         string                   `json:"patient"`
	Email           string                   `json:"email"`
	Phone           string                   `json:"phone"`
	DoctorID        string                   `json:"doctorId"`
	Doc             string                   `json:"doc"`
}

func toAppointmentResponse(a models.Appointment) AppointmentResponse {
	resp := AppointmentResponse{
		ID:              a.ID,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
		VisitType:       a.VisitType,
		Notes:           a.Notes,
		Status:          a.Status,
		PatientID:       a.PatientID,
		Patient:         "Unknown",
		DoctorID:        a.DoctorID,
		Doc:             "Unknown",
	}
	if a.Patient.Name != "" {
		resp.Patient = a.Patient.Name
		resp.Email = a.Patient.Email
		resp.Phone = a.Patient.Phone
	}
	if a.Doctor.LastName != "" {
		resp.Doc = "Dr. " + a.Doctor.LastName
	}
	return resp
}

// GetAppointments handles fetching all appointments joined with patient and
// doctor details, newest date first, earliest time first within a day. The
// time ordering happens in Go because the stored labels are 12-hour strings
// that SQL would sort lexicographically.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	var appointments []models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").
		Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}
	sort.SliceStable(appointments, func(i, j int) bool {
		if appointments[i].Date != appointments[j].Date {
			return appointments[i].Date > appointments[j].Date
		}
		return schedule.SlotBefore(appointments[i].Time, appointments[j].Time)
	})

	responses := make([]AppointmentResponse, len(appointments))
	for i, a := range appointments {
		responses[i] = toAppointmentResponse(a)
	}
	utils.Success(c, "Appointments fetched successfully", responses)
}

// GetAvailability handles computing the slot grid for one doctor and date.
// Any store failure fails closed with 503 rather than guessing that slots
// are free.
func (h *AppointmentHandler) GetAvailability(c *gin.Context) {
	doctorID := c.Query("doctorId")
	date := c.Query("date")
	if doctorID == "" || date == "" {
		utils.BadRequest(c, "doctorId and date query parameters are required")
		return
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		utils.BadRequest(c, "date must be formatted as YYYY-MM-DD")
		return
	}

	var doctor models.Doctor
	if err := h.DB.Preload("Leaves").First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.ServiceUnavailable(c, "Could not load doctor schedule: "+err.Error())
		}
		return
	}

	var appointments []models.Appointment
	if err := h.DB.Where("doctor_id = ? AND date = ?", doctorID, date).
		Find(&appointments).Error; err != nil {
		utils.ServiceUnavailable(c, "Could not load existing appointments: "+err.Error())
		return
	}

	decisions := schedule.ResolveDay(h.Cfg.SlotLabels, schedule.SlotRequest{
		DoctorID:             doctorID,
		Date:                 date,
		Appointments:         appointments,
		Doctor:               &doctor,
		ExcludeAppointmentID: c.Query("excludeAppointmentId"),
		Now:                  time.Now(),
	})

	utils.Success(c, "Availability resolved", decisions)
}

// AppointmentRequest represents the request body for booking or
// rescheduling an appointment.
type AppointmentRequest struct {
	PatientID       string `json:"patientId" binding:"required"`
	DoctorID        string `json:"doctorId" binding:"required"`
	Date            string `json:"date" binding:"required,datetime=2006-01-02"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"durationMinutes"`
	VisitType       string `json:"visitType"`
	Notes           string `json:"notes"`
	Status          string `json:"status" binding:"omitempty,oneof=Pending Confirmed Completed Cancelled"`
}

// CreateAppointment handles booking a new appointment. The availability
// resolver runs inside the insert transaction so the booked-check and the
// write see the same state.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.ServiceUnavailable(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	status := models.StatusPending
	if req.Status != "" {
		status = models.AppointmentStatus(req.Status)
	}

	appointment := models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		Date:            req.Date,
		Time:            req.Time,
		DurationMinutes: durationOrDefault(req.DurationMinutes),
		VisitType:       req.VisitType,
		Notes:           req.Notes,
		Status:          status,
	}

	form := schedule.BookingForm{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Date:      req.Date,
		Time:      req.Time,
	}

	if err := h.bookInTransaction(form, func(tx *gorm.DB) error {
		return tx.Create(&appointment).Error
	}); err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Created(c, "Appointment booked", toAppointmentResponse(appointment))
}

// UpdateAppointment handles rescheduling: date, time, doctor, patient or
// notes may change, validated with the appointment excluded from its own
// conflict checks. Completed and Cancelled appointments are locked.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.ServiceUnavailable(c, "Database error: "+err.Error())
		}
		return
	}

	if appointment.Status.IsTerminal() {
		utils.Conflict(c, fmt.Sprintf("a %s appointment can no longer be changed", appointment.Status))
		return
	}

	appointment.PatientID = req.PatientID
	appointment.DoctorID = req.DoctorID
	appointment.Date = req.Date
	appointment.Time = req.Time
	appointment.DurationMinutes = durationOrDefault(req.DurationMinutes)
	appointment.VisitType = req.VisitType
	appointment.Notes = req.Notes
	if req.Status != "" {
		next := models.AppointmentStatus(req.Status)
		if next != appointment.Status && !appointment.Status.CanTransitionTo(next) {
			utils.Conflict(c, fmt.Sprintf("cannot change a %s appointment to %s", appointment.Status, next))
			return
		}
		appointment.Status = next
	}

	form := schedule.BookingForm{
		PatientID:            req.PatientID,
		DoctorID:             req.DoctorID,
		Date:                 req.Date,
		Time:                 req.Time,
		ExcludeAppointmentID: appointmentID,
	}

	if err := h.bookInTransaction(form, func(tx *gorm.DB) error {
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}
		return logStatusActivity(tx, appointment)
	}); err != nil {
		respondBookingError(c, err)
		return
	}

	utils.Success(c, "Appointment updated", toAppointmentResponse(appointment))
}

// UpdateStatusRequest represents the request body for a status transition.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=Pending Confirmed Completed Cancelled"`
	Notes  string `json:"notes"`
}

// UpdateAppointmentStatus handles the Pending -> Confirmed -> Completed
// lifecycle, with Cancelled reachable from Pending or Confirmed. Terminal
// states reject every transition.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	appointmentID := c.Param("id")

	var req UpdateStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.ServiceUnavailable(c, "Database error: "+err.Error())
		}
		return
	}

	next := models.AppointmentStatus(req.Status)
	if !appointment.Status.CanTransitionTo(next) {
		utils.Conflict(c, fmt.Sprintf("cannot change a %s appointment to %s", appointment.Status, next))
		return
	}

	appointment.Status = next
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}
		return logStatusActivity(tx, appointment)
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to update appointment status: "+err.Error())
		return
	}

	utils.Success(c, "Appointment status updated", toAppointmentResponse(appointment))
}

// CancelAppointment handles cancellation as a soft delete: the row is kept
// with status Cancelled so patient history survives. Completed
// appointments cannot be cancelled.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.ServiceUnavailable(c, "Database error: "+err.Error())
		}
		return
	}

	if !appointment.Status.CanTransitionTo(models.StatusCancelled) {
		utils.Conflict(c, fmt.Sprintf("a %s appointment cannot be cancelled", appointment.Status))
		return
	}

	appointment.Status = models.StatusCancelled
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&appointment).Error; err != nil {
			return err
		}
		return logStatusActivity(tx, appointment)
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to cancel appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment cancelled", toAppointmentResponse(appointment))
}

// bookInTransaction loads the doctor and the relevant appointment set, runs
// the availability resolver, and only then executes the write, all inside
// one transaction. The reads are snapshot reads, so a concurrent booking for
// the same slot can still pass validation on both sides; the unique index on
// active (doctor, date, time) rows rejects the second insert, which
// bookingWriteError turns into a conflict.
func (h *AppointmentHandler) bookInTransaction(form schedule.BookingForm, write func(tx *gorm.DB) error) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		var doctor models.Doctor
		if err := tx.Preload("Leaves").First(&doctor, "id = ?", form.DoctorID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &schedule.ValidationError{Fields: map[string]string{"doctorId": "doctor not found"}}
			}
			return fmt.Errorf("%w: %v", schedule.ErrStoreUnavailable, err)
		}

		var appointments []models.Appointment
		if err := tx.Preload("Doctor").
			Where("(doctor_id = ? AND date = ?) OR (patient_id = ? AND date = ?)",
				form.DoctorID, form.Date, form.PatientID, form.Date).
			Find(&appointments).Error; err != nil {
			return fmt.Errorf("%w: %v", schedule.ErrStoreUnavailable, err)
		}

		if form.ExcludeAppointmentID != "" {
			// Make sure the appointment being edited is in the set even if
			// it moved to a different date, so the terminal lock applies.
			var current models.Appointment
			if err := tx.First(&current, "id = ?", form.ExcludeAppointmentID).Error; err == nil {
				appointments = append(appointments, current)
			}
		}

		if err := schedule.ValidateBooking(form, appointments, &doctor, time.Now()); err != nil {
			return err
		}

		if err := write(tx); err != nil {
			return bookingWriteError(err)
		}
		return nil
	})
}

// bookingWriteError classifies a failed appointment write. A duplicate-key
// violation means another caller took the slot between our read and our
// insert, which is a booking conflict, not a store outage.
func bookingWriteError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &schedule.ConflictError{
			Field:   "time",
			Message: "This slot was just booked by someone else. Please choose a different time.",
		}
	}
	return fmt.Errorf("%w: %v", schedule.ErrStoreUnavailable, err)
}

// respondBookingError maps resolver errors to HTTP statuses: 400 for bad
// input, 409 for conflicts, 503 when the store could not be consulted.
func respondBookingError(c *gin.Context, err error) {
	var validationErr *schedule.ValidationError
	var conflictErr *schedule.ConflictError
	switch {
	case errors.As(err, &validationErr):
		utils.ErrorWithData(c, http.StatusBadRequest, validationErr.Error(), validationErr.Fields)
	case errors.As(err, &conflictErr):
		utils.Conflict(c, conflictErr.Message)
	case errors.Is(err, schedule.ErrStoreUnavailable):
		utils.ServiceUnavailable(c, err.Error())
	default:
		utils.InternalServerError(c, err.Error())
	}
}

// logStatusActivity records Confirmed/Completed/Cancelled transitions for
// the dashboard activity feed. Other statuses are not interesting.
func logStatusActivity(tx *gorm.DB, appointment models.Appointment) error {
	switch appointment.Status {
	case models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled:
	default:
		return nil
	}

	logStatus := "success"
	if appointment.Status == models.StatusCancelled {
		logStatus = "danger"
	}
	entry := models.ActivityLog{
		ActionType:  "Appointment",
		Description: fmt.Sprintf("Appointment %s for %s at %s", appointment.Status, appointment.Date, appointment.Time),
		Status:      logStatus,
	}
	return tx.Create(&entry).Error
}

func durationOrDefault(minutes int) int {
	if minutes <= 0 {
		return 30
	}
	return minutes
}
