package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/schedule"
	"clinic-scheduler-server/internal/utils"
)

// DoctorHandler handles doctor directory and leave management requests.
type DoctorHandler struct {
	DB *gorm.DB
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB) *DoctorHandler {
	return &DoctorHandler{DB: db}
}

// DoctorRequest represents the request body for creating or updating a doctor.
type DoctorRequest struct {
	FirstName     string `json:"firstName" binding:"required"`
	LastName      string `json:"lastName" binding:"required"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone"`
	Role          string `json:"role" binding:"required"`
	ScheduleStart string `json:"scheduleStart" binding:"required,datetime=15:04"`
	ScheduleEnd   string `json:"scheduleEnd" binding:"required,datetime=15:04"`
}

// validShift reports whether both times parse and the window is non-empty.
func validShift(start, end string) bool {
	startMin, err := schedule.ShiftMinutes(start)
	if err != nil {
		return false
	}
	endMin, err := schedule.ShiftMinutes(end)
	if err != nil {
		return false
	}
	return startMin < endMin
}

// GetDoctors handles fetching all doctors with their upcoming leaves.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	today := schedule.DateOf(time.Now())

	var doctors []models.Doctor
	if err := h.DB.Preload("Leaves", "date >= ?", today).Order("created_at desc").Find(&doctors).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch doctors: "+err.Error())
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// CreateDoctor handles adding a new doctor.
func (h *DoctorHandler) CreateDoctor(c *gin.Context) {
	var req DoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !validShift(req.ScheduleStart, req.ScheduleEnd) {
		utils.BadRequest(c, "Shift start must be before shift end")
		return
	}

	doctor := models.Doctor{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Role:          req.Role,
		ScheduleStart: req.ScheduleStart,
		ScheduleEnd:   req.ScheduleEnd,
	}
	if err := h.DB.Create(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to create doctor: "+err.Error())
		return
	}

	utils.Created(c, "Doctor added successfully", doctor)
}

// UpdateDoctor handles updating a doctor's profile and shift window.
func (h *DoctorHandler) UpdateDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var req DoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !validShift(req.ScheduleStart, req.ScheduleEnd) {
		utils.BadRequest(c, "Shift start must be before shift end")
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	doctor.FirstName = req.FirstName
	doctor.LastName = req.LastName
	doctor.Email = req.Email
	doctor.Phone = req.Phone
	doctor.Role = req.Role
	doctor.ScheduleStart = req.ScheduleStart
	doctor.ScheduleEnd = req.ScheduleEnd

	if err := h.DB.Save(&doctor).Error; err != nil {
		utils.InternalServerError(c, "Failed to update doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor updated successfully", doctor)
}

// DeleteDoctor handles removing a doctor from the directory (admin).
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	doctorID := c.Param("id")

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.Doctor{}, "id = ?", doctorID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete doctor: "+err.Error())
		return
	}

	utils.Success(c, "Doctor deleted successfully", nil)
}

// AddLeaveRequest represents the request body for blocking a doctor's time.
// EndDate is optional; when set, one leave record is written per calendar
// day from Date through EndDate inclusive.
type AddLeaveRequest struct {
	Date    string `json:"date" binding:"required,datetime=2006-01-02"`
	EndDate string `json:"endDate" binding:"omitempty,datetime=2006-01-02"`
	Reason  string `json:"reason" binding:"required"`
	Notes   string `json:"notes"`
}

// LeaveWriteReport tells the caller which days of a leave range landed.
type LeaveWriteReport struct {
	Succeeded []string `json:"succeeded"`
	Failed    []string `json:"failed,omitempty"`
}

// AddLeave handles adding a leave (single day or inclusive date range) for
// a doctor. Each day is written independently with no rollback; a partial
// failure is reported with the days that succeeded and the days that did
// not.
func (h *DoctorHandler) AddLeave(c *gin.Context) {
	doctorID := c.Param("id")

	var req AddLeaveRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var doctor models.Doctor
	if err := h.DB.First(&doctor, "id = ?", doctorID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	days, err := schedule.ExpandLeaveRange(req.Date, req.EndDate, req.Reason)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	report := LeaveWriteReport{}
	var writeErrs []error
	for _, day := range days {
		leave := models.DoctorLeave{
			DoctorID: doctorID,
			Date:     day.Date,
			Reason:   day.Reason,
			Notes:    req.Notes,
		}
		if err := h.DB.Create(&leave).Error; err != nil {
			report.Failed = append(report.Failed, day.Date)
			writeErrs = append(writeErrs, err)
			continue
		}
		report.Succeeded = append(report.Succeeded, day.Date)
	}

	if len(report.Failed) > 0 {
		partial := &schedule.PartialWriteError{
			Succeeded: report.Succeeded,
			Failed:    report.Failed,
			Errs:      writeErrs,
		}
		utils.ErrorWithData(c, http.StatusInternalServerError, partial.Error(), report)
		return
	}

	utils.Created(c, "Leave added", report)
}

// RemoveLeave handles deleting a single leave day by its own ID.
func (h *DoctorHandler) RemoveLeave(c *gin.Context) {
	leaveID := c.Param("leaveId")

	var leave models.DoctorLeave
	if err := h.DB.First(&leave, "id = ?", leaveID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Leave not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.DoctorLeave{}, "id = ?", leaveID).Error; err != nil {
		utils.InternalServerError(c, "Failed to remove leave: "+err.Error())
		return
	}

	utils.Success(c, "Leave removed", nil)
}
