package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"clinic-scheduler-server/internal/models"
	"clinic-scheduler-server/internal/utils"
)

// PatientHandler handles patient directory requests.
type PatientHandler struct {
	DB *gorm.DB
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db}
}

// PatientRequest represents the request body for creating or updating a patient.
type PatientRequest struct {
	Name        string `json:"name" binding:"required"`
	Phone       string `json:"phone"`
	Email       string `json:"email" binding:"omitempty,email"`
	DateOfBirth string `json:"dob" binding:"omitempty,datetime=2006-01-02"`
	Status      string `json:"status" binding:"omitempty,oneof=Active Inactive Pending"`
}

// PatientResponse mirrors what the clinic frontend expects for a patient row.
type PatientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	DOB       string    `json:"dob"`
	Status    string    `json:"status"`
	LastVisit string    `json:"lastVisit"`
	CreatedAt time.Time `json:"createdAt"`
}

func toPatientResponse(p models.Patient) PatientResponse {
	lastVisit := "N/A"
	if p.LastVisit != nil {
		lastVisit = p.LastVisit.Format("Jan 2, 2006")
	}
	return PatientResponse{
		ID:        p.ID,
		Name:      p.Name,
		Phone:     p.Phone,
		Email:     p.Email,
		DOB:       p.DateOfBirth,
		Status:    string(p.Status),
		LastVisit: lastVisit,
		CreatedAt: p.CreatedAt,
	}
}

// GetPatients handles fetching all patients, newest first.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Order("created_at desc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	responses := make([]PatientResponse, len(patients))
	for i, p := range patients {
		responses[i] = toPatientResponse(p)
	}
	utils.Success(c, "Patients fetched successfully", responses)
}

// CreatePatient handles registering a new patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	status := models.PatientActive
	if req.Status != "" {
		status = models.PatientStatus(req.Status)
	}

	patient := models.Patient{
		Name:        req.Name,
		Phone:       req.Phone,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Status:      status,
	}
	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	utils.Created(c, "Patient created successfully", toPatientResponse(patient))
}

// UpdatePatient handles updating a patient's details.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")

	var req PatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	patient.Name = req.Name
	patient.Phone = req.Phone
	patient.Email = req.Email
	patient.DateOfBirth = req.DateOfBirth
	if req.Status != "" {
		patient.Status = models.PatientStatus(req.Status)
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient updated successfully", toPatientResponse(patient))
}

// DeletePatient handles removing a patient from the directory (admin).
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.Patient{}, "id = ?", patientID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}
