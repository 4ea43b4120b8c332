package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// MedicalRecordHandler serves the read side of medical records. Writes
// happen through the appointment completion flow.
type MedicalRecordHandler struct {
	DB *gorm.DB
}

// NewMedicalRecordHandler creates a new MedicalRecordHandler.
func NewMedicalRecordHandler(db *gorm.DB) *MedicalRecordHandler {
	return &MedicalRecordHandler{DB: db}
}

// GetMedicalRecords lists the caller's records: patients see their own,
// doctors see the records they authored.
func (h *MedicalRecordHandler) GetMedicalRecords(c *gin.Context) {
	userRole, _ := middleware.GetUserRoleFromContext(c)

	query := h.DB.Order("created_at desc")
	switch userRole {
	case models.RolePatient:
		patient, ok := currentPatient(c, h.DB)
		if !ok {
			return
		}
		query = query.Where("patient_id = ?", patient.ID)
	case models.RoleDoctor:
		doctor, ok := currentDoctor(c, h.DB)
		if !ok {
			return
		}
		query = query.Where("doctor_id = ?", doctor.ID)
	case models.RoleAdmin:
		// Admins see everything.
	default:
		utils.Forbidden(c, "User role not permitted to view medical records")
		return
	}

	var records []models.MedicalRecord
	if err := query.Find(&records).Error; err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Medical records fetched successfully", records)
}

// GetMedicalRecordByID fetches one record, scoped to the owning patient or
// authoring doctor. A record owned by someone else reads as not found.
func (h *MedicalRecordHandler) GetMedicalRecordByID(c *gin.Context) {
	var record models.MedicalRecord
	if err := h.DB.Preload("Patient").First(&record, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Medical record not found")
		} else {
			serviceError(c, err)
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	allowed := userRole == models.RoleAdmin || record.Patient.UserID == userID
	if !allowed && record.DoctorID != nil {
		var doctor models.Doctor
		if err := h.DB.First(&doctor, "id = ?", *record.DoctorID).Error; err == nil {
			allowed = doctor.UserID == userID
		}
	}
	if !allowed {
		utils.NotFound(c, "Medical record not found")
		return
	}

	utils.Success(c, "Medical record fetched successfully", record)
}
