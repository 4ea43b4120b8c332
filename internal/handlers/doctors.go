package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/models"
	"medibook-server/internal/services"
	"medibook-server/internal/utils"
)

// DoctorHandler serves the doctor directory, the availability contract and
// doctor self-service (leave management).
type DoctorHandler struct {
	DB           *gorm.DB
	Availability *services.AvailabilityService
}

// NewDoctorHandler creates a new DoctorHandler.
func NewDoctorHandler(db *gorm.DB, availability *services.AvailabilityService) *DoctorHandler {
	return &DoctorHandler{DB: db, Availability: availability}
}

// GetDoctors lists active doctors, optionally filtered by city and
// specialization. Accessible to every authenticated user for booking.
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	query := h.DB.Preload("Specialization").Preload("City").
		Where("status = ?", models.DoctorActive).
		Order("last_name asc")

	if cityID := c.Query("cityId"); cityID != "" {
		query = query.Where("city_id = ?", cityID)
	}
	if specializationID := c.Query("specializationId"); specializationID != "" {
		query = query.Where("specialization_id = ?", specializationID)
	}

	var doctors []models.Doctor
	if err := query.Find(&doctors).Error; err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Doctors fetched successfully", doctors)
}

// GetDoctorByID fetches one active doctor's public profile.
func (h *DoctorHandler) GetDoctorByID(c *gin.Context) {
	var doctor models.Doctor
	err := h.DB.Preload("Specialization").Preload("City").
		Where("id = ? AND status = ?", c.Param("id"), models.DoctorActive).
		First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Doctor not found")
		} else {
			serviceError(c, err)
		}
		return
	}

	utils.Success(c, "Doctor fetched successfully", doctor)
}

// GetAvailability returns the bookable slots for a doctor on a date, or an
// explicit on-leave result. Clients must render the two outcomes
// differently: "doctor not available" versus "no slots left".
func (h *DoctorHandler) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		utils.BadRequest(c, "date query parameter is required")
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		utils.BadRequest(c, "Date must be in YYYY-MM-DD format")
		return
	}

	availability, err := h.Availability.Slots(c.Param("id"), date)
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Availability fetched successfully", availability)
}

// AddLeaveRequest represents the request body for registering a leave range.
type AddLeaveRequest struct {
	FromDate string `json:"fromDate" binding:"required"`
	ToDate   string `json:"toDate" binding:"required"`
	Reason   string `json:"reason"`
}

// AddLeave registers a leave range for the authenticated doctor.
func (h *DoctorHandler) AddLeave(c *gin.Context) {
	var req AddLeaveRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	from, err := time.ParseInLocation("2006-01-02", req.FromDate, time.Local)
	if err != nil {
		utils.BadRequest(c, "fromDate must be in YYYY-MM-DD format")
		return
	}
	to, err := time.ParseInLocation("2006-01-02", req.ToDate, time.Local)
	if err != nil {
		utils.BadRequest(c, "toDate must be in YYYY-MM-DD format")
		return
	}
	if to.Before(from) {
		utils.BadRequest(c, "toDate must not be before fromDate")
		return
	}

	leave := models.DoctorLeave{
		DoctorID: doctor.ID,
		FromDate: models.DateOnly(from),
		ToDate:   models.DateOnly(to),
		Reason:   req.Reason,
	}
	if err := h.DB.Create(&leave).Error; err != nil {
		serviceError(c, err)
		return
	}

	utils.Created(c, "Leave registered successfully", leave)
}

// GetLeaves lists the authenticated doctor's leave records.
func (h *DoctorHandler) GetLeaves(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	var leaves []models.DoctorLeave
	if err := h.DB.Where("doctor_id = ?", doctor.ID).Order("from_date asc").Find(&leaves).Error; err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Leaves fetched successfully", leaves)
}

// DeleteLeave removes one of the authenticated doctor's leave records.
func (h *DoctorHandler) DeleteLeave(c *gin.Context) {
	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	res := h.DB.Delete(&models.DoctorLeave{}, "id = ? AND doctor_id = ?", c.Param("leaveId"), doctor.ID)
	if res.Error != nil {
		serviceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Leave not found")
		return
	}

	utils.Success(c, "Leave removed successfully", nil)
}
