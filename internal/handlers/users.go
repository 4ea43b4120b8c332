package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/models"
	"medibook-server/internal/utils"
)

// UserHandler handles admin operations: account management, the lookup
// tables and doctor activation.
type UserHandler struct {
	DB *gorm.DB
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{DB: db}
}

// CreateDoctorRequest represents the request body for creating a doctor
// account with its profile.
type CreateDoctorRequest struct {
	FirstName        string  `json:"firstName" binding:"required"`
	LastName         string  `json:"lastName" binding:"required"`
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=8"`
	SpecializationID string  `json:"specializationId" binding:"required,uuid"`
	CityID           string  `json:"cityId" binding:"required,uuid"`
	ConsultationFee  float64 `json:"consultationFee"`
	WorkStart        string  `json:"workStart"`
	WorkEnd          string  `json:"workEnd"`
	BreakStart       string  `json:"breakStart"`
	BreakEnd         string  `json:"breakEnd"`
	SlotMinutes      int     `json:"slotMinutes"`
}

// CreateDoctor creates a doctor account together with its profile row.
func (h *UserHandler) CreateDoctor(c *gin.Context) {
	var req CreateDoctorRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var existingUser models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existingUser).Error; err == nil {
		utils.BadRequest(c, "User with this email already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		serviceError(c, err)
		return
	}

	user := models.User{Email: req.Email, Role: models.RoleDoctor}
	if err := user.SetPassword(req.Password); err != nil {
		utils.InternalServerError(c, "Failed to hash password")
		return
	}

	doctor := models.Doctor{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		SpecializationID: req.SpecializationID,
		CityID:           req.CityID,
		ConsultationFee:  req.ConsultationFee,
		Status:           models.DoctorActive,
	}
	if req.WorkStart != "" {
		doctor.WorkStart = req.WorkStart
	}
	if req.WorkEnd != "" {
		doctor.WorkEnd = req.WorkEnd
	}
	doctor.BreakStart = req.BreakStart
	doctor.BreakEnd = req.BreakEnd
	if req.SlotMinutes > 0 {
		doctor.SlotMinutes = req.SlotMinutes
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		doctor.UserID = user.ID
		return tx.Create(&doctor).Error
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.Created(c, "Doctor created successfully", doctor)
}

// GetUsers lists all accounts (admin).
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.DB.Find(&users).Error; err != nil {
		serviceError(c, err)
		return
	}

	sanitizedUsers := make([]models.UserSanitized, len(users))
	for i, u := range users {
		sanitizedUsers[i] = u.Sanitize()
	}

	utils.Success(c, "Users fetched successfully", sanitizedUsers)
}

// GetUserByID fetches a single account by ID (admin).
func (h *UserHandler) GetUserByID(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			serviceError(c, err)
		}
		return
	}
	utils.Success(c, "User fetched successfully", user.Sanitize())
}

// DeleteUser removes an account by ID (admin).
func (h *UserHandler) DeleteUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "User not found")
		} else {
			serviceError(c, err)
		}
		return
	}

	if err := h.DB.Delete(&models.User{}, "id = ?", user.ID).Error; err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "User deleted successfully", nil)
}

// SetDoctorStatusRequest toggles a doctor between active and inactive.
type SetDoctorStatusRequest struct {
	Status models.DoctorStatus `json:"status" binding:"required,oneof=active inactive"`
}

// SetDoctorStatus activates or deactivates a doctor (admin). Inactive
// doctors disappear from the directory and take no bookings.
func (h *UserHandler) SetDoctorStatus(c *gin.Context) {
	var req SetDoctorStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	res := h.DB.Model(&models.Doctor{}).Where("id = ?", c.Param("id")).Update("status", req.Status)
	if res.Error != nil {
		serviceError(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		utils.NotFound(c, "Doctor not found")
		return
	}

	utils.Success(c, "Doctor status updated successfully", nil)
}

// LookupRequest represents the request body for creating a lookup entry.
type LookupRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateCity adds a city to the lookup table (admin).
func (h *UserHandler) CreateCity(c *gin.Context) {
	var req LookupRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	city := models.City{Name: req.Name}
	if err := h.DB.Create(&city).Error; err != nil {
		serviceError(c, err)
		return
	}
	utils.Created(c, "City created successfully", city)
}

// GetCities lists all cities.
func (h *UserHandler) GetCities(c *gin.Context) {
	var cities []models.City
	if err := h.DB.Order("name asc").Find(&cities).Error; err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "Cities fetched successfully", cities)
}

// CreateSpecialization adds a specialization to the lookup table (admin).
func (h *UserHandler) CreateSpecialization(c *gin.Context) {
	var req LookupRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	specialization := models.Specialization{Name: req.Name}
	if err := h.DB.Create(&specialization).Error; err != nil {
		serviceError(c, err)
		return
	}
	utils.Created(c, "Specialization created successfully", specialization)
}

// GetSpecializations lists all specializations.
func (h *UserHandler) GetSpecializations(c *gin.Context) {
	var specializations []models.Specialization
	if err := h.DB.Order("name asc").Find(&specializations).Error; err != nil {
		serviceError(c, err)
		return
	}
	utils.Success(c, "Specializations fetched successfully", specializations)
}
