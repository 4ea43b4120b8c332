package handlers

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/services"
	"medibook-server/internal/utils"
)

// serviceError maps the service-layer error taxonomy onto the response
// envelope. Slot conflicts get their own status so clients can prompt the
// user to pick another time.
func serviceError(c *gin.Context, err error) {
	switch {
	case services.IsValidation(err):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrSlotUnavailable):
		utils.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, "Resource not found")
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.InternalServerError(c, "Something went wrong")
	}
}

// currentPatient resolves the authenticated user's patient profile.
func currentPatient(c *gin.Context, db *gorm.DB) (*models.Patient, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var patient models.Patient
	if err := db.Where("user_id = ?", userID).First(&patient).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Forbidden(c, "No patient profile for this account")
		} else {
			serviceError(c, err)
		}
		return nil, false
	}
	return &patient, true
}

// currentDoctor resolves the authenticated user's doctor profile.
func currentDoctor(c *gin.Context, db *gorm.DB) (*models.Doctor, bool) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		utils.Unauthorized(c, "User not authenticated")
		return nil, false
	}
	var doctor models.Doctor
	if err := db.Where("user_id = ?", userID).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Forbidden(c, "No doctor profile for this account")
		} else {
			serviceError(c, err)
		}
		return nil, false
	}
	return &doctor, true
}
