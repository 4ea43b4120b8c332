package handlers

import (
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"medibook-server/internal/middleware"
	"medibook-server/internal/models"
	"medibook-server/internal/services"
	"medibook-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	DB           *gorm.DB
	Appointments *services.AppointmentService
	Availability *services.AvailabilityService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, appointments *services.AppointmentService, availability *services.AvailabilityService) *AppointmentHandler {
	return &AppointmentHandler{DB: db, Appointments: appointments, Availability: availability}
}

// CreateAppointmentRequest represents the request body for booking.
type CreateAppointmentRequest struct {
	DoctorID string `json:"doctorId" binding:"required,uuid"`
	Date     string `json:"date" binding:"required"` // ISO date, e.g. 2026-09-01
	Time     string `json:"time" binding:"required"` // slot start, e.g. 10:00
	Symptoms string `json:"symptoms" binding:"required"`
}

// CreateAppointment books a slot for the authenticated patient.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	date, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		utils.BadRequest(c, "Date must be in YYYY-MM-DD format")
		return
	}

	appointment, err := h.Appointments.Book(services.BookParams{
		PatientID: patient.ID,
		DoctorID:  req.DoctorID,
		Date:      date,
		Time:      req.Time,
		Symptoms:  req.Symptoms,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.Created(c, "Appointment booked successfully", appointment)
}

// GetAppointmentsForUser lists the caller's appointments. The missed-
// appointment sweep runs first so dashboards never show stale scheduled
// entries for slots that have passed.
func (h *AppointmentHandler) GetAppointmentsForUser(c *gin.Context) {
	if _, err := h.Appointments.SweepMissed(time.Now()); err != nil {
		log.Printf("missed-appointment sweep failed: %v", err)
	}

	userRole, _ := middleware.GetUserRoleFromContext(c)

	var appointments []models.Appointment
	query := h.DB.Preload("Patient").Preload("Doctor").
		Order("appointment_date asc, appointment_time asc")

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
		utils.Forbidden(c, "User role not permitted to view appointments")
		return
	}

	if err := query.Find(&appointments).Error; err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Appointments fetched successfully", appointments)
}

// GetAppointmentByID fetches a single appointment, scoped to the involved
// patient or doctor (admins see all). A row that exists but belongs to
// someone else reads as not found.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.Preload("Patient").Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Appointment not found")
		} else {
			serviceError(c, err)
		}
		return
	}

	userID, _ := middleware.GetUserIDFromContext(c)
	userRole, _ := middleware.GetUserRoleFromContext(c)

	involved := appointment.Patient.UserID == userID || appointment.Doctor.UserID == userID
	if userRole != models.RoleAdmin && !involved {
		utils.NotFound(c, "Appointment not found")
		return
	}

	utils.Success(c, "Appointment fetched successfully", appointment)
}

// CancelAppointment cancels the patient's own scheduled appointment.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	if err := h.Appointments.Cancel(c.Param("id"), patient.ID); err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Appointment cancelled successfully", nil)
}

// RateAppointmentRequest represents the request body for rating.
type RateAppointmentRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review"`
}

// RateAppointment records the patient's rating for a completed appointment.
func (h *AppointmentHandler) RateAppointment(c *gin.Context) {
	var req RateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient, ok := currentPatient(c, h.DB)
	if !ok {
		return
	}

	if err := h.Appointments.Rate(c.Param("id"), patient.ID, req.Rating, req.Review); err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Rating saved successfully", nil)
}

// CompleteAppointmentRequest represents the medical data a doctor writes
// when completing an appointment.
type CompleteAppointmentRequest struct {
	Diagnosis    string `json:"diagnosis" binding:"required"`
	Prescription string `json:"prescription"`
	Notes        string `json:"notes"`
}

// CompleteAppointment marks the doctor's appointment completed and upserts
// the medical record in the same transaction.
func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	var req CompleteAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	doctor, ok := currentDoctor(c, h.DB)
	if !ok {
		return
	}

	appointment, err := h.Appointments.CompleteWithMedicalData(c.Param("id"), doctor.ID, services.MedicalData{
		Diagnosis:    req.Diagnosis,
		Prescription: req.Prescription,
		Notes:        req.Notes,
	})
	if err != nil {
		serviceError(c, err)
		return
	}

	utils.Success(c, "Appointment completed successfully", appointment)
}
