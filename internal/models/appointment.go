package models

import (
	"time"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusMissed    AppointmentStatus = "missed"
)

// Terminal reports whether no further status transition may leave s.
func (s AppointmentStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusMissed
}

// Appointment represents a booked consultation slot. AppointmentDate carries
// the calendar day (midnight, local) and AppointmentTime the "HH:MM" slot
// start. Only status=scheduled locks the slot; completed, cancelled and
// missed appointments free it for rebooking.
type Appointment struct {
	BaseModel
	PatientID       string            `gorm:"size:36;index" json:"patientId"`
	DoctorID        string            `gorm:"size:36;index:idx_doctor_slot" json:"doctorId"`
	AppointmentDate time.Time         `gorm:"type:date;index:idx_doctor_slot" json:"appointmentDate"`
	AppointmentTime string            `gorm:"size:5;index:idx_doctor_slot" json:"appointmentTime"`
	Status          AppointmentStatus `gorm:"size:20;default:'scheduled';index" json:"status"`
	Symptoms        string            `gorm:"type:text" json:"symptoms"`
	Diagnosis       string            `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription    string            `gorm:"type:text" json:"prescription,omitempty"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	Rating          *int              `json:"rating,omitempty"`
	Review          string            `gorm:"type:text" json:"review,omitempty"`

	// Relations
	Patient Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  Doctor  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

// StartsBefore reports whether the appointment's date+time slot is strictly
// before the given instant. Used by the missed-appointment sweep.
func (a *Appointment) StartsBefore(t time.Time) bool {
	slot, err := time.ParseInLocation("15:04", a.AppointmentTime, t.Location())
	if err != nil {
		return false
	}
	start := time.Date(
		a.AppointmentDate.Year(), a.AppointmentDate.Month(), a.AppointmentDate.Day(),
		slot.Hour(), slot.Minute(), 0, 0, t.Location(),
	)
	return start.Before(t)
}

// DateOnly truncates t to midnight in its own location, the canonical form
// for AppointmentDate comparisons.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
