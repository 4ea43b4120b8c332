package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"medibook-server/internal/models"
)

// newTestDB opens a private in-memory database per test. The named
// shared-cache DSN keeps the database alive across the pool's connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()
	user := models.User{
		Email: fmt.Sprintf("%s-%s@example.com", role, uuid.New().String()[:8]),
		Role:  role,
	}
	if err := user.SetPassword("password123"); err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return &user
}

// seedDoctor creates an active doctor working 09:00-12:00 in 30 minute slots
// with a 10:00-10:30 break.
func seedDoctor(t *testing.T, db *gorm.DB) *models.Doctor {
	t.Helper()
	user := seedUser(t, db, models.RoleDoctor)
	doctor := models.Doctor{
		UserID:      user.ID,
		FirstName:   "Asha",
		LastName:    "Verma",
		WorkStart:   "09:00",
		WorkEnd:     "12:00",
		BreakStart:  "10:00",
		BreakEnd:    "10:30",
		SlotMinutes: 30,
		Status:      models.DoctorActive,
	}
	if err := db.Create(&doctor).Error; err != nil {
		t.Fatalf("seeding doctor: %v", err)
	}
	return &doctor
}

func seedPatient(t *testing.T, db *gorm.DB) *models.Patient {
	t.Helper()
	user := seedUser(t, db, models.RolePatient)
	patient := models.Patient{
		UserID:    user.ID,
		FirstName: "Rohan",
		LastName:  "Mehta",
	}
	if err := db.Create(&patient).Error; err != nil {
		t.Fatalf("seeding patient: %v", err)
	}
	return &patient
}

// seedAppointment inserts a row directly, bypassing booking validation, so
// tests can stage past or terminal-state appointments.
func seedAppointment(t *testing.T, db *gorm.DB, doctor *models.Doctor, patient *models.Patient,
	date time.Time, slot string, status models.AppointmentStatus) *models.Appointment {
	t.Helper()
	appointment := models.Appointment{
		PatientID:       patient.ID,
		DoctorID:        doctor.ID,
		AppointmentDate: models.DateOnly(date),
		AppointmentTime: slot,
		Status:          status,
		Symptoms:        "test symptoms",
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("seeding appointment: %v", err)
	}
	return &appointment
}

func tomorrow() time.Time {
	return time.Now().AddDate(0, 0, 1)
}

func yesterday() time.Time {
	return time.Now().AddDate(0, 0, -1)
}
