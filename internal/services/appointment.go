package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"medibook-server/internal/models"
)

// AppointmentService owns the appointment state machine:
//
//	scheduled -> completed | cancelled | missed
//
// All three target states are sinks. Booking re-checks slot availability
// inside the insert transaction so two patients racing for the same slot
// produce exactly one winner.
type AppointmentService struct {
	DB       *gorm.DB
	Notifier Dispatcher
}

// NewAppointmentService creates a new AppointmentService.
func NewAppointmentService(db *gorm.DB, notifier Dispatcher) *AppointmentService {
	return &AppointmentService{DB: db, Notifier: notifier}
}

// BookParams carries the inputs for booking an appointment.
type BookParams struct {
	PatientID string
	DoctorID  string
	Date      time.Time
	Time      string // "HH:MM" slot start
	Symptoms  string
}

// Book creates a scheduled appointment after re-validating the slot inside
// the transaction. On success the doctor and patient are notified
// best-effort; a dispatcher failure never rolls back the booking.
func (s *AppointmentService) Book(p BookParams) (*models.Appointment, error) {
	if p.Symptoms == "" {
		return nil, Invalid("symptoms are required")
	}
	if p.Time == "" {
		return nil, Invalid("appointment time is required")
	}
	if _, err := parseClock(p.Time); err != nil {
		return nil, Invalid("appointment time must be in HH:MM format")
	}
	if models.DateOnly(p.Date).Before(models.DateOnly(time.Now())) {
		return nil, Invalid("appointment date must not be in the past")
	}

	var (
		appointment models.Appointment
		doctor      models.Doctor
		patient     models.Patient
	)

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND status = ?", p.DoctorID, models.DoctorActive).First(&doctor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("loading doctor: %w", err)
		}
		if err := tx.First(&patient, "id = ?", p.PatientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("loading patient: %w", err)
		}

		onLeave, err := doctorOnLeave(tx, p.DoctorID, p.Date)
		if err != nil {
			return err
		}
		if onLeave {
			return ErrSlotUnavailable
		}

		candidates, err := slotTimes(&doctor)
		if err != nil {
			return err
		}
		if !containsSlot(candidates, p.Time) {
			return Invalid("requested time is outside the doctor's working hours")
		}

		// The write-time re-check that closes the check-then-book race:
		// count conflicting scheduled rows under a row lock, then insert.
		var conflicts int64
		if err := withWriteLock(tx).Model(&models.Appointment{}).
			Where("doctor_id = ? AND appointment_date = ? AND appointment_time = ? AND status = ?",
				p.DoctorID, models.DateOnly(p.Date), p.Time, models.StatusScheduled).
			Count(&conflicts).Error; err != nil {
			return fmt.Errorf("checking slot conflicts: %w", err)
		}
		if conflicts > 0 {
			return ErrSlotUnavailable
		}

		appointment = models.Appointment{
			PatientID:       p.PatientID,
			DoctorID:        p.DoctorID,
			AppointmentDate: models.DateOnly(p.Date),
			AppointmentTime: p.Time,
			Status:          models.StatusScheduled,
			Symptoms:        p.Symptoms,
		}
		if err := tx.Create(&appointment).Error; err != nil {
			return fmt.Errorf("creating appointment: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyBooking(&appointment, &doctor, &patient)
	return &appointment, nil
}

// Cancel flips a scheduled appointment to cancelled. The update is scoped to
// the owning patient and to status=scheduled in one statement, so a
// non-owner, an unknown id and a concurrent completion all land in the same
// zero-rows outcome and the row never changes.
func (s *AppointmentService) Cancel(appointmentID, patientID string) error {
	res := s.DB.Model(&models.Appointment{}).
		Where("id = ? AND patient_id = ? AND status = ?", appointmentID, patientID, models.StatusScheduled).
		Update("status", models.StatusCancelled)
	if res.Error != nil {
		return fmt.Errorf("cancelling appointment: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SweepMissed marks every scheduled appointment whose slot has passed as
// missed. Idempotent: the update is conditioned on status=scheduled, so a
// second run (or a doctor completing the appointment out-of-band first)
// leaves nothing to do. Returns the number of rows transitioned.
func (s *AppointmentService) SweepMissed(now time.Time) (int64, error) {
	var candidates []models.Appointment
	err := s.DB.Select("id", "appointment_date", "appointment_time").
		Where("status = ?", models.StatusScheduled).
		Find(&candidates).Error
	if err != nil {
		return 0, fmt.Errorf("loading scheduled appointments: %w", err)
	}

	var past []string
	for i := range candidates {
		if candidates[i].StartsBefore(now) {
			past = append(past, candidates[i].ID)
		}
	}
	if len(past) == 0 {
		return 0, nil
	}

	res := s.DB.Model(&models.Appointment{}).
		Where("id IN ? AND status = ?", past, models.StatusScheduled).
		Update("status", models.StatusMissed)
	if res.Error != nil {
		return 0, fmt.Errorf("marking missed appointments: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// MedicalData carries the fields a doctor writes when completing an
// appointment.
type MedicalData struct {
	Diagnosis    string
	Prescription string
	Notes        string
}

// CompleteWithMedicalData writes diagnosis/prescription/notes onto the
// appointment, marks it completed and upserts the linked medical record,
// all in one transaction. Re-running on an already completed appointment
// amends the same medical record instead of duplicating it.
func (s *AppointmentService) CompleteWithMedicalData(appointmentID, doctorID string, data MedicalData) (*models.Appointment, error) {
	if data.Diagnosis == "" {
		return nil, Invalid("diagnosis is required")
	}

	var appointment models.Appointment
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND doctor_id = ?", appointmentID, doctorID).First(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("loading appointment: %w", err)
		}
		if appointment.Status == models.StatusCancelled || appointment.Status == models.StatusMissed {
			return Invalid("a " + string(appointment.Status) + " appointment cannot be completed")
		}

		appointment.Status = models.StatusCompleted
		appointment.Diagnosis = data.Diagnosis
		appointment.Prescription = data.Prescription
		appointment.Notes = data.Notes
		if err := tx.Save(&appointment).Error; err != nil {
			return fmt.Errorf("saving appointment: %w", err)
		}

		return upsertMedicalRecord(tx, &appointment, data)
	})
	if err != nil {
		return nil, err
	}
	return &appointment, nil
}

// upsertMedicalRecord looks up the record by appointment id and updates it,
// or inserts a fresh one on the first save.
func upsertMedicalRecord(tx *gorm.DB, appointment *models.Appointment, data MedicalData) error {
	description := medicalDescription(data)

	var record models.MedicalRecord
	err := tx.Where("appointment_id = ?", appointment.ID).First(&record).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record = models.MedicalRecord{
			PatientID:     appointment.PatientID,
			DoctorID:      &appointment.DoctorID,
			AppointmentID: &appointment.ID,
			Description:   description,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("creating medical record: %w", err)
		}
		return nil
	case err != nil:
		return fmt.Errorf("loading medical record: %w", err)
	default:
		record.Description = description
		if err := tx.Save(&record).Error; err != nil {
			return fmt.Errorf("updating medical record: %w", err)
		}
		return nil
	}
}

func medicalDescription(data MedicalData) string {
	description := "Diagnosis: " + data.Diagnosis
	if data.Prescription != "" {
		description += "\nPrescription: " + data.Prescription
	}
	if data.Notes != "" {
		description += "\nNotes: " + data.Notes
	}
	return description
}

// Rate records a patient's rating for a completed appointment and recomputes
// the doctor's aggregate in the same transaction. An appointment can be
// rated exactly once.
func (s *AppointmentService) Rate(appointmentID, patientID string, rating int, review string) error {
	if rating < 1 || rating > 5 {
		return Invalid("rating must be between 1 and 5")
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		var appointment models.Appointment
		if err := tx.Where("id = ? AND patient_id = ?", appointmentID, patientID).First(&appointment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("loading appointment: %w", err)
		}
		if appointment.Status != models.StatusCompleted {
			return Invalid("only completed appointments can be rated")
		}
		if appointment.Rating != nil {
			return Invalid("this appointment has already been rated")
		}

		appointment.Rating = &rating
		appointment.Review = review
		if err := tx.Save(&appointment).Error; err != nil {
			return fmt.Errorf("saving rating: %w", err)
		}

		return RecomputeDoctorRating(tx, appointment.DoctorID)
	})
}

// notifyBooking emits the two booking notifications. Best-effort: failures
// are logged and swallowed, the booking already committed.
func (s *AppointmentService) notifyBooking(appointment *models.Appointment, doctor *models.Doctor, patient *models.Patient) {
	if s.Notifier == nil {
		return
	}
	when := appointment.AppointmentDate.Format("2006-01-02") + " at " + appointment.AppointmentTime

	err := s.Notifier.Notify(doctor.UserID, models.RoleDoctor,
		"New appointment booked",
		patient.FullName()+" booked an appointment on "+when+".",
		"appointment", appointment.ID)
	if err != nil {
		log.Printf("booking notification to doctor %s failed: %v", doctor.ID, err)
	}

	err = s.Notifier.Notify(patient.UserID, models.RolePatient,
		"Appointment confirmed",
		"Your appointment with "+doctor.FullName()+" on "+when+" is confirmed.",
		"appointment", appointment.ID)
	if err != nil {
		log.Printf("booking notification to patient %s failed: %v", patient.ID, err)
	}
}

func containsSlot(slots []string, t string) bool {
	for _, s := range slots {
		if s == t {
			return true
		}
	}
	return false
}

// withWriteLock adds FOR UPDATE on dialects that support it. SQLite (used by
// tests) rejects the clause; its write transactions are serialized anyway.
func withWriteLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
