package services

import (
	"errors"
	"math"
	"testing"

	"medibook-server/internal/models"
)

func TestRate_AggregatesMeanAndCount(t *testing.T) {
	svc, doctor, patient, _ := newBookingFixture(t)

	ratings := []int{5, 3, 4}
	slots := []string{"09:00", "09:30", "10:30"}
	for i, r := range ratings {
		appointment := seedAppointment(t, svc.DB, doctor, patient, tomorrow(), slots[i], models.StatusCompleted)
		if err := svc.Rate(appointment.ID, patient.ID, r, "fine"); err != nil {
			t.Fatalf("rating appointment %d: %v", i, err)
		}
	}

	var stored models.Doctor
	if err := svc.DB.First(&stored, "id = ?", doctor.ID).Error; err != nil {
		t.Fatalf("loading doctor: %v", err)
	}
	if stored.TotalRatings != len(ratings) {
		t.Fatalf("expected total_ratings=%d, got %d", len(ratings), stored.TotalRatings)
	}
	want := (5.0 + 3.0 + 4.0) / 3.0
	if math.Abs(stored.Rating-want) > 0.01 {
		t.Fatalf("expected rating %.4f, got %.4f", want, stored.Rating)
	}
}

func TestRate_OnlyCompletedAppointments(t *testing.T) {
	svc, doctor, patient, _ := newBookingFixture(t)

	for _, status := range []models.AppointmentStatus{models.StatusScheduled, models.StatusCancelled, models.StatusMissed} {
		appointment := seedAppointment(t, svc.DB, doctor, patient, tomorrow(), "09:00", status)
		if err := svc.Rate(appointment.ID, patient.ID, 5, ""); !IsValidation(err) {
			t.Fatalf("rating a %s appointment must fail validation, got %v", status, err)
		}
		svc.DB.Delete(&models.Appointment{}, "id = ?", appointment.ID)
	}
}

func TestRate_OnlyOnce(t *testing.T) {
	svc, doctor, patient, _ := newBookingFixture(t)
	appointment := seedAppointment(t, svc.DB, doctor, patient, tomorrow(), "09:00", models.StatusCompleted)

	if err := svc.Rate(appointment.ID, patient.ID, 4, "good"); err != nil {
		t.Fatalf("first rating failed: %v", err)
	}
	if err := svc.Rate(appointment.ID, patient.ID, 1, "changed my mind"); !IsValidation(err) {
		t.Fatalf("second rating must fail validation, got %v", err)
	}

	// The aggregate still reflects the single accepted rating.
	var stored models.Doctor
	if err := svc.DB.First(&stored, "id = ?", doctor.ID).Error; err != nil {
		t.Fatalf("loading doctor: %v", err)
	}
	if stored.TotalRatings != 1 || math.Abs(stored.Rating-4.0) > 0.01 {
		t.Fatalf("aggregate corrupted by rejected re-rating: rating=%.2f count=%d", stored.Rating, stored.TotalRatings)
	}
}

func TestRate_RangeValidated(t *testing.T) {
	svc, doctor, patient, _ := newBookingFixture(t)
	appointment := seedAppointment(t, svc.DB, doctor, patient, tomorrow(), "09:00", models.StatusCompleted)

	for _, r := range []int{0, 6, -1} {
		if err := svc.Rate(appointment.ID, patient.ID, r, ""); !IsValidation(err) {
			t.Fatalf("rating %d must fail validation, got %v", r, err)
		}
	}
}

func TestRate_NotOwner(t *testing.T) {
	svc, doctor, patient, _ := newBookingFixture(t)
	other := seedPatient(t, svc.DB)
	appointment := seedAppointment(t, svc.DB, doctor, patient, tomorrow(), "09:00", models.StatusCompleted)

	if err := svc.Rate(appointment.ID, other.ID, 5, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for a non-owner, got %v", err)
	}
}

func TestRecompute_ScopedToDoctor(t *testing.T) {
	svc, doctor, patient, _ := newBookingFixture(t)
	other := seedDoctor(t, svc.DB)

	mine := seedAppointment(t, svc.DB, doctor, patient, tomorrow(), "09:00", models.StatusCompleted)
	theirs := seedAppointment(t, svc.DB, other, patient, tomorrow(), "09:00", models.StatusCompleted)

	if err := svc.Rate(mine.ID, patient.ID, 2, ""); err != nil {
		t.Fatalf("rating failed: %v", err)
	}
	if err := svc.Rate(theirs.ID, patient.ID, 5, ""); err != nil {
		t.Fatalf("rating failed: %v", err)
	}

	var first, second models.Doctor
	svc.DB.First(&first, "id = ?", doctor.ID)
	svc.DB.First(&second, "id = ?", other.ID)
	if first.TotalRatings != 1 || math.Abs(first.Rating-2.0) > 0.01 {
		t.Fatalf("first doctor aggregate wrong: rating=%.2f count=%d", first.Rating, first.TotalRatings)
	}
	if second.TotalRatings != 1 || math.Abs(second.Rating-5.0) > 0.01 {
		t.Fatalf("second doctor aggregate wrong: rating=%.2f count=%d", second.Rating, second.TotalRatings)
	}
}
