package services

import (
	"errors"
	"testing"
	"time"

	"medibook-server/internal/models"
)

// The seeded doctor works 09:00-12:00 with a 10:00-10:30 break, so the full
// candidate set is these five slots.
var allSlots = []string{"09:00", "09:30", "10:30", "11:00", "11:30"}

func TestSlots_FullDay(t *testing.T) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db)
	svc := NewAvailabilityService(db)

	result, err := svc.Slots(doctor.ID, tomorrow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OnLeave {
		t.Fatal("doctor should not be on leave")
	}
	if len(result.Slots) != len(allSlots) {
		t.Fatalf("expected %d slots, got %d: %v", len(allSlots), len(result.Slots), result.Slots)
	}
	for i, slot := range allSlots {
		if result.Slots[i] != slot {
			t.Errorf("slot %d: expected %s, got %s", i, slot, result.Slots[i])
		}
	}
}

func TestSlots_PastDateRejected(t *testing.T) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db)
	svc := NewAvailabilityService(db)

	_, err := svc.Slots(doctor.ID, yesterday())
	if !IsValidation(err) {
		t.Fatalf("expected validation error for past date, got %v", err)
	}
}

func TestSlots_UnknownOrInactiveDoctor(t *testing.T) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db)
	svc := NewAvailabilityService(db)

	if _, err := svc.Slots("no-such-doctor", tomorrow()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown doctor, got %v", err)
	}

	if err := db.Model(doctor).Update("status", models.DoctorInactive).Error; err != nil {
		t.Fatalf("deactivating doctor: %v", err)
	}
	if _, err := svc.Slots(doctor.ID, tomorrow()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive doctor, got %v", err)
	}
}

func TestSlots_DoctorOnLeave(t *testing.T) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db)
	svc := NewAvailabilityService(db)

	leave := models.DoctorLeave{
		DoctorID: doctor.ID,
		FromDate: models.DateOnly(tomorrow()),
		ToDate:   models.DateOnly(tomorrow().AddDate(0, 0, 2)),
		Reason:   "conference",
	}
	if err := db.Create(&leave).Error; err != nil {
		t.Fatalf("seeding leave: %v", err)
	}

	result, err := svc.Slots(doctor.ID, tomorrow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.OnLeave {
		t.Fatal("expected OnLeave=true for a covered date")
	}
	if len(result.Slots) != 0 {
		t.Fatalf("on-leave result must carry no slots, got %v", result.Slots)
	}

	// A day after the leave ends is open again.
	after, err := svc.Slots(doctor.ID, tomorrow().AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if after.OnLeave {
		t.Fatal("leave must not cover dates outside its range")
	}
}

func TestSlots_ScheduledBlocksAndCancelledFrees(t *testing.T) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db)
	patient := seedPatient(t, db)
	svc := NewAvailabilityService(db)

	appointment := seedAppointment(t, db, doctor, patient, tomorrow(), "09:30", models.StatusScheduled)

	result, err := svc.Slots(doctor.ID, tomorrow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, slot := range result.Slots {
		if slot == "09:30" {
			t.Fatal("scheduled slot 09:30 must not be offered")
		}
	}
	if len(result.Slots) != len(allSlots)-1 {
		t.Fatalf("expected %d slots, got %d", len(allSlots)-1, len(result.Slots))
	}

	// Cancelling frees the slot for rebooking.
	if err := db.Model(appointment).Update("status", models.StatusCancelled).Error; err != nil {
		t.Fatalf("cancelling appointment: %v", err)
	}
	result, err = svc.Slots(doctor.ID, tomorrow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, slot := range result.Slots {
		if slot == "09:30" {
			found = true
		}
	}
	if !found {
		t.Fatal("cancelled slot 09:30 must reappear in the list")
	}
}

func TestSlots_TerminalStatusesDoNotBlock(t *testing.T) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db)
	patient := seedPatient(t, db)
	svc := NewAvailabilityService(db)

	for slot, status := range map[string]models.AppointmentStatus{
		"09:00": models.StatusCompleted,
		"10:30": models.StatusMissed,
		"11:00": models.StatusCancelled,
	} {
		seedAppointment(t, db, doctor, patient, tomorrow(), slot, status)
	}

	result, err := svc.Slots(doctor.ID, tomorrow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Slots) != len(allSlots) {
		t.Fatalf("terminal statuses must not block slots; expected %d, got %v", len(allSlots), result.Slots)
	}
}

func TestSlots_EmptyDayIsNotOnLeave(t *testing.T) {
	db := newTestDB(t)
	doctor := seedDoctor(t, db)
	patient := seedPatient(t, db)
	svc := NewAvailabilityService(db)

	for _, slot := range allSlots {
		seedAppointment(t, db, doctor, patient, tomorrow(), slot, models.StatusScheduled)
	}

	result, err := svc.Slots(doctor.ID, tomorrow())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.OnLeave {
		t.Fatal("a fully booked day is not a leave day")
	}
	if len(result.Slots) != 0 {
		t.Fatalf("expected empty slot list, got %v", result.Slots)
	}
}

func TestSlotTimes_NoBreakWindow(t *testing.T) {
	doctor := &models.Doctor{WorkStart: "08:00", WorkEnd: "10:00", SlotMinutes: 60}
	slots, err := slotTimes(doctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := []string{"08:00", "09:00"}
	if len(slots) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, slots)
	}
	for i := range expected {
		if slots[i] != expected[i] {
			t.Errorf("slot %d: expected %s, got %s", i, expected[i], slots[i])
		}
	}
}

func TestSlotTimes_DefaultGranularity(t *testing.T) {
	doctor := &models.Doctor{WorkStart: "09:00", WorkEnd: "10:00"}
	slots, err := slotTimes(doctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 2 || slots[0] != "09:00" || slots[1] != "09:30" {
		t.Fatalf("expected [09:00 09:30] with the 30 minute default, got %v", slots)
	}
}

func TestSlotTimes_Ascending(t *testing.T) {
	doctor := &models.Doctor{WorkStart: "09:00", WorkEnd: "17:00", SlotMinutes: 20, BreakStart: "13:00", BreakEnd: "14:00"}
	slots, err := slotTimes(doctor)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(slots); i++ {
		a, _ := time.Parse("15:04", slots[i-1])
		b, _ := time.Parse("15:04", slots[i])
		if !a.Before(b) {
			t.Fatalf("slots not ascending: %s >= %s", slots[i-1], slots[i])
		}
	}
	for _, slot := range slots {
		if slot >= "13:00" && slot < "14:00" {
			t.Errorf("slot %s falls inside the break window", slot)
		}
	}
}
