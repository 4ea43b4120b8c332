package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"medibook-server/internal/models"
)

// AvailabilityService computes bookable time slots for a doctor on a date.
// Pure read: no method here writes anything.
type AvailabilityService struct {
	DB *gorm.DB
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(db *gorm.DB) *AvailabilityService {
	return &AvailabilityService{DB: db}
}

// DayAvailability is the result of an availability query. OnLeave=true is a
// distinct outcome from an empty slot list: the former means "doctor not
// available", the latter "no slots left".
type DayAvailability struct {
	OnLeave bool     `json:"onLeave"`
	Slots   []string `json:"slots"`
}

// Slots returns the ordered bookable slots for a doctor on the given date.
func (s *AvailabilityService) Slots(doctorID string, date time.Time) (*DayAvailability, error) {
	if models.DateOnly(date).Before(models.DateOnly(time.Now())) {
		return nil, Invalid("date must not be in the past")
	}

	var doctor models.Doctor
	if err := s.DB.Where("id = ? AND status = ?", doctorID, models.DoctorActive).First(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("loading doctor: %w", err)
	}

	onLeave, err := doctorOnLeave(s.DB, doctorID, date)
	if err != nil {
		return nil, err
	}
	if onLeave {
		return &DayAvailability{OnLeave: true}, nil
	}

	candidates, err := slotTimes(&doctor)
	if err != nil {
		return nil, err
	}

	booked, err := bookedTimes(s.DB, doctorID, date)
	if err != nil {
		return nil, err
	}

	open := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := booked[slot]; !taken {
			open = append(open, slot)
		}
	}
	return &DayAvailability{Slots: open}, nil
}

// doctorOnLeave reports whether an active leave record covers the date.
func doctorOnLeave(tx *gorm.DB, doctorID string, date time.Time) (bool, error) {
	var leaves []models.DoctorLeave
	if err := tx.Where("doctor_id = ?", doctorID).Find(&leaves).Error; err != nil {
		return false, fmt.Errorf("loading leaves: %w", err)
	}
	for i := range leaves {
		if leaves[i].Covers(date) {
			return true, nil
		}
	}
	return false, nil
}

// bookedTimes returns the set of "HH:MM" times held by scheduled appointments
// for the doctor on the date. Completed, cancelled and missed rows do not
// block a slot.
func bookedTimes(tx *gorm.DB, doctorID string, date time.Time) (map[string]struct{}, error) {
	var times []string
	err := tx.Model(&models.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status = ?",
			doctorID, models.DateOnly(date), models.StatusScheduled).
		Pluck("appointment_time", &times).Error
	if err != nil {
		return nil, fmt.Errorf("loading booked slots: %w", err)
	}
	set := make(map[string]struct{}, len(times))
	for _, t := range times {
		set[t] = struct{}{}
	}
	return set, nil
}

// slotTimes derives the full candidate slot list from the doctor's working
// hours: every SlotMinutes from WorkStart up to WorkEnd, skipping the break
// window. Already in ascending order by construction.
func slotTimes(doctor *models.Doctor) ([]string, error) {
	start, err := parseClock(doctor.WorkStart)
	if err != nil {
		return nil, fmt.Errorf("doctor %s has invalid work start: %w", doctor.ID, err)
	}
	end, err := parseClock(doctor.WorkEnd)
	if err != nil {
		return nil, fmt.Errorf("doctor %s has invalid work end: %w", doctor.ID, err)
	}

	step := doctor.SlotMinutes
	if step <= 0 {
		step = 30
	}

	breakStart, breakEnd := -1, -1
	if doctor.BreakStart != "" && doctor.BreakEnd != "" {
		if breakStart, err = parseClock(doctor.BreakStart); err != nil {
			return nil, fmt.Errorf("doctor %s has invalid break start: %w", doctor.ID, err)
		}
		if breakEnd, err = parseClock(doctor.BreakEnd); err != nil {
			return nil, fmt.Errorf("doctor %s has invalid break end: %w", doctor.ID, err)
		}
	}

	var slots []string
	for m := start; m+step <= end; m += step {
		if breakStart >= 0 && m >= breakStart && m < breakEnd {
			continue
		}
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots, nil
}

// parseClock converts "HH:MM" to minutes since midnight.
func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
