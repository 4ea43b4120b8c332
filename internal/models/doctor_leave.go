package models

import (
	"time"
)

// DoctorLeave marks a date range during which a doctor takes no appointments.
// FromDate and ToDate are inclusive calendar days.
type DoctorLeave struct {
	BaseModel
	DoctorID string    `gorm:"size:36;index" json:"doctorId"`
	FromDate time.Time `gorm:"type:date" json:"fromDate"`
	ToDate   time.Time `gorm:"type:date" json:"toDate"`
	Reason   string    `gorm:"size:255" json:"reason,omitempty"`

	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"-"`
}

// Covers reports whether the given day falls inside the leave range.
func (l *DoctorLeave) Covers(day time.Time) bool {
	d := DateOnly(day)
	return !d.Before(DateOnly(l.FromDate)) && !d.After(DateOnly(l.ToDate))
}
