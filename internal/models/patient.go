package models

import (
	"time"
)

// Patient holds the profile of a patient account (one-to-one with User).
type Patient struct {
	BaseModel
	UserID      string     `gorm:"size:36;uniqueIndex" json:"userId"`
	FirstName   string     `gorm:"size:100" json:"firstName"`
	LastName    string     `gorm:"size:100" json:"lastName"`
	PhoneNumber string     `gorm:"size:30" json:"phoneNumber,omitempty"`
	Address     string     `gorm:"size:255" json:"address,omitempty"`
	CityID      string     `gorm:"size:36;index" json:"cityId,omitempty"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`

	// Relations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	City         City          `gorm:"foreignKey:CityID" json:"-"`
	Appointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}

// FullName returns the patient's display name for notifications.
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
