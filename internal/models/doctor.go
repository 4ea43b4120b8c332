package models

// DoctorStatus represents whether a doctor is accepting appointments
type DoctorStatus string

const (
	DoctorActive   DoctorStatus = "active"
	DoctorInactive DoctorStatus = "inactive"
)

// Doctor holds the profile of a doctor account (one-to-one with User).
// Working-hours fields drive slot generation: slots start every SlotMinutes
// between WorkStart and WorkEnd, excluding the optional break window.
// Rating and TotalRatings are derived from appointment ratings and are only
// ever written by the rating aggregator.
type Doctor struct {
	BaseModel
	UserID           string       `gorm:"size:36;uniqueIndex" json:"userId"`
	FirstName        string       `gorm:"size:100" json:"firstName"`
	LastName         string       `gorm:"size:100" json:"lastName"`
	SpecializationID string       `gorm:"size:36;index" json:"specializationId"`
	CityID           string       `gorm:"size:36;index" json:"cityId"`
	ConsultationFee  float64      `json:"consultationFee"`
	WorkStart        string       `gorm:"size:5;default:'09:00'" json:"workStart"`
	WorkEnd          string       `gorm:"size:5;default:'17:00'" json:"workEnd"`
	BreakStart       string       `gorm:"size:5" json:"breakStart,omitempty"`
	BreakEnd         string       `gorm:"size:5" json:"breakEnd,omitempty"`
	SlotMinutes      int          `gorm:"default:30" json:"slotMinutes"`
	Rating           float64      `gorm:"type:decimal(3,2);default:0" json:"rating"`
	TotalRatings     int          `gorm:"default:0" json:"totalRatings"`
	Status           DoctorStatus `gorm:"size:20;default:'active'" json:"status"`

	// Relations
	User           User           `gorm:"foreignKey:UserID" json:"-"`
	Specialization Specialization `gorm:"foreignKey:SpecializationID" json:"specialization,omitempty"`
	City           City           `gorm:"foreignKey:CityID" json:"city,omitempty"`
	Appointments   []Appointment  `gorm:"foreignKey:DoctorID" json:"-"`
	Leaves         []DoctorLeave  `gorm:"foreignKey:DoctorID" json:"-"`
}

// FullName returns the doctor's display name for notifications.
func (d *Doctor) FullName() string {
	return "Dr. " + d.FirstName + " " + d.LastName
}
