package models

// MedicalRecord is the record a doctor writes up when completing an
// appointment. Created lazily on the first medical-data save for an
// appointment; later saves update the same row (looked up by AppointmentID)
// instead of inserting a duplicate.
type MedicalRecord struct {
	BaseModel
	PatientID      string  `gorm:"size:36;index" json:"patientId"`
	DoctorID       *string `gorm:"size:36;index" json:"doctorId,omitempty"`
	AppointmentID  *string `gorm:"size:36;uniqueIndex" json:"appointmentId,omitempty"`
	Description    string  `gorm:"type:text" json:"description"`
	AttachmentPath string  `gorm:"size:500" json:"attachmentPath,omitempty"`

	// Relations
	Patient     Patient      `gorm:"foreignKey:PatientID" json:"-"`
	Doctor      *Doctor      `gorm:"foreignKey:DoctorID" json:"-"`
	Appointment *Appointment `gorm:"foreignKey:AppointmentID" json:"-"`
}
