package models

// City is a lookup table used to filter the doctor directory.
type City struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}

// Specialization is a lookup table for doctor specialties.
type Specialization struct {
	BaseModel
	Name string `gorm:"uniqueIndex;size:100;not null" json:"name"`
}
