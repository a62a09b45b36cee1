package models

import (
	"time"
)

// MedicalHistory is a clinical note for a pet on a given date. It is not linked
// to an appointment by key; the appointment workflow matches them by pet and day.
type MedicalHistory struct {
	BaseModel
	PetID       string    `gorm:"size:36;index;not null" json:"petId"`
	RecordDate  time.Time `gorm:"index" json:"recordDate"`
	Description string    `gorm:"type:text" json:"description"`
	Treatment   string    `gorm:"type:text" json:"treatment"`
	Notes       string    `gorm:"type:text" json:"notes,omitempty"`

	// Relations
	Pet Pet `gorm:"foreignKey:PetID" json:"-"`
}
