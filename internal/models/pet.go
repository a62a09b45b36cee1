package models

import (
	"time"
)

// Customer is a pet owner.
type Customer struct {
	BaseModel
	FullName string `gorm:"size:150;not null" json:"fullName"`
	Phone    string `gorm:"size:30;index" json:"phone"`
	Email    string `gorm:"size:255" json:"email,omitempty"`
	Address  string `gorm:"size:255" json:"address,omitempty"`

	Pets []Pet `gorm:"foreignKey:CustomerID" json:"pets,omitempty"`
}

// Pet belongs to a customer and owns its medical history.
type Pet struct {
	BaseModel
	CustomerID string     `gorm:"size:36;index;not null" json:"customerId"`
	Name       string     `gorm:"size:100;not null" json:"name"`
	Species    string     `gorm:"size:50" json:"species"`
	Breed      string     `gorm:"size:100" json:"breed,omitempty"`
	BirthDate  *time.Time `json:"birthDate,omitempty"`

	// Relations
	Customer       *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	MedicalHistory []MedicalHistory `gorm:"foreignKey:PetID" json:"-"`
}

// Service is a billable clinic service an appointment is booked for.
type Service struct {
	BaseModel
	Name        string  `gorm:"size:150;not null" json:"name"`
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Price       float64 `json:"price"`
}
