package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// AppointmentStatus is the integer lifecycle code of an appointment.
type AppointmentStatus int

const (
	StatusPending   AppointmentStatus = 0
	StatusConfirmed AppointmentStatus = 1
	StatusCompleted AppointmentStatus = 2
	StatusCancelled AppointmentStatus = 3
)

var statusNames = map[AppointmentStatus]string{
	StatusPending:   "Pending",
	StatusConfirmed: "Confirmed",
	StatusCompleted: "Completed",
	StatusCancelled: "Cancelled",
}

// String returns the display name of the status.
func (s AppointmentStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "Unknown(" + strconv.Itoa(int(s)) + ")"
}

// Valid reports whether s is one of the four known codes.
func (s AppointmentStatus) Valid() bool {
	_, ok := statusNames[s]
	return ok
}

// ParseAppointmentStatus accepts either the integer code or the status name.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		s := AppointmentStatus(n)
		if !s.Valid() {
			return 0, fmt.Errorf("unknown appointment status %d", n)
		}
		return s, nil
	}
	for s, name := range statusNames {
		if strings.EqualFold(name, raw) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown appointment status %q", raw)
}

// Appointment is a scheduled visit of a pet for a service.
type Appointment struct {
	BaseModel
	PetID     string            `gorm:"size:36;index;not null" json:"petId"`
	ServiceID string            `gorm:"size:36;index;not null" json:"serviceId"`
	DoctorID  *string           `gorm:"size:36;index" json:"doctorId,omitempty"`
	Date      time.Time         `gorm:"index" json:"date"`
	Time      string            `gorm:"size:5" json:"time"` // HH:MM
	Notes     string            `gorm:"type:text" json:"notes"`
	Status    AppointmentStatus `gorm:"default:0;index" json:"status"`

	// Relations
	Pet     Pet     `gorm:"foreignKey:PetID" json:"pet,omitempty"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
	Doctor  *User   `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}
