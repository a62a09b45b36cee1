package workflow

import (
	"time"

	"vetclinic-admin-server/internal/models"
)

// FormMode tells the record editor whether it edits an existing record.
type FormMode string

const (
	FormCreate FormMode = "create"
	FormEdit   FormMode = "edit"
)

// RecordForm is what the medical record editor is opened with.
type RecordForm struct {
	Mode          FormMode  `json:"mode"`
	RecordID      string    `json:"recordId,omitempty"`
	AppointmentID string    `json:"appointmentId"`
	PetID         string    `json:"petId"`
	PetName       string    `json:"petName,omitempty"`
	CustomerName  string    `json:"customerName,omitempty"`
	ServiceName   string    `json:"serviceName,omitempty"`
	DoctorName    string    `json:"doctorName,omitempty"`
	RecordDate    time.Time `json:"recordDate"`
	Description   string    `json:"description"`
	Treatment     string    `json:"treatment"`
	Notes         string    `json:"notes,omitempty"`
}

// RecordInput is what the user entered in the record editor.
type RecordInput struct {
	RecordDate  *time.Time `json:"recordDate,omitempty"`
	Description string     `json:"description"`
	Treatment   string     `json:"treatment"`
	Notes       string     `json:"notes,omitempty"`
}

// newRecordForm prefills the editor from the appointment, and from existing
// when there is a record to edit. Without one the form is in create mode.
func newRecordForm(appt *models.Appointment, existing *models.MedicalHistory) RecordForm {
	form := RecordForm{
		Mode:          FormCreate,
		AppointmentID: appt.ID,
		PetID:         appt.PetID,
		PetName:       appt.Pet.Name,
		ServiceName:   appt.Service.Name,
		RecordDate:    appt.Date,
		Description:   appt.Service.Name,
	}
	if appt.Pet.Customer != nil {
		form.CustomerName = appt.Pet.Customer.FullName
	}
	if appt.Doctor != nil {
		form.DoctorName = appt.Doctor.FullName
	}

	if existing != nil {
		form.Mode = FormEdit
		form.RecordID = existing.ID
		form.RecordDate = existing.RecordDate
		form.Description = existing.Description
		form.Treatment = existing.Treatment
		form.Notes = existing.Notes
	}
	return form
}

// toRecord builds the record to persist for appt from what the user entered.
func (in RecordInput) toRecord(form RecordForm) *models.MedicalHistory {
	date := form.RecordDate
	if in.RecordDate != nil && !in.RecordDate.IsZero() {
		date = *in.RecordDate
	}
	return &models.MedicalHistory{
		PetID:       form.PetID,
		RecordDate:  date,
		Description: in.Description,
		Treatment:   in.Treatment,
		Notes:       in.Notes,
	}
}
