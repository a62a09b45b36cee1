package store

import (
	"context"
	"time"

	"vetclinic-admin-server/internal/models"

	"gorm.io/gorm"
)

// AppointmentFilter narrows ListAppointments. Zero values are ignored.
type AppointmentFilter struct {
	Status   *models.AppointmentStatus
	PetID    string
	DoctorID string
	Date     *time.Time
	Page     Page
}

// AppointmentStore persists appointments.
type AppointmentStore struct {
	db *gorm.DB
}

// NewAppointmentStore creates a new AppointmentStore.
func NewAppointmentStore(db *gorm.DB) *AppointmentStore {
	return &AppointmentStore{db: db}
}

var appointmentRelations = []string{"Pet", "Pet.Customer", "Service", "Doctor"}

// ListAppointments returns a page of appointments, newest date first.
func (s *AppointmentStore) ListAppointments(ctx context.Context, f AppointmentFilter) (List[models.Appointment], error) {
	q := s.db.WithContext(ctx).Model(&models.Appointment{})
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.PetID != "" {
		q = q.Where("pet_id = ?", f.PetID)
	}
	if f.DoctorID != "" {
		q = q.Where("doctor_id = ?", f.DoctorID)
	}
	if f.Date != nil {
		day := dayStart(*f.Date)
		q = q.Where("date >= ? AND date < ?", day, day.AddDate(0, 0, 1))
	}
	list, err := paginate[models.Appointment](q, f.Page, "date desc, time desc", appointmentRelations...)
	return list, wrap("list appointments", err)
}

// GetAppointment loads one appointment with its pet, service and doctor.
func (s *AppointmentStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	q := s.db.WithContext(ctx)
	for _, rel := range appointmentRelations {
		q = q.Preload(rel)
	}
	var appt models.Appointment
	if err := q.First(&appt, "id = ?", id).Error; err != nil {
		return nil, wrap("get appointment", err)
	}
	return &appt, nil
}

// CreateAppointment inserts appt and assigns its ID.
func (s *AppointmentStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return wrap("create appointment", s.db.WithContext(ctx).Omit("Pet", "Service", "Doctor").Create(appt).Error)
}

// UpdateAppointment saves the editable fields of appt. Status is left alone;
// it only changes through UpdateAppointmentStatus.
func (s *AppointmentStore) UpdateAppointment(ctx context.Context, appt *models.Appointment) error {
	res := s.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", appt.ID).
		Updates(map[string]interface{}{
			"pet_id":     appt.PetID,
			"service_id": appt.ServiceID,
			"doctor_id":  appt.DoctorID,
			"date":       appt.Date,
			"time":       appt.Time,
			"notes":      appt.Notes,
		})
	return affected("update appointment", res)
}

// DeleteAppointment removes an appointment. Medical history is untouched.
func (s *AppointmentStore) DeleteAppointment(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id)
	return affected("delete appointment", res)
}

// UpdateAppointmentStatus sets the status of one appointment. A missing row is
// an error.
func (s *AppointmentStore) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	res := s.db.WithContext(ctx).Model(&models.Appointment{}).Where("id = ?", id).
		Updates(map[string]interface{}{"status": status, "updated_at": time.Now()})
	return affected("update appointment status", res)
}

func affected(op string, res *gorm.DB) error {
	if res.Error != nil {
		return wrap(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return wrap(op, gorm.ErrRecordNotFound)
	}
	return nil
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
