package store

import (
	"context"

	"vetclinic-admin-server/internal/models"

	"gorm.io/gorm"
)

// MedicalHistoryStore persists pet medical history records.
type MedicalHistoryStore struct {
	db *gorm.DB
}

// NewMedicalHistoryStore creates a new MedicalHistoryStore.
func NewMedicalHistoryStore(db *gorm.DB) *MedicalHistoryStore {
	return &MedicalHistoryStore{db: db}
}

// ListByPet returns one page of a pet's records, most recent record date first.
func (s *MedicalHistoryStore) ListByPet(ctx context.Context, petID string, page, limit int) ([]models.MedicalHistory, error) {
	list, err := s.ListPageByPet(ctx, petID, Page{Page: page, Limit: limit})
	if err != nil {
		return nil, err
	}
	return list.Items, nil
}

// ListPageByPet is ListByPet with the total count, for the history screen.
func (s *MedicalHistoryStore) ListPageByPet(ctx context.Context, petID string, page Page) (List[models.MedicalHistory], error) {
	q := s.db.WithContext(ctx).Model(&models.MedicalHistory{}).Where("pet_id = ?", petID)
	list, err := paginate[models.MedicalHistory](q, page, "record_date desc, created_at desc")
	return list, wrap("list medical history", err)
}

// Get loads one record.
func (s *MedicalHistoryStore) Get(ctx context.Context, id string) (*models.MedicalHistory, error) {
	var rec models.MedicalHistory
	if err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		return nil, wrap("get medical history", err)
	}
	return &rec, nil
}

// Create inserts rec and assigns its ID.
func (s *MedicalHistoryStore) Create(ctx context.Context, rec *models.MedicalHistory) error {
	return wrap("create medical history", s.db.WithContext(ctx).Omit("Pet").Create(rec).Error)
}

// Update overwrites the clinical fields of record id with rec.
func (s *MedicalHistoryStore) Update(ctx context.Context, id string, rec *models.MedicalHistory) error {
	res := s.db.WithContext(ctx).Model(&models.MedicalHistory{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"pet_id":      rec.PetID,
			"record_date": rec.RecordDate,
			"description": rec.Description,
			"treatment":   rec.Treatment,
			"notes":       rec.Notes,
		})
	if err := affected("update medical history", res); err != nil {
		return err
	}
	rec.ID = id
	return nil
}

// Delete removes record id.
func (s *MedicalHistoryStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Delete(&models.MedicalHistory{}, "id = ?", id)
	return affected("delete medical history", res)
}
