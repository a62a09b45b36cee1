package workflow

import (
	"context"
	"log"
	"sort"
	"time"

	"vetclinic-admin-server/internal/models"
)

// DefaultLookupLimit bounds how many of a pet's records the lookup scans.
const DefaultLookupLimit = 50

// FindRecordForAppointment locates the medical record that most likely belongs
// to appt. Records of the appointment's pet on the same calendar day win; when
// none match, the record with the latest record date in the fetched page is
// returned. It returns nil when the pet has no records. Lookup failures are
// logged and reported as nil.
func FindRecordForAppointment(ctx context.Context, histories MedicalHistoryStore, appt *models.Appointment, limit int, logger *log.Logger) *models.MedicalHistory {
	if limit <= 0 {
		limit = DefaultLookupLimit
	}

	records, err := histories.ListByPet(ctx, appt.PetID, 1, limit)
	if err != nil {
		if logger != nil {
			logger.Printf("medical record lookup for appointment %s (pet %s) failed, treating as not found: %v", appt.ID, appt.PetID, err)
		}
		return nil
	}
	if len(records) == 0 {
		return nil
	}

	for i := range records {
		if sameDay(records[i].RecordDate, appt.Date) {
			rec := records[i]
			return &rec
		}
	}

	latest := mostRecent(records)
	return &latest
}

// sameDay compares calendar dates, ignoring time of day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// mostRecent returns the record with the latest record date; ties keep the
// order the store returned.
func mostRecent(records []models.MedicalHistory) models.MedicalHistory {
	sorted := make([]models.MedicalHistory, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RecordDate.After(sorted[j].RecordDate)
	})
	return sorted[0]
}
