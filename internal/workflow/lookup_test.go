package workflow

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	"vetclinic-admin-server/internal/models"
)

func history(id, petID string, date time.Time) models.MedicalHistory {
	rec := models.MedicalHistory{PetID: petID, RecordDate: date}
	rec.ID = id
	return rec
}

func TestFindRecordForAppointment(t *testing.T) {
	appt := &models.Appointment{PetID: "42", Date: day(2024, time.January, 5, 0)}

	tests := []struct {
		name    string
		records []models.MedicalHistory
		want    string
	}{
		{
			name: "same day wins over later record",
			records: []models.MedicalHistory{
				history("jan6", "42", day(2024, time.January, 6, 9)),
				history("jan5", "42", day(2024, time.January, 5, 8)),
			},
			want: "jan5",
		},
		{
			name:    "falls back to the only record",
			records: []models.MedicalHistory{history("jan6", "42", day(2024, time.January, 6, 9))},
			want:    "jan6",
		},
		{
			name: "fallback picks latest record date regardless of store order",
			records: []models.MedicalHistory{
				history("dec1", "42", day(2023, time.December, 1, 9)),
				history("feb2", "42", day(2024, time.February, 2, 9)),
				history("jan9", "42", day(2024, time.January, 9, 9)),
			},
			want: "feb2",
		},
		{
			name: "first same-day record in page order",
			records: []models.MedicalHistory{
				history("late", "42", day(2024, time.January, 5, 18)),
				history("early", "42", day(2024, time.January, 5, 7)),
			},
			want: "late",
		},
		{
			name:    "other pets are ignored",
			records: []models.MedicalHistory{history("other", "7", day(2024, time.January, 5, 8))},
			want:    "",
		},
		{
			name: "empty history",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{records: tt.records}
			got := FindRecordForAppointment(context.Background(), backend, appt, 50, nil)
			if tt.want == "" {
				if got != nil {
					t.Errorf("FindRecordForAppointment() = %+v, want nil", got)
				}
				return
			}
			if got == nil || got.ID != tt.want {
				t.Errorf("FindRecordForAppointment() = %+v, want %s", got, tt.want)
			}
		})
	}
}

func TestFindRecordForAppointmentPageBounds(t *testing.T) {
	backend := &fakeBackend{}
	appt := &models.Appointment{PetID: "42", Date: day(2024, time.January, 5, 0)}

	FindRecordForAppointment(context.Background(), backend, appt, 0, nil)
	FindRecordForAppointment(context.Background(), backend, appt, 10, nil)

	calls := backend.Calls()
	if len(calls) != 2 || calls[0] != "list:42:1:50" || calls[1] != "list:42:1:10" {
		t.Errorf("calls = %v, want default then explicit limit", calls)
	}
}

func TestFindRecordForAppointmentErrorIsNotFound(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	backend := &fakeBackend{listErr: errors.New("connection refused")}
	appt := &models.Appointment{PetID: "42", Date: day(2024, time.January, 5, 0)}

	if got := FindRecordForAppointment(context.Background(), backend, appt, 50, logger); got != nil {
		t.Errorf("FindRecordForAppointment() = %+v, want nil", got)
	}
	if !strings.Contains(buf.String(), "connection refused") {
		t.Errorf("log = %q, want the lookup error", buf.String())
	}
}

func TestSameDay(t *testing.T) {
	if !sameDay(day(2024, time.January, 5, 0), day(2024, time.January, 5, 23)) {
		t.Error("sameDay() = false for the same date")
	}
	if sameDay(day(2024, time.January, 5, 23), day(2024, time.January, 6, 0)) {
		t.Error("sameDay() = true across midnight")
	}
	if sameDay(day(2023, time.January, 5, 0), day(2024, time.January, 5, 0)) {
		t.Error("sameDay() = true for different years")
	}
}
