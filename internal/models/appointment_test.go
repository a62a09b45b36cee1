package models

import (
	"testing"
)

func TestParseAppointmentStatus(t *testing.T) {
	tests := []struct {
		raw     string
		want    AppointmentStatus
		wantErr bool
	}{
		{"0", StatusPending, false},
		{"1", StatusConfirmed, false},
		{"2", StatusCompleted, false},
		{"3", StatusCancelled, false},
		{"completed", StatusCompleted, false},
		{" Cancelled ", StatusCancelled, false},
		{"4", 0, true},
		{"-1", 0, true},
		{"done", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseAppointmentStatus(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAppointmentStatus(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseAppointmentStatus(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAppointmentStatusString(t *testing.T) {
	if got := StatusCompleted.String(); got != "Completed" {
		t.Errorf("StatusCompleted.String() = %q, want %q", got, "Completed")
	}
	if got := AppointmentStatus(9).String(); got != "Unknown(9)" {
		t.Errorf("AppointmentStatus(9).String() = %q, want %q", got, "Unknown(9)")
	}
	if AppointmentStatus(9).Valid() {
		t.Error("AppointmentStatus(9).Valid() = true, want false")
	}
}

func TestUserPassword(t *testing.T) {
	u := &User{}
	if err := u.SetPassword("s3cret-pass"); err != nil {
		t.Fatalf("SetPassword() error = %v", err)
	}
	if u.Password == "s3cret-pass" {
		t.Error("SetPassword stored the plain password")
	}
	if !u.CheckPassword("s3cret-pass") {
		t.Error("CheckPassword(correct) = false, want true")
	}
	if u.CheckPassword("wrong") {
		t.Error("CheckPassword(wrong) = true, want false")
	}
}
