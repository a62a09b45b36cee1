package workflow

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"vetclinic-admin-server/internal/models"

	"github.com/benbjohnson/clock"
)

// fakeBackend records every store call in order.
type fakeBackend struct {
	mu      sync.Mutex
	calls   []string
	records []models.MedicalHistory
	created []models.MedicalHistory
	updated []models.MedicalHistory

	listErr   error
	createErr error
	updateErr error
	deleteErr error
	statusErr error

	// createHook runs inside Create before it returns
	createHook func()
}

func (f *fakeBackend) record(call string) {
	f.mu.Lock()
	f.calls = append(f.calls, call)
	f.mu.Unlock()
}

func (f *fakeBackend) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func (f *fakeBackend) UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error {
	f.record(fmt.Sprintf("status:%s:%d", id, status))
	return f.statusErr
}

func (f *fakeBackend) ListByPet(ctx context.Context, petID string, page, limit int) ([]models.MedicalHistory, error) {
	f.record(fmt.Sprintf("list:%s:%d:%d", petID, page, limit))
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.MedicalHistory
	for _, r := range f.records {
		if r.PetID == petID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBackend) Create(ctx context.Context, rec *models.MedicalHistory) error {
	f.record("create")
	if f.createHook != nil {
		f.createHook()
	}
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	f.created = append(f.created, *rec)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) Update(ctx context.Context, id string, rec *models.MedicalHistory) error {
	f.record("update:" + id)
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	f.updated = append(f.updated, *rec)
	f.mu.Unlock()
	return nil
}

func (f *fakeBackend) Delete(ctx context.Context, id string) error {
	f.record("delete:" + id)
	return f.deleteErr
}

// scriptedUI answers prompts and forms with fixed values and records what it saw.
type scriptedUI struct {
	mu       sync.Mutex
	confirm  bool
	input    *RecordInput
	prompts  []Prompt
	forms    []RecordForm
	messages []Notification
}

func (u *scriptedUI) Confirm(ctx context.Context, p Prompt) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.prompts = append(u.prompts, p)
	return u.confirm
}

func (u *scriptedUI) EditRecord(ctx context.Context, form RecordForm) (RecordInput, bool) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.forms = append(u.forms, form)
	if u.input == nil {
		return RecordInput{}, false
	}
	return *u.input, true
}

func (u *scriptedUI) Success(message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.messages = append(u.messages, Notification{Level: "success", Message: message})
}

func (u *scriptedUI) Error(message string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.messages = append(u.messages, Notification{Level: "error", Message: message})
}

func (u *scriptedUI) ui() UI {
	return UI{Confirmer: u, Editor: u, Notifier: u}
}

func (u *scriptedUI) errorCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, m := range u.messages {
		if m.Level == "error" {
			n++
		}
	}
	return n
}

func acceptingUI() *scriptedUI {
	return &scriptedUI{
		confirm: true,
		input:   &RecordInput{Description: "Annual checkup", Treatment: "Vaccine booster"},
	}
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}

func newAppointment(status models.AppointmentStatus) *models.Appointment {
	appt := &models.Appointment{
		PetID:     "pet-42",
		ServiceID: "svc-1",
		Date:      day(2024, time.January, 5, 0),
		Time:      "10:30",
		Status:    status,
		Pet:       models.Pet{Name: "Rex", Customer: &models.Customer{FullName: "Ana Silva"}},
		Service:   models.Service{Name: "Vaccination"},
	}
	appt.ID = "appt-1"
	return appt
}

func newTestWorkflow(backend *fakeBackend, clk clock.Clock) *Workflow {
	return New(backend, backend, Options{GuardDelay: time.Second, Clock: clk})
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestChangeStatusSameStatusIsNoOp(t *testing.T) {
	for _, s := range []models.AppointmentStatus{
		models.StatusPending, models.StatusConfirmed, models.StatusCompleted, models.StatusCancelled,
	} {
		t.Run(s.String(), func(t *testing.T) {
			backend := &fakeBackend{}
			ui := acceptingUI()
			wf := newTestWorkflow(backend, clock.NewMock())

			outcome, err := wf.ChangeStatus(context.Background(), newAppointment(s), s, ui.ui())
			if err != nil {
				t.Fatalf("ChangeStatus() error = %v", err)
			}
			if outcome != OutcomeNoOp {
				t.Errorf("outcome = %v, want %v", outcome, OutcomeNoOp)
			}
			if len(ui.prompts) != 0 {
				t.Errorf("prompts = %d, want 0", len(ui.prompts))
			}
			if calls := backend.Calls(); len(calls) != 0 {
				t.Errorf("backend calls = %v, want none", calls)
			}
		})
	}
}

func TestChangeStatusSequences(t *testing.T) {
	onDay := models.MedicalHistory{PetID: "pet-42", RecordDate: day(2024, time.January, 5, 8), Description: "old"}
	onDay.ID = "rec-5"

	tests := []struct {
		name      string
		from      models.AppointmentStatus
		to        models.AppointmentStatus
		records   []models.MedicalHistory
		wantCalls []string
		wantForm  FormMode
	}{
		{
			name:      "pending to completed creates then updates status",
			from:      models.StatusPending,
			to:        models.StatusCompleted,
			wantCalls: []string{"create", "status:appt-1:2"},
			wantForm:  FormCreate,
		},
		{
			name:      "confirmed to completed creates then updates status",
			from:      models.StatusConfirmed,
			to:        models.StatusCompleted,
			records:   []models.MedicalHistory{onDay},
			wantCalls: []string{"create", "status:appt-1:2"},
			wantForm:  FormCreate,
		},
		{
			name:      "cancelled to completed creates then updates status",
			from:      models.StatusCancelled,
			to:        models.StatusCompleted,
			wantCalls: []string{"create", "status:appt-1:2"},
			wantForm:  FormCreate,
		},
		{
			name:      "completed to cancelled deletes found record",
			from:      models.StatusCompleted,
			to:        models.StatusCancelled,
			records:   []models.MedicalHistory{onDay},
			wantCalls: []string{"list:pet-42:1:50", "delete:rec-5", "status:appt-1:3"},
		},
		{
			name:      "completed to cancelled without record still updates status",
			from:      models.StatusCompleted,
			to:        models.StatusCancelled,
			wantCalls: []string{"list:pet-42:1:50", "status:appt-1:3"},
		},
		{
			name:      "completed to pending edits found record",
			from:      models.StatusCompleted,
			to:        models.StatusPending,
			records:   []models.MedicalHistory{onDay},
			wantCalls: []string{"list:pet-42:1:50", "update:rec-5", "status:appt-1:0"},
			wantForm:  FormEdit,
		},
		{
			name:      "completed to confirmed without record creates one",
			from:      models.StatusCompleted,
			to:        models.StatusConfirmed,
			wantCalls: []string{"list:pet-42:1:50", "create", "status:appt-1:1"},
			wantForm:  FormCreate,
		},
		{
			name:      "pending to confirmed only updates status",
			from:      models.StatusPending,
			to:        models.StatusConfirmed,
			records:   []models.MedicalHistory{onDay},
			wantCalls: []string{"status:appt-1:1"},
		},
		{
			name:      "confirmed to cancelled only updates status",
			from:      models.StatusConfirmed,
			to:        models.StatusCancelled,
			wantCalls: []string{"status:appt-1:3"},
		},
		{
			name:      "cancelled to pending only updates status",
			from:      models.StatusCancelled,
			to:        models.StatusPending,
			wantCalls: []string{"status:appt-1:0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{records: tt.records}
			ui := acceptingUI()
			wf := newTestWorkflow(backend, clock.NewMock())
			appt := newAppointment(tt.from)

			outcome, err := wf.ChangeStatus(context.Background(), appt, tt.to, ui.ui())
			if err != nil {
				t.Fatalf("ChangeStatus() error = %v", err)
			}
			if outcome != OutcomeApplied {
				t.Errorf("outcome = %v, want %v", outcome, OutcomeApplied)
			}
			if got := backend.Calls(); !reflect.DeepEqual(got, tt.wantCalls) {
				t.Errorf("calls = %v, want %v", got, tt.wantCalls)
			}
			if appt.Status != tt.to {
				t.Errorf("appt.Status = %v, want %v", appt.Status, tt.to)
			}
			if len(ui.prompts) != 1 {
				t.Errorf("prompts = %d, want 1", len(ui.prompts))
			}
			if tt.wantForm == "" {
				if len(ui.forms) != 0 {
					t.Errorf("record form shown %d times, want 0", len(ui.forms))
				}
			} else {
				if len(ui.forms) != 1 {
					t.Fatalf("record form shown %d times, want 1", len(ui.forms))
				}
				if ui.forms[0].Mode != tt.wantForm {
					t.Errorf("form mode = %v, want %v", ui.forms[0].Mode, tt.wantForm)
				}
			}
			if ui.errorCount() != 0 {
				t.Errorf("error notifications = %d, want 0", ui.errorCount())
			}
		})
	}
}

func TestChangeStatusCreatePrefillsFromAppointment(t *testing.T) {
	backend := &fakeBackend{}
	ui := acceptingUI()
	wf := newTestWorkflow(backend, clock.NewMock())
	appt := newAppointment(models.StatusConfirmed)

	if _, err := wf.ChangeStatus(context.Background(), appt, models.StatusCompleted, ui.ui()); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}

	form := ui.forms[0]
	if form.PetID != "pet-42" || form.PetName != "Rex" || form.ServiceName != "Vaccination" || form.CustomerName != "Ana Silva" {
		t.Errorf("form = %+v, want pet and service prefilled", form)
	}
	if form.Description != "Vaccination" || form.Treatment != "" {
		t.Errorf("form description/treatment = %q/%q, want service name and blank", form.Description, form.Treatment)
	}

	if len(backend.created) != 1 {
		t.Fatalf("created = %d, want 1", len(backend.created))
	}
	rec := backend.created[0]
	if rec.PetID != "pet-42" || !rec.RecordDate.Equal(appt.Date) {
		t.Errorf("created record = %+v, want pet-42 on appointment date", rec)
	}
	if rec.Description != "Annual checkup" || rec.Treatment != "Vaccine booster" {
		t.Errorf("created record = %+v, want entered details", rec)
	}
}

func TestChangeStatusEditPrefillsExistingRecord(t *testing.T) {
	existing := models.MedicalHistory{
		PetID:       "pet-42",
		RecordDate:  day(2024, time.January, 5, 8),
		Description: "Vaccination",
		Treatment:   "Rabies",
		Notes:       "calm",
	}
	existing.ID = "rec-5"
	backend := &fakeBackend{records: []models.MedicalHistory{existing}}
	ui := acceptingUI()
	wf := newTestWorkflow(backend, clock.NewMock())

	if _, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusCompleted), models.StatusConfirmed, ui.ui()); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}

	form := ui.forms[0]
	if form.RecordID != "rec-5" || form.Treatment != "Rabies" || form.Notes != "calm" {
		t.Errorf("form = %+v, want existing record prefilled", form)
	}
	if len(backend.updated) != 1 || backend.updated[0].Treatment != "Vaccine booster" {
		t.Errorf("updated = %+v, want entered details", backend.updated)
	}
	if !backend.updated[0].RecordDate.Equal(existing.RecordDate) {
		t.Errorf("updated record date = %v, want existing %v", backend.updated[0].RecordDate, existing.RecordDate)
	}
}

func TestChangeStatusConfirmationDeclined(t *testing.T) {
	backend := &fakeBackend{}
	ui := &scriptedUI{confirm: false}
	wf := newTestWorkflow(backend, clock.NewMock())
	appt := newAppointment(models.StatusPending)

	outcome, err := wf.ChangeStatus(context.Background(), appt, models.StatusCompleted, ui.ui())
	if err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if outcome != OutcomeCancelled {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeCancelled)
	}
	if calls := backend.Calls(); len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
	if appt.Status != models.StatusPending {
		t.Errorf("appt.Status = %v, want unchanged", appt.Status)
	}
	if wf.Pending(appt.ID, models.StatusCompleted) {
		t.Error("guard held after declined confirmation")
	}
}

func TestChangeStatusRecordEntryCancelledReleasesGuardImmediately(t *testing.T) {
	backend := &fakeBackend{}
	ui := &scriptedUI{confirm: true}
	wf := newTestWorkflow(backend, clock.NewMock())
	appt := newAppointment(models.StatusPending)

	outcome, err := wf.ChangeStatus(context.Background(), appt, models.StatusCompleted, ui.ui())
	if err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if outcome != OutcomeCancelled {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeCancelled)
	}
	if calls := backend.Calls(); len(calls) != 0 {
		t.Errorf("calls = %v, want none", calls)
	}
	if wf.Pending(appt.ID, models.StatusCompleted) {
		t.Error("guard still held after record entry was cancelled")
	}
	if len(ui.messages) != 0 {
		t.Errorf("notifications = %v, want none", ui.messages)
	}
}

func TestChangeStatusCreateFailureSkipsStatusUpdate(t *testing.T) {
	backend := &fakeBackend{createErr: errors.New("backend down")}
	ui := acceptingUI()
	mock := clock.NewMock()
	wf := newTestWorkflow(backend, mock)
	appt := newAppointment(models.StatusPending)

	outcome, err := wf.ChangeStatus(context.Background(), appt, models.StatusCompleted, ui.ui())
	if err == nil {
		t.Fatal("ChangeStatus() error = nil, want error")
	}
	if outcome != OutcomeFailed {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeFailed)
	}
	if got, want := backend.Calls(), []string{"create"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if ui.errorCount() != 1 {
		t.Errorf("error notifications = %d, want 1", ui.errorCount())
	}
	if appt.Status != models.StatusPending {
		t.Errorf("appt.Status = %v, want unchanged", appt.Status)
	}

	if !wf.Pending(appt.ID, models.StatusCompleted) {
		t.Error("guard released before the delay elapsed")
	}
	mock.Add(time.Second)
	waitFor(t, "guard release", func() bool { return !wf.Pending(appt.ID, models.StatusCompleted) })
}

func TestChangeStatusStatusFailureKeepsRecord(t *testing.T) {
	backend := &fakeBackend{statusErr: errors.New("conflict")}
	ui := acceptingUI()
	wf := newTestWorkflow(backend, clock.NewMock())

	outcome, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusPending), models.StatusCompleted, ui.ui())
	if err == nil || outcome != OutcomeFailed {
		t.Fatalf("ChangeStatus() = %v, %v, want failure", outcome, err)
	}
	if len(backend.created) != 1 {
		t.Errorf("created = %d, want the record to remain", len(backend.created))
	}
	for _, c := range backend.Calls() {
		if len(c) >= 6 && c[:6] == "delete" {
			t.Errorf("unexpected rollback call %q", c)
		}
	}
	if ui.errorCount() != 1 {
		t.Errorf("error notifications = %d, want 1", ui.errorCount())
	}
}

func TestChangeStatusDeleteFailureSkipsStatusUpdate(t *testing.T) {
	rec := models.MedicalHistory{PetID: "pet-42", RecordDate: day(2024, time.January, 5, 8)}
	rec.ID = "rec-5"
	backend := &fakeBackend{records: []models.MedicalHistory{rec}, deleteErr: errors.New("locked")}
	ui := acceptingUI()
	wf := newTestWorkflow(backend, clock.NewMock())

	if _, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusCompleted), models.StatusCancelled, ui.ui()); err == nil {
		t.Fatal("ChangeStatus() error = nil, want error")
	}
	if got, want := backend.Calls(), []string{"list:pet-42:1:50", "delete:rec-5"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestChangeStatusLookupFailureFallsBackToCreate(t *testing.T) {
	backend := &fakeBackend{listErr: errors.New("timeout")}
	ui := acceptingUI()
	wf := newTestWorkflow(backend, clock.NewMock())

	outcome, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusCompleted), models.StatusPending, ui.ui())
	if err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if outcome != OutcomeApplied {
		t.Errorf("outcome = %v, want %v", outcome, OutcomeApplied)
	}
	if got, want := backend.Calls(), []string{"list:pet-42:1:50", "create", "status:appt-1:0"}; !reflect.DeepEqual(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if ui.errorCount() != 0 {
		t.Errorf("error notifications = %d, want 0", ui.errorCount())
	}
}

func TestChangeStatusDropsDuplicateWhilePending(t *testing.T) {
	entered := make(chan struct{})
	unblock := make(chan struct{})
	var once sync.Once
	backend := &fakeBackend{}
	backend.createHook = func() {
		once.Do(func() { close(entered) })
		<-unblock
	}
	mock := clock.NewMock()
	wf := newTestWorkflow(backend, mock)

	first := make(chan Outcome, 1)
	go func() {
		outcome, _ := wf.ChangeStatus(context.Background(), newAppointment(models.StatusPending), models.StatusCompleted, acceptingUI().ui())
		first <- outcome
	}()
	<-entered

	second := acceptingUI()
	outcome, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusPending), models.StatusCompleted, second.ui())
	if err != nil {
		t.Fatalf("second ChangeStatus() error = %v", err)
	}
	if outcome != OutcomeDuplicate {
		t.Errorf("second outcome = %v, want %v", outcome, OutcomeDuplicate)
	}
	if len(second.prompts) != 1 || !second.prompts[0].Disabled {
		t.Errorf("second prompt = %+v, want one disabled prompt", second.prompts)
	}
	if len(second.forms) != 0 {
		t.Errorf("second request opened the record form %d times", len(second.forms))
	}

	close(unblock)
	if got := <-first; got != OutcomeApplied {
		t.Errorf("first outcome = %v, want %v", got, OutcomeApplied)
	}

	creates := 0
	for _, c := range backend.Calls() {
		if c == "create" {
			creates++
		}
	}
	if creates != 1 {
		t.Errorf("create called %d times, want 1", creates)
	}

	// still guarded inside the delay window
	if !wf.Pending("appt-1", models.StatusCompleted) {
		t.Error("guard released before the delay elapsed")
	}
	mock.Add(500 * time.Millisecond)
	if !wf.Pending("appt-1", models.StatusCompleted) {
		t.Error("guard released after half the delay")
	}
	mock.Add(500 * time.Millisecond)
	waitFor(t, "guard release", func() bool { return !wf.Pending("appt-1", models.StatusCompleted) })
}

func TestChangeStatusGuardIsPerTargetStatus(t *testing.T) {
	backend := &fakeBackend{}
	wf := newTestWorkflow(backend, clock.NewMock())

	if _, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusPending), models.StatusConfirmed, acceptingUI().ui()); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if !wf.Pending("appt-1", models.StatusConfirmed) {
		t.Fatal("guard not held after success")
	}

	outcome, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusPending), models.StatusCancelled, acceptingUI().ui())
	if err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if outcome != OutcomeApplied {
		t.Errorf("outcome for a different target = %v, want %v", outcome, OutcomeApplied)
	}
}

func TestChangeStatusZeroDelayReleasesAtOnce(t *testing.T) {
	backend := &fakeBackend{}
	wf := New(backend, backend, Options{})

	if _, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusPending), models.StatusConfirmed, acceptingUI().ui()); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	if wf.Pending("appt-1", models.StatusConfirmed) {
		t.Error("guard held with zero delay")
	}
}

func TestCloseStopsGuardTimers(t *testing.T) {
	backend := &fakeBackend{}
	mock := clock.NewMock()
	wf := newTestWorkflow(backend, mock)

	if _, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusPending), models.StatusConfirmed, acceptingUI().ui()); err != nil {
		t.Fatalf("ChangeStatus() error = %v", err)
	}
	wf.Close()
	if wf.Pending("appt-1", models.StatusConfirmed) {
		t.Error("guard held after Close")
	}
	mock.Add(time.Second)
}

func TestChangeStatusInvalidStatus(t *testing.T) {
	backend := &fakeBackend{}
	ui := acceptingUI()
	wf := newTestWorkflow(backend, clock.NewMock())

	_, err := wf.ChangeStatus(context.Background(), newAppointment(models.StatusPending), models.AppointmentStatus(7), ui.ui())
	if !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("error = %v, want ErrInvalidStatus", err)
	}
	if len(ui.prompts) != 0 || len(backend.Calls()) != 0 {
		t.Error("invalid status reached the UI or backend")
	}
}

func TestPreview(t *testing.T) {
	rec := models.MedicalHistory{PetID: "pet-42", RecordDate: day(2024, time.January, 5, 8), Treatment: "Rabies"}
	rec.ID = "rec-5"

	tests := []struct {
		name         string
		from, to     models.AppointmentStatus
		wantKind     ActionKind
		wantForm     bool
		wantExisting bool
	}{
		{"create", models.StatusPending, models.StatusCompleted, ActionCreateRecord, true, false},
		{"edit", models.StatusCompleted, models.StatusPending, ActionEditRecord, true, true},
		{"delete", models.StatusCompleted, models.StatusCancelled, ActionDeleteRecord, false, true},
		{"direct", models.StatusPending, models.StatusConfirmed, ActionDirectStatusChange, false, false},
		{"noop", models.StatusConfirmed, models.StatusConfirmed, ActionNoOp, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := &fakeBackend{records: []models.MedicalHistory{rec}}
			wf := newTestWorkflow(backend, clock.NewMock())

			p, err := wf.Preview(context.Background(), newAppointment(tt.from), tt.to)
			if err != nil {
				t.Fatalf("Preview() error = %v", err)
			}
			if p.Action.Kind != tt.wantKind {
				t.Errorf("kind = %v, want %v", p.Action.Kind, tt.wantKind)
			}
			if (p.Form != nil) != tt.wantForm {
				t.Errorf("form = %+v, want present=%v", p.Form, tt.wantForm)
			}
			if (p.ExistingRecord != nil) != tt.wantExisting {
				t.Errorf("existing = %+v, want present=%v", p.ExistingRecord, tt.wantExisting)
			}
			for _, c := range backend.Calls() {
				if c == "create" || c[:6] == "update" || c[:6] == "delete" || c[:6] == "status" {
					t.Errorf("Preview mutated the backend: %q", c)
				}
			}
		})
	}
}
