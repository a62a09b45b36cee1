package workflow

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"vetclinic-admin-server/internal/models"

	"github.com/benbjohnson/clock"
)

// DefaultGuardDelay is how long a confirmed change stays guarded after it finishes.
const DefaultGuardDelay = time.Second

// ErrInvalidStatus is returned for status codes outside 0-3.
var ErrInvalidStatus = errors.New("invalid appointment status")

// AppointmentStore changes appointment status. It must fail on any error; there
// is no partial success.
type AppointmentStore interface {
	UpdateAppointmentStatus(ctx context.Context, id string, status models.AppointmentStatus) error
}

// MedicalHistoryStore is the medical history backend the workflow mutates.
type MedicalHistoryStore interface {
	ListByPet(ctx context.Context, petID string, page, limit int) ([]models.MedicalHistory, error)
	Create(ctx context.Context, rec *models.MedicalHistory) error
	Update(ctx context.Context, id string, rec *models.MedicalHistory) error
	Delete(ctx context.Context, id string) error
}

// Confirmer shows a confirmation prompt and reports whether the user accepted.
type Confirmer interface {
	Confirm(ctx context.Context, prompt Prompt) bool
}

// RecordEditor shows the medical record form and returns what the user entered,
// or false when the user cancelled.
type RecordEditor interface {
	EditRecord(ctx context.Context, form RecordForm) (RecordInput, bool)
}

// Notifier receives fire-and-forget user notifications.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// UI bundles the interactive collaborators of one status change request.
type UI struct {
	Confirmer Confirmer
	Editor    RecordEditor
	Notifier  Notifier
}

// Outcome describes how a ChangeStatus call ended.
type Outcome string

const (
	OutcomeNoOp      Outcome = "noop"
	OutcomeCancelled Outcome = "cancelled"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomeApplied   Outcome = "applied"
	OutcomeFailed    Outcome = "failed"
)

// Options configures a Workflow. Zero values select the defaults, except for
// GuardDelay where zero releases the guard as soon as a change finishes.
type Options struct {
	GuardDelay  time.Duration
	LookupLimit int
	Clock       clock.Clock
	Logger      *log.Logger
}

type guardKey struct {
	appointmentID string
	status        models.AppointmentStatus
}

type guardEntry struct {
	timer *clock.Timer
}

// Workflow coordinates appointment status changes with the medical record of
// the visit. Medical history is always mutated before the appointment status.
// One Workflow is shared by all requests so its duplicate guard spans them.
type Workflow struct {
	appointments AppointmentStore
	histories    MedicalHistoryStore
	guardDelay   time.Duration
	lookupLimit  int
	clock        clock.Clock
	logger       *log.Logger

	mu     sync.Mutex
	guards map[guardKey]*guardEntry
}

// New creates a Workflow over the given stores.
func New(appointments AppointmentStore, histories MedicalHistoryStore, opts Options) *Workflow {
	if opts.GuardDelay < 0 {
		opts.GuardDelay = 0
	}
	if opts.LookupLimit <= 0 {
		opts.LookupLimit = DefaultLookupLimit
	}
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &Workflow{
		appointments: appointments,
		histories:    histories,
		guardDelay:   opts.GuardDelay,
		lookupLimit:  opts.LookupLimit,
		clock:        opts.Clock,
		logger:       opts.Logger,
		guards:       make(map[guardKey]*guardEntry),
	}
}

// ChangePreview is what the user sees before confirming a status change.
type ChangePreview struct {
	Action         Action                 `json:"action"`
	Form           *RecordForm            `json:"form,omitempty"`
	ExistingRecord *models.MedicalHistory `json:"existingRecord,omitempty"`
}

// Preview plans the change from appt's status to requested without side
// effects. For changes away from Completed it runs the record lookup so the
// caller can show which record will be edited or deleted.
func (w *Workflow) Preview(ctx context.Context, appt *models.Appointment, requested models.AppointmentStatus) (*ChangePreview, error) {
	action, err := Plan(appt.Status, requested)
	if err != nil {
		return nil, err
	}
	action.Prompt.Disabled = w.Pending(appt.ID, requested)

	p := &ChangePreview{Action: action}
	switch action.Kind {
	case ActionCreateRecord:
		form := newRecordForm(appt, nil)
		p.Form = &form
	case ActionEditRecord:
		p.ExistingRecord = w.findRecord(ctx, appt)
		form := newRecordForm(appt, p.ExistingRecord)
		p.Form = &form
	case ActionDeleteRecord:
		p.ExistingRecord = w.findRecord(ctx, appt)
	}
	return p, nil
}

// ChangeStatus runs the confirm, record entry and persistence sequence for
// moving appt to requested. On success appt.Status is updated in place. A
// returned error means a backend mutation failed after the user confirmed;
// effects applied before the failure are not rolled back.
func (w *Workflow) ChangeStatus(ctx context.Context, appt *models.Appointment, requested models.AppointmentStatus, ui UI) (Outcome, error) {
	action, err := Plan(appt.Status, requested)
	if err != nil {
		return OutcomeFailed, err
	}
	if action.Kind == ActionNoOp {
		return OutcomeNoOp, nil
	}

	key := guardKey{appointmentID: appt.ID, status: requested}
	action.Prompt.Disabled = w.Pending(appt.ID, requested)
	if !ui.Confirmer.Confirm(ctx, action.Prompt) {
		return OutcomeCancelled, nil
	}
	if !w.acquire(key) {
		w.logger.Printf("ignoring duplicate status change of appointment %s to %s", appt.ID, requested)
		return OutcomeDuplicate, nil
	}

	applied, err := w.execute(ctx, appt, action, ui.Editor)
	if err != nil {
		w.logger.Printf("status change of appointment %s from %s to %s failed: %v", appt.ID, action.From, action.To, err)
		notifyError(ui.Notifier, err)
		w.releaseAfterDelay(key)
		return OutcomeFailed, err
	}
	if !applied {
		w.release(key)
		return OutcomeCancelled, nil
	}

	appt.Status = requested
	notifySuccess(ui.Notifier, successMessage(action))
	w.releaseAfterDelay(key)
	return OutcomeApplied, nil
}

// execute performs the action. It returns false without error when the user
// cancelled the record editor.
func (w *Workflow) execute(ctx context.Context, appt *models.Appointment, action Action, editor RecordEditor) (bool, error) {
	switch action.Kind {
	case ActionDirectStatusChange:
		// nothing to do on the medical history

	case ActionCreateRecord:
		form := newRecordForm(appt, nil)
		input, ok := editor.EditRecord(ctx, form)
		if !ok {
			return false, nil
		}
		if err := w.histories.Create(ctx, input.toRecord(form)); err != nil {
			return false, fmt.Errorf("failed to create medical record: %w", err)
		}

	case ActionEditRecord:
		existing := w.findRecord(ctx, appt)
		form := newRecordForm(appt, existing)
		input, ok := editor.EditRecord(ctx, form)
		if !ok {
			return false, nil
		}
		rec := input.toRecord(form)
		if existing == nil {
			// no record to edit, so the entered details become a new one
			if err := w.histories.Create(ctx, rec); err != nil {
				return false, fmt.Errorf("failed to create medical record: %w", err)
			}
		} else if err := w.histories.Update(ctx, existing.ID, rec); err != nil {
			return false, fmt.Errorf("failed to update medical record: %w", err)
		}

	case ActionDeleteRecord:
		if existing := w.findRecord(ctx, appt); existing != nil {
			if err := w.histories.Delete(ctx, existing.ID); err != nil {
				return false, fmt.Errorf("failed to delete medical record: %w", err)
			}
		} else {
			w.logger.Printf("no medical record found for appointment %s, cancelling without deletion", appt.ID)
		}

	default:
		return false, fmt.Errorf("unexpected action %q", action.Kind)
	}

	if err := w.appointments.UpdateAppointmentStatus(ctx, appt.ID, action.To); err != nil {
		return false, fmt.Errorf("failed to update appointment status: %w", err)
	}
	return true, nil
}

func (w *Workflow) findRecord(ctx context.Context, appt *models.Appointment) *models.MedicalHistory {
	return FindRecordForAppointment(ctx, w.histories, appt, w.lookupLimit, w.logger)
}

// Pending reports whether a change of appointment id to status is in flight
// or inside its post-completion guard window.
func (w *Workflow) Pending(id string, status models.AppointmentStatus) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, held := w.guards[guardKey{appointmentID: id, status: status}]
	return held
}

func (w *Workflow) acquire(key guardKey) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, held := w.guards[key]; held {
		return false
	}
	w.guards[key] = &guardEntry{}
	return true
}

func (w *Workflow) release(key guardKey) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if entry, ok := w.guards[key]; ok {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(w.guards, key)
	}
}

func (w *Workflow) releaseAfterDelay(key guardKey) {
	if w.guardDelay == 0 {
		w.release(key)
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	entry, ok := w.guards[key]
	if !ok {
		return
	}
	entry.timer = w.clock.AfterFunc(w.guardDelay, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if w.guards[key] == entry {
			delete(w.guards, key)
		}
	})
}

// Close stops all guard timers and clears the guard.
func (w *Workflow) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for key, entry := range w.guards {
		if entry.timer != nil {
			entry.timer.Stop()
		}
		delete(w.guards, key)
	}
}

func successMessage(action Action) string {
	switch action.Kind {
	case ActionCreateRecord:
		return "Appointment completed and medical record saved"
	case ActionEditRecord:
		return fmt.Sprintf("Appointment status changed to %s and medical record updated", action.To)
	case ActionDeleteRecord:
		return "Appointment cancelled and medical record removed"
	default:
		return fmt.Sprintf("Appointment status changed from %s to %s", action.From, action.To)
	}
}

func notifySuccess(n Notifier, message string) {
	if n != nil {
		n.Success(message)
	}
}

func notifyError(n Notifier, err error) {
	if n != nil {
		n.Error(err.Error())
	}
}
