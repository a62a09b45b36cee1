package workflow

import (
	"fmt"

	"vetclinic-admin-server/internal/models"
)

// ActionKind tags the side effect a status change triggers.
type ActionKind string

const (
	ActionNoOp               ActionKind = "noop"
	ActionCreateRecord       ActionKind = "create_record"
	ActionDeleteRecord       ActionKind = "delete_record"
	ActionEditRecord         ActionKind = "edit_record"
	ActionDirectStatusChange ActionKind = "direct_status_change"
)

// NeedsRecordForm reports whether the action asks the user for medical record details.
func (k ActionKind) NeedsRecordForm() bool {
	return k == ActionCreateRecord || k == ActionEditRecord
}

// Prompt is the confirmation shown before a status change. Disabled is set
// while the same change is still being processed.
type Prompt struct {
	Title    string `json:"title"`
	Message  string `json:"message"`
	Disabled bool   `json:"disabled"`
}

// Action is the planned handling of one (current, requested) status pair.
type Action struct {
	Kind   ActionKind               `json:"kind"`
	From   models.AppointmentStatus `json:"from"`
	To     models.AppointmentStatus `json:"to"`
	Prompt Prompt                   `json:"prompt"`
}

// transitionTable is indexed [current][requested]; columns are Pending,
// Confirmed, Completed, Cancelled.
var transitionTable = [4][4]ActionKind{
	models.StatusPending:   {ActionNoOp, ActionDirectStatusChange, ActionCreateRecord, ActionDirectStatusChange},
	models.StatusConfirmed: {ActionDirectStatusChange, ActionNoOp, ActionCreateRecord, ActionDirectStatusChange},
	models.StatusCompleted: {ActionEditRecord, ActionEditRecord, ActionNoOp, ActionDeleteRecord},
	models.StatusCancelled: {ActionDirectStatusChange, ActionDirectStatusChange, ActionCreateRecord, ActionNoOp},
}

// Plan looks up the action for moving an appointment from current to requested.
func Plan(current, requested models.AppointmentStatus) (Action, error) {
	if !current.Valid() {
		return Action{}, fmt.Errorf("%w: current %d", ErrInvalidStatus, int(current))
	}
	if !requested.Valid() {
		return Action{}, fmt.Errorf("%w: requested %d", ErrInvalidStatus, int(requested))
	}
	kind := transitionTable[current][requested]
	return Action{
		Kind:   kind,
		From:   current,
		To:     requested,
		Prompt: promptFor(kind, current, requested),
	}, nil
}

func promptFor(kind ActionKind, from, to models.AppointmentStatus) Prompt {
	switch kind {
	case ActionCreateRecord:
		return Prompt{
			Title:   "Mark appointment as completed",
			Message: fmt.Sprintf("Change status from %s to Completed? You will be asked to enter the medical record for this visit.", from),
		}
	case ActionDeleteRecord:
		return Prompt{
			Title:   "Cancel completed appointment",
			Message: "This appointment is Completed. Cancelling it will delete the medical record created for it. Continue?",
		}
	case ActionEditRecord:
		return Prompt{
			Title:   "Change status of completed appointment",
			Message: fmt.Sprintf("Change status from Completed to %s? You can review and edit the medical record for this visit.", to),
		}
	case ActionDirectStatusChange:
		return Prompt{
			Title:   "Change appointment status",
			Message: fmt.Sprintf("Change status from %s to %s?", from, to),
		}
	default:
		return Prompt{}
	}
}
