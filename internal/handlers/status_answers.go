package handlers

import (
	"context"

	"vetclinic-admin-server/internal/workflow"
)

// requestAnswers plays the confirmation dialog and record editor for a status
// change submitted over HTTP: the request body already holds the user's
// answers. It remembers what it was asked so the response can show it.
type requestAnswers struct {
	confirm bool
	record  *workflow.RecordInput

	prompt *workflow.Prompt
	form   *workflow.RecordForm
}

func (a *requestAnswers) Confirm(ctx context.Context, p workflow.Prompt) bool {
	a.prompt = &p
	return a.confirm
}

func (a *requestAnswers) EditRecord(ctx context.Context, form workflow.RecordForm) (workflow.RecordInput, bool) {
	a.form = &form
	if a.record == nil {
		return workflow.RecordInput{}, false
	}
	return *a.record, true
}
