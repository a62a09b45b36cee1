package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"vetclinic-admin-server/internal/middleware"
	"vetclinic-admin-server/internal/models"
	"vetclinic-admin-server/internal/store"
	"vetclinic-admin-server/internal/utils"
	"vetclinic-admin-server/internal/workflow"

	"github.com/gin-gonic/gin"
)

// AppointmentRepository is the appointment persistence the handler needs.
type AppointmentRepository interface {
	ListAppointments(ctx context.Context, f store.AppointmentFilter) (store.List[models.Appointment], error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	UpdateAppointment(ctx context.Context, appt *models.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
}

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Appointments AppointmentRepository
	Workflow     *workflow.Workflow
	Logger       *log.Logger
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(appointments AppointmentRepository, wf *workflow.Workflow, logger *log.Logger) *AppointmentHandler {
	return &AppointmentHandler{Appointments: appointments, Workflow: wf, Logger: logger}
}

// AppointmentRequest is the body for creating or editing an appointment.
type AppointmentRequest struct {
	PetID     string  `json:"petId" binding:"required,uuid"`
	ServiceID string  `json:"serviceId" binding:"required,uuid"`
	DoctorID  *string `json:"doctorId" binding:"omitempty,uuid"`
	Date      string  `json:"date" binding:"required"`
	Time      string  `json:"time" binding:"required,hhmm"`
	Notes     string  `json:"notes"`
	// Only Pending or Confirmed on creation; ignored on edit.
	Status *models.AppointmentStatus `json:"status"`
}

func (r AppointmentRequest) toModel() (*models.Appointment, error) {
	date, err := parseDate(r.Date)
	if err != nil {
		return nil, err
	}
	appt := &models.Appointment{
		PetID:     r.PetID,
		ServiceID: r.ServiceID,
		Date:      date,
		Time:      r.Time,
		Notes:     r.Notes,
		Status:    models.StatusPending,
	}
	if r.DoctorID != nil && *r.DoctorID != "" {
		appt.DoctorID = r.DoctorID
	}
	return appt, nil
}

// CreateAppointment handles booking a new appointment as Pending or Confirmed.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	appt, err := req.toModel()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if req.Status != nil {
		if *req.Status != models.StatusPending && *req.Status != models.StatusConfirmed {
			utils.BadRequest(c, "New appointments must be Pending or Confirmed")
			return
		}
		appt.Status = *req.Status
	}

	if err := h.Appointments.CreateAppointment(c.Request.Context(), appt); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Created(c, "Appointment created successfully", appt)
}

// GetAppointments lists appointments filtered by status, petId, doctorId and date.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	filter := store.AppointmentFilter{
		PetID:    c.Query("petId"),
		DoctorID: c.Query("doctorId"),
		Page:     pageFromQuery(c),
	}
	if raw := c.Query("status"); raw != "" {
		status, err := models.ParseAppointmentStatus(raw)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("date"); raw != "" {
		date, err := parseDate(raw)
		if err != nil {
			utils.BadRequest(c, err.Error())
			return
		}
		filter.Date = &date
	}

	list, err := h.Appointments.ListAppointments(c.Request.Context(), filter)
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}

	utils.Success(c, "Appointments fetched successfully", list)
}

// GetAppointmentByID handles fetching a single appointment.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	appt, ok := h.loadAppointment(c)
	if !ok {
		return
	}
	utils.Success(c, "Appointment fetched successfully", appt)
}

// UpdateAppointment edits the schedule and notes of an appointment. The status
// can only change through UpdateAppointmentStatus.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := idParam(c, "id", "Appointment")
	if !ok {
		return
	}

	var req AppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	appt, err := req.toModel()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	appt.ID = id

	if err := h.Appointments.UpdateAppointment(c.Request.Context(), appt); err != nil {
		respondStoreError(c, "Appointment", err)
		return
	}

	updated, err := h.Appointments.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, "Appointment", err)
		return
	}
	utils.Success(c, "Appointment updated successfully", updated)
}

// DeleteAppointment removes an appointment. Its medical record, if any, stays.
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := idParam(c, "id", "Appointment")
	if !ok {
		return
	}
	if err := h.Appointments.DeleteAppointment(c.Request.Context(), id); err != nil {
		respondStoreError(c, "Appointment", err)
		return
	}
	utils.Success(c, "Appointment deleted successfully", nil)
}

// PreviewStatusChange returns the confirmation prompt and, where needed, the
// prefilled medical record form for changing to ?status=N.
func (h *AppointmentHandler) PreviewStatusChange(c *gin.Context) {
	requested, err := models.ParseAppointmentStatus(c.Query("status"))
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	appt, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	preview, err := h.Workflow.Preview(c.Request.Context(), appt, requested)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	utils.Success(c, "Status change preview", preview)
}

// MedicalRecordPayload is the medical record entered alongside a status change.
type MedicalRecordPayload struct {
	RecordDate  string `json:"recordDate"`
	Description string `json:"description" binding:"required"`
	Treatment   string `json:"treatment" binding:"required"`
	Notes       string `json:"notes"`
}

func (p *MedicalRecordPayload) toInput() (*workflow.RecordInput, error) {
	if p == nil {
		return nil, nil
	}
	in := &workflow.RecordInput{
		Description: p.Description,
		Treatment:   p.Treatment,
		Notes:       p.Notes,
	}
	if p.RecordDate != "" {
		date, err := parseDate(p.RecordDate)
		if err != nil {
			return nil, err
		}
		in.RecordDate = &date
	}
	return in, nil
}

// UpdateAppointmentStatusRequest carries the requested status and the user's
// answers to the confirmation prompt and the record form.
type UpdateAppointmentStatusRequest struct {
	Status  *models.AppointmentStatus `json:"status" binding:"required"`
	Confirm bool                      `json:"confirm"`
	Record  *MedicalRecordPayload     `json:"record"`
}

// StatusChangeResponse is returned for every status change attempt.
type StatusChangeResponse struct {
	Outcome       workflow.Outcome        `json:"outcome"`
	Appointment   *models.Appointment     `json:"appointment,omitempty"`
	Prompt        *workflow.Prompt        `json:"prompt,omitempty"`
	Form          *workflow.RecordForm    `json:"form,omitempty"`
	Notifications []workflow.Notification `json:"notifications,omitempty"`
}

// UpdateAppointmentStatus runs the appointment status workflow.
func (h *AppointmentHandler) UpdateAppointmentStatus(c *gin.Context) {
	var req UpdateAppointmentStatusRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	if !req.Status.Valid() {
		utils.BadRequest(c, "Status must be 0 (Pending), 1 (Confirmed), 2 (Completed) or 3 (Cancelled)")
		return
	}
	record, err := req.Record.toInput()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	appt, ok := h.loadAppointment(c)
	if !ok {
		return
	}
	if !canChangeRecords(c, appt.Status, *req.Status) {
		utils.Forbidden(c, "Only admins and doctors can change the medical record of an appointment")
		return
	}

	answers := &requestAnswers{confirm: req.Confirm, record: record}
	notes := &workflow.Notifications{Logger: h.Logger}
	outcome, err := h.Workflow.ChangeStatus(c.Request.Context(), appt, *req.Status, workflow.UI{
		Confirmer: answers,
		Editor:    answers,
		Notifier:  notes,
	})

	resp := StatusChangeResponse{
		Outcome:       outcome,
		Appointment:   appt,
		Prompt:        answers.prompt,
		Form:          answers.form,
		Notifications: notes.List(),
	}

	switch {
	case err != nil && errors.Is(err, workflow.ErrInvalidStatus):
		utils.BadRequest(c, err.Error())
	case err != nil:
		// the dashboard refetches the appointment list on this response
		utils.ErrorWithData(c, http.StatusInternalServerError, "Status change failed: "+err.Error(), resp)
	case outcome == workflow.OutcomeNoOp:
		utils.Success(c, "Appointment status unchanged", resp)
	case outcome == workflow.OutcomeDuplicate:
		utils.Conflict(c, "This status change is already being processed")
	case outcome == workflow.OutcomeCancelled && !req.Confirm:
		utils.ErrorWithData(c, http.StatusBadRequest, "Status change was not confirmed", resp)
	case outcome == workflow.OutcomeCancelled:
		utils.UnprocessableEntity(c, "Medical record details are required for this status change", resp)
	default:
		utils.Success(c, "Appointment status updated successfully", resp)
	}
}

// canChangeRecords reports whether the signed-in user may make a status change
// that creates, edits or deletes a medical record. Other changes are open to
// all staff.
func canChangeRecords(c *gin.Context, from, to models.AppointmentStatus) bool {
	action, err := workflow.Plan(from, to)
	if err != nil {
		// invalid codes are rejected by the workflow itself
		return true
	}
	if !action.Kind.NeedsRecordForm() && action.Kind != workflow.ActionDeleteRecord {
		return true
	}
	role, ok := middleware.GetUserRoleFromContext(c)
	return ok && (role == models.RoleAdmin || role == models.RoleDoctor)
}

func (h *AppointmentHandler) loadAppointment(c *gin.Context) (*models.Appointment, bool) {
	id, ok := idParam(c, "id", "Appointment")
	if !ok {
		return nil, false
	}
	appt, err := h.Appointments.GetAppointment(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, "Appointment", err)
		return nil, false
	}
	return appt, true
}
