package handlers

import (
	"context"
	"strings"

	"vetclinic-admin-server/internal/models"
	"vetclinic-admin-server/internal/store"
	"vetclinic-admin-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// MedicalHistoryRepository is the medical history persistence the handler needs.
type MedicalHistoryRepository interface {
	ListPageByPet(ctx context.Context, petID string, page store.Page) (store.List[models.MedicalHistory], error)
	Get(ctx context.Context, id string) (*models.MedicalHistory, error)
	Create(ctx context.Context, rec *models.MedicalHistory) error
	Update(ctx context.Context, id string, rec *models.MedicalHistory) error
	Delete(ctx context.Context, id string) error
}

// MedicalHistoryHandler handles a pet's medical history outside the status workflow.
type MedicalHistoryHandler struct {
	Histories MedicalHistoryRepository
}

// NewMedicalHistoryHandler creates a new MedicalHistoryHandler.
func NewMedicalHistoryHandler(histories MedicalHistoryRepository) *MedicalHistoryHandler {
	return &MedicalHistoryHandler{Histories: histories}
}

// MedicalHistoryRequest represents the request body for writing a record.
type MedicalHistoryRequest struct {
	PetID       string `json:"petId" binding:"required,uuid"`
	RecordDate  string `json:"recordDate" binding:"required"`
	Description string `json:"description" binding:"required"`
	Treatment   string `json:"treatment" binding:"required"`
	Notes       string `json:"notes"`
}

func (r MedicalHistoryRequest) toModel() (*models.MedicalHistory, error) {
	date, err := parseDate(r.RecordDate)
	if err != nil {
		return nil, err
	}
	return &models.MedicalHistory{
		PetID:       r.PetID,
		RecordDate:  date,
		Description: strings.TrimSpace(r.Description),
		Treatment:   strings.TrimSpace(r.Treatment),
		Notes:       r.Notes,
	}, nil
}

// GetPetMedicalHistory lists a pet's records, most recent first.
func (h *MedicalHistoryHandler) GetPetMedicalHistory(c *gin.Context) {
	petID, ok := idParam(c, "id", "Pet")
	if !ok {
		return
	}

	list, err := h.Histories.ListPageByPet(c.Request.Context(), petID, pageFromQuery(c))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, "Medical history fetched successfully", list)
}

// GetMedicalHistoryByID handles fetching a single record.
func (h *MedicalHistoryHandler) GetMedicalHistoryByID(c *gin.Context) {
	id, ok := idParam(c, "id", "Medical record")
	if !ok {
		return
	}

	rec, err := h.Histories.Get(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, "Medical record", err)
		return
	}
	utils.Success(c, "Medical record fetched successfully", rec)
}

// CreateMedicalHistory handles adding a record by hand.
func (h *MedicalHistoryHandler) CreateMedicalHistory(c *gin.Context) {
	var req MedicalHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	rec, err := req.toModel()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Histories.Create(c.Request.Context(), rec); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Created(c, "Medical record created successfully", rec)
}

// UpdateMedicalHistory handles correcting a record.
func (h *MedicalHistoryHandler) UpdateMedicalHistory(c *gin.Context) {
	id, ok := idParam(c, "id", "Medical record")
	if !ok {
		return
	}

	var req MedicalHistoryRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	rec, err := req.toModel()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	if err := h.Histories.Update(c.Request.Context(), id, rec); err != nil {
		respondStoreError(c, "Medical record", err)
		return
	}
	utils.Success(c, "Medical record updated successfully", rec)
}

// DeleteMedicalHistory handles removing a record.
func (h *MedicalHistoryHandler) DeleteMedicalHistory(c *gin.Context) {
	id, ok := idParam(c, "id", "Medical record")
	if !ok {
		return
	}

	if err := h.Histories.Delete(c.Request.Context(), id); err != nil {
		respondStoreError(c, "Medical record", err)
		return
	}
	utils.Success(c, "Medical record deleted successfully", nil)
}
