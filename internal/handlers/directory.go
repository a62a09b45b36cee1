package handlers

import (
	"context"

	"vetclinic-admin-server/internal/models"
	"vetclinic-admin-server/internal/store"
	"vetclinic-admin-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// DirectoryRepository is the customer, pet and service persistence the
// handler needs.
type DirectoryRepository interface {
	ListCustomers(ctx context.Context, search string, page store.Page) (store.List[models.Customer], error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
	SaveCustomer(ctx context.Context, c *models.Customer) error
	DeleteCustomer(ctx context.Context, id string) error

	ListPets(ctx context.Context, customerID, search string, page store.Page) (store.List[models.Pet], error)
	GetPet(ctx context.Context, id string) (*models.Pet, error)
	SavePet(ctx context.Context, p *models.Pet) error
	DeletePet(ctx context.Context, id string) error

	ListServices(ctx context.Context, search string, page store.Page) (store.List[models.Service], error)
	GetService(ctx context.Context, id string) (*models.Service, error)
	SaveService(ctx context.Context, svc *models.Service) error
	DeleteService(ctx context.Context, id string) error
}

// DirectoryHandler handles customers, their pets and the service catalogue.
type DirectoryHandler struct {
	Directory DirectoryRepository
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(directory DirectoryRepository) *DirectoryHandler {
	return &DirectoryHandler{Directory: directory}
}

// CustomerRequest represents the request body for writing a customer.
type CustomerRequest struct {
	FullName string `json:"fullName" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email"`
	Address  string `json:"address"`
}

// GetCustomers lists customers matching ?search.
func (h *DirectoryHandler) GetCustomers(c *gin.Context) {
	list, err := h.Directory.ListCustomers(c.Request.Context(), c.Query("search"), pageFromQuery(c))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, "Customers fetched successfully", list)
}

// GetCustomerByID handles fetching a customer with their pets.
func (h *DirectoryHandler) GetCustomerByID(c *gin.Context) {
	id, ok := idParam(c, "id", "Customer")
	if !ok {
		return
	}
	customer, err := h.Directory.GetCustomer(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, "Customer", err)
		return
	}
	utils.Success(c, "Customer fetched successfully", customer)
}

// CreateCustomer handles registering a customer.
func (h *DirectoryHandler) CreateCustomer(c *gin.Context) {
	var req CustomerRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	customer := &models.Customer{FullName: req.FullName, Phone: req.Phone, Email: req.Email, Address: req.Address}
	if err := h.Directory.SaveCustomer(c.Request.Context(), customer); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Created(c, "Customer created successfully", customer)
}

// UpdateCustomer handles editing a customer.
func (h *DirectoryHandler) UpdateCustomer(c *gin.Context) {
	id, ok := idParam(c, "id", "Customer")
	if !ok {
		return
	}
	var req CustomerRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	customer := &models.Customer{FullName: req.FullName, Phone: req.Phone, Email: req.Email, Address: req.Address}
	customer.ID = id
	if err := h.Directory.SaveCustomer(c.Request.Context(), customer); err != nil {
		respondStoreError(c, "Customer", err)
		return
	}
	utils.Success(c, "Customer updated successfully", customer)
}

// DeleteCustomer handles removing a customer.
func (h *DirectoryHandler) DeleteCustomer(c *gin.Context) {
	id, ok := idParam(c, "id", "Customer")
	if !ok {
		return
	}
	if err := h.Directory.DeleteCustomer(c.Request.Context(), id); err != nil {
		respondStoreError(c, "Customer", err)
		return
	}
	utils.Success(c, "Customer deleted successfully", nil)
}

// PetRequest represents the request body for writing a pet.
type PetRequest struct {
	CustomerID string `json:"customerId" binding:"required,uuid"`
	Name       string `json:"name" binding:"required"`
	Species    string `json:"species" binding:"required"`
	Breed      string `json:"breed"`
	BirthDate  string `json:"birthDate"`
}

func (r PetRequest) toModel() (*models.Pet, error) {
	pet := &models.Pet{CustomerID: r.CustomerID, Name: r.Name, Species: r.Species, Breed: r.Breed}
	if r.BirthDate != "" {
		date, err := parseDate(r.BirthDate)
		if err != nil {
			return nil, err
		}
		pet.BirthDate = &date
	}
	return pet, nil
}

// GetPets lists pets matching ?search, optionally for ?customerId.
func (h *DirectoryHandler) GetPets(c *gin.Context) {
	list, err := h.Directory.ListPets(c.Request.Context(), c.Query("customerId"), c.Query("search"), pageFromQuery(c))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, "Pets fetched successfully", list)
}

// GetPetByID handles fetching a pet with its owner.
func (h *DirectoryHandler) GetPetByID(c *gin.Context) {
	id, ok := idParam(c, "id", "Pet")
	if !ok {
		return
	}
	pet, err := h.Directory.GetPet(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, "Pet", err)
		return
	}
	utils.Success(c, "Pet fetched successfully", pet)
}

// CreatePet handles registering a pet for an existing customer.
func (h *DirectoryHandler) CreatePet(c *gin.Context) {
	var req PetRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	pet, err := req.toModel()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	if _, err := h.Directory.GetCustomer(c.Request.Context(), req.CustomerID); err != nil {
		respondStoreError(c, "Customer", err)
		return
	}
	if err := h.Directory.SavePet(c.Request.Context(), pet); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Created(c, "Pet created successfully", pet)
}

// UpdatePet handles editing a pet.
func (h *DirectoryHandler) UpdatePet(c *gin.Context) {
	id, ok := idParam(c, "id", "Pet")
	if !ok {
		return
	}
	var req PetRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	pet, err := req.toModel()
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}
	pet.ID = id
	if err := h.Directory.SavePet(c.Request.Context(), pet); err != nil {
		respondStoreError(c, "Pet", err)
		return
	}
	utils.Success(c, "Pet updated successfully", pet)
}

// DeletePet handles removing a pet.
func (h *DirectoryHandler) DeletePet(c *gin.Context) {
	id, ok := idParam(c, "id", "Pet")
	if !ok {
		return
	}
	if err := h.Directory.DeletePet(c.Request.Context(), id); err != nil {
		respondStoreError(c, "Pet", err)
		return
	}
	utils.Success(c, "Pet deleted successfully", nil)
}

// ServiceRequest represents the request body for writing a service.
type ServiceRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"gte=0"`
}

// GetServices lists services matching ?search.
func (h *DirectoryHandler) GetServices(c *gin.Context) {
	list, err := h.Directory.ListServices(c.Request.Context(), c.Query("search"), pageFromQuery(c))
	if err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Success(c, "Services fetched successfully", list)
}

// GetServiceByID handles fetching a service.
func (h *DirectoryHandler) GetServiceByID(c *gin.Context) {
	id, ok := idParam(c, "id", "Service")
	if !ok {
		return
	}
	svc, err := h.Directory.GetService(c.Request.Context(), id)
	if err != nil {
		respondStoreError(c, "Service", err)
		return
	}
	utils.Success(c, "Service fetched successfully", svc)
}

// CreateService handles adding a service to the catalogue.
func (h *DirectoryHandler) CreateService(c *gin.Context) {
	var req ServiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	svc := &models.Service{Name: req.Name, Description: req.Description, Price: req.Price}
	if err := h.Directory.SaveService(c.Request.Context(), svc); err != nil {
		utils.InternalServerError(c, err.Error())
		return
	}
	utils.Created(c, "Service created successfully", svc)
}

// UpdateService handles editing a service.
func (h *DirectoryHandler) UpdateService(c *gin.Context) {
	id, ok := idParam(c, "id", "Service")
	if !ok {
		return
	}
	var req ServiceRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}
	svc := &models.Service{Name: req.Name, Description: req.Description, Price: req.Price}
	svc.ID = id
	if err := h.Directory.SaveService(c.Request.Context(), svc); err != nil {
		respondStoreError(c, "Service", err)
		return
	}
	utils.Success(c, "Service updated successfully", svc)
}

// DeleteService handles removing a service.
func (h *DirectoryHandler) DeleteService(c *gin.Context) {
	id, ok := idParam(c, "id", "Service")
	if !ok {
		return
	}
	if err := h.Directory.DeleteService(c.Request.Context(), id); err != nil {
		respondStoreError(c, "Service", err)
		return
	}
	utils.Success(c, "Service deleted successfully", nil)
}
