package store

import (
	"context"

	"vetclinic-admin-server/internal/models"

	"gorm.io/gorm"
)

// DirectoryStore persists the reference data behind appointments: customers,
// their pets, and the services the clinic offers.
type DirectoryStore struct {
	db *gorm.DB
}

// NewDirectoryStore creates a new DirectoryStore.
func NewDirectoryStore(db *gorm.DB) *DirectoryStore {
	return &DirectoryStore{db: db}
}

// ListCustomers searches customers by name, phone or email.
func (s *DirectoryStore) ListCustomers(ctx context.Context, search string, page Page) (List[models.Customer], error) {
	q := s.db.WithContext(ctx).Model(&models.Customer{})
	if search != "" {
		p := likePattern(search)
		q = q.Where("full_name LIKE ? OR phone LIKE ? OR email LIKE ?", p, p, p)
	}
	list, err := paginate[models.Customer](q, page, "full_name asc")
	return list, wrap("list customers", err)
}

// GetCustomer loads a customer with their pets.
func (s *DirectoryStore) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	var c models.Customer
	if err := s.db.WithContext(ctx).Preload("Pets").First(&c, "id = ?", id).Error; err != nil {
		return nil, wrap("get customer", err)
	}
	return &c, nil
}

// SaveCustomer inserts c when it has no ID and updates it otherwise.
func (s *DirectoryStore) SaveCustomer(ctx context.Context, c *models.Customer) error {
	if c.ID == "" {
		return wrap("create customer", s.db.WithContext(ctx).Omit("Pets").Create(c).Error)
	}
	res := s.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"full_name": c.FullName,
		"phone":     c.Phone,
		"email":     c.Email,
		"address":   c.Address,
	})
	return affected("update customer", res)
}

// DeleteCustomer removes a customer.
func (s *DirectoryStore) DeleteCustomer(ctx context.Context, id string) error {
	return affected("delete customer", s.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id))
}

// ListPets searches pets by name, species or breed, optionally for one customer.
func (s *DirectoryStore) ListPets(ctx context.Context, customerID, search string, page Page) (List[models.Pet], error) {
	q := s.db.WithContext(ctx).Model(&models.Pet{})
	if customerID != "" {
		q = q.Where("customer_id = ?", customerID)
	}
	if search != "" {
		p := likePattern(search)
		q = q.Where("name LIKE ? OR species LIKE ? OR breed LIKE ?", p, p, p)
	}
	list, err := paginate[models.Pet](q, page, "name asc", "Customer")
	return list, wrap("list pets", err)
}

// GetPet loads a pet with its owner.
func (s *DirectoryStore) GetPet(ctx context.Context, id string) (*models.Pet, error) {
	var p models.Pet
	if err := s.db.WithContext(ctx).Preload("Customer").First(&p, "id = ?", id).Error; err != nil {
		return nil, wrap("get pet", err)
	}
	return &p, nil
}

// SavePet inserts p when it has no ID and updates it otherwise.
func (s *DirectoryStore) SavePet(ctx context.Context, p *models.Pet) error {
	if p.ID == "" {
		return wrap("create pet", s.db.WithContext(ctx).Omit("Customer", "MedicalHistory").Create(p).Error)
	}
	res := s.db.WithContext(ctx).Model(&models.Pet{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"customer_id": p.CustomerID,
		"name":        p.Name,
		"species":     p.Species,
		"breed":       p.Breed,
		"birth_date":  p.BirthDate,
	})
	return affected("update pet", res)
}

// DeletePet removes a pet.
func (s *DirectoryStore) DeletePet(ctx context.Context, id string) error {
	return affected("delete pet", s.db.WithContext(ctx).Delete(&models.Pet{}, "id = ?", id))
}

// ListServices searches services by name.
func (s *DirectoryStore) ListServices(ctx context.Context, search string, page Page) (List[models.Service], error) {
	q := s.db.WithContext(ctx).Model(&models.Service{})
	if search != "" {
		q = q.Where("name LIKE ?", likePattern(search))
	}
	list, err := paginate[models.Service](q, page, "name asc")
	return list, wrap("list services", err)
}

// GetService loads one service.
func (s *DirectoryStore) GetService(ctx context.Context, id string) (*models.Service, error) {
	var svc models.Service
	if err := s.db.WithContext(ctx).First(&svc, "id = ?", id).Error; err != nil {
		return nil, wrap("get service", err)
	}
	return &svc, nil
}

// SaveService inserts svc when it has no ID and updates it otherwise.
func (s *DirectoryStore) SaveService(ctx context.Context, svc *models.Service) error {
	if svc.ID == "" {
		return wrap("create service", s.db.WithContext(ctx).Create(svc).Error)
	}
	res := s.db.WithContext(ctx).Model(&models.Service{}).Where("id = ?", svc.ID).Updates(map[string]interface{}{
		"name":        svc.Name,
		"description": svc.Description,
		"price":       svc.Price,
	})
	return affected("update service", res)
}

// DeleteService removes a service.
func (s *DirectoryStore) DeleteService(ctx context.Context, id string) error {
	return affected("delete service", s.db.WithContext(ctx).Delete(&models.Service{}, "id = ?", id))
}
