package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerInput carries customer fields from a create or update form.
// Nil fields are left untouched on update.
type CustomerInput struct {
	FirstName      *string                `json:"first_name"`
	LastName       *string                `json:"last_name"`
	Email          *string                `json:"email" binding:"omitempty,optional_email"`
	Phone          *string                `json:"phone"`
	SecondaryPhone *string                `json:"secondary_phone"`
	AddressLine1   *string                `json:"address_line1"`
	AddressLine2   *string                `json:"address_line2"`
	City           *string                `json:"city"`
	State          *string                `json:"state"`
	PostalCode     *string                `json:"postal_code"`
	Country        *string                `json:"country"`
	Notes          *string                `json:"notes"`
	Status         *models.CustomerStatus `json:"status"`
}

func (in *CustomerInput) apply(c *models.Customer) {
	if in.FirstName != nil {
		c.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		c.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		c.Email = stringOrNil(in.Email)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.SecondaryPhone != nil {
		c.SecondaryPhone = stringOrNil(in.SecondaryPhone)
	}
	if in.AddressLine1 != nil {
		c.AddressLine1 = strings.TrimSpace(*in.AddressLine1)
	}
	if in.AddressLine2 != nil {
		c.AddressLine2 = stringOrNil(in.AddressLine2)
	}
	if in.City != nil {
		c.City = strings.TrimSpace(*in.City)
	}
	if in.State != nil {
		c.State = strings.TrimSpace(*in.State)
	}
	if in.PostalCode != nil {
		c.PostalCode = strings.TrimSpace(*in.PostalCode)
	}
	if in.Country != nil && *in.Country != "" {
		c.Country = *in.Country
	}
	if in.Notes != nil {
		c.Notes = stringOrNil(in.Notes)
	}
	if in.Status != nil {
		c.Status = *in.Status
	}
}

// CustomerService reads and writes customers
type CustomerService struct {
	db       *gorm.DB
	searcher CustomerSearcher
}

// NewCustomerService creates a customer service; searcher handles free-text search
func NewCustomerService(db *gorm.DB, searcher CustomerSearcher) *CustomerService {
	return &CustomerService{db: db, searcher: searcher}
}

// List returns every customer by last name, or the search_customers result when search is set
func (s *CustomerService) List(ctx context.Context, search string) ([]models.Customer, error) {
	if term := strings.TrimSpace(search); term != "" {
		customers, err := s.searcher.SearchCustomers(ctx, term)
		if err != nil {
			return nil, fmt.Errorf("%w: search_customers: %v", ErrRPC, err)
		}
		return customers, nil
	}

	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Order("last_name ASC").
		Order("first_name ASC").
		Find(&customers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load customers: %w", err)
	}
	return customers, nil
}

// Get loads one customer
func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "customer")
	}
	return &customer, nil
}

// Count returns the number of customers
func (s *CustomerService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Customer{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// Create validates the input and inserts a customer owned by createdBy
func (s *CustomerService) Create(ctx context.Context, createdBy string, in CustomerInput) (*models.Customer, error) {
	customer := &models.Customer{}
	in.apply(customer)
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	if createdBy != "" {
		customer.CreatedBy = &createdBy
	}

	if err := s.db.WithContext(ctx).Create(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return customer, nil
}

// Update applies the non-nil input fields to an existing customer
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, in CustomerInput) (*models.Customer, error) {
	customer, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	in.apply(customer)
	if err := customer.Validate(); err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Save(customer).Error; err != nil {
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}
	return customer, nil
}
