package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer represents a person or business the crew does work for
type Customer struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	FirstName      string         `gorm:"not null" json:"first_name"`
	LastName       string         `gorm:"not null;index" json:"last_name"`
	Email          *string        `json:"email"`
	Phone          string         `gorm:"not null" json:"phone"`
	SecondaryPhone *string        `json:"secondary_phone"`
	AddressLine1   string         `gorm:"column:address_line1;not null" json:"address_line1"`
	AddressLine2   *string        `gorm:"column:address_line2" json:"address_line2"`
	City           string         `gorm:"not null" json:"city"`
	State          string         `gorm:"not null" json:"state"`
	PostalCode     string         `gorm:"not null" json:"postal_code"`
	Country        string         `gorm:"not null;default:'USA'" json:"country"`
	Notes          *string        `gorm:"type:text" json:"notes"`
	Status         CustomerStatus `gorm:"type:varchar(16);not null;default:'active'" json:"status"`
	CreatedBy      *string        `gorm:"index" json:"created_by"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate generates a UUID and fills defaults before inserting a customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Country == "" {
		c.Country = "USA"
	}
	if c.Status == "" {
		c.Status = CustomerActive
	}
	return nil
}

// Validate checks the fields every stored customer must carry
func (c *Customer) Validate() error {
	verr := &ValidationError{}
	verr.Require("first_name", "First name", c.FirstName)
	verr.Require("last_name", "Last name", c.LastName)
	verr.Require("phone", "Phone", c.Phone)
	verr.Require("address_line1", "Address", c.AddressLine1)
	verr.Require("city", "City", c.City)
	verr.Require("state", "State", c.State)
	verr.Require("postal_code", "Postal code", c.PostalCode)
	if c.Status != "" && !c.Status.IsValid() {
		verr.Add("status", "Status must be one of active, inactive, blocked")
	}
	return verr.Err()
}

// FullName joins first and last name for display
func (c *Customer) FullName() string {
	return c.FirstName + " " + c.LastName
}
