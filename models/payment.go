package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Payment is money received against an invoice
type Payment struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	InvoiceID       uuid.UUID       `gorm:"type:uuid;not null;index" json:"invoice_id"`
	PaymentMethod   PaymentMethod   `gorm:"type:varchar(16);not null" json:"payment_method"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentDate     datatypes.Date  `gorm:"not null" json:"payment_date"`
	ReferenceNumber *string         `json:"reference_number"`
	Notes           *string         `gorm:"type:text" json:"notes"`
	RecordedBy      *string         `gorm:"index" json:"recorded_by"`
	CreatedAt       time.Time       `json:"created_at"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate generates a UUID before inserting a payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Validate checks the payment on its own; limits against the invoice are checked when recording
func (p *Payment) Validate() error {
	verr := &ValidationError{}
	if p.InvoiceID == uuid.Nil {
		verr.Add("invoice_id", "Invoice is required")
	}
	if !p.PaymentMethod.IsValid() {
		verr.Add("payment_method", "Payment method must be one of cash, check, credit_card, debit_card, bank_transfer, other")
	}
	if !p.Amount.IsPositive() {
		verr.Add("amount", "Amount must be greater than zero")
	}
	return verr.Err()
}
