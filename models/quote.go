package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quote is a priced estimate offered to a customer, optionally for a specific job
type Quote struct {
	ID              uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	JobID           *uuid.UUID       `gorm:"type:uuid;index" json:"job_id"`
	Job             *Job             `gorm:"foreignKey:JobID" json:"-"`
	CustomerID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer        *Customer        `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	QuoteNumber     string           `gorm:"uniqueIndex;not null" json:"quote_number"`
	Status          QuoteStatus      `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	EstimatedAmount decimal.Decimal  `gorm:"type:numeric(12,2);not null" json:"estimated_amount"`
	ActualAmount    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"actual_amount"`
	LaborCost       *decimal.Decimal `gorm:"type:numeric(12,2)" json:"labor_cost"`
	DisposalCost    *decimal.Decimal `gorm:"type:numeric(12,2)" json:"disposal_cost"`
	DistanceFee     *decimal.Decimal `gorm:"type:numeric(12,2)" json:"distance_fee"`
	Notes           *string          `gorm:"type:text" json:"notes"`
	ValidUntil      *datatypes.Date  `json:"valid_until"`
	SentAt          *time.Time       `json:"sent_at"`
	AcceptedAt      *time.Time       `json:"accepted_at"`
	CreatedBy       *string          `gorm:"index" json:"created_by"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// TableName specifies the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}

// BeforeCreate generates a UUID and fills defaults before inserting a quote
func (q *Quote) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	if q.Status == "" {
		q.Status = QuoteDraft
	}
	return nil
}

// Validate checks required fields and that no amount is negative
func (q *Quote) Validate() error {
	verr := &ValidationError{}
	if q.CustomerID == uuid.Nil {
		verr.Add("customer_id", "Customer is required")
	}
	if q.EstimatedAmount.IsNegative() {
		verr.Add("estimated_amount", "Estimated amount cannot be negative")
	}
	if q.Status != "" && !q.Status.IsValid() {
		verr.Add("status", "Unknown quote status")
	}
	for field, amount := range map[string]*decimal.Decimal{
		"actual_amount": q.ActualAmount,
		"labor_cost":    q.LaborCost,
		"disposal_cost": q.DisposalCost,
		"distance_fee":  q.DistanceFee,
	} {
		if amount != nil && amount.IsNegative() {
			verr.Add(field, "Amount cannot be negative")
		}
	}
	return verr.Err()
}

// ApplyStatus moves the quote to next, stamping sent_at and accepted_at on first entry
func (q *Quote) ApplyStatus(next QuoteStatus, now time.Time) error {
	if q.Status != "" && !q.Status.CanTransitionTo(next) {
		return &TransitionError{Entity: "quote", From: string(q.Status), To: string(next)}
	}
	q.Status = next

	switch next {
	case QuoteSent:
		if q.SentAt == nil {
			q.SentAt = &now
		}
	case QuoteAccepted:
		if q.SentAt == nil {
			q.SentAt = &now
		}
		if q.AcceptedAt == nil {
			q.AcceptedAt = &now
		}
	}
	return nil
}
