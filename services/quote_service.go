package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuoteInput carries quote fields from a create or update form.
// Nil fields are left untouched on update.
type QuoteInput struct {
	CustomerID      *uuid.UUID          `json:"customer_id"`
	JobID           *uuid.UUID          `json:"job_id"`
	QuoteNumber     *string             `json:"quote_number"`
	Status          *models.QuoteStatus `json:"status"`
	EstimatedAmount *decimal.Decimal    `json:"estimated_amount"`
	ActualAmount    *decimal.Decimal    `json:"actual_amount"`
	LaborCost       *decimal.Decimal    `json:"labor_cost"`
	DisposalCost    *decimal.Decimal    `json:"disposal_cost"`
	DistanceFee     *decimal.Decimal    `json:"distance_fee"`
	Notes           *string             `json:"notes"`
	ValidUntil      *string             `json:"valid_until"`
}

func (in *QuoteInput) apply(q *models.Quote, verr *models.ValidationError) {
	if in.CustomerID != nil {
		q.CustomerID = *in.CustomerID
	}
	if in.JobID != nil {
		if *in.JobID == uuid.Nil {
			q.JobID = nil
		} else {
			q.JobID = in.JobID
		}
	}
	if in.QuoteNumber != nil && *in.QuoteNumber != "" {
		q.QuoteNumber = *in.QuoteNumber
	}
	if in.EstimatedAmount != nil {
		q.EstimatedAmount = *in.EstimatedAmount
	}
	if in.ActualAmount != nil {
		q.ActualAmount = in.ActualAmount
	}
	if in.LaborCost != nil {
		q.LaborCost = in.LaborCost
	}
	if in.DisposalCost != nil {
		q.DisposalCost = in.DisposalCost
	}
	if in.DistanceFee != nil {
		q.DistanceFee = in.DistanceFee
	}
	if in.Notes != nil {
		q.Notes = stringOrNil(in.Notes)
	}
	if in.ValidUntil != nil {
		if *in.ValidUntil == "" {
			q.ValidUntil = nil
		} else if d, ok := parseDateField(verr, "valid_until", *in.ValidUntil); ok {
			q.ValidUntil = &d
		}
	}
}

// QuoteService reads and writes quotes
type QuoteService struct {
	db       *gorm.DB
	numberer *Numberer
	now      func() time.Time
}

// NewQuoteService creates a quote service; numberer fills in missing quote numbers
func NewQuoteService(db *gorm.DB, numberer *Numberer) *QuoteService {
	return &QuoteService{db: db, numberer: numberer, now: systemClock}
}

func withCustomerName(db *gorm.DB) *gorm.DB {
	return db.Select("id", "first_name", "last_name")
}

// List returns all quotes, newest first, with customer names
func (s *QuoteService) List(ctx context.Context) ([]models.Quote, error) {
	var quotes []models.Quote
	err := s.db.WithContext(ctx).
		Preload("Customer", withCustomerName).
		Order("created_at DESC").
		Find(&quotes).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load quotes: %w", err)
	}
	return quotes, nil
}

// Get loads one quote with its customer
func (s *QuoteService) Get(ctx context.Context, id uuid.UUID) (*models.Quote, error) {
	var quote models.Quote
	if err := s.db.WithContext(ctx).Preload("Customer").First(&quote, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "quote")
	}
	return &quote, nil
}

// Create validates the input and inserts a quote owned by createdBy
func (s *QuoteService) Create(ctx context.Context, createdBy string, in QuoteInput) (*models.Quote, error) {
	verr := &models.ValidationError{}
	if in.EstimatedAmount == nil {
		verr.Add("estimated_amount", "Estimated amount is required")
	}
	quote := &models.Quote{}
	in.apply(quote, verr)

	status := models.QuoteDraft
	if in.Status != nil {
		status = *in.Status
	}
	if status.IsValid() {
		if err := quote.ApplyStatus(status, s.now()); err != nil {
			return nil, err
		}
	} else {
		verr.Add("status", "Unknown quote status")
	}
	if err := validate(verr, quote.Validate); err != nil {
		return nil, err
	}

	if err := s.checkParents(ctx, quote); err != nil {
		return nil, err
	}
	if quote.QuoteNumber == "" {
		quote.QuoteNumber = s.numberer.Next(QuotePrefix)
	}
	if createdBy != "" {
		quote.CreatedBy = &createdBy
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(quote).Error; err != nil {
		return nil, fmt.Errorf("failed to create quote: %w", err)
	}
	return quote, nil
}

// Update applies the non-nil input fields to an existing quote
func (s *QuoteService) Update(ctx context.Context, id uuid.UUID, in QuoteInput) (*models.Quote, error) {
	var quote models.Quote
	if err := s.db.WithContext(ctx).First(&quote, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "quote")
	}

	verr := &models.ValidationError{}
	in.apply(&quote, verr)
	if in.Status != nil {
		if !in.Status.IsValid() {
			verr.Add("status", "Unknown quote status")
		} else if err := quote.ApplyStatus(*in.Status, s.now()); err != nil {
			return nil, err
		}
	}
	if err := validate(verr, quote.Validate); err != nil {
		return nil, err
	}
	if in.CustomerID != nil || in.JobID != nil {
		if err := s.checkParents(ctx, &quote); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&quote).Error; err != nil {
		return nil, fmt.Errorf("failed to update quote: %w", err)
	}
	return &quote, nil
}

func (s *QuoteService) checkParents(ctx context.Context, quote *models.Quote) error {
	if err := ensureExists(ctx, s.db, &models.Customer{}, quote.CustomerID, "customer"); err != nil {
		return err
	}
	if quote.JobID != nil {
		return ensureExists(ctx, s.db, &models.Job{}, *quote.JobID, "job")
	}
	return nil
}
