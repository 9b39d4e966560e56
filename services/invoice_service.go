package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InvoiceInput carries invoice fields from a create or update form.
// Nil fields are left untouched on update. Status and paid amount are never
// taken from input; they follow from payments and the cancel operation.
type InvoiceInput struct {
	CustomerID     *uuid.UUID       `json:"customer_id"`
	JobID          *uuid.UUID       `json:"job_id"`
	QuoteID        *uuid.UUID       `json:"quote_id"`
	InvoiceNumber  *string          `json:"invoice_number"`
	InvoiceDate    *string          `json:"invoice_date"`
	DueDate        *string          `json:"due_date"`
	Subtotal       *decimal.Decimal `json:"subtotal"`
	TaxAmount      *decimal.Decimal `json:"tax_amount"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	TotalAmount    *decimal.Decimal `json:"total_amount"`
	Notes          *string          `json:"notes"`
}

func (in *InvoiceInput) apply(inv *models.Invoice, verr *models.ValidationError) {
	if in.CustomerID != nil {
		inv.CustomerID = *in.CustomerID
	}
	if in.JobID != nil {
		inv.JobID = optionalID(in.JobID)
	}
	if in.QuoteID != nil {
		inv.QuoteID = optionalID(in.QuoteID)
	}
	if in.InvoiceNumber != nil && *in.InvoiceNumber != "" {
		inv.InvoiceNumber = *in.InvoiceNumber
	}
	if in.InvoiceDate != nil {
		if d, ok := parseDateField(verr, "invoice_date", *in.InvoiceDate); ok {
			inv.InvoiceDate = d
		}
	}
	if in.DueDate != nil {
		if d, ok := parseDateField(verr, "due_date", *in.DueDate); ok {
			inv.DueDate = d
		}
	}
	if in.Subtotal != nil {
		inv.Subtotal = *in.Subtotal
	}
	if in.TaxAmount != nil {
		inv.TaxAmount = *in.TaxAmount
	}
	if in.DiscountAmount != nil {
		inv.DiscountAmount = *in.DiscountAmount
	}
	if in.Notes != nil {
		inv.Notes = stringOrNil(in.Notes)
	}
}

// checkTotal rejects a supplied total that disagrees with the invoice components
func (in *InvoiceInput) checkTotal(inv *models.Invoice, verr *models.ValidationError) {
	if in.TotalAmount != nil && !in.TotalAmount.Equal(inv.ComputedTotal()) {
		verr.Add("total_amount", fmt.Sprintf("Total must equal subtotal + tax - discount (%s)", inv.ComputedTotal().StringFixed(2)))
	}
}

func optionalID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}

// PaymentInput carries a payment recorded against an invoice
type PaymentInput struct {
	PaymentMethod   models.PaymentMethod `json:"payment_method"`
	Amount          *decimal.Decimal     `json:"amount"`
	PaymentDate     *string              `json:"payment_date"`
	ReferenceNumber *string              `json:"reference_number"`
	Notes           *string              `json:"notes"`
}

// InvoiceStats summarises an invoice list
type InvoiceStats struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	OverdueCount     int             `json:"overdue_count"`
	TotalCount       int             `json:"total_count"`
}

// ComputeInvoiceStats sums open balances and counts overdue invoices
func ComputeInvoiceStats(invoices []models.Invoice) InvoiceStats {
	stats := InvoiceStats{TotalOutstanding: decimal.Zero, TotalCount: len(invoices)}
	for _, inv := range invoices {
		if inv.Status != models.InvoicePaid && inv.Status != models.InvoiceCancelled {
			stats.TotalOutstanding = stats.TotalOutstanding.Add(inv.BalanceAmount)
		}
		if inv.Status == models.InvoiceOverdue {
			stats.OverdueCount++
		}
	}
	return stats
}

// InvoiceService reads and writes invoices and their payments
type InvoiceService struct {
	db       *gorm.DB
	numberer *Numberer
	now      func() time.Time
}

// NewInvoiceService creates an invoice service; numberer fills in missing invoice numbers
func NewInvoiceService(db *gorm.DB, numberer *Numberer) *InvoiceService {
	return &InvoiceService{db: db, numberer: numberer, now: systemClock}
}

func (s *InvoiceService) today() time.Time {
	return utils.DateOf(s.now())
}

// List returns all invoices by invoice date, newest first, with customer names
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer", withCustomerName).
		Order("invoice_date DESC").
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return invoices, nil
}

// ListBetween returns invoices dated from start to end inclusive, oldest first
func (s *InvoiceService) ListBetween(ctx context.Context, start, end time.Time) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer", withCustomerName).
		Where("invoice_date >= ? AND invoice_date <= ?", datatypes.Date(start), datatypes.Date(end)).
		Order("invoice_date ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load invoices: %w", err)
	}
	return invoices, nil
}

// Get loads one invoice with its customer and payments
func (s *InvoiceService) Get(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := s.db.WithContext(ctx).
		Preload("Customer").
		Preload("Payments", func(db *gorm.DB) *gorm.DB {
			return db.Order("payment_date DESC").Order("created_at DESC")
		}).
		First(&invoice, "id = ?", id).Error
	if err != nil {
		return nil, lookupErr(err, "invoice")
	}
	return &invoice, nil
}

// Create validates the input, derives totals and status, and inserts an invoice owned by createdBy
func (s *InvoiceService) Create(ctx context.Context, createdBy string, in InvoiceInput) (*models.Invoice, error) {
	verr := &models.ValidationError{}
	if in.Subtotal == nil {
		verr.Add("subtotal", "Subtotal is required")
	}
	if in.DueDate == nil || *in.DueDate == "" {
		verr.Add("due_date", "Due date is required")
	}

	invoice := &models.Invoice{
		InvoiceDate:    datatypes.Date(s.today()),
		TaxAmount:      decimal.Zero,
		DiscountAmount: decimal.Zero,
		PaidAmount:     decimal.Zero,
	}
	in.apply(invoice, verr)
	in.checkTotal(invoice, verr)
	if err := validate(verr, func() error { return invoice.Recalculate(s.today()) }); err != nil {
		return nil, err
	}

	if err := s.checkParents(ctx, invoice); err != nil {
		return nil, err
	}
	if invoice.InvoiceNumber == "" {
		invoice.InvoiceNumber = s.numberer.Next(InvoicePrefix)
	}
	if createdBy != "" {
		invoice.CreatedBy = &createdBy
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}
	return invoice, nil
}

// Update applies the non-nil input fields and re-derives totals, balance and status
func (s *InvoiceService) Update(ctx context.Context, id uuid.UUID, in InvoiceInput) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "invoice")
	}
	if invoice.Status == models.InvoiceCancelled {
		return nil, ErrInvoiceCancelled
	}

	verr := &models.ValidationError{}
	in.apply(&invoice, verr)
	in.checkTotal(&invoice, verr)
	if err := validate(verr, func() error { return invoice.Recalculate(s.today()) }); err != nil {
		return nil, err
	}
	if in.CustomerID != nil || in.JobID != nil || in.QuoteID != nil {
		if err := s.checkParents(ctx, &invoice); err != nil {
			return nil, err
		}
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(&invoice).Error; err != nil {
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}
	return &invoice, nil
}

// Cancel marks an invoice cancelled; cancelling twice is a no-op
func (s *InvoiceService) Cancel(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var invoice models.Invoice
	if err := s.db.WithContext(ctx).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "invoice")
	}
	if invoice.Status == models.InvoiceCancelled {
		return &invoice, nil
	}

	invoice.Status = models.InvoiceCancelled
	if err := s.db.WithContext(ctx).Model(&invoice).Update("status", models.InvoiceCancelled).Error; err != nil {
		return nil, fmt.Errorf("failed to cancel invoice: %w", err)
	}
	return &invoice, nil
}

// RecordPayment inserts a payment and updates the invoice's paid amount, balance and
// status in one transaction. Payments above the remaining balance are rejected.
func (s *InvoiceService) RecordPayment(ctx context.Context, recordedBy string, invoiceID uuid.UUID, in PaymentInput) (*models.Payment, *models.Invoice, error) {
	verr := &models.ValidationError{}
	payment := &models.Payment{
		InvoiceID:       invoiceID,
		PaymentMethod:   in.PaymentMethod,
		PaymentDate:     datatypes.Date(s.today()),
		ReferenceNumber: stringOrNil(in.ReferenceNumber),
		Notes:           stringOrNil(in.Notes),
	}
	if in.Amount == nil {
		verr.Add("amount", "Amount is required")
	} else {
		payment.Amount = *in.Amount
	}
	if in.PaymentDate != nil && *in.PaymentDate != "" {
		if d, ok := parseDateField(verr, "payment_date", *in.PaymentDate); ok {
			payment.PaymentDate = d
		}
	}
	if err := validate(verr, payment.Validate); err != nil {
		return nil, nil, err
	}
	if recordedBy != "" {
		payment.RecordedBy = &recordedBy
	}

	var invoice models.Invoice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&invoice, "id = ?", invoiceID).Error; err != nil {
			return lookupErr(err, "invoice")
		}
		if invoice.Status == models.InvoiceCancelled {
			return ErrInvoiceCancelled
		}
		if invoice.PaidAmount.Add(payment.Amount).GreaterThan(invoice.TotalAmount) {
			return fmt.Errorf("%w: balance is %s", ErrOverpayment, invoice.BalanceAmount.StringFixed(2))
		}

		if err := tx.Create(payment).Error; err != nil {
			return fmt.Errorf("failed to record payment: %w", err)
		}

		invoice.PaidAmount = invoice.PaidAmount.Add(payment.Amount)
		if err := invoice.Recalculate(s.today()); err != nil {
			return err
		}
		return tx.Model(&invoice).Updates(map[string]interface{}{
			"paid_amount":    invoice.PaidAmount,
			"balance_amount": invoice.BalanceAmount,
			"status":         invoice.Status,
		}).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return payment, &invoice, nil
}

// ListPayments returns the payments for an invoice, latest first
func (s *InvoiceService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := s.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("payment_date DESC").
		Order("created_at DESC").
		Find(&payments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}
	return payments, nil
}

// MarkOverdue flags open invoices whose due date is before today and returns how many changed
func (s *InvoiceService) MarkOverdue(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("status IN ?", []models.InvoiceStatus{models.InvoicePending, models.InvoicePartial}).
		Where("due_date < ?", datatypes.Date(s.today())).
		Where("balance_amount > 0").
		Update("status", models.InvoiceOverdue)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func (s *InvoiceService) checkParents(ctx context.Context, invoice *models.Invoice) error {
	if err := ensureExists(ctx, s.db, &models.Customer{}, invoice.CustomerID, "customer"); err != nil {
		return err
	}
	if invoice.JobID != nil {
		if err := ensureExists(ctx, s.db, &models.Job{}, *invoice.JobID, "job"); err != nil {
			return err
		}
	}
	if invoice.QuoteID != nil {
		return ensureExists(ctx, s.db, &models.Quote{}, *invoice.QuoteID, "quote")
	}
	return nil
}
