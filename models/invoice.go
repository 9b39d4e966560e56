package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice bills a customer. Totals, balance and status are kept consistent by Recalculate.
type Invoice struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	JobID          *uuid.UUID      `gorm:"type:uuid;index" json:"job_id"`
	Job            *Job            `gorm:"foreignKey:JobID" json:"-"`
	CustomerID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	Customer       *Customer       `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	QuoteID        *uuid.UUID      `gorm:"type:uuid;index" json:"quote_id"`
	Quote          *Quote          `gorm:"foreignKey:QuoteID" json:"-"`
	InvoiceNumber  string          `gorm:"uniqueIndex;not null" json:"invoice_number"`
	InvoiceDate    datatypes.Date  `gorm:"not null;index" json:"invoice_date"`
	DueDate        datatypes.Date  `gorm:"not null;index" json:"due_date"`
	Status         InvoiceStatus   `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	Subtotal       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"subtotal"`
	TaxAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"tax_amount"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"discount_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	PaidAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"paid_amount"`
	BalanceAmount  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"balance_amount"`
	Notes          *string         `gorm:"type:text" json:"notes"`
	CreatedBy      *string         `gorm:"index" json:"created_by"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	Payments       []Payment       `gorm:"foreignKey:InvoiceID" json:"payments,omitempty"`
}

// TableName specifies the table name for the Invoice model
func (Invoice) TableName() string {
	return "invoices"
}

// BeforeCreate generates a UUID before inserting an invoice
func (inv *Invoice) BeforeCreate(tx *gorm.DB) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	return nil
}

// ComputedTotal is subtotal + tax - discount
func (inv *Invoice) ComputedTotal() decimal.Decimal {
	return inv.Subtotal.Add(inv.TaxAmount).Sub(inv.DiscountAmount)
}

// Recalculate validates the monetary fields, then sets total, balance and status.
// Status derivation compares the due date with today's calendar date.
func (inv *Invoice) Recalculate(today time.Time) error {
	verr := &ValidationError{}
	if inv.CustomerID == uuid.Nil {
		verr.Add("customer_id", "Customer is required")
	}
	if time.Time(inv.DueDate).IsZero() {
		verr.Add("due_date", "Due date is required")
	}
	if inv.Subtotal.IsNegative() {
		verr.Add("subtotal", "Subtotal cannot be negative")
	}
	if inv.TaxAmount.IsNegative() {
		verr.Add("tax_amount", "Tax cannot be negative")
	}
	if inv.DiscountAmount.IsNegative() {
		verr.Add("discount_amount", "Discount cannot be negative")
	}
	if inv.PaidAmount.IsNegative() {
		verr.Add("paid_amount", "Paid amount cannot be negative")
	}

	total := inv.ComputedTotal()
	if total.IsNegative() {
		verr.Add("discount_amount", "Discount cannot exceed subtotal plus tax")
	}
	if inv.PaidAmount.GreaterThan(total) {
		verr.Add("paid_amount", "Paid amount cannot exceed the invoice total")
	}
	if err := verr.Err(); err != nil {
		return err
	}

	inv.TotalAmount = total
	inv.BalanceAmount = total.Sub(inv.PaidAmount)
	inv.Status = DeriveInvoiceStatus(inv.Status, inv.PaidAmount, inv.BalanceAmount, time.Time(inv.DueDate), today)
	return nil
}

// DeriveInvoiceStatus returns the status an invoice should carry.
// Cancelled is sticky; otherwise paid, overdue, partial and pending are checked in that order.
func DeriveInvoiceStatus(current InvoiceStatus, paid, balance decimal.Decimal, dueDate, today time.Time) InvoiceStatus {
	if current == InvoiceCancelled {
		return InvoiceCancelled
	}
	if !balance.IsPositive() {
		return InvoicePaid
	}
	if dateOnly(dueDate).Before(dateOnly(today)) {
		return InvoiceOverdue
	}
	if paid.IsPositive() {
		return InvoicePartial
	}
	return InvoicePending
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
