package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound matches every NotFoundError
	ErrNotFound = errors.New("record not found")
	// ErrOverpayment is returned when a payment would push paid above the invoice total
	ErrOverpayment = errors.New("payment exceeds the invoice balance")
	// ErrInvoiceCancelled is returned when paying or editing a cancelled invoice
	ErrInvoiceCancelled = errors.New("invoice is cancelled")
	// ErrStorage wraps failures from the photo object store
	ErrStorage = errors.New("photo storage failed")
	// ErrRPC wraps failures from the search_customers and get_revenue_summary functions
	ErrRPC = errors.New("database function failed")
	// ErrUserExists is returned when a profile already exists for the subject or email
	ErrUserExists = errors.New("a user with this id or email already exists")
)

// NotFoundError names the entity that could not be loaded
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is lets errors.Is(err, ErrNotFound) match
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Code returns the error code for responses, e.g. CUSTOMER_NOT_FOUND
func (e *NotFoundError) Code() string {
	return strings.ToUpper(strings.ReplaceAll(e.Entity, " ", "_")) + "_NOT_FOUND"
}

func notFound(entity string) error {
	return &NotFoundError{Entity: entity}
}
