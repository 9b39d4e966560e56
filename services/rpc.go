package services

import (
	"context"
	"fmt"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/utils"
	"gorm.io/gorm"
)

// CustomerSearcher runs the free-text customer search. Matching rules live in the database.
type CustomerSearcher interface {
	SearchCustomers(ctx context.Context, term string) ([]models.Customer, error)
}

// RevenueReporter aggregates revenue for an inclusive date range
type RevenueReporter interface {
	RevenueSummary(ctx context.Context, start, end time.Time) (*models.RevenueSummary, error)
}

// PostgresRPC calls the search_customers and get_revenue_summary database functions
type PostgresRPC struct {
	db *gorm.DB
}

// NewPostgresRPC creates an RPC caller on db
func NewPostgresRPC(db *gorm.DB) *PostgresRPC {
	return &PostgresRPC{db: db}
}

// SearchCustomers calls search_customers(term)
func (r *PostgresRPC) SearchCustomers(ctx context.Context, term string) ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.WithContext(ctx).Raw("SELECT * FROM search_customers(?)", term).Scan(&customers).Error; err != nil {
		return nil, fmt.Errorf("search_customers failed: %w", err)
	}
	return customers, nil
}

// RevenueSummary calls get_revenue_summary(start_date, end_date)
func (r *PostgresRPC) RevenueSummary(ctx context.Context, start, end time.Time) (*models.RevenueSummary, error) {
	var summary models.RevenueSummary
	err := r.db.WithContext(ctx).
		Raw("SELECT * FROM get_revenue_summary(?, ?)", start.Format(utils.DateLayout), end.Format(utils.DateLayout)).
		Scan(&summary).Error
	if err != nil {
		return nil, fmt.Errorf("get_revenue_summary failed: %w", err)
	}
	return &summary, nil
}
