package services

import (
	"context"
	"sync"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
)

// MockCustomerSearcher records search terms and returns canned results
type MockCustomerSearcher struct {
	Results []models.Customer
	Err     error

	mu    sync.Mutex
	terms []string
}

// SearchCustomers records term and returns the canned results
func (m *MockCustomerSearcher) SearchCustomers(ctx context.Context, term string) ([]models.Customer, error) {
	m.mu.Lock()
	m.terms = append(m.terms, term)
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Results, nil
}

// Terms returns every term searched so far
func (m *MockCustomerSearcher) Terms() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.terms...)
}

// RevenueCall is one recorded RevenueSummary invocation
type RevenueCall struct {
	Start time.Time
	End   time.Time
}

// MockRevenueReporter records ranges and returns a canned summary
type MockRevenueReporter struct {
	Summary models.RevenueSummary
	Err     error

	mu    sync.Mutex
	calls []RevenueCall
}

// RevenueSummary records the range and returns the canned summary
func (m *MockRevenueReporter) RevenueSummary(ctx context.Context, start, end time.Time) (*models.RevenueSummary, error) {
	m.mu.Lock()
	m.calls = append(m.calls, RevenueCall{Start: start, End: end})
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	summary := m.Summary
	return &summary, nil
}

// Calls returns every recorded range
func (m *MockRevenueReporter) Calls() []RevenueCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]RevenueCall(nil), m.calls...)
}
