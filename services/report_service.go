package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/shopspring/decimal"
)

// DashboardRecentJobs is how many jobs the dashboard lists
const DashboardRecentJobs = 5

// ReportService answers revenue questions through the get_revenue_summary function
type ReportService struct {
	reporter RevenueReporter
	invoices *InvoiceService
}

// NewReportService creates a report service
func NewReportService(reporter RevenueReporter, invoices *InvoiceService) *ReportService {
	return &ReportService{reporter: reporter, invoices: invoices}
}

// Revenue returns the summary for start..end inclusive
func (s *ReportService) Revenue(ctx context.Context, start, end time.Time) (*models.RevenueSummary, error) {
	if start.After(end) {
		verr := &models.ValidationError{}
		verr.Add("start_date", "Start date must not be after end date")
		return nil, verr
	}
	summary, err := s.reporter.RevenueSummary(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRPC, err)
	}
	return summary, nil
}

// Export writes the revenue workbook for start..end to w
func (s *ReportService) Export(ctx context.Context, w io.Writer, start, end time.Time) error {
	summary, err := s.Revenue(ctx, start, end)
	if err != nil {
		return err
	}
	invoices, err := s.invoices.ListBetween(ctx, start, end)
	if err != nil {
		return err
	}
	return WriteRevenueWorkbook(w, start, end, summary, invoices)
}

// Dashboard is the landing page snapshot
type Dashboard struct {
	TotalCustomers int64                 `json:"total_customers"`
	JobsToday      int64                 `json:"jobs_today"`
	JobsThisWeek   int64                 `json:"jobs_this_week"`
	WeekStart      string                `json:"week_start"`
	WeekEnd        string                `json:"week_end"`
	WeekRevenue    models.RevenueSummary `json:"week_revenue"`
	RecentJobs     []models.Job          `json:"recent_jobs"`
}

// DashboardService gathers the dashboard counts
type DashboardService struct {
	customers *CustomerService
	jobs      *JobService
	reporter  RevenueReporter
	now       func() time.Time
}

// NewDashboardService creates a dashboard service
func NewDashboardService(customers *CustomerService, jobs *JobService, reporter RevenueReporter) *DashboardService {
	return &DashboardService{customers: customers, jobs: jobs, reporter: reporter, now: systemClock}
}

// Load builds the dashboard. A failing revenue function yields a zero summary rather than an error.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	today := utils.DateOf(s.now())
	weekStart, weekEnd := utils.WeekBounds(today)

	total, err := s.customers.Count(ctx)
	if err != nil {
		return nil, err
	}
	jobsToday, err := s.jobs.CountBetween(ctx, today, today)
	if err != nil {
		return nil, err
	}
	jobsWeek, err := s.jobs.CountBetween(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	recent, err := s.jobs.Recent(ctx, DashboardRecentJobs)
	if err != nil {
		return nil, err
	}

	revenue := models.RevenueSummary{
		TotalInvoiced:      decimal.Zero,
		TotalPaid:          decimal.Zero,
		OutstandingBalance: decimal.Zero,
	}
	if summary, err := s.reporter.RevenueSummary(ctx, weekStart, weekEnd); err != nil {
		log.Printf("Dashboard revenue summary failed: %v", err)
	} else if summary != nil {
		revenue = *summary
	}

	return &Dashboard{
		TotalCustomers: total,
		JobsToday:      jobsToday,
		JobsThisWeek:   jobsWeek,
		WeekStart:      weekStart.Format(utils.DateLayout),
		WeekEnd:        weekEnd.Format(utils.DateLayout),
		WeekRevenue:    revenue,
		RecentJobs:     recent,
	}, nil
}
