package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

func setupReportRouter(t *testing.T, db *gorm.DB, reporter services.RevenueReporter) *gin.Engine {
	t.Helper()
	numberer := testNumberer(t)
	invoices := services.NewInvoiceService(db, numberer)
	customers := services.NewCustomerService(db, &services.MockCustomerSearcher{})
	jobs := services.NewJobService(db, numberer)

	ctl := NewReportController(
		services.NewReportService(reporter, invoices),
		services.NewDashboardService(customers, jobs, reporter),
	)
	router := setupTestRouter()
	router.GET("/reports/revenue", ctl.Revenue)
	router.GET("/reports/revenue/export", ctl.Export)
	router.GET("/dashboard", ctl.Dashboard)
	return router
}

func TestRevenueReport(t *testing.T) {
	db := setupTestDB(t)
	reporter := &services.MockRevenueReporter{Summary: models.RevenueSummary{
		TotalInvoiced:      decimal.RequireFromString("1500.50"),
		TotalPaid:          decimal.RequireFromString("1000"),
		OutstandingBalance: decimal.RequireFromString("500.50"),
		JobCount:           12,
		CompletedJobCount:  9,
	}}
	router := setupReportRouter(t, db, reporter)

	w := doJSON(router, http.MethodGet, "/reports/revenue?start_date=2024-03-01&end_date=2024-03-31", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body struct {
		Data      map[string]interface{} `json:"data"`
		StartDate string                 `json:"start_date"`
		EndDate   string                 `json:"end_date"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "2024-03-01", body.StartDate)
	assert.Equal(t, "2024-03-31", body.EndDate)
	assert.Equal(t, "1500.5", body.Data["total_invoiced"])
	assert.Equal(t, "500.5", body.Data["outstanding_balance"])
	assert.EqualValues(t, 9, body.Data["completed_job_count"])

	calls := reporter.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "2024-03-01", calls[0].Start.Format(utils.DateLayout))
	assert.Equal(t, "2024-03-31", calls[0].End.Format(utils.DateLayout))
}

func TestRevenueReport_DefaultsToCurrentMonth(t *testing.T) {
	db := setupTestDB(t)
	reporter := &services.MockRevenueReporter{}
	router := setupReportRouter(t, db, reporter)

	w := doJSON(router, http.MethodGet, "/reports/revenue", nil)
	require.Equal(t, http.StatusOK, w.Code)

	start, end := utils.MonthBounds(utils.Today())
	calls := reporter.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, start, calls[0].Start)
	assert.Equal(t, end, calls[0].End)
}

func TestRevenueReport_Errors(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		reportErr  error
		wantStatus int
		wantCode   string
		wantField  string
	}{
		{"bad start date", "?start_date=03/01/2024", nil, http.StatusBadRequest, "VALIDATION_ERROR", "start_date"},
		{"bad end date", "?end_date=tomorrow", nil, http.StatusBadRequest, "VALIDATION_ERROR", "end_date"},
		{"start after end", "?start_date=2024-04-01&end_date=2024-03-01", nil, http.StatusBadRequest, "VALIDATION_ERROR", "start_date"},
		{"function failure", "?start_date=2024-03-01&end_date=2024-03-31", errors.New("function get_revenue_summary does not exist"), http.StatusBadGateway, "RPC_ERROR", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupReportRouter(t, setupTestDB(t), &services.MockRevenueReporter{Err: tt.reportErr})

			w := doJSON(router, http.MethodGet, "/reports/revenue"+tt.query, nil)
			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			if tt.wantField != "" {
				assert.Contains(t, resp.Error.Fields, tt.wantField)
			}
		})
	}
}

func TestRevenueExport(t *testing.T) {
	db := setupTestDB(t)
	reporter := &services.MockRevenueReporter{Summary: models.RevenueSummary{TotalInvoiced: decimal.NewFromInt(300)}}
	router := setupReportRouter(t, db, reporter)

	w := doJSON(router, http.MethodGet, "/reports/revenue/export?start_date=2024-03-01&end_date=2024-03-31", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="revenue_2024-03-01_2024-03-31.xlsx"`, w.Header().Get("Content-Disposition"))

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	start, err := f.GetCellValue("Summary", "B2")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", start)
	total, err := f.GetCellValue("Summary", "B5")
	require.NoError(t, err)
	assert.Equal(t, "300", total)
}

func TestRevenueExport_FailureIsJSON(t *testing.T) {
	router := setupReportRouter(t, setupTestDB(t), &services.MockRevenueReporter{Err: errors.New("timeout")})

	w := doJSON(router, http.MethodGet, "/reports/revenue/export", nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Empty(t, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "RPC_ERROR", decode(t, w).Error.Code)
}

func TestDashboard(t *testing.T) {
	db := setupTestDB(t)
	seedCustomer(t, db, "Jane", "Smith")
	seedCustomer(t, db, "Bob", "Jones")
	router := setupReportRouter(t, db, &services.MockRevenueReporter{Err: errors.New("function missing")})

	var dash struct {
		TotalCustomers int64 `json:"total_customers"`
		JobsToday      int64 `json:"jobs_today"`
		WeekRevenue    struct {
			TotalInvoiced string `json:"total_invoiced"`
		} `json:"week_revenue"`
		RecentJobs []models.Job `json:"recent_jobs"`
	}
	w := doJSON(router, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decodeData(t, w, &dash)

	assert.Equal(t, int64(2), dash.TotalCustomers)
	assert.Zero(t, dash.JobsToday)
	assert.Equal(t, "0", dash.WeekRevenue.TotalInvoiced)
	assert.Empty(t, dash.RecentJobs)
}
