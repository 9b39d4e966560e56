package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/crewdesk/crewdesk-api/services"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportController serves revenue reports and the dashboard
type ReportController struct {
	reports   *services.ReportService
	dashboard *services.DashboardService
}

// NewReportController creates the report handlers
func NewReportController(reports *services.ReportService, dashboard *services.DashboardService) *ReportController {
	return &ReportController{reports: reports, dashboard: dashboard}
}

// reportRange reads start_date and end_date, defaulting to the current month
func reportRange(c *gin.Context) (time.Time, time.Time, bool) {
	start, end := utils.MonthBounds(utils.Today())
	fields := map[string]string{}

	if raw := c.Query("start_date"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			fields["start_date"] = "Date must be in YYYY-MM-DD format"
		}
		start = d
	}
	if raw := c.Query("end_date"); raw != "" {
		d, err := utils.ParseDate(raw)
		if err != nil {
			fields["end_date"] = "Date must be in YYYY-MM-DD format"
		}
		end = d
	}
	if len(fields) > 0 {
		respondValidation(c, fields)
		return time.Time{}, time.Time{}, false
	}
	return start, end, true
}

// Revenue handles GET /api/v1/reports/revenue?start_date=&end_date=
func (ctl *ReportController) Revenue(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	summary, err := ctl.reports.Revenue(c.Request.Context(), start, end)
	if err != nil {
		handleServiceError(c, err, "load revenue summary")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"data":       summary,
		"start_date": start.Format(utils.DateLayout),
		"end_date":   end.Format(utils.DateLayout),
	})
}

// Export handles GET /api/v1/reports/revenue/export - an XLSX workbook for the range
func (ctl *ReportController) Export(c *gin.Context) {
	start, end, ok := reportRange(c)
	if !ok {
		return
	}

	// Buffer so a failure can still produce a JSON error
	var buf bytes.Buffer
	if err := ctl.reports.Export(c.Request.Context(), &buf, start, end); err != nil {
		handleServiceError(c, err, "export revenue report")
		return
	}

	filename := fmt.Sprintf("revenue_%s_%s.xlsx", start.Format(utils.DateLayout), end.Format(utils.DateLayout))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Dashboard handles GET /api/v1/dashboard
func (ctl *ReportController) Dashboard(c *gin.Context) {
	dashboard, err := ctl.dashboard.Load(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "load dashboard")
		return
	}
	respondData(c, http.StatusOK, dashboard)
}
