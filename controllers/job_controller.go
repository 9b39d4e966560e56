package controllers

import (
	"net/http"

	"github.com/crewdesk/crewdesk-api/middleware"
	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/gin-gonic/gin"
)

// JobController serves /api/v1/jobs
type JobController struct {
	jobs *services.JobService
}

// NewJobController creates the job handlers
func NewJobController(jobs *services.JobService) *JobController {
	return &JobController{jobs: jobs}
}

// List handles GET /api/v1/jobs?date=YYYY-MM-DD[&staff_id=] - the day's schedule, today by default
func (ctl *JobController) List(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	var jobs []models.Job
	var err error
	staffID := c.Query("staff_id")
	if staffID == "" {
		jobs, err = ctl.jobs.ListByDate(c.Request.Context(), date)
	} else {
		jobs, err = ctl.jobs.ListAssigned(c.Request.Context(), date, staffID)
	}
	if err != nil {
		handleServiceError(c, err, "load jobs")
		return
	}

	extra := gin.H{"date": date.Format(utils.DateLayout)}
	if staffID != "" {
		extra["staff_id"] = staffID
	}
	respondList(c, jobs, len(jobs), "No jobs scheduled for "+utils.FormatLongDate(date), extra)
}

// Get handles GET /api/v1/jobs/:id
func (ctl *JobController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	job, err := ctl.jobs.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "load job")
		return
	}
	respondData(c, http.StatusOK, job)
}

// Create handles POST /api/v1/jobs
func (ctl *JobController) Create(c *gin.Context) {
	var req services.JobInput
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.GetUserID(c)

	job, err := ctl.jobs.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "create job")
		return
	}
	respondData(c, http.StatusCreated, job)
}

// Update handles PUT /api/v1/jobs/:id, including status changes
func (ctl *JobController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.JobInput
	if !bindJSON(c, &req) {
		return
	}

	job, err := ctl.jobs.Update(c.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c, err, "update job")
		return
	}
	respondData(c, http.StatusOK, job)
}
