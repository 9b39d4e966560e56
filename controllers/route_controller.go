package controllers

import (
	"net/http"

	"github.com/crewdesk/crewdesk-api/middleware"
	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/gin-gonic/gin"
)

// RouteController serves /api/v1/routes
type RouteController struct {
	routes *services.RouteService
}

// NewRouteController creates the route handlers
func NewRouteController(routes *services.RouteService) *RouteController {
	return &RouteController{routes: routes}
}

// List handles GET /api/v1/routes?date=YYYY-MM-DD[&staff_id=] - today by default
func (ctl *RouteController) List(c *gin.Context) {
	date, ok := queryDate(c, "date")
	if !ok {
		return
	}

	var routes []models.Route
	var err error
	staffID := c.Query("staff_id")
	if staffID == "" {
		routes, err = ctl.routes.ListByDate(c.Request.Context(), date)
	} else {
		routes, err = ctl.routes.ListAssigned(c.Request.Context(), date, staffID)
	}
	if err != nil {
		handleServiceError(c, err, "load routes")
		return
	}

	extra := gin.H{"date": date.Format(utils.DateLayout)}
	if staffID != "" {
		extra["staff_id"] = staffID
	}
	respondList(c, routes, len(routes), "No routes for "+utils.FormatLongDate(date), extra)
}

// Get handles GET /api/v1/routes/:id
func (ctl *RouteController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	route, err := ctl.routes.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "load route")
		return
	}
	respondData(c, http.StatusOK, route)
}

// Create handles POST /api/v1/routes
func (ctl *RouteController) Create(c *gin.Context) {
	var req services.RouteInput
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.GetUserID(c)

	route, err := ctl.routes.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "create route")
		return
	}
	respondData(c, http.StatusCreated, route)
}

// Update handles PUT /api/v1/routes/:id
func (ctl *RouteController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.RouteInput
	if !bindJSON(c, &req) {
		return
	}

	route, err := ctl.routes.Update(c.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c, err, "update route")
		return
	}
	respondData(c, http.StatusOK, route)
}
