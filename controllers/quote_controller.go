package controllers

import (
	"net/http"

	"github.com/crewdesk/crewdesk-api/middleware"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
)

const noQuotesMessage = "No quotes yet. Create your first quote!"

// QuoteController serves /api/v1/quotes
type QuoteController struct {
	quotes *services.QuoteService
}

// NewQuoteController creates the quote handlers
func NewQuoteController(quotes *services.QuoteService) *QuoteController {
	return &QuoteController{quotes: quotes}
}

// List handles GET /api/v1/quotes - newest first
func (ctl *QuoteController) List(c *gin.Context) {
	quotes, err := ctl.quotes.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "load quotes")
		return
	}
	respondList(c, quotes, len(quotes), noQuotesMessage, nil)
}

// Get handles GET /api/v1/quotes/:id
func (ctl *QuoteController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	quote, err := ctl.quotes.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "load quote")
		return
	}
	respondData(c, http.StatusOK, quote)
}

// Create handles POST /api/v1/quotes
func (ctl *QuoteController) Create(c *gin.Context) {
	var req services.QuoteInput
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.GetUserID(c)

	quote, err := ctl.quotes.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "create quote")
		return
	}
	respondData(c, http.StatusCreated, quote)
}

// Update handles PUT /api/v1/quotes/:id
func (ctl *QuoteController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.QuoteInput
	if !bindJSON(c, &req) {
		return
	}

	quote, err := ctl.quotes.Update(c.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c, err, "update quote")
		return
	}
	respondData(c, http.StatusOK, quote)
}
