package controllers

import (
	"net/http"
	"strings"

	"github.com/crewdesk/crewdesk-api/middleware"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
)

const (
	noCustomersMessage      = "No customers yet. Add your first customer!"
	noCustomersFoundMessage = "No customers found"
)

// CustomerController serves /api/v1/customers
type CustomerController struct {
	customers *services.CustomerService
}

// NewCustomerController creates the customer handlers
func NewCustomerController(customers *services.CustomerService) *CustomerController {
	return &CustomerController{customers: customers}
}

// List handles GET /api/v1/customers?search= - a search term goes to search_customers
func (ctl *CustomerController) List(c *gin.Context) {
	search := strings.TrimSpace(c.Query("search"))

	customers, err := ctl.customers.List(c.Request.Context(), search)
	if err != nil {
		handleServiceError(c, err, "load customers")
		return
	}

	empty := noCustomersMessage
	if search != "" {
		empty = noCustomersFoundMessage
	}
	respondList(c, customers, len(customers), empty, gin.H{"search": search})
}

// Get handles GET /api/v1/customers/:id
func (ctl *CustomerController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	customer, err := ctl.customers.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "load customer")
		return
	}
	respondData(c, http.StatusOK, customer)
}

// Create handles POST /api/v1/customers
func (ctl *CustomerController) Create(c *gin.Context) {
	var req services.CustomerInput
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.GetUserID(c)

	customer, err := ctl.customers.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "create customer")
		return
	}
	respondData(c, http.StatusCreated, customer)
}

// Update handles PUT /api/v1/customers/:id
func (ctl *CustomerController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.CustomerInput
	if !bindJSON(c, &req) {
		return
	}

	customer, err := ctl.customers.Update(c.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c, err, "update customer")
		return
	}
	respondData(c, http.StatusOK, customer)
}
