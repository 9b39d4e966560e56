package controllers

import (
	"net/http"

	"github.com/crewdesk/crewdesk-api/middleware"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	noInvoicesMessage = "No invoices yet. Create your first invoice!"
	noPaymentsMessage = "No payments recorded"
)

// InvoiceController serves /api/v1/invoices and the payments recorded against them
type InvoiceController struct {
	invoices *services.InvoiceService
}

// NewInvoiceController creates the invoice and payment handlers
func NewInvoiceController(invoices *services.InvoiceService) *InvoiceController {
	return &InvoiceController{invoices: invoices}
}

// List handles GET /api/v1/invoices - newest invoice date first, with outstanding totals
func (ctl *InvoiceController) List(c *gin.Context) {
	invoices, err := ctl.invoices.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "load invoices")
		return
	}
	respondList(c, invoices, len(invoices), noInvoicesMessage, gin.H{
		"stats": services.ComputeInvoiceStats(invoices),
	})
}

// Get handles GET /api/v1/invoices/:id, payments included
func (ctl *InvoiceController) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	invoice, err := ctl.invoices.Get(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "load invoice")
		return
	}
	respondData(c, http.StatusOK, invoice)
}

// Create handles POST /api/v1/invoices
func (ctl *InvoiceController) Create(c *gin.Context) {
	var req services.InvoiceInput
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.GetUserID(c)

	invoice, err := ctl.invoices.Create(c.Request.Context(), userID, req)
	if err != nil {
		handleServiceError(c, err, "create invoice")
		return
	}
	respondData(c, http.StatusCreated, invoice)
}

// Update handles PUT /api/v1/invoices/:id
func (ctl *InvoiceController) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.InvoiceInput
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := ctl.invoices.Update(c.Request.Context(), id, req)
	if err != nil {
		handleServiceError(c, err, "update invoice")
		return
	}
	respondData(c, http.StatusOK, invoice)
}

// Cancel handles POST /api/v1/invoices/:id/cancel
func (ctl *InvoiceController) Cancel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	invoice, err := ctl.invoices.Cancel(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err, "cancel invoice")
		return
	}
	respondData(c, http.StatusOK, invoice)
}

// RecordPayment handles POST /api/v1/invoices/:id/payments
func (ctl *InvoiceController) RecordPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req services.PaymentInput
	if !bindJSON(c, &req) {
		return
	}
	userID, _ := middleware.GetUserID(c)

	payment, invoice, err := ctl.invoices.RecordPayment(c.Request.Context(), userID, id, req)
	if err != nil {
		handleServiceError(c, err, "record payment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"payment": payment,
			"invoice": invoice,
		},
	})
}

// ListPayments handles GET /api/v1/invoices/:id/payments and GET /api/v1/payments?invoice_id=
func (ctl *InvoiceController) ListPayments(c *gin.Context) {
	raw := c.Param("id")
	if raw == "" {
		raw = c.Query("invoice_id")
	}
	if raw == "" {
		respondValidation(c, map[string]string{"invoice_id": "Invoice id is required"})
		return
	}
	invoiceID, err := uuid.Parse(raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid invoice id")
		return
	}

	payments, err := ctl.invoices.ListPayments(c.Request.Context(), invoiceID)
	if err != nil {
		handleServiceError(c, err, "load payments")
		return
	}
	respondList(c, payments, len(payments), noPaymentsMessage, nil)
}
