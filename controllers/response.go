package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/crewdesk/crewdesk-api/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func respondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

// respondList adds the empty-state message when there is nothing to show
func respondList(c *gin.Context, data interface{}, count int, emptyMessage string, extra gin.H) {
	body := gin.H{
		"success": true,
		"data":    data,
		"count":   count,
	}
	if count == 0 && emptyMessage != "" {
		body["message"] = emptyMessage
	}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func respondErrorDetails(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

func respondValidation(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "VALIDATION_ERROR",
			"message": "Invalid request data",
			"fields":  fields,
		},
	})
}

// handleServiceError maps service errors onto the response envelope.
// action completes the sentence "Failed to ..." for unexpected errors.
func handleServiceError(c *gin.Context, err error, action string) {
	var verr *models.ValidationError
	var nf *services.NotFoundError
	var terr *models.TransitionError
	var uerr *utils.FileUploadError

	switch {
	case errors.As(err, &verr):
		respondValidation(c, verr.Fields)
	case errors.As(err, &uerr):
		respondError(c, http.StatusBadRequest, uerr.Code, uerr.Message)
	case errors.As(err, &nf):
		respondError(c, http.StatusNotFound, nf.Code(), capitalize(nf.Error()))
	case errors.As(err, &terr):
		respondError(c, http.StatusConflict, "INVALID_TRANSITION", capitalize(terr.Error()))
	case errors.Is(err, services.ErrOverpayment):
		respondErrorDetails(c, http.StatusUnprocessableEntity, "OVERPAYMENT", "Payment exceeds the invoice balance", err.Error())
	case errors.Is(err, services.ErrInvoiceCancelled):
		respondError(c, http.StatusConflict, "INVOICE_CANCELLED", "Invoice is cancelled")
	case errors.Is(err, services.ErrUserExists):
		respondError(c, http.StatusConflict, "USER_EXISTS", "A user with this id or email already exists")
	case errors.Is(err, services.ErrStorage):
		log.Printf("Failed to %s: %v", action, err)
		respondErrorDetails(c, http.StatusBadGateway, "STORAGE_ERROR", "Failed to "+action, err.Error())
	case errors.Is(err, services.ErrRPC):
		log.Printf("Failed to %s: %v", action, err)
		respondErrorDetails(c, http.StatusBadGateway, "RPC_ERROR", "Failed to "+action, err.Error())
	default:
		log.Printf("Failed to %s: %v", action, err)
		respondErrorDetails(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to "+action, err.Error())
	}
}

// parseID reads a UUID path parameter, answering 400 when it is malformed
func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+strings.ReplaceAll(param, "_", " "))
		return uuid.Nil, false
	}
	return id, true
}

// queryDate reads an optional YYYY-MM-DD query parameter defaulting to today
func queryDate(c *gin.Context, name string) (time.Time, bool) {
	date, err := utils.ParseDateOrToday(c.Query(name))
	if err != nil {
		respondValidation(c, map[string]string{name: "Date must be in YYYY-MM-DD format"})
		return time.Time{}, false
	}
	return date, true
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
