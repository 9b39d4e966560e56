package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withProfile(role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		if role != "" {
			c.Set("user_profile", &models.UserProfile{ID: "auth0|1", Email: "u@example.com", Role: role})
		}
		c.Next()
	}
}

func TestRequirePermission(t *testing.T) {
	gin.SetMode(gin.TestMode)
	authz, err := services.NewAuthorizationService()
	require.NoError(t, err)

	tests := []struct {
		name       string
		role       models.UserRole
		resource   string
		action     string
		wantStatus int
	}{
		{"admin manages users", models.RoleAdmin, services.ResourceUsers, services.ActionManage, http.StatusOK},
		{"staff writes jobs", models.RoleStaff, services.ResourceJobs, services.ActionWrite, http.StatusOK},
		{"staff cannot record payments", models.RoleStaff, services.ResourcePayments, services.ActionWrite, http.StatusForbidden},
		{"staff cannot read reports", models.RoleStaff, services.ResourceReports, services.ActionRead, http.StatusForbidden},
		{"accountant reads reports", models.RoleAccountant, services.ResourceReports, services.ActionRead, http.StatusOK},
		{"accountant cannot edit jobs", models.RoleAccountant, services.ResourceJobs, services.ActionWrite, http.StatusForbidden},
		{"no profile loaded", "", services.ResourceJobs, services.ActionRead, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(withProfile(tt.role), RequirePermission(authz, tt.resource, tt.action))
			router.GET("/resource", func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
