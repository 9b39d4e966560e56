package middleware

import (
	"log"
	"net/http"

	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
)

// RequirePermission rejects callers whose role may not perform action on resource.
// It must run after RequireProfile.
func RequirePermission(authz *services.AuthorizationService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, err := GetProfile(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROFILE_REQUIRED",
					"message": "User profile not found. Please create a profile first.",
				},
			})
			return
		}

		allowed, err := authz.Allowed(profile.Role, resource, action)
		if err != nil {
			log.Printf("Authorization check failed: %v", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "AUTHORIZATION_ERROR",
					"message": "Authorization check failed",
				},
			})
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Your role does not allow this action",
				},
			})
			return
		}

		c.Next()
	}
}
