package middleware

import (
	"errors"
	"log"
	"net/http"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
)

const profileKey = "user_profile"

// RequireProfile loads the caller's user profile into the context.
// Authenticated identities without a profile are rejected with PROFILE_REQUIRED.
func RequireProfile(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := GetUserID(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Authentication required",
				},
			})
			return
		}

		profile, err := users.Get(c.Request.Context(), userID)
		if errors.Is(err, services.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "PROFILE_REQUIRED",
					"message": "User profile not found. Please create a profile first.",
				},
			})
			return
		}
		if err != nil {
			log.Printf("Failed to load profile for %s: %v", userID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DATABASE_ERROR",
					"message": "Failed to load user profile",
				},
			})
			return
		}

		c.Set(profileKey, profile)
		c.Next()
	}
}

// GetProfile returns the profile loaded by RequireProfile
func GetProfile(c *gin.Context) (*models.UserProfile, error) {
	value, exists := c.Get(profileKey)
	if !exists {
		return nil, &AuthError{Code: "PROFILE_REQUIRED", Message: "User profile not loaded"}
	}
	profile, ok := value.(*models.UserProfile)
	if !ok {
		return nil, &AuthError{Code: "PROFILE_REQUIRED", Message: "User profile is not in the expected format"}
	}
	return profile, nil
}
