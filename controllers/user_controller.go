package controllers

import (
	"net/http"

	"github.com/crewdesk/crewdesk-api/middleware"
	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
	"github.com/gin-gonic/gin"
)

// CreateUserRequest is accepted when no identity provider /userinfo endpoint is configured
type CreateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,optional_email"`
	FullName *string `json:"full_name"`
}

// SetRoleRequest represents the request body for changing a user's role
type SetRoleRequest struct {
	Role models.UserRole `json:"role" binding:"required,oneof=admin staff accountant"`
}

// UserController serves /api/v1/users
type UserController struct {
	users    *services.UserService
	userInfo services.UserInfoProvider
}

// NewUserController creates the user handlers. userInfo may be nil when tokens
// are validated with a shared secret; the email then comes from the token or body.
func NewUserController(users *services.UserService, userInfo services.UserInfoProvider) *UserController {
	return &UserController{users: users, userInfo: userInfo}
}

// CreateUser handles POST /api/v1/users - creates the caller's profile
func (ctl *UserController) CreateUser(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user ID from token")
		return
	}

	var req CreateUserRequest
	if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
		return
	}

	var email, name string
	if ctl.userInfo != nil {
		accessToken, err := middleware.GetAccessToken(c)
		if err != nil {
			respondError(c, http.StatusUnauthorized, "MISSING_TOKEN", "Access token not found")
			return
		}
		info, err := ctl.userInfo.GetUserInfo(c.Request.Context(), accessToken)
		if err != nil {
			handleUserInfoError(c, err)
			return
		}
		email, name = info.Email, info.Name
	}

	claims := middleware.GetCustomClaims(c)
	if email == "" {
		email = claims.Email
	}
	if email == "" && req.Email != nil {
		email = *req.Email
	}
	if name == "" && req.FullName != nil {
		name = *req.FullName
	}
	if email == "" {
		respondError(c, http.StatusBadRequest, "MISSING_EMAIL", "Email not provided by the identity provider")
		return
	}

	role := models.UserRole(claims.Role)
	if !role.IsValid() {
		role = models.RoleStaff
	}

	profile, err := ctl.users.Create(c.Request.Context(), userID, email, name, role)
	if err != nil {
		handleServiceError(c, err, "create user")
		return
	}
	respondData(c, http.StatusCreated, profile)
}

func handleUserInfoError(c *gin.Context, err error) {
	respondErrorDetails(c, http.StatusBadGateway, "AUTH0_ERROR", "Failed to fetch user information from Auth0", err.Error())
}

// GetMyProfile handles GET /api/v1/users/me
func (ctl *UserController) GetMyProfile(c *gin.Context) {
	profile, err := middleware.GetProfile(c)
	if err != nil {
		respondError(c, http.StatusForbidden, "PROFILE_REQUIRED", "User profile not found. Please create a profile first.")
		return
	}
	respondData(c, http.StatusOK, profile)
}

// UpdateMyProfile handles PUT /api/v1/users/me
func (ctl *UserController) UpdateMyProfile(c *gin.Context) {
	profile, err := middleware.GetProfile(c)
	if err != nil {
		respondError(c, http.StatusForbidden, "PROFILE_REQUIRED", "User profile not found. Please create a profile first.")
		return
	}

	var req services.UserProfileInput
	if !bindJSON(c, &req) {
		return
	}

	updated, err := ctl.users.UpdateProfile(c.Request.Context(), profile.ID, req)
	if err != nil {
		handleServiceError(c, err, "update user profile")
		return
	}
	respondData(c, http.StatusOK, updated)
}

// ListUsers handles GET /api/v1/users
func (ctl *UserController) ListUsers(c *gin.Context) {
	profiles, err := ctl.users.List(c.Request.Context())
	if err != nil {
		handleServiceError(c, err, "load users")
		return
	}
	respondList(c, profiles, len(profiles), "", nil)
}

// SetRole handles PUT /api/v1/users/:id/role
func (ctl *UserController) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := ctl.users.SetRole(c.Request.Context(), c.Param("id"), req.Role)
	if err != nil {
		handleServiceError(c, err, "update role")
		return
	}
	respondData(c, http.StatusOK, profile)
}
