package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/crewdesk/crewdesk-api/models"
	"gorm.io/gorm"
)

// UserProfileInput carries the fields a user may change on their own profile
type UserProfileInput struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email" binding:"omitempty,optional_email"`
	Phone    *string `json:"phone"`
}

// UserService reads and writes user profiles
type UserService struct {
	db *gorm.DB
}

// NewUserService creates a user profile service
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// isUniqueViolation recognises duplicate key errors from both PostgreSQL and SQLite
func isUniqueViolation(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// Get loads the profile for an identity provider subject
func (s *UserService) Get(ctx context.Context, id string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := s.db.WithContext(ctx).First(&profile, "id = ?", id).Error; err != nil {
		return nil, lookupErr(err, "user")
	}
	return &profile, nil
}

// List returns every profile ordered by email
func (s *UserService) List(ctx context.Context) ([]models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := s.db.WithContext(ctx).Order("email ASC").Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to load user profiles: %w", err)
	}
	return profiles, nil
}

// Create inserts a profile for subject id; role defaults to staff
func (s *UserService) Create(ctx context.Context, id, email, fullName string, role models.UserRole) (*models.UserProfile, error) {
	verr := &models.ValidationError{}
	verr.Require("id", "User id", id)
	verr.Require("email", "Email", email)
	if role == "" {
		role = models.RoleStaff
	}
	if !role.IsValid() {
		verr.Add("role", "Role must be one of admin, staff, accountant")
	}
	if err := verr.Err(); err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		ID:       id,
		Email:    email,
		FullName: stringOrNil(&fullName),
		Role:     role,
	}
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}
	return profile, nil
}

// UpdateProfile applies the non-nil input fields to the caller's profile
func (s *UserService) UpdateProfile(ctx context.Context, id string, in UserProfileInput) (*models.UserProfile, error) {
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		profile.FullName = stringOrNil(in.FullName)
	}
	if in.Phone != nil {
		profile.Phone = stringOrNil(in.Phone)
	}
	if in.Email != nil {
		verr := &models.ValidationError{}
		verr.Require("email", "Email", *in.Email)
		if err := verr.Err(); err != nil {
			return nil, err
		}
		profile.Email = *in.Email
	}

	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}
	return profile, nil
}

// SetRole changes a user's role
func (s *UserService) SetRole(ctx context.Context, id string, role models.UserRole) (*models.UserProfile, error) {
	if !role.IsValid() {
		verr := &models.ValidationError{}
		verr.Add("role", "Role must be one of admin, staff, accountant")
		return nil, verr
	}
	profile, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(profile).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	profile.Role = role
	return profile, nil
}
