package models

import (
	"time"
)

// UserProfile mirrors an identity from the authentication provider.
// ID is the provider's subject claim.
type UserProfile struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	FullName  *string   `json:"full_name"`
	Role      UserRole  `gorm:"type:varchar(16);not null;default:'staff'" json:"role"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the UserProfile model
func (UserProfile) TableName() string {
	return "user_profiles"
}
