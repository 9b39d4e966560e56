package models

import (
	"fmt"

	"gorm.io/gorm"
)

// All lists every table model in foreign key order
func All() []interface{} {
	return []interface{}{
		&UserProfile{},
		&Customer{},
		&Job{},
		&Quote{},
		&Invoice{},
		&Payment{},
		&Route{},
		&Photo{},
	}
}

// Migrate creates or updates the schema for every table model
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
