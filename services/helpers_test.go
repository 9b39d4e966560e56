package services

import (
	"context"
	"testing"
	"time"

	"github.com/crewdesk/crewdesk-api/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to connect to test database")

	// each :memory: connection is its own database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, models.Migrate(db), "Failed to migrate test database")
	return db
}

func testNumberer(t *testing.T) *Numberer {
	t.Helper()
	n, err := NewNumberer(1)
	require.NoError(t, err)
	return n
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ptr[T any](v T) *T {
	return &v
}

func seedCustomer(t *testing.T, db *gorm.DB, first, last string) *models.Customer {
	t.Helper()
	svc := NewCustomerService(db, &MockCustomerSearcher{})
	c, err := svc.Create(context.Background(), "auth0|seed", CustomerInput{
		FirstName:    ptr(first),
		LastName:     ptr(last),
		Phone:        ptr("555-0100"),
		AddressLine1: ptr("1 Main St"),
		City:         ptr("Springfield"),
		State:        ptr("IL"),
		PostalCode:   ptr("62701"),
	})
	require.NoError(t, err)
	return c
}
