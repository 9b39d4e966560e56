package main

import (
	"log"
	"os"

	"github.com/crewdesk/crewdesk-api/config"
	"github.com/crewdesk/crewdesk-api/models"
	"gorm.io/gorm"
)

// migrate creates the tables and then runs any SQL files named on the command line,
// e.g. the search_customers and get_revenue_summary function definitions.
func main() {
	log.Println("Starting migration...")

	if _, err := config.Load(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := config.GetDB()

	if err := models.Migrate(db); err != nil {
		log.Fatalf("%v", err)
	}
	log.Println("Tables migrated")

	failed := 0
	for _, path := range os.Args[1:] {
		if err := executeSQLFile(db, path); err != nil {
			log.Printf("Error executing %s: %v", path, err)
			failed++
			continue
		}
		log.Printf("Successfully executed %s", path)
	}
	if failed > 0 {
		log.Fatalf("%d SQL file(s) failed", failed)
	}

	log.Println("Migration completed successfully!")
}

func executeSQLFile(db *gorm.DB, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	log.Printf("Executing %s...", path)
	return db.Exec(string(content)).Error
}
