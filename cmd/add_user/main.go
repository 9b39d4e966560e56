package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/crewdesk/crewdesk-api/config"
	"github.com/crewdesk/crewdesk-api/models"
	"github.com/crewdesk/crewdesk-api/services"
)

// add_user creates a profile for an identity provider subject, typically the first admin.
//
//	go run ./cmd/add_user -id 'auth0|abc123' -email owner@example.com -name 'Pat Owner' -role admin
func main() {
	id := flag.String("id", "", "identity provider subject (token sub claim)")
	email := flag.String("email", "", "email address")
	name := flag.String("name", "", "full name")
	role := flag.String("role", string(models.RoleAdmin), "admin, staff or accountant")
	flag.Parse()

	if *id == "" || *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	if _, err := config.Load(); err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := config.ConnectDatabase(); err != nil {
		fmt.Printf("Failed to connect to database: %v\n", err)
		os.Exit(1)
	}

	profile, err := services.NewUserService(config.GetDB()).
		Create(context.Background(), *id, *email, *name, models.UserRole(*role))
	if err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("User created successfully: %s (%s, %s)\n", profile.Email, profile.ID, profile.Role)
}
