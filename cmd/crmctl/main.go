// Command crmctl is the operator CLI for the sales CRM: quarter and pro-rating
// arithmetic plus a report of profiles awaiting an org assignment.
package main

import (
	"fmt"
	"os"

	"github.com/straye-as/sales-crm-api/internal/config"
	"github.com/straye-as/sales-crm-api/internal/database"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd(openDatabase).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func openDatabase() (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return database.NewDatabase(&cfg.Database)
}
