// Package migration creates the schema on startup so a fresh deployment
// is usable without manual steps.
package migration

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"

	billingdomain "github.com/reachloop/reachloop/internal/billing/domain"
	campaigndomain "github.com/reachloop/reachloop/internal/campaign/domain"
	organizationdomain "github.com/reachloop/reachloop/internal/organization/domain"
	profiledomain "github.com/reachloop/reachloop/internal/profile/domain"
	reportdomain "github.com/reachloop/reachloop/internal/report/domain"
	usagedomain "github.com/reachloop/reachloop/internal/usage/domain"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

const migrationsDir = "migrations"

// RunMigrations applies the versioned SQL migrations. Postgres only; other
// dialects go through AutoMigrate.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return errors.New("migration database handle is required")
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}

	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	upErr := migrator.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}
	return nil
}

// AutoMigrate covers sqlite and mysql, where the versioned postgres
// migrations do not apply.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&organizationdomain.Organization{},
		&organizationdomain.OrganizationMember{},
		&profiledomain.Profile{},
		&campaigndomain.Campaign{},
		&campaigndomain.CampaignTarget{},
		&reportdomain.CampaignMetricDaily{},
		&usagedomain.UsageLogRecord{},
		&billingdomain.AccountUsage{},
	)
}
