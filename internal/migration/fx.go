package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/reachloop/reachloop/internal/config"
	"github.com/reachloop/reachloop/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if conn.Dialector.Name() == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := AutoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.DefaultOrgID != 0 {
			if err := seed.EnsureMainOrgWithID(conn, cfg.DefaultOrgID); err != nil {
				return err
			}
		}
		if cfg.BootstrapSeed {
			return seed.EnsureMainOrg(conn)
		}
		return nil
	}),
)
