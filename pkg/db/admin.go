package db

import (
	"github.com/reachloop/reachloop/internal/config"
	obslogger "github.com/reachloop/reachloop/internal/observability/logger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Admin is an elevated-trust connection for writes that bypass per-tenant
// row security, such as the cross-tenant billing upsert. This is a distinct
// type so a caller-scoped *gorm.DB can never be injected in its place.
type Admin struct {
	*gorm.DB
}

// OpenAdmin connects with the admin credentials when configured. Without
// dedicated credentials (local dev, sqlite) it degrades to the primary
// connection, which already holds full rights there.
func OpenAdmin(cfg Config, appCfg config.Config, primary *gorm.DB, log *zap.Logger) (Admin, error) {
	if appCfg.DBAdminUser == "" {
		log.Warn("no admin database credentials configured, privileged writes use the primary connection")
		return Admin{DB: primary}, nil
	}

	adminCfg := cfg
	adminCfg.User = appCfg.DBAdminUser
	adminCfg.Password = appCfg.DBAdminPassword

	dialector, err := Dialect(adminCfg)
	if err != nil {
		return Admin{}, err
	}
	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: obslogger.NewGormLogger(obslogger.DefaultGormLoggerConfig()),
	})
	if err != nil {
		return Admin{}, err
	}
	return Admin{DB: conn}, nil
}
