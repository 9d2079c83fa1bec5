package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/reachloop/reachloop/internal/authorization"
	"github.com/reachloop/reachloop/internal/billing"
	"github.com/reachloop/reachloop/internal/campaign"
	"github.com/reachloop/reachloop/internal/clock"
	"github.com/reachloop/reachloop/internal/config"
	"github.com/reachloop/reachloop/internal/identity"
	"github.com/reachloop/reachloop/internal/migration"
	"github.com/reachloop/reachloop/internal/observability"
	"github.com/reachloop/reachloop/internal/organization"
	"github.com/reachloop/reachloop/internal/profile"
	"github.com/reachloop/reachloop/internal/ratelimit"
	"github.com/reachloop/reachloop/internal/report"
	"github.com/reachloop/reachloop/internal/server"
	"github.com/reachloop/reachloop/internal/usage"
	"github.com/reachloop/reachloop/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		identity.Module,
		ratelimit.Module,

		organization.Module,
		authorization.Module,
		profile.Module,
		billing.Module,
		campaign.Module,
		report.Module,
		usage.Module,
		usage.ScheduleModule,

		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
