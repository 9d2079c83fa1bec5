// The metering binary runs the usage pass on its interval without serving
// HTTP. Deployments that want the pass isolated from the API run this.
package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/reachloop/reachloop/internal/authorization"
	"github.com/reachloop/reachloop/internal/campaign"
	"github.com/reachloop/reachloop/internal/clock"
	"github.com/reachloop/reachloop/internal/config"
	"github.com/reachloop/reachloop/internal/observability"
	"github.com/reachloop/reachloop/internal/organization"
	"github.com/reachloop/reachloop/internal/ratelimit"
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
		ratelimit.Module,

		organization.Module,
		authorization.Module,
		campaign.Module,
		usage.Module,
		usage.ScheduleModule,
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
