package usage

import (
	"context"

	"go.uber.org/fx"

	campaigndomain "github.com/reachloop/reachloop/internal/campaign/domain"
	"github.com/reachloop/reachloop/internal/config"
	orgdomain "github.com/reachloop/reachloop/internal/organization/domain"
	"github.com/reachloop/reachloop/internal/usage/metering"
	"github.com/reachloop/reachloop/internal/usage/repository"
)

var Module = fx.Module("usage",
	fx.Provide(repository.NewRepository),
	fx.Provide(func(repo orgdomain.Repository) metering.TenantIterator { return repo }),
	fx.Provide(func(repo campaigndomain.Repository) metering.OwnerScanner { return repo }),
	fx.Provide(metering.NewWorker),
)

// ScheduleModule starts the interval pass. The HTTP trigger works without
// it, so the API binary can omit the schedule entirely.
var ScheduleModule = fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, worker *metering.Worker) {
	if !cfg.Metering.Enabled {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				worker.Start(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
})
