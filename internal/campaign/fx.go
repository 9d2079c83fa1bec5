package campaign

import (
	"go.uber.org/fx"

	"github.com/reachloop/reachloop/internal/campaign/repository"
	"github.com/reachloop/reachloop/internal/campaign/service"
)

var Module = fx.Module("campaign",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
