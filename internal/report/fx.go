package report

import (
	"go.uber.org/fx"

	"github.com/reachloop/reachloop/internal/report/repository"
	"github.com/reachloop/reachloop/internal/report/service"
)

var Module = fx.Module("report",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.New),
)
