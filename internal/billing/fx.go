package billing

import (
	"go.uber.org/fx"

	"github.com/reachloop/reachloop/internal/billing/service"
)

var Module = fx.Module("billing",
	fx.Provide(service.NewAccountUsageWriter),
)
