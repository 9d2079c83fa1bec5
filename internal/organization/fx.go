package organization

import (
	"github.com/reachloop/reachloop/internal/cache"
	"github.com/reachloop/reachloop/internal/organization/repository"
	"github.com/reachloop/reachloop/internal/organization/service"
	"go.uber.org/fx"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(cache.NewMembershipCache),
	fx.Provide(service.NewGuard),
)
