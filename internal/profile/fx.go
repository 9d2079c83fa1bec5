package profile

import (
	"go.uber.org/fx"

	"github.com/reachloop/reachloop/internal/profile/repository"
)

var Module = fx.Module("profile",
	fx.Provide(repository.NewRepository),
)
