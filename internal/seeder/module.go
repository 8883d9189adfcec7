package seeder

import (
	"context"

	"go.uber.org/fx"

	"github.com/figureworks/backoffice/internal/config"
)

// Module provides the seeder and, when enabled, populates the order store
// during startup so the collection exists before the first request.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(func(lc fx.Lifecycle, cfg config.Config, s *Seeder) {
		if !cfg.Seed.Enabled {
			return
		}
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				_, err := s.Orders(ctx)
				return err
			},
		})
	}),
)
