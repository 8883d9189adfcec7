package report

import (
	"go.uber.org/fx"

	"github.com/figureworks/backoffice/internal/report"
)

// Module provides the report aggregator and service to Fx.
var Module = fx.Options(
	fx.Provide(func() *report.Aggregator { return report.New() }),
	fx.Provide(NewService),
)
