package app

import (
	"go.uber.org/fx"

	"github.com/figureworks/backoffice/internal/cache"
	"github.com/figureworks/backoffice/internal/config"
	"github.com/figureworks/backoffice/internal/logger"
	"github.com/figureworks/backoffice/internal/messaging"
	"github.com/figureworks/backoffice/internal/observability"
	repositoryorder "github.com/figureworks/backoffice/internal/repository/order"
	"github.com/figureworks/backoffice/internal/seeder"
	httpserver "github.com/figureworks/backoffice/internal/server/http"
	serviceorder "github.com/figureworks/backoffice/internal/service/order"
	servicereport "github.com/figureworks/backoffice/internal/service/report"
	transporthttp "github.com/figureworks/backoffice/internal/transport/http"
	"github.com/figureworks/backoffice/internal/worker"
	workerorder "github.com/figureworks/backoffice/internal/worker/order"
)

// Core provides the foundational modules shared across executables.
var Core = fx.Options(
	config.Module,
	cache.Module,
	logger.Module,
	messaging.Module,
	observability.Module,
	repositoryorder.Module,
	serviceorder.Module,
	servicereport.Module,
)

// HTTP wires the HTTP transport on top of the core modules. The seeder
// populates the order collection before the server takes traffic.
var HTTP = fx.Options(
	Core,
	seeder.Module,
	httpserver.Module,
	transporthttp.Module,
)

// Worker exposes background event processing.
var Worker = fx.Options(
	Core,
	worker.Module,
	workerorder.Module,
)

// Module is the default application wiring (HTTP only).
var Module = HTTP
