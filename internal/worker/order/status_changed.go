package order

import (
	"context"
	"encoding/json"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/figureworks/backoffice/internal/cache"
	"github.com/figureworks/backoffice/internal/config"
	"github.com/figureworks/backoffice/internal/messaging"
	ordersvc "github.com/figureworks/backoffice/internal/service/order"
	reportsvc "github.com/figureworks/backoffice/internal/service/report"
	"github.com/figureworks/backoffice/internal/worker"
)

var workerTracer = otel.Tracer("github.com/figureworks/backoffice/worker/order")

// Module registers order-related worker handlers.
var Module = fx.Module("worker_order",
	fx.Provide(
		fx.Annotate(
			NewStatusChangedHandler,
			fx.ResultTags(`group:"worker.handlers"`),
		),
	),
)

// NewStatusChangedHandler reacts to status-changed events: the cached
// dashboard snapshot is dropped so the next overview request reflects the
// new status distribution.
func NewStatusChangedHandler(logger *zap.Logger, cfg config.Config, store cache.Store) worker.HandlerRegistration {
	handler := func(ctx context.Context, msg messaging.Message) error {
		ctx, span := workerTracer.Start(ctx, "worker.orders.statusChanged", trace.WithAttributes(
			attribute.String("messaging.topic", msg.Topic),
		))
		defer span.End()

		var event ordersvc.OrderStatusChangedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			logger.Error("failed to decode status changed", zap.Error(err))

			span.RecordError(err)
			span.SetStatus(codes.Error, "decode error")
			return err
		}

		if err := store.Delete(ctx, reportsvc.DashboardCacheKey); err != nil {
			logger.Warn("failed to drop dashboard snapshot", zap.Error(err))
		}

		logger.Info("order status change processed",
			zap.Int64("id", event.ID),
			zap.String("orderNo", event.OrderNo),
			zap.String("status", string(event.Status)),
		)

		return nil
	}

	return worker.HandlerRegistration{
		Topic:   cfg.Messaging.Kafka.Topic,
		Handler: handler,
	}
}
