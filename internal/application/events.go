package application

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/RaikyD/orders-tracker/internal/logger"
	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

// EventPublisher receives a ChangeEvent after every committed mutation.
type EventPublisher interface {
	Publish(ctx context.Context, ev domain.ChangeEvent) error
}

// NopPublisher discards events; used when Kafka is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.ChangeEvent) error { return nil }

// recorder is shared by both services to report mutations. The store is the
// source of truth, so publish failures are logged and not returned.
type recorder struct {
	pub     EventPublisher
	metrics *telemetry.Metrics
}

func (r recorder) record(ctx context.Context, ev domain.ChangeEvent) {
	r.metrics.RecordsMutated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("entity", string(ev.Entity)),
		attribute.String("action", string(ev.Action)),
	))
	if err := r.pub.Publish(ctx, ev); err != nil {
		logger.Warn("publish change event failed",
			"entity", ev.Entity, "action", ev.Action, "id", ev.ID, "err", err)
	}
}
