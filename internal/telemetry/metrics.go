package telemetry

import (
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

type Metrics struct {
	RecordsMutated metric.Int64Counter
	LoginAttempts  metric.Int64Counter
	IntakeMessages metric.Int64Counter
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	mutated, err := meter.Int64Counter("records_mutated_total",
		metric.WithDescription("Orders and shopping items created, updated or deleted"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, err
	}

	logins, err := meter.Int64Counter("login_attempts_total",
		metric.WithDescription("Login attempts by result"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, err
	}

	intake, err := meter.Int64Counter("intake_messages_total",
		metric.WithDescription("Order intake messages consumed from Kafka by result"),
		metric.WithUnit("{message}"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RecordsMutated: mutated,
		LoginAttempts:  logins,
		IntakeMessages: intake,
	}, nil
}

// Nop returns instruments that record nothing.
func Nop() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider().Meter("nop"))
	return m
}
