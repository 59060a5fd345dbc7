package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/RaikyD/orders-tracker/internal/application"
	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/RaikyD/orders-tracker/internal/logger"
	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

type ConsumerConfig struct {
	Brokers string
	Topic   string
	GroupID string
}

// OrderIngester creates orders from intake messages.
type OrderIngester interface {
	Ingest(ctx context.Context, in application.IntakeOrder) (domain.Order, error)
}

const retryBackoff = 300 * time.Millisecond

// StartConsumer reads order intake messages until ctx is cancelled. Malformed
// or invalid messages are committed and skipped; store failures are retried.
// The returned channel closes once the reader is shut down.
func StartConsumer(ctx context.Context, svc OrderIngester, m *telemetry.Metrics, cfg ConsumerConfig) <-chan struct{} {
	brokers := strings.Split(cfg.Brokers, ",")

	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        brokers,
		GroupID:        cfg.GroupID,
		Topic:          cfg.Topic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
		StartOffset:    kafka.FirstOffset,
	})

	logger.Info("kafka consumer starting", "brokers", cfg.Brokers, "topic", cfg.Topic, "group", cfg.GroupID)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer r.Close()

		for {
			msg, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("kafka fetch error", "err", err)
				sleep(ctx, retryBackoff)
				continue
			}
			logger.Info("intake message fetched", "partition", msg.Partition, "offset", msg.Offset)

			for {
				res := handleMessage(ctx, svc, msg)
				m.IntakeMessages.Add(ctx, 1, metric.WithAttributes(attribute.String("result", string(res))))
				if res != resultRetry {
					break
				}
				if !sleep(ctx, retryBackoff) {
					return
				}
			}

			if err := r.CommitMessages(ctx, msg); err != nil {
				logger.Warn("kafka commit failed", "err", err)
			}
		}
	}()
	return done
}

type result string

const (
	resultStored  result = "stored"
	resultSkipped result = "skipped"
	resultRetry   result = "retry"
)

func handleMessage(ctx context.Context, svc OrderIngester, msg kafka.Message) result {
	var in application.IntakeOrder
	if err := json.Unmarshal(msg.Value, &in); err != nil {
		logger.Warn("intake message is not valid json, skipping", "offset", msg.Offset, "err", err)
		return resultSkipped
	}

	o, err := svc.Ingest(ctx, in)
	switch {
	case err == nil:
		logger.Info("intake order stored", "id", o.ID, "offset", msg.Offset)
		return resultStored
	case errors.Is(err, application.ErrValidation), errors.Is(err, application.ErrParse):
		logger.Warn("intake order rejected, skipping", "offset", msg.Offset, "err", err)
		return resultSkipped
	default:
		logger.Warn("intake order store failed, will retry", "offset", msg.Offset, "err", err)
		return resultRetry
	}
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
