package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/orders-tracker/internal/application"
	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/RaikyD/orders-tracker/internal/repository"
	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

type fakeWriter struct {
	msgs []kafka.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error { return nil }

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{w: w}

	ev := domain.ChangeEvent{
		Entity: domain.EntityOrder,
		Action: domain.ActionCreated,
		ID:     12,
		At:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Record: domain.Order{ID: 12, CustomerName: "Jane"},
	}
	require.NoError(t, p.Publish(context.Background(), ev))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, "order:12", string(msg.Key))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "order", decoded["entity"])
	assert.Equal(t, "created", decoded["action"])
	assert.Equal(t, "Jane", decoded["record"].(map[string]any)["customer_name"])
}

type failingIngester struct{ err error }

func (f failingIngester) Ingest(context.Context, application.IntakeOrder) (domain.Order, error) {
	return domain.Order{}, f.err
}

func TestHandleMessage(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	svc := application.NewOrdersService(store.Orders(), application.NopPublisher{}, telemetry.Nop())

	res := handleMessage(ctx, svc, kafka.Message{Value: []byte(`{"customer_name":"A","product":"B","sales_channel":"C","date":"2024-05-01"}`)})
	assert.Equal(t, resultStored, res)

	res = handleMessage(ctx, svc, kafka.Message{Value: []byte(`{"customer_name":"A","product":"B","sales_channel":"C"}`)})
	assert.Equal(t, resultStored, res)

	res = handleMessage(ctx, svc, kafka.Message{Value: []byte(`not json`)})
	assert.Equal(t, resultSkipped, res)

	res = handleMessage(ctx, svc, kafka.Message{Value: []byte(`{"product":"B","sales_channel":"C"}`)})
	assert.Equal(t, resultSkipped, res)

	res = handleMessage(ctx, svc, kafka.Message{Value: []byte(`{"customer_name":"A","product":"B","sales_channel":"C","date":"2024-13-40"}`)})
	assert.Equal(t, resultSkipped, res)

	orders, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	res = handleMessage(ctx, failingIngester{err: errors.New("db down")}, kafka.Message{Value: []byte(`{}`)})
	assert.Equal(t, resultRetry, res)
}

func TestSleep_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.False(t, sleep(ctx, time.Minute))
	assert.True(t, sleep(context.Background(), time.Millisecond))
}
