package application

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/RaikyD/orders-tracker/internal/repository"
	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.ChangeEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func str(s string) *string { return &s }

func orderInput(customer, product, channel, date string) OrderInput {
	return OrderInput{CustomerName: str(customer), Product: str(product), SalesChannel: str(channel), Date: str(date)}
}

func setupOrders(t *testing.T) (*OrdersService, *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := NewOrdersService(repository.NewMemoryStore().Orders(), pub, telemetry.Nop())
	return svc, pub
}

func TestOrdersService_CreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, pub := setupOrders(t)

	o, err := svc.Create(ctx, orderInput("Jane", "Pen", "Online", "2024-05-01"))
	require.NoError(t, err)
	assert.NotZero(t, o.ID)

	got, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.CustomerName)
	assert.Equal(t, "Pen", got.Product)
	assert.Equal(t, "Online", got.SalesChannel)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), got.Date)

	require.Len(t, pub.events, 1)
	assert.Equal(t, domain.EntityOrder, pub.events[0].Entity)
	assert.Equal(t, domain.ActionCreated, pub.events[0].Action)
	assert.Equal(t, o.ID, pub.events[0].ID)
}

func TestOrdersService_EmptyFieldsAccepted(t *testing.T) {
	svc, _ := setupOrders(t)
	o, err := svc.Create(context.Background(), orderInput("", "", "", "2024-01-02"))
	require.NoError(t, err)
	assert.Equal(t, "", o.CustomerName)
}

func TestOrdersService_CreateErrors(t *testing.T) {
	ctx := context.Background()
	svc, pub := setupOrders(t)

	_, err := svc.Create(ctx, orderInput("Jane", "Pen", "Online", "2024-13-40"))
	assert.ErrorIs(t, err, ErrParse)

	_, err = svc.Create(ctx, orderInput("Jane", "Pen", "Online", "05/01/2024"))
	assert.ErrorIs(t, err, ErrParse)

	in := orderInput("Jane", "Pen", "Online", "2024-05-01")
	in.SalesChannel = nil
	_, err = svc.Create(ctx, in)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "sales_channel")

	_, err = svc.Create(ctx, OrderInput{})
	assert.ErrorIs(t, err, ErrValidation)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, all)
	assert.Empty(t, pub.events)
}

func TestOrdersService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	svc, pub := setupOrders(t)

	o, err := svc.Create(ctx, orderInput("Jane", "Pen", "Online", "2024-05-01"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, o.ID, orderInput("John", "Ink", "Store", "2024-06-02"))
	require.NoError(t, err)
	assert.Equal(t, o.ID, updated.ID)

	got, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Order{
		ID: o.ID, CustomerName: "John", Product: "Ink", SalesChannel: "Store",
		Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	}, got)

	_, err = svc.Update(ctx, o.ID, orderInput("X", "Y", "Z", "2024-13-40"))
	assert.ErrorIs(t, err, ErrParse)
	got, _ = svc.Get(ctx, o.ID)
	assert.Equal(t, "John", got.CustomerName)

	require.NoError(t, svc.Delete(ctx, o.ID))
	_, err = svc.Get(ctx, o.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.Len(t, pub.events, 3)
	assert.Equal(t, domain.ActionUpdated, pub.events[1].Action)
	assert.Equal(t, domain.ActionDeleted, pub.events[2].Action)
	assert.Nil(t, pub.events[2].Record)
}

func TestOrdersService_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupOrders(t)

	_, err := svc.Get(ctx, 7)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// unknown id wins over a bad date
	_, err = svc.Update(ctx, 7, orderInput("a", "b", "c", "bad"))
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 7), repository.ErrNotFound)
}

func TestOrdersService_Search(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupOrders(t)
	_, _ = svc.Create(ctx, orderInput("Alice", "Widget", "Web", "2024-01-01"))
	_, _ = svc.Create(ctx, orderInput("Bob", "Gadget", "Store", "2024-01-02"))

	got, err := svc.List(ctx, "e")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = svc.List(ctx, "Gad")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bob", got[0].CustomerName)

	got, err = svc.List(ctx, "gad")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOrdersService_Ingest(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupOrders(t)
	fixed := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	o, err := svc.Ingest(ctx, IntakeOrder{CustomerName: str("A"), Product: str("B"), SalesChannel: str("Kafka")})
	require.NoError(t, err)
	assert.Equal(t, fixed, o.Date)

	o, err = svc.Ingest(ctx, IntakeOrder{CustomerName: str("A"), Product: str("B"), SalesChannel: str("Kafka"), Date: str("2024-05-01")})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), o.Date)

	o, err = svc.Ingest(ctx, IntakeOrder{CustomerName: str("A"), Product: str("B"), SalesChannel: str("Kafka"), Date: str("2024-05-01T10:30:00+02:00")})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC), o.Date)

	_, err = svc.Ingest(ctx, IntakeOrder{CustomerName: str("A"), Product: str("B"), SalesChannel: str("Kafka"), Date: str("yesterday")})
	assert.ErrorIs(t, err, ErrParse)

	_, err = svc.Ingest(ctx, IntakeOrder{Product: str("B"), SalesChannel: str("Kafka")})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestOrdersService_PublishFailureDoesNotFail(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewOrdersService(repository.NewMemoryStore().Orders(), pub, telemetry.Nop())

	o, err := svc.Create(context.Background(), orderInput("Jane", "Pen", "Online", "2024-05-01"))
	require.NoError(t, err)
	_, err = svc.Get(context.Background(), o.ID)
	assert.NoError(t, err)
}
