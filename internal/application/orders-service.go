package application

import (
	"context"
	"time"

	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/RaikyD/orders-tracker/internal/logger"
	"github.com/RaikyD/orders-tracker/internal/repository"
	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

type OrdersService struct {
	repo repository.OrderRepo
	rec  recorder
	now  func() time.Time
}

func NewOrdersService(r repository.OrderRepo, pub EventPublisher, m *telemetry.Metrics) *OrdersService {
	return &OrdersService{
		repo: r,
		rec:  recorder{pub: pub, metrics: m},
		now:  time.Now,
	}
}

// List returns all orders in id order, or only those where term is a
// case-sensitive substring of the customer name, product or sales channel.
func (s *OrdersService) List(ctx context.Context, term string) ([]domain.Order, error) {
	return s.repo.List(ctx, repository.OrderFilter{Term: term})
}

func (s *OrdersService) Get(ctx context.Context, id int64) (domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *OrdersService) Create(ctx context.Context, in OrderInput) (domain.Order, error) {
	o, err := buildOrder(in)
	if err != nil {
		return domain.Order{}, err
	}
	return s.create(ctx, o)
}

// Ingest creates an order outside the form path. A missing or empty date
// defaults to the current time.
func (s *OrdersService) Ingest(ctx context.Context, in IntakeOrder) (domain.Order, error) {
	if err := validateInput(in); err != nil {
		return domain.Order{}, err
	}
	o := domain.Order{
		CustomerName: *in.CustomerName,
		Product:      *in.Product,
		SalesChannel: *in.SalesChannel,
		Date:         s.now().UTC(),
	}
	if in.Date != nil && *in.Date != "" {
		d, err := parseIntakeDate(*in.Date)
		if err != nil {
			return domain.Order{}, err
		}
		o.Date = d
	}
	return s.create(ctx, o)
}

func (s *OrdersService) create(ctx context.Context, o domain.Order) (domain.Order, error) {
	created, err := s.repo.Create(ctx, o)
	if err != nil {
		logger.Warn("create order failed", "err", err)
		return domain.Order{}, err
	}
	s.rec.record(ctx, domain.ChangeEvent{
		Entity: domain.EntityOrder, Action: domain.ActionCreated,
		ID: created.ID, At: s.now().UTC(), Record: created,
	})
	return created, nil
}

// Update overwrites every field of order id. The order must exist before the
// input is validated, so an unknown id always reports repository.ErrNotFound.
func (s *OrdersService) Update(ctx context.Context, id int64, in OrderInput) (domain.Order, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return domain.Order{}, err
	}
	o, err := buildOrder(in)
	if err != nil {
		return domain.Order{}, err
	}
	o.ID = id
	updated, err := s.repo.Replace(ctx, o)
	if err != nil {
		return domain.Order{}, err
	}
	s.rec.record(ctx, domain.ChangeEvent{
		Entity: domain.EntityOrder, Action: domain.ActionUpdated,
		ID: id, At: s.now().UTC(), Record: updated,
	})
	return updated, nil
}

func (s *OrdersService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.rec.record(ctx, domain.ChangeEvent{
		Entity: domain.EntityOrder, Action: domain.ActionDeleted,
		ID: id, At: s.now().UTC(),
	})
	return nil
}

func buildOrder(in OrderInput) (domain.Order, error) {
	if err := validateInput(in); err != nil {
		return domain.Order{}, err
	}
	date, err := ParseDate(*in.Date)
	if err != nil {
		return domain.Order{}, err
	}
	return domain.Order{
		CustomerName: *in.CustomerName,
		Product:      *in.Product,
		SalesChannel: *in.SalesChannel,
		Date:         date,
	}, nil
}
