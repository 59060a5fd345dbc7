package application

import (
	"context"
	"time"

	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/RaikyD/orders-tracker/internal/repository"
	"github.com/RaikyD/orders-tracker/internal/telemetry"
)

type ItemsService struct {
	repo repository.ItemRepo
	rec  recorder
	now  func() time.Time
}

func NewItemsService(r repository.ItemRepo, pub EventPublisher, m *telemetry.Metrics) *ItemsService {
	return &ItemsService{
		repo: r,
		rec:  recorder{pub: pub, metrics: m},
		now:  time.Now,
	}
}

func (s *ItemsService) List(ctx context.Context) ([]domain.ShoppingItem, error) {
	return s.repo.List(ctx)
}

func (s *ItemsService) Get(ctx context.Context, id int64) (domain.ShoppingItem, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *ItemsService) Create(ctx context.Context, in ItemInput) (domain.ShoppingItem, error) {
	if err := validateInput(in); err != nil {
		return domain.ShoppingItem{}, err
	}
	created, err := s.repo.Create(ctx, domain.ShoppingItem{Product: *in.Product, Supplier: *in.Supplier})
	if err != nil {
		return domain.ShoppingItem{}, err
	}
	s.rec.record(ctx, domain.ChangeEvent{
		Entity: domain.EntityShoppingItem, Action: domain.ActionCreated,
		ID: created.ID, At: s.now().UTC(), Record: created,
	})
	return created, nil
}

func (s *ItemsService) Update(ctx context.Context, id int64, in ItemInput) (domain.ShoppingItem, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return domain.ShoppingItem{}, err
	}
	if err := validateInput(in); err != nil {
		return domain.ShoppingItem{}, err
	}
	updated, err := s.repo.Replace(ctx, domain.ShoppingItem{ID: id, Product: *in.Product, Supplier: *in.Supplier})
	if err != nil {
		return domain.ShoppingItem{}, err
	}
	s.rec.record(ctx, domain.ChangeEvent{
		Entity: domain.EntityShoppingItem, Action: domain.ActionUpdated,
		ID: id, At: s.now().UTC(), Record: updated,
	})
	return updated, nil
}

func (s *ItemsService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.rec.record(ctx, domain.ChangeEvent{
		Entity: domain.EntityShoppingItem, Action: domain.ActionDeleted,
		ID: id, At: s.now().UTC(),
	})
	return nil
}
