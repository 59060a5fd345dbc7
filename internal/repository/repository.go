package repository

import (
	"context"
	"errors"

	"github.com/RaikyD/orders-tracker/internal/domain"
)

// ErrNotFound is returned when no record with the requested id exists.
var ErrNotFound = errors.New("not found")

// OrderFilter narrows List results. An empty Term returns every order.
type OrderFilter struct {
	Term string
}

type OrderRepo interface {
	Create(ctx context.Context, o domain.Order) (domain.Order, error)
	GetByID(ctx context.Context, id int64) (domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]domain.Order, error)
	Replace(ctx context.Context, o domain.Order) (domain.Order, error)
	Delete(ctx context.Context, id int64) error
}

type ItemRepo interface {
	Create(ctx context.Context, it domain.ShoppingItem) (domain.ShoppingItem, error)
	GetByID(ctx context.Context, id int64) (domain.ShoppingItem, error)
	List(ctx context.Context) ([]domain.ShoppingItem, error)
	Replace(ctx context.Context, it domain.ShoppingItem) (domain.ShoppingItem, error)
	Delete(ctx context.Context, id int64) error
}
