package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

var _ OrderRepo = (*OrderRepository)(nil)

func NewOrderRepository(p *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: p}
}

func scanOrder(row pgx.Row) (domain.Order, error) {
	var o domain.Order
	err := row.Scan(&o.ID, &o.CustomerName, &o.Product, &o.SalesChannel, &o.Date)
	return o, err
}

func (r *OrderRepository) Create(ctx context.Context, o domain.Order) (domain.Order, error) {
	created, err := scanOrder(r.pool.QueryRow(ctx,
		`INSERT INTO orders (customer_name, product, sales_channel, date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, customer_name, product, sales_channel, date`,
		o.CustomerName, o.Product, o.SalesChannel, o.Date,
	))
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}
	return created, nil
}

func (r *OrderRepository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx,
		`SELECT id, customer_name, product, sales_channel, date FROM orders WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("select order %d: %w", id, err)
	}
	return o, nil
}

// List uses strpos rather than LIKE so the term is matched literally and
// case-sensitively, with no escaping of % or _.
func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, customer_name, product, sales_channel, date FROM orders
		 WHERE $1 = ''
		    OR strpos(customer_name, $1) > 0
		    OR strpos(product, $1) > 0
		    OR strpos(sales_channel, $1) > 0
		 ORDER BY id`, f.Term)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan orders: %w", err)
	}
	return out, nil
}

func (r *OrderRepository) Replace(ctx context.Context, o domain.Order) (domain.Order, error) {
	updated, err := scanOrder(r.pool.QueryRow(ctx,
		`UPDATE orders SET customer_name = $2, product = $3, sales_channel = $4, date = $5
		 WHERE id = $1
		 RETURNING id, customer_name, product, sales_channel, date`,
		o.ID, o.CustomerName, o.Product, o.SalesChannel, o.Date,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, ErrNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("update order %d: %w", o.ID, err)
	}
	return updated, nil
}

func (r *OrderRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
