package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/RaikyD/orders-tracker/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

var _ ItemRepo = (*ItemRepository)(nil)

func NewItemRepository(p *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: p}
}

func scanItem(row pgx.Row) (domain.ShoppingItem, error) {
	var it domain.ShoppingItem
	err := row.Scan(&it.ID, &it.Product, &it.Supplier)
	return it, err
}

func (r *ItemRepository) Create(ctx context.Context, it domain.ShoppingItem) (domain.ShoppingItem, error) {
	created, err := scanItem(r.pool.QueryRow(ctx,
		`INSERT INTO shopping_items (product, supplier) VALUES ($1, $2)
		 RETURNING id, product, supplier`,
		it.Product, it.Supplier,
	))
	if err != nil {
		return domain.ShoppingItem{}, fmt.Errorf("insert shopping item: %w", err)
	}
	return created, nil
}

func (r *ItemRepository) GetByID(ctx context.Context, id int64) (domain.ShoppingItem, error) {
	it, err := scanItem(r.pool.QueryRow(ctx,
		`SELECT id, product, supplier FROM shopping_items WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ShoppingItem{}, ErrNotFound
	}
	if err != nil {
		return domain.ShoppingItem{}, fmt.Errorf("select shopping item %d: %w", id, err)
	}
	return it, nil
}

func (r *ItemRepository) List(ctx context.Context) ([]domain.ShoppingItem, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, product, supplier FROM shopping_items ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list shopping items: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ShoppingItem, error) {
		return scanItem(row)
	})
	if err != nil {
		return nil, fmt.Errorf("scan shopping items: %w", err)
	}
	return out, nil
}

func (r *ItemRepository) Replace(ctx context.Context, it domain.ShoppingItem) (domain.ShoppingItem, error) {
	updated, err := scanItem(r.pool.QueryRow(ctx,
		`UPDATE shopping_items SET product = $2, supplier = $3 WHERE id = $1
		 RETURNING id, product, supplier`,
		it.ID, it.Product, it.Supplier,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ShoppingItem{}, ErrNotFound
	}
	if err != nil {
		return domain.ShoppingItem{}, fmt.Errorf("update shopping item %d: %w", it.ID, err)
	}
	return updated, nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM shopping_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shopping item %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
