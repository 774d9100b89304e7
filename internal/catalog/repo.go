package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ariefcatur/go-restaurant-orders/internal/paging"
	"github.com/ariefcatur/go-restaurant-orders/internal/postgres"
	"github.com/ariefcatur/go-restaurant-orders/internal/stock"
)

var ErrDishNotFound = errors.New("dish not found")

type Repo struct{ DB *pgxpool.Pool }

const dishColumns = `id, name, category, image_url, COALESCE(stock, 0), sold_today, available`

func scanDish(row pgx.Row) (stock.DishStock, error) {
	var d stock.DishStock
	err := row.Scan(&d.ID, &d.Name, &d.Category, &d.ImageURL, &d.Stock, &d.SoldToday, &d.Available)
	return d, err
}

// ListDishes pages through the catalog ordered by name. An empty category
// matches every dish. A NULL stock reads as 0.
func (r *Repo) ListDishes(ctx context.Context, p paging.Params, category string) (paging.Page[stock.DishStock], error) {
	p = p.Normalize()

	var total int
	if err := r.DB.QueryRow(ctx,
		`SELECT COUNT(*) FROM dishes WHERE ($1 = '' OR category = $1)`, category,
	).Scan(&total); err != nil {
		return paging.Page[stock.DishStock]{}, fmt.Errorf("count dishes: %w", err)
	}

	rows, err := r.DB.Query(ctx, `SELECT `+dishColumns+`
		FROM dishes
		WHERE ($1 = '' OR category = $1)
		ORDER BY name, id
		LIMIT $2 OFFSET $3`, category, p.Limit(), p.Offset())
	if err != nil {
		return paging.Page[stock.DishStock]{}, fmt.Errorf("list dishes: %w", err)
	}
	defer rows.Close()

	var out []stock.DishStock
	for rows.Next() {
		d, err := scanDish(rows)
		if err != nil {
			return paging.Page[stock.DishStock]{}, fmt.Errorf("scan dish: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return paging.Page[stock.DishStock]{}, fmt.Errorf("list dishes: %w", err)
	}
	return paging.NewPage(out, p, total), nil
}

func (r *Repo) GetDish(ctx context.Context, id string) (stock.DishStock, error) {
	d, err := scanDish(r.DB.QueryRow(ctx, `SELECT `+dishColumns+` FROM dishes WHERE id=$1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return stock.DishStock{}, ErrDishNotFound
	}
	if err != nil {
		return stock.DishStock{}, fmt.Errorf("get dish %s: %w", id, err)
	}
	return d, nil
}

// SaveDish persists the stock count of d. Last write wins.
func (r *Repo) SaveDish(ctx context.Context, d stock.DishStock) (stock.DishStock, error) {
	saved, err := scanDish(r.DB.QueryRow(ctx, `
		UPDATE dishes SET stock=$2, updated_at=now()
		WHERE id=$1
		RETURNING `+dishColumns, d.ID, d.Stock))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return stock.DishStock{}, ErrDishNotFound
	case postgres.IsCheckViolation(err):
		return stock.DishStock{}, fmt.Errorf("%w: stock %d rejected by store", stock.ErrInvalidQuantity, d.Stock)
	case err != nil:
		return stock.DishStock{}, fmt.Errorf("save dish %s: %w", d.ID, err)
	}
	return saved, nil
}
