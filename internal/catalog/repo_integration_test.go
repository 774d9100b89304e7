//go:build integration

package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-restaurant-orders/internal/paging"
	"github.com/ariefcatur/go-restaurant-orders/internal/postgres/pgtest"
	"github.com/ariefcatur/go-restaurant-orders/internal/stock"
)

func seed(t *testing.T, r *Repo) {
	t.Helper()
	_, err := r.DB.Exec(context.Background(), `
		INSERT INTO dishes (id, name, category, image_url, stock) VALUES
		('d1', 'Banh mi', 'street', 'dishes/banhmi.jpg', 25),
		('d2', 'Bun cha', 'noodle', '', 12),
		('d3', 'Pho bo',  'noodle', 'https://img.example/pho.jpg', NULL)`)
	require.NoError(t, err)
}

func TestRepo_ListDishes(t *testing.T) {
	r := &Repo{DB: pgtest.Start(t)}
	seed(t, r)
	ctx := context.Background()

	page, err := r.ListDishes(ctx, paging.Params{Page: 1, PageSize: 2}, "")
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Banh mi", page.Items[0].Name)

	noodles, err := r.ListDishes(ctx, paging.Params{}, "noodle")
	require.NoError(t, err)
	assert.Equal(t, 2, noodles.Total)
	assert.Equal(t, 0, noodles.Items[1].Stock, "NULL stock reads as 0")
	assert.Equal(t, stock.StatusOutOfStock, noodles.Items[1].Status())
}

func TestRepo_SaveDish(t *testing.T) {
	r := &Repo{DB: pgtest.Start(t)}
	seed(t, r)
	ctx := context.Background()

	d, err := r.GetDish(ctx, "d1")
	require.NoError(t, err)
	d, err = stock.ImportStock(d, 5)
	require.NoError(t, err)

	saved, err := r.SaveDish(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, 30, saved.Stock)

	_, err = r.SaveDish(ctx, stock.DishStock{ID: "d1", Stock: -1})
	assert.ErrorIs(t, err, stock.ErrInvalidQuantity)

	_, err = r.SaveDish(ctx, stock.DishStock{ID: "nope", Stock: 1})
	assert.ErrorIs(t, err, ErrDishNotFound)

	_, err = r.GetDish(ctx, "nope")
	assert.ErrorIs(t, err, ErrDishNotFound)
}
