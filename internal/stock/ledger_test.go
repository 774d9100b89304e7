package stock

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariefcatur/go-restaurant-orders/internal/display"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		stock int
		want  Status
	}{
		{math.MaxInt, StatusSufficient},
		{100, StatusSufficient},
		{21, StatusSufficient},
		{20, StatusLow},
		{15, StatusLow},
		{11, StatusLow},
		{10, StatusCritical},
		{5, StatusCritical},
		{1, StatusCritical},
		{0, StatusOutOfStock},
		{-5, StatusOutOfStock},
		{math.MinInt, StatusOutOfStock},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Classify(tc.stock), "Classify(%d)", tc.stock)
	}
}

func TestClassify_partitionsRange(t *testing.T) {
	seen := map[Status]int{}
	for s := -50; s <= 50; s++ {
		seen[Classify(s)]++
	}
	assert.Len(t, seen, 4)
	assert.Equal(t, 10, seen[StatusLow])
	assert.Equal(t, 10, seen[StatusCritical])
	assert.Equal(t, 30, seen[StatusSufficient])
	assert.Equal(t, 51, seen[StatusOutOfStock])
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, display.Label{Text: "in stock", Tag: display.TagSuccess}, StatusSufficient.Label())
	assert.Equal(t, display.Label{Text: "running low", Tag: display.TagWarning}, StatusLow.Label())
	assert.Equal(t, display.Label{Text: "critical", Tag: display.TagDanger}, StatusCritical.Label())
	assert.Equal(t, display.Label{Text: "out of stock", Tag: display.TagNeutral}, StatusOutOfStock.Label())
	assert.Equal(t, display.Label{Text: "WEIRD", Tag: display.TagNeutral}, Status("WEIRD").Label())
}

func TestSetStock(t *testing.T) {
	dish := DishStock{ID: "d1", Name: "Pho", Stock: 7}

	for _, n := range []int{0, 1, 7, 20, 500} {
		got, err := SetStock(dish, n)
		require.NoError(t, err)
		assert.Equal(t, n, got.Stock)
		assert.Equal(t, "d1", got.ID)
	}
	assert.Equal(t, 7, dish.Stock, "input must not be mutated")
}

func TestSetStock_negative(t *testing.T) {
	dish := DishStock{ID: "d1", Stock: 7}

	got, err := SetStock(dish, -1)
	require.ErrorIs(t, err, ErrInvalidQuantity)
	assert.Equal(t, 7, got.Stock)
}

func TestImportStock(t *testing.T) {
	dish := DishStock{ID: "d1", Stock: 12}

	for _, q := range []int{0, 1, 8, 1000} {
		got, err := ImportStock(dish, q)
		require.NoError(t, err)
		assert.Equal(t, dish.Stock+q, got.Stock)
	}
	assert.Equal(t, 12, dish.Stock)
}

func TestImportStock_notIdempotent(t *testing.T) {
	dish := DishStock{Stock: 1}
	dish, _ = ImportStock(dish, 4)
	dish, _ = ImportStock(dish, 4)
	assert.Equal(t, 9, dish.Stock)
}

func TestImportStock_rejects(t *testing.T) {
	_, err := ImportStock(DishStock{Stock: 3}, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = ImportStock(DishStock{Stock: math.MaxInt - 1}, 2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestImportStock_clampsNegativeCurrent(t *testing.T) {
	got, err := ImportStock(DishStock{Stock: -4}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stock)
}

func TestLedgerScenario(t *testing.T) {
	dish := DishStock{ID: "d1", Name: "Bun cha", Stock: 25}
	assert.Equal(t, StatusSufficient, dish.Status())

	dish, err := ImportStock(dish, 5)
	require.NoError(t, err)
	assert.Equal(t, 30, dish.Stock)
	assert.Equal(t, StatusSufficient, dish.Status())

	dish, err = SetStock(dish, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, dish.Stock)
	assert.Equal(t, StatusCritical, dish.Status())
}
