package stock

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidQuantity = errors.New("invalid quantity")

// DishStock is the stock-relevant slice of a catalog dish.
type DishStock struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Stock     int    `json:"stock"`
	SoldToday int    `json:"sold_today"`
	Available bool   `json:"available"`
}

func (d DishStock) Status() Status { return Classify(d.Stock) }

// SetStock replaces the on-hand count, e.g. after a physical recount.
func SetStock(d DishStock, newStock int) (DishStock, error) {
	if newStock < 0 {
		return d, fmt.Errorf("%w: stock must be >= 0, got %d", ErrInvalidQuantity, newStock)
	}
	d.Stock = newStock
	return d, nil
}

// ImportStock adds received supply to the on-hand count. Every call adds again;
// callers that retry must dedupe by request id before calling.
func ImportStock(d DishStock, quantity int) (DishStock, error) {
	if quantity < 0 {
		return d, fmt.Errorf("%w: import quantity must be >= 0, got %d", ErrInvalidQuantity, quantity)
	}
	current := max(d.Stock, 0)
	if quantity > math.MaxInt-current {
		return d, fmt.Errorf("%w: import of %d overflows stock %d", ErrInvalidQuantity, quantity, current)
	}
	d.Stock = current + quantity
	return d, nil
}
