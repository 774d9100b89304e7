package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/display"
	"github.com/ariefcatur/go-restaurant-orders/internal/paging"
	"github.com/ariefcatur/go-restaurant-orders/internal/stock"
)

type DishCatalog interface {
	ListDishes(ctx context.Context, p paging.Params, category string) (paging.Page[stock.DishStock], error)
}

type StockService interface {
	SetStock(ctx context.Context, dishID string, newStock int) (stock.DishStock, error)
	ImportStock(ctx context.Context, dishID string, quantity int, requestID string) (stock.DishStock, error)
}

type ImageResolver interface {
	Resolve(ref string) string
}

type DishesHandler struct {
	Catalog DishCatalog
	Stock   StockService
	Images  ImageResolver
	Log     *zap.Logger
}

type DishView struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Category     string        `json:"category,omitempty"`
	FullImageURL string        `json:"full_image_url"`
	Stock        int           `json:"stock"`
	SoldToday    int           `json:"sold_today"`
	Available    bool          `json:"available"`
	StockStatus  stock.Status  `json:"stock_status"`
	StockLabel   display.Label `json:"stock_label"`
}

type SetStockReq struct {
	Stock *int `json:"stock"`
}

type ImportStockReq struct {
	Quantity *int `json:"quantity"`
}

func (h *DishesHandler) Register(r chi.Router) {
	r.Get("/dishes", h.listDishes)
	r.Put("/dishes/{id}/stock", h.setStock)
	r.Post("/dishes/{id}/stock/imports", h.importStock)
}

func (h *DishesHandler) view(d stock.DishStock) DishView {
	st := d.Status()
	return DishView{
		ID:           d.ID,
		Name:         d.Name,
		Category:     d.Category,
		FullImageURL: h.Images.Resolve(d.ImageURL),
		Stock:        d.Stock,
		SoldToday:    d.SoldToday,
		Available:    d.Available,
		StockStatus:  st,
		StockLabel:   st.Label(),
	}
}

func (h *DishesHandler) listDishes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	p := paging.FromQuery(q.Get("page"), q.Get("page_size"))

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	page, err := h.Catalog.ListDishes(ctx, p, strings.TrimSpace(q.Get("category")))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, paging.Map(page, h.view))
}

func (h *DishesHandler) setStock(w http.ResponseWriter, r *http.Request) {
	var req SetStockReq
	if !decodeQuantityBody(w, r, &req) {
		return
	}
	if req.Stock == nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid quantity: stock is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	d, err := h.Stock.SetStock(ctx, chi.URLParam(r, "id"), *req.Stock)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(d))
}

func (h *DishesHandler) importStock(w http.ResponseWriter, r *http.Request) {
	var req ImportStockReq
	if !decodeQuantityBody(w, r, &req) {
		return
	}
	if req.Quantity == nil {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid quantity: quantity is required"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	requestID := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
	d, err := h.Stock.ImportStock(ctx, chi.URLParam(r, "id"), *req.Quantity, requestID)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(d))
}

// decodeQuantityBody rejects fractional or out-of-range numbers as an invalid
// quantity and anything unparseable as invalid json.
func decodeQuantityBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: stock.ErrInvalidQuantity.Error() + ": " + typeErr.Field + " must be an integer"})
		return false
	}
	writeJSON(w, http.StatusBadRequest, errorResp{Error: "invalid json"})
	return false
}
