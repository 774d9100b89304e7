package httpx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/display"
	"github.com/ariefcatur/go-restaurant-orders/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders/internal/paging"
	"github.com/ariefcatur/go-restaurant-orders/internal/payment"
)

// HeaderUserID carries the caller identity set by the upstream gateway.
const HeaderUserID = "X-User-Id"

type OrderStore interface {
	ListMyOrders(ctx context.Context, userID string, p paging.Params) (paging.Page[orders.Order], error)
	GetOrder(ctx context.Context, id string) (orders.Order, error)
}

type OrderReader interface {
	GetOrder(ctx context.Context, id string) (orders.Order, error)
}

type PaymentInitiator interface {
	InitiatePayment(ctx context.Context, o orders.Order) (payment.RedirectOutcome, error)
}

// OrdersHandler serves order history. Views is the cached read path; the
// payment action always reads from Store.
type OrdersHandler struct {
	Store    OrderStore
	Views    OrderReader
	Payments PaymentInitiator
	Images   ImageResolver
	Log      *zap.Logger
}

type OrderItemView struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	Total        decimal.Decimal `json:"total"`
	FullImageURL string          `json:"full_image_url"`
}

type OrderView struct {
	ID                    string               `json:"id"`
	ReceiverName          string               `json:"receiver_name"`
	ReceiverPhone         string               `json:"receiver_phone"`
	ReceiverAddress       string               `json:"receiver_address"`
	Date                  time.Time            `json:"date"`
	TotalPrice            decimal.Decimal      `json:"total_price"`
	Status                orders.Status        `json:"status"`
	StatusLabel           display.Label        `json:"status_label"`
	PaymentMethod         orders.PaymentMethod `json:"payment_method"`
	PaymentStatus         orders.PaymentStatus `json:"payment_status"`
	PaymentLabels         orders.PaymentLabels `json:"payment_labels"`
	PaymentActionEligible bool                 `json:"payment_action_eligible"`
	Items                 []OrderItemView      `json:"items"`
}

type PaymentResp struct {
	OrderID    string `json:"order_id"`
	PaymentURL string `json:"payment_url"`
}

func (h *OrdersHandler) Register(r chi.Router) {
	r.Get("/orders", h.listOrders)
	r.Get("/orders/{id}", h.getOrder)
	r.Post("/orders/{id}/payment", h.requestPayment)
}

func (h *OrdersHandler) view(o orders.Order) OrderView {
	items := make([]OrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemView{
			ID:           it.ID,
			Name:         it.Name,
			Quantity:     it.Quantity,
			Price:        it.Price,
			Total:        it.Total,
			FullImageURL: h.Images.Resolve(it.ImageURL),
		})
	}
	ps := o.PaymentStatus
	if ps == "" {
		ps = orders.PaymentUnknown
	}
	return OrderView{
		ID:                    o.ID,
		ReceiverName:          o.ReceiverName,
		ReceiverPhone:         o.ReceiverPhone,
		ReceiverAddress:       o.ReceiverAddress,
		Date:                  o.Date,
		TotalPrice:            o.TotalPrice,
		Status:                o.Status,
		StatusLabel:           orders.StatusLabel(o.Status),
		PaymentMethod:         o.PaymentMethod,
		PaymentStatus:         ps,
		PaymentLabels:         orders.PaymentLabel(o.PaymentMethod, o.PaymentStatus),
		PaymentActionEligible: orders.IsPaymentActionEligible(o),
		Items:                 items,
	}
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, errorResp{Error: "missing " + HeaderUserID})
		return
	}
	q := r.URL.Query()

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	page, err := h.Store.ListMyOrders(ctx, userID, paging.FromQuery(q.Get("page"), q.Get("page_size")))
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, paging.Map(page, h.view))
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.load(ctx, h.Views, r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(o))
}

func (h *OrdersHandler) requestPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	o, err := h.load(ctx, h.Store, r)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	out, err := h.Payments.InitiatePayment(ctx, o)
	if err != nil {
		writeError(w, h.Log, err)
		return
	}
	writeJSON(w, http.StatusOK, PaymentResp{OrderID: out.OrderID, PaymentURL: out.PaymentURL})
}

// load hides orders of other users behind ErrOrderNotFound when the caller
// identifies itself.
func (h *OrdersHandler) load(ctx context.Context, src OrderReader, r *http.Request) (orders.Order, error) {
	o, err := src.GetOrder(ctx, chi.URLParam(r, "id"))
	if err != nil {
		return orders.Order{}, err
	}
	if uid := strings.TrimSpace(r.Header.Get(HeaderUserID)); uid != "" && uid != o.UserID {
		return orders.Order{}, orders.ErrOrderNotFound
	}
	return o, nil
}
