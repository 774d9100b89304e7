package httpx

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/ariefcatur/go-restaurant-orders/internal/catalog"
	"github.com/ariefcatur/go-restaurant-orders/internal/inventory"
	"github.com/ariefcatur/go-restaurant-orders/internal/orders"
	"github.com/ariefcatur/go-restaurant-orders/internal/payment"
	"github.com/ariefcatur/go-restaurant-orders/internal/stock"
)

// writeError maps domain errors onto status codes. Unknown errors are logged
// and reported as 500 without detail.
func writeError(w http.ResponseWriter, log *zap.Logger, err error) {
	var ge *payment.GatewayError
	switch {
	case errors.Is(err, stock.ErrInvalidQuantity):
		writeJSON(w, http.StatusBadRequest, errorResp{Error: err.Error()})
	case errors.Is(err, catalog.ErrDishNotFound), errors.Is(err, orders.ErrOrderNotFound):
		writeJSON(w, http.StatusNotFound, errorResp{Error: err.Error()})
	case errors.Is(err, inventory.ErrDuplicateImport):
		writeJSON(w, http.StatusConflict, errorResp{Error: err.Error()})
	case errors.Is(err, payment.ErrPaymentNotEligible):
		writeJSON(w, http.StatusConflict, errorResp{Error: err.Error()})
	case errors.Is(err, payment.ErrPaymentLinkUnavailable):
		writeJSON(w, http.StatusBadGateway, errorResp{Error: err.Error()})
	case errors.As(err, &ge):
		log.Warn("payment gateway failure", zap.Int("upstream_status", ge.StatusCode), zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResp{Error: ge.Error()})
	default:
		log.Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResp{Error: "internal error"})
	}
}
