package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/checkout"
	"github.com/Nelson707/store-project-sub000/internal/clients"
	"github.com/Nelson707/store-project-sub000/internal/middleware"
)

// OrderSubmitter matches *checkout.Coordinator.
type OrderSubmitter interface {
	Submit(ctx context.Context, details checkout.ShippingDetails) (clients.Order, error)
}

// SaleSubmitter matches *checkout.POS.
type SaleSubmitter interface {
	Submit(ctx context.Context, paymentMethod string, amountPaid decimal.Decimal) (clients.SaleResponse, error)
}

type CheckoutHandler struct {
	orders OrderSubmitter
	logger *zap.Logger
}

func NewCheckoutHandler(orders OrderSubmitter, logger *zap.Logger) *CheckoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutHandler{orders: orders, logger: logger}
}

// PlaceOrder submits the storefront cart. On success the confirmation body
// is the server's order, which is the authoritative record of the purchase.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var details checkout.ShippingDetails
	if err := json.NewDecoder(r.Body).Decode(&details); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	order, err := h.orders.Submit(r.Context(), details)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

type POSCheckoutHandler struct {
	sales  SaleSubmitter
	logger *zap.Logger
}

func NewPOSCheckoutHandler(sales SaleSubmitter, logger *zap.Logger) *POSCheckoutHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &POSCheckoutHandler{sales: sales, logger: logger}
}

// ProcessSale submits the terminal cart as a sale.
func (h *POSCheckoutHandler) ProcessSale(w http.ResponseWriter, r *http.Request) {
	var body struct {
		PaymentMethod string          `json:"paymentMethod"`
		AmountPaid    decimal.Decimal `json:"amountPaid"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	resp, err := h.sales.Submit(r.Context(), body.PaymentMethod, body.AmountPaid)
	if err != nil {
		writeCheckoutError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// writeCheckoutError maps coordinator failures onto statuses. Upstream 4xx
// pass through (the backend's validation message is the useful one);
// anything else from the backend is a gateway failure.
func writeCheckoutError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *checkout.ValidationError
	if errors.As(err, &validationErr) {
		writeJSON(w, http.StatusBadRequest, fieldErrorResponse{
			Error:         "validation failed",
			Fields:        validationErr.Fields,
			CorrelationID: middleware.GetCorrelationID(r.Context()),
		})
		return
	}

	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		writeError(w, r, http.StatusBadRequest, "cart is empty")
	case errors.Is(err, checkout.ErrInsufficientPayment):
		writeError(w, r, http.StatusBadRequest, "amount paid is less than the total")
	case errors.Is(err, checkout.ErrInFlight):
		writeError(w, r, http.StatusConflict, "a submission is already in progress")
	default:
		writeUpstreamError(w, r, err, "order service request failed")
	}
}
