package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/clients"
)

type OrdersHandler struct {
	orders *clients.OrdersClient
	logger *zap.Logger
}

func NewOrdersHandler(orders *clients.OrdersClient, logger *zap.Logger) *OrdersHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrdersHandler{orders: orders, logger: logger}
}

func (h *OrdersHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListMine(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err, "order list failed")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// Get serves the confirmation view: the server's order record, not the
// local cart, is what the user is shown after checkout.
func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, err, "order lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Admin surface (POS console only).

func (h *OrdersHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err, "order list failed")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrdersHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeJSONBody(r, &body); err != nil || strings.TrimSpace(body.Status) == "" {
		writeError(w, r, http.StatusBadRequest, "status is required")
		return
	}
	order, err := h.orders.UpdateStatus(r.Context(), id, body.Status)
	if err != nil {
		writeUpstreamError(w, r, err, "status update failed")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	var body struct {
		PaymentStatus string `json:"paymentStatus"`
	}
	if err := decodeJSONBody(r, &body); err != nil || strings.TrimSpace(body.PaymentStatus) == "" {
		writeError(w, r, http.StatusBadRequest, "paymentStatus is required")
		return
	}
	order, err := h.orders.UpdatePaymentStatus(r.Context(), id, body.PaymentStatus)
	if err != nil {
		writeUpstreamError(w, r, err, "payment status update failed")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	if err := h.orders.DeleteOrder(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "order delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *OrdersHandler) orderID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid order id")
		return 0, false
	}
	return id, true
}
