package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/clients"
)

type SalesHandler struct {
	sales  *clients.SalesClient
	logger *zap.Logger
}

func NewSalesHandler(sales *clients.SalesClient, logger *zap.Logger) *SalesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SalesHandler{sales: sales, logger: logger}
}

func (h *SalesHandler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.sales.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err, "sales list failed")
		return
	}
	writeJSON(w, http.StatusOK, sales)
}

func (h *SalesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid sale id")
		return
	}
	sale, err := h.sales.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, err, "sale lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

// GetByInvoice resolves the receipt lookup on the POS sales screen.
func (h *SalesHandler) GetByInvoice(w http.ResponseWriter, r *http.Request) {
	sale, err := h.sales.GetByInvoice(r.Context(), chi.URLParam(r, "invoiceNumber"))
	if err != nil {
		writeUpstreamError(w, r, err, "sale lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, sale)
}

func (h *SalesHandler) Today(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.sales.Today)
}

func (h *SalesHandler) ThisWeek(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.sales.ThisWeek)
}

func (h *SalesHandler) ThisMonth(w http.ResponseWriter, r *http.Request) {
	h.summary(w, r, h.sales.ThisMonth)
}

func (h *SalesHandler) Range(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		writeError(w, r, http.StatusBadRequest, "start and end dates are required")
		return
	}
	summary, err := h.sales.Range(r.Context(), start, end)
	if err != nil {
		writeUpstreamError(w, r, err, "sales range failed")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *SalesHandler) summary(w http.ResponseWriter, r *http.Request, fetch func(ctx context.Context) (clients.SaleSummary, error)) {
	summary, err := fetch(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err, "sales summary failed")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
