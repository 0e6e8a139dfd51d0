package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/cart"
	"github.com/Nelson707/store-project-sub000/internal/clients"
	"github.com/Nelson707/store-project-sub000/internal/money"
)

// ProductFetcher is the slice of the products client the cart handler uses
// to take the add-time snapshot.
type ProductFetcher interface {
	Get(ctx context.Context, id int64) (clients.Product, error)
}

type CartHandler struct {
	cart     *cart.Cart
	products ProductFetcher
	logger   *zap.Logger
}

func NewCartHandler(c *cart.Cart, products ProductFetcher, logger *zap.Logger) *CartHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartHandler{cart: c, products: products, logger: logger}
}

type cartView struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"totalItems"`
	Subtotal   money.Money `json:"subtotal"`
	Open       bool        `json:"open"`
}

func (h *CartHandler) view() cartView {
	lines := h.cart.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{
		Items:      lines,
		TotalItems: h.cart.TotalItems(),
		Subtotal:   h.cart.Subtotal(),
		Open:       h.cart.IsOpen(),
	}
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ProductID int64 `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.ProductID == 0 {
		writeError(w, r, http.StatusBadRequest, "productId is required")
		return
	}

	// The snapshot is taken here: whatever the backend returns now is what
	// the line shows until it leaves the cart.
	p, err := h.products.Get(r.Context(), body.ProductID)
	if err != nil {
		var apiErr *clients.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			writeError(w, r, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Warn("product lookup failed", zap.Int64("productId", body.ProductID), zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "product lookup failed")
		return
	}

	h.cart.Add(cart.Product{
		ID:            p.ID,
		Name:          p.Name,
		Brand:         p.Brand,
		ImageFileName: p.ImageFileName,
		Price:         money.New(p.Price, money.KES),
	})

	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) productID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}
	h.cart.Increment(id)
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}
	h.cart.Decrement(id)
	writeJSON(w, http.StatusOK, h.view())
}

// SetQuantity is the POS quantity control; anything below 1 removes the line.
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}
	var body struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json")
		return
	}
	h.cart.SetQuantity(id, body.Quantity)
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.productID(w, r)
	if !ok {
		return
	}
	h.cart.Remove(id)
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.cart.SetOpen(true)
	writeJSON(w, http.StatusOK, h.view())
}

func (h *CartHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.cart.SetOpen(false)
	writeJSON(w, http.StatusOK, h.view())
}
