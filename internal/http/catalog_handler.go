package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/clients"
)

type CatalogHandler struct {
	products   *clients.ProductsClient
	categories *clients.CategoriesClient
	logger     *zap.Logger
}

func NewCatalogHandler(products *clients.ProductsClient, categories *clients.CategoriesClient, logger *zap.Logger) *CatalogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogHandler{products: products, categories: categories, logger: logger}
}

// ListProducts proxies the catalog with the browse filters the apps offer:
// ?q= name/brand substring, ?category= exact category name. The backend
// returns the full list, so filtering happens here.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.List(r.Context())
	if err != nil {
		h.logger.Warn("product list failed", zap.Error(err))
		writeError(w, r, http.StatusBadGateway, "catalog request failed")
		return
	}

	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	category := strings.TrimSpace(r.URL.Query().Get("category"))

	filtered := make([]clients.Product, 0, len(products))
	for _, p := range products {
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Brand), q) {
			continue
		}
		if category != "" && (p.Category == nil || !strings.EqualFold(p.Category.Name, category)) {
			continue
		}
		filtered = append(filtered, p)
	}

	writeJSON(w, http.StatusOK, filtered)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}

	p, err := h.products.Get(r.Context(), id)
	if err != nil {
		writeUpstreamError(w, r, err, "catalog request failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		writeUpstreamError(w, r, err, "category request failed")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// Admin catalog surface (POS console only).

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}
	p, err := h.products.Create(r.Context(), form)
	if err != nil {
		writeUpstreamError(w, r, err, "product create failed")
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}
	form, ok := h.parseProductForm(w, r)
	if !ok {
		return
	}
	p, err := h.products.Update(r.Context(), id, form)
	if err != nil {
		writeUpstreamError(w, r, err, "product update failed")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid product id")
		return
	}
	if err := h.products.Delete(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "product delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name string `json:"name"`
	}
	if err := decodeJSONBody(r, &body); err != nil || strings.TrimSpace(body.Name) == "" {
		writeError(w, r, http.StatusBadRequest, "name is required")
		return
	}
	c, err := h.categories.Create(r.Context(), body.Name)
	if err != nil {
		writeUpstreamError(w, r, err, "category create failed")
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid category id")
		return
	}
	if err := h.categories.Delete(r.Context(), id); err != nil {
		writeUpstreamError(w, r, err, "category delete failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *CatalogHandler) parseProductForm(w http.ResponseWriter, r *http.Request) (clients.ProductForm, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid multipart form")
		return clients.ProductForm{}, false
	}

	categoryID, _ := strconv.ParseInt(r.FormValue("categoryId"), 10, 64)
	stock, _ := strconv.Atoi(r.FormValue("stockQuantity"))
	price, err := decimal.NewFromString(r.FormValue("price"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid price")
		return clients.ProductForm{}, false
	}

	form := clients.ProductForm{
		Name:          r.FormValue("name"),
		Brand:         r.FormValue("brand"),
		CategoryID:    categoryID,
		StockQuantity: stock,
		Price:         price,
		Description:   r.FormValue("description"),
	}

	if file, header, err := r.FormFile("imageFile"); err == nil {
		form.Image = file
		form.ImageFileName = header.Filename
	}

	return form, true
}
