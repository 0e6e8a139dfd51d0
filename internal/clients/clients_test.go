package clients

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"

	"github.com/Nelson707/store-project-sub000/internal/middleware"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

// capture records the last request the test server saw.
type capture struct {
	method string
	path   string
	query  string
	header http.Header
	body   []byte
}

func newTestServer(t *testing.T, status int, responseBody string) (*httptest.Server, *capture) {
	t.Helper()
	cap := &capture{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cap.method = r.Method
		cap.path = r.URL.Path
		cap.query = r.URL.RawQuery
		cap.header = r.Header.Clone()
		cap.body, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)
	return srv, cap
}

func TestBaseURLPrefixIsKept(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusOK, `[]`)

	c := NewClient(srv.URL+"/api", nil, nil)
	if _, err := NewProductsClient(c).List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if cap.path != "/api/products" {
		t.Fatalf("expected /api/products, got %s", cap.path)
	}
}

func TestBearerTokenHeader(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusOK, `[]`)

	c := NewClient(srv.URL+"/api", nil, staticToken("tok-123"))
	if _, err := NewOrdersClient(c).ListMine(context.Background()); err != nil {
		t.Fatalf("ListMine: %v", err)
	}
	if got := cap.header.Get("Authorization"); got != "Bearer tok-123" {
		t.Fatalf("unexpected Authorization header %q", got)
	}
}

func TestAnonymousWithoutToken(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusOK, `[]`)

	c := NewClient(srv.URL+"/api", nil, staticToken(""))
	if _, err := NewProductsClient(c).List(context.Background()); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := cap.header.Get("Authorization"); got != "" {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestCorrelationIDPropagation(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusOK, `[]`)

	var ctx context.Context
	handler := middleware.CorrelationID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx = r.Context()
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	c := NewClient(srv.URL+"/api", nil, nil)
	if _, err := NewProductsClient(c).List(ctx); err != nil {
		t.Fatalf("List: %v", err)
	}
	if got := cap.header.Get(middleware.HeaderCorrelationID); got == "" {
		t.Fatal("expected correlation id forwarded to backend")
	}
}

func TestErrorDecoding(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message key", http.StatusBadRequest, `{"message":"Invalid phone number"}`, "Invalid phone number"},
		{"error key", http.StatusBadRequest, `{"error":"Insufficient stock for Soap"}`, "Insufficient stock for Soap"},
		{"bare text", http.StatusConflict, `duplicate email`, "duplicate email"},
		{"empty body", http.StatusForbidden, ``, "Forbidden"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			c := NewClient(srv.URL+"/api", nil, nil)

			_, err := NewProductsClient(c).List(context.Background())
			var apiErr *Error
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if apiErr.Status != tt.status || apiErr.Message != tt.want {
				t.Fatalf("got %+v, want status %d message %q", apiErr, tt.status, tt.want)
			}
		})
	}
}

func TestCreateOrder(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusCreated, `{"id":7,"status":"PENDING","totalAmount":320.50}`)

	c := NewClient(srv.URL+"/api", nil, staticToken("tok"))
	req := CreateOrderRequest{
		PaymentMethod:    PaymentMpesa,
		ShippingFullName: "Jane Wanjiku",
		ShippingPhone:    "0712345678",
		ShippingAddress:  "123 Moi Avenue",
		ShippingCity:     "Nairobi",
		ShippingCounty:   "Nairobi",
		Items:            []OrderItemRequest{{ProductID: 1, Quantity: 2}},
	}

	order, err := NewOrdersClient(c).Create(context.Background(), req)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if order.ID != 7 || order.Status != "PENDING" {
		t.Fatalf("unexpected order %+v", order)
	}
	if !order.TotalAmount.Equal(decimal.RequireFromString("320.50")) {
		t.Fatalf("unexpected total %s", order.TotalAmount)
	}

	if cap.method != http.MethodPost || cap.path != "/api/orders" {
		t.Fatalf("unexpected request %s %s", cap.method, cap.path)
	}
	var sent CreateOrderRequest
	if err := json.Unmarshal(cap.body, &sent); err != nil {
		t.Fatalf("sent body not json: %v", err)
	}
	if len(sent.Items) != 1 || sent.Items[0].ProductID != 1 || sent.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items %+v", sent.Items)
	}
	// Items must never carry client-side prices.
	if strings.Contains(string(cap.body), "unitPrice") {
		t.Fatalf("request body leaks prices: %s", cap.body)
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusOK, `{"id":7,"status":"SHIPPED"}`)

	c := NewClient(srv.URL+"/api", nil, nil)
	order, err := NewOrdersClient(c).UpdateStatus(context.Background(), 7, "SHIPPED")
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if order.Status != "SHIPPED" {
		t.Fatalf("unexpected order %+v", order)
	}
	if cap.method != http.MethodPatch || cap.path != "/api/admin/orders/7/status" {
		t.Fatalf("unexpected request %s %s", cap.method, cap.path)
	}
}

func TestRegister(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusOK, `{"id":3,"name":"Jane","token":"jwt-abc"}`)

	c := NewClient(srv.URL+"/api", nil, nil)
	req := RegisterRequest{
		Name:        gofakeit.Name(),
		Email:       gofakeit.Email(),
		Password:    gofakeit.Password(true, true, true, false, false, 12),
		PhoneNumber: "0712345678",
	}

	resp, err := NewAuthClient(c).Register(context.Background(), req)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if resp.Token != "jwt-abc" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if cap.path != "/api/auth/register" {
		t.Fatalf("unexpected path %s", cap.path)
	}
}

func TestSalesRangeQuery(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusOK, `{"count":2,"totalRevenue":640.00}`)

	c := NewClient(srv.URL+"/api", nil, nil)
	summary, err := NewSalesClient(c).Range(context.Background(), "2026-08-01", "2026-08-31")
	if err != nil {
		t.Fatalf("Range: %v", err)
	}
	if summary.Count != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if !strings.Contains(cap.query, "start=2026-08-01") || !strings.Contains(cap.query, "end=2026-08-31") {
		t.Fatalf("unexpected query %q", cap.query)
	}
}

func TestProductFormUpload(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusCreated, `{"id":5,"name":"Soap"}`)

	c := NewClient(srv.URL+"/api", nil, staticToken("tok"))
	form := ProductForm{
		Name:          "Soap",
		Brand:         "Acme",
		CategoryID:    2,
		StockQuantity: 10,
		Price:         decimal.RequireFromString("120.00"),
		Description:   "Bar soap",
		Image:         strings.NewReader("fake-image-bytes"),
		ImageFileName: "soap.jpg",
	}

	p, err := NewProductsClient(c).Create(context.Background(), form)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.ID != 5 {
		t.Fatalf("unexpected product %+v", p)
	}

	ct := cap.header.Get("Content-Type")
	if !strings.HasPrefix(ct, "multipart/form-data") {
		t.Fatalf("expected multipart content type, got %q", ct)
	}
	body := string(cap.body)
	for _, fragment := range []string{"Soap", "Acme", "120", "soap.jpg", "fake-image-bytes"} {
		if !strings.Contains(body, fragment) {
			t.Fatalf("multipart body missing %q", fragment)
		}
	}
}

func TestDeleteCategory(t *testing.T) {
	srv, cap := newTestServer(t, http.StatusNoContent, ``)

	c := NewClient(srv.URL+"/api", nil, nil)
	if err := NewCategoriesClient(c).Delete(context.Background(), 4); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if cap.method != http.MethodDelete || cap.path != "/api/categories/4" {
		t.Fatalf("unexpected request %s %s", cap.method, cap.path)
	}
}
