package clients

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Payment methods accepted at checkout. Selection is cosmetic client-side;
// the backend owns any actual payment handling.
const (
	PaymentCashOnDelivery = "CASH_ON_DELIVERY"
	PaymentMpesa          = "MPESA"
	PaymentCreditCard     = "CREDIT_CARD"
	PaymentBankTransfer   = "BANK_TRANSFER"
	PaymentCash           = "CASH"
)

// OrderItemRequest carries no price on purpose: the backend re-prices every
// line from its own product data, so the client's snapshot is display-only.
type OrderItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type CreateOrderRequest struct {
	PaymentMethod    string             `json:"paymentMethod"`
	ShippingFullName string             `json:"shippingFullName"`
	ShippingPhone    string             `json:"shippingPhone"`
	ShippingAddress  string             `json:"shippingAddress"`
	ShippingCity     string             `json:"shippingCity"`
	ShippingCounty   string             `json:"shippingCounty"`
	OrderNotes       string             `json:"orderNotes,omitempty"`
	Items            []OrderItemRequest `json:"items"`
}

type OrderItem struct {
	ID                   int64           `json:"id"`
	ProductID            int64           `json:"productId"`
	ProductName          string          `json:"productName"`
	ProductImageFileName string          `json:"productImageFileName"`
	UnitPrice            decimal.Decimal `json:"unitPrice"`
	Quantity             int             `json:"quantity"`
	Subtotal             decimal.Decimal `json:"subtotal"`
}

// Order is the server's representation; after checkout it, not the local
// cart, is the source of truth for what was purchased.
type Order struct {
	ID               int64           `json:"id"`
	UserID           int64           `json:"userId"`
	UserName         string          `json:"userName"`
	UserEmail        string          `json:"userEmail"`
	Status           string          `json:"status"`
	PaymentMethod    string          `json:"paymentMethod"`
	PaymentStatus    string          `json:"paymentStatus"`
	ShippingFullName string          `json:"shippingFullName"`
	ShippingPhone    string          `json:"shippingPhone"`
	ShippingAddress  string          `json:"shippingAddress"`
	ShippingCity     string          `json:"shippingCity"`
	ShippingCounty   string          `json:"shippingCounty"`
	OrderNotes       string          `json:"orderNotes"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	Cancellable      bool            `json:"cancellable"`
	CreatedAt        string          `json:"createdAt"`
	Items            []OrderItem     `json:"items"`
}

type OrdersClient struct{ c *Client }

func NewOrdersClient(c *Client) *OrdersClient { return &OrdersClient{c: c} }

func (oc *OrdersClient) Create(ctx context.Context, req CreateOrderRequest) (Order, error) {
	var out Order
	if err := oc.c.post(ctx, "/orders", req, &out); err != nil {
		return Order{}, err
	}
	return out, nil
}

// ListMine returns the authenticated user's orders.
func (oc *OrdersClient) ListMine(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := oc.c.get(ctx, "/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (oc *OrdersClient) Get(ctx context.Context, id int64) (Order, error) {
	var out Order
	if err := oc.c.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &out); err != nil {
		return Order{}, err
	}
	return out, nil
}

// Admin surface.

func (oc *OrdersClient) ListAll(ctx context.Context) ([]Order, error) {
	var out []Order
	if err := oc.c.get(ctx, "/admin/orders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (oc *OrdersClient) UpdateStatus(ctx context.Context, id int64, status string) (Order, error) {
	var out Order
	in := map[string]string{"status": status}
	if err := oc.c.patch(ctx, fmt.Sprintf("/admin/orders/%d/status", id), in, &out); err != nil {
		return Order{}, err
	}
	return out, nil
}

func (oc *OrdersClient) UpdatePaymentStatus(ctx context.Context, id int64, paymentStatus string) (Order, error) {
	var out Order
	in := map[string]string{"paymentStatus": paymentStatus}
	if err := oc.c.patch(ctx, fmt.Sprintf("/admin/orders/%d/payment-status", id), in, &out); err != nil {
		return Order{}, err
	}
	return out, nil
}

func (oc *OrdersClient) DeleteOrder(ctx context.Context, id int64) error {
	return oc.c.delete(ctx, fmt.Sprintf("/admin/orders/%d", id))
}
