// Package checkout translates the in-memory cart into a single order or
// sale submission and clears the cart only once the backend confirms.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/cart"
	"github.com/Nelson707/store-project-sub000/internal/clients"
)

var (
	// ErrEmptyCart guards the entry point; the UI hides checkout for an
	// empty cart, so reaching this is a caller bug, not a user error.
	ErrEmptyCart = errors.New("checkout: cart is empty")

	// ErrInFlight enforces at most one outstanding submission per cart.
	ErrInFlight = errors.New("checkout: submission already in flight")
)

var phonePattern = regexp.MustCompile(`^(\+254|0)[17]\d{8}$`)

// ShippingDetails is the checkout form. Validation mirrors the backend's
// rules so obviously bad submissions never leave the app.
type ShippingDetails struct {
	FullName      string `json:"shippingFullName"`
	Phone         string `json:"shippingPhone"`
	Address       string `json:"shippingAddress"`
	City          string `json:"shippingCity"`
	County        string `json:"shippingCounty"`
	PaymentMethod string `json:"paymentMethod"`
	OrderNotes    string `json:"orderNotes"`
}

// ValidationError lists per-field problems with the shipping form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "checkout: invalid fields: " + strings.Join(names, ", ")
}

func validShippingPayment(method string) bool {
	switch method {
	case clients.PaymentCashOnDelivery, clients.PaymentMpesa,
		clients.PaymentCreditCard, clients.PaymentBankTransfer:
		return true
	}
	return false
}

func (d ShippingDetails) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(d.FullName) == "" {
		fields["shippingFullName"] = "full name is required"
	}
	switch {
	case strings.TrimSpace(d.Phone) == "":
		fields["shippingPhone"] = "phone number is required"
	case !phonePattern.MatchString(d.Phone):
		fields["shippingPhone"] = "enter a valid Kenyan phone number (e.g. 0712345678)"
	}
	if strings.TrimSpace(d.Address) == "" {
		fields["shippingAddress"] = "address is required"
	}
	if strings.TrimSpace(d.City) == "" {
		fields["shippingCity"] = "city/town is required"
	}
	if strings.TrimSpace(d.County) == "" {
		fields["shippingCounty"] = "county is required"
	}
	if !validShippingPayment(d.PaymentMethod) {
		fields["paymentMethod"] = "select a payment method"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// OrderPlacer is the slice of the orders client the coordinator needs.
type OrderPlacer interface {
	Create(ctx context.Context, req clients.CreateOrderRequest) (clients.Order, error)
}

// Coordinator submits the storefront cart as an order.
type Coordinator struct {
	cart     *cart.Cart
	orders   OrderPlacer
	logger   *zap.Logger
	inFlight atomic.Bool
}

func NewCoordinator(c *cart.Cart, orders OrderPlacer, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{cart: c, orders: orders, logger: logger}
}

// Submit places the order. The cart is cleared only after the backend
// confirms; on any failure it is left untouched so the user can retry.
func (co *Coordinator) Submit(ctx context.Context, details ShippingDetails) (clients.Order, error) {
	lines := co.cart.Lines()
	if len(lines) == 0 {
		return clients.Order{}, ErrEmptyCart
	}
	if err := details.validate(); err != nil {
		return clients.Order{}, err
	}

	if !co.inFlight.CompareAndSwap(false, true) {
		return clients.Order{}, ErrInFlight
	}
	defer co.inFlight.Store(false)

	req := clients.CreateOrderRequest{
		PaymentMethod:    details.PaymentMethod,
		ShippingFullName: details.FullName,
		ShippingPhone:    details.Phone,
		ShippingAddress:  details.Address,
		ShippingCity:     details.City,
		ShippingCounty:   details.County,
		OrderNotes:       details.OrderNotes,
		Items:            projectOrderItems(lines),
	}

	order, err := co.orders.Create(ctx, req)
	if err != nil {
		co.logger.Warn("order submission failed, cart preserved", zap.Error(err))
		return clients.Order{}, fmt.Errorf("place order: %w", err)
	}

	co.cart.Clear()
	co.logger.Info("order placed",
		zap.Int64("orderId", order.ID),
		zap.String("total", order.TotalAmount.String()),
	)
	return order, nil
}

func projectOrderItems(lines []cart.Line) []clients.OrderItemRequest {
	items := make([]clients.OrderItemRequest, 0, len(lines))
	for _, l := range lines {
		items = append(items, clients.OrderItemRequest{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}
	return items
}
