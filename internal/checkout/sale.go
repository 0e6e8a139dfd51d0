package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Nelson707/store-project-sub000/internal/cart"
	"github.com/Nelson707/store-project-sub000/internal/clients"
)

// ErrInsufficientPayment rejects a POS sale where the tendered amount does
// not cover the cart total.
var ErrInsufficientPayment = errors.New("checkout: amount paid is less than the total")

// SaleProcessor is the slice of the sales client the POS coordinator needs.
type SaleProcessor interface {
	Checkout(ctx context.Context, req clients.SaleRequest) (clients.SaleResponse, error)
}

// POS submits the terminal cart as an over-the-counter sale. Same rules as
// the storefront coordinator: clear only on confirmed success, one
// submission in flight at a time.
type POS struct {
	cart     *cart.Cart
	sales    SaleProcessor
	logger   *zap.Logger
	inFlight atomic.Bool
}

func NewPOS(c *cart.Cart, sales SaleProcessor, logger *zap.Logger) *POS {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &POS{cart: c, sales: sales, logger: logger}
}

func validSalePayment(method string) bool {
	switch method {
	case clients.PaymentCash, clients.PaymentMpesa, clients.PaymentCreditCard:
		return true
	}
	return false
}

// Submit processes the sale. amountPaid is checked against the local
// subtotal for fast feedback; the backend recomputes the authoritative
// total and change.
func (p *POS) Submit(ctx context.Context, paymentMethod string, amountPaid decimal.Decimal) (clients.SaleResponse, error) {
	lines := p.cart.Lines()
	if len(lines) == 0 {
		return clients.SaleResponse{}, ErrEmptyCart
	}
	if !validSalePayment(paymentMethod) {
		return clients.SaleResponse{}, &ValidationError{Fields: map[string]string{
			"paymentMethod": "select a payment method",
		}}
	}
	if amountPaid.LessThan(p.cart.Subtotal().Amount) {
		return clients.SaleResponse{}, ErrInsufficientPayment
	}

	if !p.inFlight.CompareAndSwap(false, true) {
		return clients.SaleResponse{}, ErrInFlight
	}
	defer p.inFlight.Store(false)

	items := make([]clients.SaleItemRequest, 0, len(lines))
	for _, l := range lines {
		items = append(items, clients.SaleItemRequest{
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
		})
	}

	resp, err := p.sales.Checkout(ctx, clients.SaleRequest{
		PaymentMethod: paymentMethod,
		AmountPaid:    amountPaid,
		Items:         items,
	})
	if err != nil {
		p.logger.Warn("sale submission failed, cart preserved", zap.Error(err))
		return clients.SaleResponse{}, fmt.Errorf("process sale: %w", err)
	}

	p.cart.Clear()
	p.logger.Info("sale completed",
		zap.String("invoice", resp.InvoiceNumber),
		zap.String("total", resp.TotalAmount.String()),
		zap.String("change", resp.Change.String()),
	)
	return resp, nil
}
