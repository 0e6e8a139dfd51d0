package clients

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

type SaleItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

type SaleRequest struct {
	PaymentMethod string            `json:"paymentMethod"`
	AmountPaid    decimal.Decimal   `json:"amountPaid"`
	Items         []SaleItemRequest `json:"items"`
}

type SaleItem struct {
	ID        int64           `json:"id"`
	Product   *Product        `json:"product,omitempty"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	SubTotal  decimal.Decimal `json:"subTotal"`
}

type Sale struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoiceNumber"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	PaymentMethod string          `json:"paymentMethod"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Items         []SaleItem      `json:"items"`
	CreatedAt     string          `json:"createdAt"`
}

// SaleResponse echoes the processed sale with the server-computed change.
type SaleResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	Sale          *Sale           `json:"sale,omitempty"`
	InvoiceNumber string          `json:"invoiceNumber"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AmountPaid    decimal.Decimal `json:"amountPaid"`
	Change        decimal.Decimal `json:"change"`
}

// SaleSummary wraps a period's sales with count and revenue.
type SaleSummary struct {
	Sales        []Sale          `json:"sales"`
	Count        int             `json:"count"`
	TotalRevenue decimal.Decimal `json:"totalRevenue"`
}

type SalesClient struct{ c *Client }

func NewSalesClient(c *Client) *SalesClient { return &SalesClient{c: c} }

func (sc *SalesClient) Checkout(ctx context.Context, req SaleRequest) (SaleResponse, error) {
	var out SaleResponse
	if err := sc.c.post(ctx, "/sales/checkout", req, &out); err != nil {
		return SaleResponse{}, err
	}
	return out, nil
}

func (sc *SalesClient) List(ctx context.Context) ([]Sale, error) {
	var out []Sale
	if err := sc.c.get(ctx, "/sales", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (sc *SalesClient) Get(ctx context.Context, id int64) (Sale, error) {
	var out Sale
	if err := sc.c.get(ctx, fmt.Sprintf("/sales/%d", id), nil, &out); err != nil {
		return Sale{}, err
	}
	return out, nil
}

func (sc *SalesClient) GetByInvoice(ctx context.Context, invoiceNumber string) (Sale, error) {
	var out Sale
	if err := sc.c.get(ctx, "/sales/invoice/"+url.PathEscape(invoiceNumber), nil, &out); err != nil {
		return Sale{}, err
	}
	return out, nil
}

func (sc *SalesClient) Today(ctx context.Context) (SaleSummary, error) {
	return sc.summary(ctx, "/sales/today", nil)
}

func (sc *SalesClient) ThisWeek(ctx context.Context) (SaleSummary, error) {
	return sc.summary(ctx, "/sales/week", nil)
}

func (sc *SalesClient) ThisMonth(ctx context.Context) (SaleSummary, error) {
	return sc.summary(ctx, "/sales/month", nil)
}

// Range fetches sales between two ISO dates (YYYY-MM-DD), inclusive.
func (sc *SalesClient) Range(ctx context.Context, start, end string) (SaleSummary, error) {
	q := url.Values{"start": {start}, "end": {end}}
	return sc.summary(ctx, "/sales/range", q)
}

func (sc *SalesClient) summary(ctx context.Context, path string, q url.Values) (SaleSummary, error) {
	var out SaleSummary
	if err := sc.c.get(ctx, path, q, &out); err != nil {
		return SaleSummary{}, err
	}
	return out, nil
}
