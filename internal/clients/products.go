package clients

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Brand         string          `json:"brand"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description"`
	StockQuantity int             `json:"stockQuantity"`
	ImageFileName string          `json:"imageFileName"`
	CreatedAt     string          `json:"createdAt"`
	Category      *Category       `json:"category,omitempty"`
}

// ProductForm is the multipart payload for creating or updating a product.
// Image is optional on update; the backend keeps the existing file.
type ProductForm struct {
	Name          string
	Brand         string
	CategoryID    int64
	StockQuantity int
	Price         decimal.Decimal
	Description   string
	ImageFileName string
	Image         io.Reader
}

type ProductsClient struct{ c *Client }

func NewProductsClient(c *Client) *ProductsClient { return &ProductsClient{c: c} }

func (pc *ProductsClient) List(ctx context.Context) ([]Product, error) {
	var out []Product
	if err := pc.c.get(ctx, "/products", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (pc *ProductsClient) Get(ctx context.Context, id int64) (Product, error) {
	var out Product
	if err := pc.c.get(ctx, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (pc *ProductsClient) Create(ctx context.Context, form ProductForm) (Product, error) {
	var out Product
	if err := pc.postForm(ctx, "POST", "/products", form, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (pc *ProductsClient) Update(ctx context.Context, id int64, form ProductForm) (Product, error) {
	var out Product
	if err := pc.postForm(ctx, "PUT", fmt.Sprintf("/products/%d", id), form, &out); err != nil {
		return Product{}, err
	}
	return out, nil
}

func (pc *ProductsClient) Delete(ctx context.Context, id int64) error {
	return pc.c.delete(ctx, fmt.Sprintf("/products/%d", id))
}

func (pc *ProductsClient) postForm(ctx context.Context, method, path string, form ProductForm, out any) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":          form.Name,
		"brand":         form.Brand,
		"categoryId":    strconv.FormatInt(form.CategoryID, 10),
		"stockQuantity": strconv.Itoa(form.StockQuantity),
		"price":         form.Price.String(),
		"description":   form.Description,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return fmt.Errorf("write form field %s: %w", k, err)
		}
	}

	if form.Image != nil {
		part, err := mw.CreateFormFile("imageFile", form.ImageFileName)
		if err != nil {
			return fmt.Errorf("create image part: %w", err)
		}
		if _, err := io.Copy(part, form.Image); err != nil {
			return fmt.Errorf("copy image: %w", err)
		}
	}

	if err := mw.Close(); err != nil {
		return fmt.Errorf("finalize form: %w", err)
	}

	return pc.c.do(ctx, method, path, nil, mw.FormDataContentType(), &buf, out)
}
