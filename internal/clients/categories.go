package clients

import (
	"context"
	"fmt"
)

type CategoriesClient struct{ c *Client }

func NewCategoriesClient(c *Client) *CategoriesClient { return &CategoriesClient{c: c} }

func (cc *CategoriesClient) List(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := cc.c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (cc *CategoriesClient) Create(ctx context.Context, name string) (Category, error) {
	var out Category
	in := map[string]string{"name": name}
	if err := cc.c.post(ctx, "/categories", in, &out); err != nil {
		return Category{}, err
	}
	return out, nil
}

func (cc *CategoriesClient) Delete(ctx context.Context, id int64) error {
	return cc.c.delete(ctx, fmt.Sprintf("/categories/%d", id))
}
