// internal/client/products.go
package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/javajoker/farmfresh/internal/models"
)

// ListProducts returns the whole public catalog.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var resp models.ProductListResponse
	if err := c.do(ctx, http.MethodGet, "/api/products", false, nil, &resp); err != nil {
		return nil, err
	}
	return nonNilProducts(resp.Products), nil
}

// ListMyProducts returns the signed-in farmer's products.
func (c *Client) ListMyProducts(ctx context.Context) ([]models.Product, error) {
	var resp models.ProductListResponse
	if err := c.do(ctx, http.MethodGet, "/api/products/my-products", true, nil, &resp); err != nil {
		return nil, err
	}
	return nonNilProducts(resp.Products), nil
}

func (c *Client) CreateProduct(ctx context.Context, req models.ProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", true, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, req models.ProductRequest) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), true, req, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), true, nil, nil)
}

func nonNilProducts(p []models.Product) []models.Product {
	if p == nil {
		return []models.Product{}
	}
	return p
}
