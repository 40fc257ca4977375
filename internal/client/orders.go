// internal/client/orders.go
package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/javajoker/farmfresh/internal/models"
)

func (c *Client) PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error) {
	var order models.Order
	if err := c.do(ctx, http.MethodPost, "/api/orders", true, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListMyOrders returns the orders placed by the signed-in customer.
func (c *Client) ListMyOrders(ctx context.Context) ([]models.Order, error) {
	return c.listOrders(ctx, "/api/orders/my-orders")
}

// ListFarmerOrders returns the orders addressed to the signed-in farmer.
func (c *Client) ListFarmerOrders(ctx context.Context) ([]models.Order, error) {
	return c.listOrders(ctx, "/api/orders/farmer-orders")
}

func (c *Client) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	req := models.UpdateOrderStatusRequest{Status: status}
	if err := c.do(ctx, http.MethodPut, "/api/orders/"+url.PathEscape(id), true, req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) listOrders(ctx context.Context, path string) ([]models.Order, error) {
	var orders []models.Order
	if err := c.do(ctx, http.MethodGet, path, true, nil, &orders); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
