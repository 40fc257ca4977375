// internal/dashboard/customer.go
package dashboard

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/farmfresh/internal/catalog"
	"github.com/javajoker/farmfresh/internal/models"
)

type CustomerAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	PlaceOrder(ctx context.Context, req models.PlaceOrderRequest) (*models.Order, error)
}

// CustomerDashboard is the catalog view: browse, filter and order products.
type CustomerDashboard struct {
	api    CustomerAPI
	logger logrus.FieldLogger
	filter *catalog.Filter
	state  State
}

func NewCustomerDashboard(api CustomerAPI, logger logrus.FieldLogger) *CustomerDashboard {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &CustomerDashboard{
		api:    api,
		logger: logger,
		filter: catalog.NewFilter(nil),
	}
}

func (d *CustomerDashboard) State() State {
	return d.state
}

// Load fetches the full catalog, keeping the current search and category selection.
func (d *CustomerDashboard) Load(ctx context.Context) error {
	d.state.begin()
	products, err := d.api.ListProducts(ctx)
	if err != nil {
		d.logger.WithError(err).Warn("Failed to load products")
		return d.state.fail(err, MsgLoginRequired)
	}
	d.filter.SetProducts(products)
	d.state.succeed("")
	return nil
}

func (d *CustomerDashboard) Search(term string) {
	d.filter.SetSearchTerm(term)
}

func (d *CustomerDashboard) ToggleCategory(category models.Category) {
	d.filter.ToggleCategory(category)
}

func (d *CustomerDashboard) Filter() *catalog.Filter {
	return d.filter
}

func (d *CustomerDashboard) Visible() []models.Product {
	return d.filter.VisibleProducts()
}

func (d *CustomerDashboard) Product(id string) (models.Product, bool) {
	for _, p := range d.filter.Products() {
		if p.ID == id {
			return p, true
		}
	}
	return models.Product{}, false
}

// PlaceOrder orders quantity units of one catalog product. Quantity and stock
// are checked against the loaded catalog first; nothing is sent when they fail.
// A zero quantity means 1 and an empty delivery type means Delivery.
func (d *CustomerDashboard) PlaceOrder(ctx context.Context, productID string, quantity int, deliveryType models.DeliveryType) (*models.Order, error) {
	d.state.begin()

	if quantity == 0 {
		quantity = 1
	}
	if deliveryType == "" {
		deliveryType = models.DeliveryTypeDelivery
	}

	product, ok := d.Product(productID)
	switch {
	case !ok:
		return nil, d.state.fail(invalid("Product not found. Please refresh the catalog."), MsgLoginToOrder)
	case quantity < 1:
		return nil, d.state.fail(invalid("Quantity must be at least 1"), MsgLoginToOrder)
	case !deliveryType.Valid():
		return nil, d.state.fail(invalid("Delivery type must be Delivery or Pickup"), MsgLoginToOrder)
	case !product.InStock(quantity):
		msg := fmt.Sprintf("Sorry, only %d units available. Please reduce your order quantity.", product.Quantity)
		return nil, d.state.fail(invalid(msg), MsgLoginToOrder)
	}

	order, err := d.api.PlaceOrder(ctx, models.PlaceOrderRequest{
		Items:        []models.OrderItemRequest{{Product: productID, Quantity: quantity}},
		DeliveryType: deliveryType,
	})
	if err != nil {
		d.logger.WithError(err).WithField("product_id", productID).Warn("Failed to place order")
		return nil, d.state.fail(err, MsgLoginToOrder)
	}

	// Stock changed on the server; refresh so the catalog shows it.
	if products, err := d.api.ListProducts(ctx); err == nil {
		d.filter.SetProducts(products)
	} else {
		d.logger.WithError(err).Debug("Failed to refresh products after order")
	}

	d.state.succeed("Order placed successfully!")
	return order, nil
}
