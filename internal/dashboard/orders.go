// internal/dashboard/orders.go
package dashboard

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/workflow"
)

const UnknownCustomer = "Unknown"

type FarmerOrderAPI interface {
	ListFarmerOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) (*models.Order, error)
}

type BuyerOrderAPI interface {
	ListMyOrders(ctx context.Context) ([]models.Order, error)
}

// OrderRow is one rendered order line.
type OrderRow struct {
	OrderID       string
	Product       workflow.ProductView
	Quantity      int
	ItemCount     int
	Total         string
	Status        models.OrderStatus
	DeliveryType  models.DeliveryType
	CreatedAt     time.Time
	CustomerName  string
	CustomerEmail string
	Actions       []workflow.Action
}

func newOrderRow(order models.Order) OrderRow {
	row := OrderRow{
		OrderID:      order.ID,
		ItemCount:    len(order.Items),
		Total:        workflow.FormatTotal(order),
		Status:       order.Status,
		DeliveryType: order.DeliveryType,
		CreatedAt:    order.CreatedAt,
	}
	if item, ok := workflow.PrimaryItem(order); ok {
		row.Product = workflow.DisplayProduct(item)
		row.Quantity = item.Quantity
	}
	return row
}

// FarmerOrders is the farmer's incoming order list with status actions.
type FarmerOrders struct {
	api    FarmerOrderAPI
	logger logrus.FieldLogger
	orders []models.Order
	state  State
}

func NewFarmerOrders(api FarmerOrderAPI, logger logrus.FieldLogger) *FarmerOrders {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FarmerOrders{api: api, logger: logger, orders: []models.Order{}}
}

func (v *FarmerOrders) State() State {
	return v.state
}

func (v *FarmerOrders) Orders() []models.Order {
	return v.orders
}

func (v *FarmerOrders) Load(ctx context.Context) error {
	v.state.begin()
	if err := v.refresh(ctx); err != nil {
		return v.state.fail(err, MsgLoginRequired)
	}
	v.state.succeed("")
	return nil
}

func (v *FarmerOrders) Summary() workflow.Summary {
	return workflow.Summarize(v.orders)
}

func (v *FarmerOrders) order(id string) (models.Order, bool) {
	for _, o := range v.orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// Actions lists what the farmer may do next with the order; nil for unknown or terminal orders.
func (v *FarmerOrders) Actions(orderID string) []workflow.Action {
	o, ok := v.order(orderID)
	if !ok {
		return nil
	}
	return workflow.AvailableActions(o.Status)
}

func (v *FarmerOrders) Rows() []OrderRow {
	rows := make([]OrderRow, 0, len(v.orders))
	for _, o := range v.orders {
		row := newOrderRow(o)
		row.CustomerName = UnknownCustomer
		row.CustomerEmail = workflow.UnavailableIndicator
		if o.Customer != nil {
			if o.Customer.Name != "" {
				row.CustomerName = o.Customer.Name
			}
			if o.Customer.Email != "" {
				row.CustomerEmail = o.Customer.Email
			}
		}
		row.Actions = workflow.AvailableActions(o.Status)
		rows = append(rows, row)
	}
	return rows
}

// Apply moves the order along the workflow. The transition is checked against
// the locally known status, sent to the server, and the whole list is reloaded.
func (v *FarmerOrders) Apply(ctx context.Context, orderID string, action workflow.Action) error {
	v.state.begin()

	o, ok := v.order(orderID)
	if !ok {
		return v.state.fail(invalid("Order not found. Please refresh your orders."), MsgLoginRequired)
	}
	next, err := workflow.ApplyTransition(o.Status, action)
	if err != nil {
		return v.state.fail(invalidCause(err), MsgLoginRequired)
	}

	if _, err := v.api.UpdateOrderStatus(ctx, orderID, next); err != nil {
		v.logger.WithError(err).WithFields(logrus.Fields{
			"order_id": orderID,
			"status":   next,
		}).Warn("Failed to update order status")
		return v.state.fail(err, MsgLoginRequired)
	}

	if err := v.refresh(ctx); err != nil {
		return v.state.fail(err, MsgLoginRequired)
	}
	v.state.succeed("Order " + orderID + " is now " + string(next))
	return nil
}

func (v *FarmerOrders) refresh(ctx context.Context) error {
	orders, err := v.api.ListFarmerOrders(ctx)
	if err != nil {
		v.logger.WithError(err).Warn("Failed to load farmer orders")
		return err
	}
	v.orders = orders
	return nil
}

// OrderHistory is the customer's list of placed orders.
type OrderHistory struct {
	api    BuyerOrderAPI
	logger logrus.FieldLogger
	orders []models.Order
	state  State
}

func NewOrderHistory(api BuyerOrderAPI, logger logrus.FieldLogger) *OrderHistory {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrderHistory{api: api, logger: logger, orders: []models.Order{}}
}

func (h *OrderHistory) State() State {
	return h.state
}

func (h *OrderHistory) Orders() []models.Order {
	return h.orders
}

func (h *OrderHistory) Load(ctx context.Context) error {
	h.state.begin()
	orders, err := h.api.ListMyOrders(ctx)
	if err != nil {
		h.logger.WithError(err).Warn("Failed to load orders")
		return h.state.fail(err, MsgLoginRequired)
	}
	h.orders = orders
	h.state.succeed("")
	return nil
}

func (h *OrderHistory) Rows() []OrderRow {
	rows := make([]OrderRow, 0, len(h.orders))
	for _, o := range h.orders {
		rows = append(rows, newOrderRow(o))
	}
	return rows
}
