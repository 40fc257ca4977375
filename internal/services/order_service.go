// internal/services/order_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/javajoker/farmfresh/internal/models"
	"github.com/javajoker/farmfresh/internal/workflow"
)

type OrderService struct {
	db                  *gorm.DB
	notificationService *NotificationService
	logger              *logrus.Logger
}

func NewOrderService(db *gorm.DB, notificationService *NotificationService, logger *logrus.Logger) *OrderService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OrderService{
		db:                  db,
		notificationService: notificationService,
		logger:              logger,
	}
}

// PlaceOrder checks and decrements stock, snapshots every product and prices the
// order in one transaction. All items must belong to the same farmer.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID string, req *models.PlaceOrderRequest) (*models.Order, error) {
	order := &models.Order{
		CustomerID:   customerID,
		DeliveryType: req.DeliveryType,
		Status:       models.OrderStatusPending,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		total := decimal.Zero

		for _, line := range req.Items {
			// Lock the product row so concurrent orders cannot oversell it
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("id = ?", line.Product).First(&product).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrProductNotFound
				}
				return fmt.Errorf("database error: %w", err)
			}

			switch {
			case product.FarmerID == customerID:
				return ErrOwnProduct
			case order.FarmerID == "":
				order.FarmerID = product.FarmerID
			case order.FarmerID != product.FarmerID:
				return ErrMixedFarmers
			}

			if !product.InStock(line.Quantity) {
				return &StockError{ProductID: product.ID, Available: product.Quantity, Requested: line.Quantity}
			}

			if err := tx.Model(&product).UpdateColumn("quantity",
				gorm.Expr("quantity - ?", line.Quantity)).Error; err != nil {
				return fmt.Errorf("failed to update stock: %w", err)
			}

			order.Items = append(order.Items, models.OrderItem{
				ProductID: product.ID,
				Quantity:  line.Quantity,
				Snapshot:  product.Snapshot(),
			})
			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
		}

		order.TotalPrice = decimal.NewNullDecimal(total)
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":    order.ID,
		"customer_id": customerID,
		"farmer_id":   order.FarmerID,
		"total":       order.TotalPrice.Decimal.StringFixed(2),
	}).Info("Order placed")

	placed, err := s.GetOrder(ctx, order.ID)
	if err != nil {
		return nil, err
	}
	s.notificationService.OrderPlaced(ctx, placed)
	return placed, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := s.withRelations(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// ListCustomerOrders returns the orders a customer placed, newest first.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.withRelations(ctx).Where("customer_id = ?", customerID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListFarmerOrders returns the orders addressed to a farmer, newest first.
func (s *OrderService) ListFarmerOrders(ctx context.Context, farmerID string) ([]models.Order, error) {
	orders := []models.Order{}
	if err := s.withRelations(ctx).Where("farmer_id = ?", farmerID).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to list farmer orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order to status. Only the farmer the order is addressed
// to may do this, and only along the workflow's transitions.
func (s *OrderService) UpdateStatus(ctx context.Context, id, farmerID string, status models.OrderStatus) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if order.FarmerID != farmerID {
		return nil, ErrNotOwner
	}

	from := order.Status
	if err := workflow.ValidateStatusChange(from, status); err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Changed by another request since it was read
		return nil, fmt.Errorf("%w: order %s is no longer %s", workflow.ErrInvalidTransition, id, from)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id": id,
		"from":     from,
		"to":       status,
	}).Info("Order status updated")

	updated, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	s.notificationService.OrderStatusChanged(ctx, updated, from)
	return updated, nil
}

func (s *OrderService) withRelations(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Preload("Customer")
}
