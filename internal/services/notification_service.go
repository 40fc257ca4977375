// internal/services/notification_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/farmfresh/internal/config"
	"github.com/javajoker/farmfresh/internal/models"
)

const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// EventPublisher delivers a message body to a named queue.
type EventPublisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

// OrderEvent is the message published for order lifecycle changes.
type OrderEvent struct {
	Type       string             `json:"type"`
	OrderID    string             `json:"orderId"`
	CustomerID string             `json:"customerId"`
	FarmerID   string             `json:"farmerId"`
	Status     models.OrderStatus `json:"status"`
	Previous   models.OrderStatus `json:"previousStatus,omitempty"`
	Total      string             `json:"totalPrice,omitempty"`
	OccurredAt time.Time          `json:"occurredAt"`
}

// NotificationService publishes order events. Without a publisher events are only logged.
// Publishing failures never fail the request that caused them.
type NotificationService struct {
	publisher EventPublisher
	queue     string
	logger    *logrus.Logger
}

func NewNotificationService(publisher EventPublisher, cfg *config.Config, logger *logrus.Logger) *NotificationService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	queue := "order_events"
	if cfg != nil && cfg.AMQP.OrderQueue != "" {
		queue = cfg.AMQP.OrderQueue
	}
	return &NotificationService{
		publisher: publisher,
		queue:     queue,
		logger:    logger,
	}
}

func (s *NotificationService) OrderPlaced(ctx context.Context, order *models.Order) {
	s.publish(ctx, newOrderEvent(EventOrderPlaced, order, ""))
}

func (s *NotificationService) OrderStatusChanged(ctx context.Context, order *models.Order, previous models.OrderStatus) {
	s.publish(ctx, newOrderEvent(EventOrderStatusChanged, order, previous))
}

func newOrderEvent(eventType string, order *models.Order, previous models.OrderStatus) OrderEvent {
	event := OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		FarmerID:   order.FarmerID,
		Status:     order.Status,
		Previous:   previous,
		OccurredAt: time.Now().UTC(),
	}
	if order.TotalPrice.Valid {
		event.Total = order.TotalPrice.Decimal.StringFixed(2)
	}
	return event
}

func (s *NotificationService) publish(ctx context.Context, event OrderEvent) {
	if s == nil {
		return
	}

	fields := logrus.Fields{
		"event":    event.Type,
		"order_id": event.OrderID,
		"status":   event.Status,
	}

	if s.publisher == nil {
		s.logger.WithFields(fields).Info("Order event")
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.logger.WithFields(fields).WithError(err).Error("Failed to encode order event")
		return
	}

	if err := s.publisher.Publish(ctx, s.queue, body); err != nil {
		s.logger.WithFields(fields).WithError(err).Warn("Failed to publish order event")
		return
	}
	s.logger.WithFields(fields).Debug("Order event published")
}

// AMQPPublisher publishes persistent JSON messages to durable queues on RabbitMQ.
type AMQPPublisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	declared map[string]bool
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	return &AMQPPublisher{conn: conn, declared: make(map[string]bool)}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, queue string, body []byte) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	if err := p.declare(ch, queue); err != nil {
		return err
	}

	err = ch.PublishWithContext(ctx,
		"",    // exchange
		queue, // routing key (queue name)
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}
	return nil
}

func (p *AMQPPublisher) declare(ch *amqp.Channel, queue string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.declared[queue] {
		return nil
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	p.declared[queue] = true
	return nil
}

func (p *AMQPPublisher) Close() error {
	return p.conn.Close()
}
