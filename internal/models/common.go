// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices travel as JSON numbers on the wire.
	decimal.MarshalJSONWithoutQuotes = true
}

// Base model with common fields. IDs are opaque strings assigned by the backend.
type BaseModel struct {
	ID        string         `json:"_id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type Role string

const (
	RoleFarmer   Role = "farmer"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleFarmer || r == RoleCustomer
}

// Category is the fixed product taxonomy shared by the catalog filter and the product form.
type Category string

const (
	CategoryVegetables Category = "Vegetables"
	CategoryGrains     Category = "Grains"
	CategoryDairy      Category = "Dairy"
	CategoryFruits     Category = "Fruits"
	CategoryPulses     Category = "Pulses"
	CategorySpices     Category = "Spices"
)

var categories = []Category{
	CategoryVegetables,
	CategoryGrains,
	CategoryDairy,
	CategoryFruits,
	CategoryPulses,
	CategorySpices,
}

// Categories returns the enumerated categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusAccepted  OrderStatus = "Accepted"
	OrderStatusRejected  OrderStatus = "Rejected"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// OrderStatuses returns every status in workflow order.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusAccepted,
		OrderStatusRejected,
		OrderStatusDelivered,
	}
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusAccepted, OrderStatusRejected, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further action is offered for the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusRejected || s == OrderStatusDelivered
}

type DeliveryType string

const (
	DeliveryTypeDelivery DeliveryType = "Delivery"
	DeliveryTypePickup   DeliveryType = "Pickup"
)

func (d DeliveryType) Valid() bool {
	return d == DeliveryTypeDelivery || d == DeliveryTypePickup
}
