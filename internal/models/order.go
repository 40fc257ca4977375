// internal/models/order.go
package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Order lines are fixed at creation; only Status changes afterwards.
type Order struct {
	BaseModel
	CustomerID   string              `json:"customerId" gorm:"type:uuid;not null;index"`
	FarmerID     string              `json:"farmerId" gorm:"type:uuid;not null;index"`
	Items        []OrderItem         `json:"items" gorm:"foreignKey:OrderID"`
	DeliveryType DeliveryType        `json:"deliveryType" gorm:"type:varchar(20);not null"`
	Status       OrderStatus         `json:"status" gorm:"type:varchar(20);default:'Pending';index"`
	TotalPrice   decimal.NullDecimal `json:"totalPrice" gorm:"type:decimal(10,2)"`

	// Relationships
	Customer *User `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
}

type OrderItem struct {
	ID        string          `json:"-" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OrderID   string          `json:"-" gorm:"type:uuid;not null;index"`
	ProductID string          `json:"productId" gorm:"type:uuid;not null;index"`
	Product   *Product        `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity" gorm:"not null"`
	Snapshot  ProductSnapshot `json:"productSnapshot" gorm:"embedded;embeddedPrefix:snapshot_"`
}

// ProductSnapshot is the immutable copy of a product's display fields taken when the order was placed.
type ProductSnapshot struct {
	Name  string              `json:"name,omitempty" gorm:"size:255"`
	Image string              `json:"image,omitempty" gorm:"type:text"`
	Price decimal.NullDecimal `json:"price" gorm:"type:decimal(10,2)"`
}

// UnmarshalJSON accepts "product" either as a populated object, a bare id or null.
func (i *OrderItem) UnmarshalJSON(data []byte) error {
	type alias OrderItem
	aux := struct {
		*alias
		Product json.RawMessage `json:"product"`
	}{alias: (*alias)(i)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Product)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		i.Product = nil
	case raw[0] == '"':
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return err
		}
		i.Product = nil
		if i.ProductID == "" {
			i.ProductID = id
		}
	default:
		var product Product
		if err := json.Unmarshal(raw, &product); err != nil {
			return err
		}
		i.Product = &product
		if i.ProductID == "" {
			i.ProductID = product.ID
		}
	}

	return nil
}
