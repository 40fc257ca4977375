// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

// Product is a farmer's listing. Quantity is the available stock and never goes negative.
type Product struct {
	BaseModel
	FarmerID    string          `json:"farmer" gorm:"type:uuid;not null;index"`
	Name        string          `json:"name" gorm:"size:255;not null"`
	Description string          `json:"description" gorm:"type:text"`
	Category    Category        `json:"category" gorm:"type:varchar(20);index"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Quantity    int             `json:"quantity" gorm:"not null;default:0;check:quantity >= 0"`
	Image       string          `json:"image,omitempty" gorm:"type:text"`

	// Relationships
	Farmer *User `json:"-" gorm:"foreignKey:FarmerID"`
}

// Snapshot captures the display fields stored on an order line at creation time.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		Name:  p.Name,
		Image: p.Image,
		Price: decimal.NullDecimal{Decimal: p.Price, Valid: true},
	}
}

// InStock reports whether quantity units can be ordered.
func (p *Product) InStock(quantity int) bool {
	return quantity <= p.Quantity
}
