// internal/workflow/display.go
package workflow

import (
	"github.com/shopspring/decimal"

	"github.com/javajoker/farmfresh/internal/models"
)

const (
	PlaceholderImage     = "https://placehold.co/120x120?text=No+Image"
	DeletedProductName   = "Product Deleted"
	UnavailableIndicator = "N/A"
)

// ProductView is the resolved product info used to render or price an order line.
type ProductView struct {
	ProductID string
	Name      string
	Image     string
	Price     decimal.NullDecimal
	Live      bool
}

// DisplayProduct prefers the live product when it still exists and has a name,
// and falls back to the order-time snapshot otherwise.
func DisplayProduct(item models.OrderItem) ProductView {
	if item.Product != nil && item.Product.Name != "" {
		return ProductView{
			ProductID: item.ProductID,
			Name:      item.Product.Name,
			Image:     item.Product.Image,
			Price:     decimal.NullDecimal{Decimal: item.Product.Price, Valid: true},
			Live:      true,
		}
	}
	return ProductView{
		ProductID: item.ProductID,
		Name:      item.Snapshot.Name,
		Image:     item.Snapshot.Image,
		Price:     item.Snapshot.Price,
	}
}

func (v ProductView) DisplayName() string {
	if v.Name == "" {
		return DeletedProductName
	}
	return v.Name
}

func (v ProductView) DisplayImage() string {
	if v.Image == "" {
		return PlaceholderImage
	}
	return v.Image
}

// LineTotal prices one order line from its display product.
func LineTotal(item models.OrderItem) (decimal.Decimal, bool) {
	view := DisplayProduct(item)
	if !view.Price.Valid {
		return decimal.Zero, false
	}
	return view.Price.Decimal.Mul(decimal.NewFromInt(int64(item.Quantity))), true
}

// OrderTotal returns the stored total when present, otherwise the sum of line totals.
// It reports false when any line cannot be priced.
func OrderTotal(order models.Order) (decimal.Decimal, bool) {
	if order.TotalPrice.Valid {
		return order.TotalPrice.Decimal, true
	}
	if len(order.Items) == 0 {
		return decimal.Zero, false
	}

	total := decimal.Zero
	for _, item := range order.Items {
		line, ok := LineTotal(item)
		if !ok {
			return decimal.Zero, false
		}
		total = total.Add(line)
	}
	return total, true
}

// FormatPrice renders an amount in rupees with two decimals.
func FormatPrice(amount decimal.Decimal) string {
	return "₹" + amount.StringFixed(2)
}

// FormatTotal renders OrderTotal, or "N/A" when the order cannot be priced.
func FormatTotal(order models.Order) string {
	total, ok := OrderTotal(order)
	if !ok {
		return UnavailableIndicator
	}
	return FormatPrice(total)
}

// PrimaryItem returns the first order line, which is what order rows display.
func PrimaryItem(order models.Order) (models.OrderItem, bool) {
	if len(order.Items) == 0 {
		return models.OrderItem{}, false
	}
	return order.Items[0], true
}
