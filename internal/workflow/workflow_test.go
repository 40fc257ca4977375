package workflow

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/farmfresh/internal/models"
)

func TestApplyTransition_Table(t *testing.T) {
	statuses := []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusAccepted,
		models.OrderStatusRejected,
		models.OrderStatusDelivered,
		"Shipped",
	}

	allowed := map[models.OrderStatus]map[Action]models.OrderStatus{
		models.OrderStatusPending: {
			ActionAccept: models.OrderStatusAccepted,
			ActionReject: models.OrderStatusRejected,
		},
		models.OrderStatusAccepted: {
			ActionMarkDelivered: models.OrderStatusDelivered,
		},
	}

	succeeded := 0
	for _, status := range statuses {
		for _, action := range Actions() {
			next, err := ApplyTransition(status, action)
			want, ok := allowed[status][action]
			if ok {
				require.NoError(t, err, "%s + %s", status, action)
				assert.Equal(t, want, next)
				succeeded++
				continue
			}
			require.Error(t, err, "%s + %s", status, action)
			assert.True(t, errors.Is(err, ErrInvalidTransition))
			assert.Equal(t, status, next, "failed transition keeps the current status")
		}
	}
	assert.Equal(t, 3, succeeded)
}

func TestApplyTransition_UnknownAction(t *testing.T) {
	_, err := ApplyTransition(models.OrderStatusPending, Action("cancel"))
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApplyTransition_AcceptDelivered(t *testing.T) {
	_, err := ApplyTransition(models.OrderStatusDelivered, ActionAccept)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot accept an order that is Delivered")
}

func TestAvailableActions(t *testing.T) {
	assert.Equal(t, []Action{ActionAccept, ActionReject}, AvailableActions(models.OrderStatusPending))
	assert.Equal(t, []Action{ActionMarkDelivered}, AvailableActions(models.OrderStatusAccepted))
	assert.Empty(t, AvailableActions(models.OrderStatusRejected))
	assert.Empty(t, AvailableActions(models.OrderStatusDelivered))
	assert.Empty(t, AvailableActions("Unknown"))
}

func TestValidateStatusChange(t *testing.T) {
	assert.NoError(t, ValidateStatusChange(models.OrderStatusPending, models.OrderStatusAccepted))
	assert.NoError(t, ValidateStatusChange(models.OrderStatusPending, models.OrderStatusRejected))
	assert.NoError(t, ValidateStatusChange(models.OrderStatusAccepted, models.OrderStatusDelivered))

	assert.ErrorIs(t, ValidateStatusChange(models.OrderStatusPending, models.OrderStatusDelivered), ErrInvalidTransition)
	assert.ErrorIs(t, ValidateStatusChange(models.OrderStatusDelivered, models.OrderStatusAccepted), ErrInvalidTransition)
	assert.ErrorIs(t, ValidateStatusChange(models.OrderStatusRejected, models.OrderStatusAccepted), ErrInvalidTransition)
	assert.ErrorIs(t, ValidateStatusChange(models.OrderStatusPending, models.OrderStatusPending), ErrInvalidTransition)
}

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"accept":        ActionAccept,
		"REJECT":        ActionReject,
		"deliver":       ActionMarkDelivered,
		"markDelivered": ActionMarkDelivered,
		" delivered ":   ActionMarkDelivered,
	}
	for in, want := range cases {
		got, err := ParseAction(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseAction("cancel")
	assert.Error(t, err)
	assert.Equal(t, "Mark as Delivered", ActionMarkDelivered.Label())
}

func ordersWith(statuses ...models.OrderStatus) []models.Order {
	orders := make([]models.Order, 0, len(statuses))
	for _, s := range statuses {
		orders = append(orders, models.Order{Status: s})
	}
	return orders
}

func TestSummarize_Empty(t *testing.T) {
	assert.Equal(t, Summary{}, Summarize(nil))
	assert.Equal(t, Summary{}, Summarize([]models.Order{}))
}

func TestSummarize_Scenario(t *testing.T) {
	p, a, r, d := models.OrderStatusPending, models.OrderStatusAccepted, models.OrderStatusRejected, models.OrderStatusDelivered
	orders := ordersWith(p, a, p, a, r, d, a, p, r, a)

	s := Summarize(orders)
	assert.Equal(t, Summary{Total: 10, Pending: 3, Accepted: 4, Rejected: 2, Delivered: 1}, s)
	assert.Equal(t, s.Total, s.Pending+s.Accepted+s.Rejected+s.Delivered)
	assert.Equal(t, 4, s.Count(a))
	assert.Zero(t, s.Unclassified())
}

func TestSummarize_UnknownStatusCountsTowardTotalOnly(t *testing.T) {
	s := Summarize(ordersWith(models.OrderStatusPending, "Shipped"))
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 1, s.Unclassified())
}

func liveItem(name string, price int64, qty int) models.OrderItem {
	return models.OrderItem{
		ProductID: "p-" + name,
		Product:   &models.Product{Name: name, Image: "http://img/" + name, Price: decimal.NewFromInt(price)},
		Quantity:  qty,
		Snapshot: models.ProductSnapshot{
			Name:  "old " + name,
			Image: "http://img/old",
			Price: decimal.NewNullDecimal(decimal.NewFromInt(price - 1)),
		},
	}
}

func TestDisplayProduct_PrefersLiveProduct(t *testing.T) {
	view := DisplayProduct(liveItem("Onion", 30, 2))

	assert.True(t, view.Live)
	assert.Equal(t, "Onion", view.Name)
	assert.Equal(t, "http://img/Onion", view.Image)
	assert.True(t, view.Price.Decimal.Equal(decimal.NewFromInt(30)))
}

func TestDisplayProduct_FallsBackToSnapshot(t *testing.T) {
	deleted := liveItem("Onion", 30, 2)
	deleted.Product = nil

	unnamed := liveItem("Onion", 30, 2)
	unnamed.Product.Name = ""

	for _, item := range []models.OrderItem{deleted, unnamed} {
		view := DisplayProduct(item)
		assert.False(t, view.Live)
		assert.Equal(t, "old Onion", view.DisplayName())
		assert.Equal(t, "http://img/old", view.DisplayImage())
		assert.True(t, view.Price.Decimal.Equal(decimal.NewFromInt(29)))

		total, ok := LineTotal(item)
		require.True(t, ok)
		assert.Equal(t, "58", total.String(), "snapshot price drives pricing too")
	}
}

func TestDisplayProduct_Placeholders(t *testing.T) {
	view := DisplayProduct(models.OrderItem{Quantity: 1})
	assert.Equal(t, DeletedProductName, view.DisplayName())
	assert.Equal(t, PlaceholderImage, view.DisplayImage())
}

func TestOrderTotal(t *testing.T) {
	order := models.Order{Items: []models.OrderItem{liveItem("Rice", 60, 3)}}
	assert.Equal(t, "₹180.00", FormatTotal(order))

	order.TotalPrice = decimal.NewNullDecimal(decimal.RequireFromString("175.5"))
	assert.Equal(t, "₹175.50", FormatTotal(order), "stored total wins")

	unpriced := models.Order{Items: []models.OrderItem{{Quantity: 2}}}
	_, ok := OrderTotal(unpriced)
	assert.False(t, ok)
	assert.Equal(t, UnavailableIndicator, FormatTotal(unpriced))
	assert.Equal(t, UnavailableIndicator, FormatTotal(models.Order{}))
}

func TestPrimaryItem(t *testing.T) {
	_, ok := PrimaryItem(models.Order{})
	assert.False(t, ok)

	item, ok := PrimaryItem(models.Order{Items: []models.OrderItem{liveItem("Dal", 90, 1)}})
	require.True(t, ok)
	assert.Equal(t, "p-Dal", item.ProductID)
}
