// internal/workflow/summary.go
package workflow

import "github.com/javajoker/farmfresh/internal/models"

// Summary is always derived from the current order collection, never stored.
type Summary struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
	Delivered int `json:"delivered"`
}

// Summarize counts orders per status in a single pass. Orders with an unknown
// status count toward Total only.
func Summarize(orders []models.Order) Summary {
	var s Summary
	for _, o := range orders {
		s.Total++
		switch o.Status {
		case models.OrderStatusPending:
			s.Pending++
		case models.OrderStatusAccepted:
			s.Accepted++
		case models.OrderStatusRejected:
			s.Rejected++
		case models.OrderStatusDelivered:
			s.Delivered++
		}
	}
	return s
}

func (s Summary) Count(status models.OrderStatus) int {
	switch status {
	case models.OrderStatusPending:
		return s.Pending
	case models.OrderStatusAccepted:
		return s.Accepted
	case models.OrderStatusRejected:
		return s.Rejected
	case models.OrderStatusDelivered:
		return s.Delivered
	default:
		return 0
	}
}

// Unclassified is the number of orders whose status is outside the enumeration.
func (s Summary) Unclassified() int {
	return s.Total - s.Pending - s.Accepted - s.Rejected - s.Delivered
}
