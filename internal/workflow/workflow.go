// internal/workflow/workflow.go
//
// Package workflow holds the order status state machine shared by the client
// dashboards and the API server:
//
//	Pending  --accept-->        Accepted
//	Pending  --reject-->        Rejected
//	Accepted --markDelivered--> Delivered
//
// Rejected and Delivered are terminal.
package workflow

import (
	"errors"
	"fmt"
	"strings"

	"github.com/javajoker/farmfresh/internal/models"
)

var ErrInvalidTransition = errors.New("invalid order status transition")

type Action string

const (
	ActionAccept        Action = "accept"
	ActionReject        Action = "reject"
	ActionMarkDelivered Action = "markDelivered"
)

// Actions returns every action in the order a farmer is offered them.
func Actions() []Action {
	return []Action{ActionAccept, ActionReject, ActionMarkDelivered}
}

func (a Action) Valid() bool {
	switch a {
	case ActionAccept, ActionReject, ActionMarkDelivered:
		return true
	default:
		return false
	}
}

func (a Action) Label() string {
	switch a {
	case ActionAccept:
		return "Accept"
	case ActionReject:
		return "Reject"
	case ActionMarkDelivered:
		return "Mark as Delivered"
	default:
		return string(a)
	}
}

// ParseAction accepts the canonical names plus "deliver"/"delivered", case-insensitively.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accept":
		return ActionAccept, nil
	case "reject":
		return ActionReject, nil
	case "markdelivered", "deliver", "delivered", "mark-delivered":
		return ActionMarkDelivered, nil
	default:
		return "", fmt.Errorf("unknown order action %q", s)
	}
}

type edge struct {
	from   models.OrderStatus
	action Action
}

var transitions = map[edge]models.OrderStatus{
	{models.OrderStatusPending, ActionAccept}:         models.OrderStatusAccepted,
	{models.OrderStatusPending, ActionReject}:         models.OrderStatusRejected,
	{models.OrderStatusAccepted, ActionMarkDelivered}: models.OrderStatusDelivered,
}

// ApplyTransition returns the status reached by applying action to current.
// Every combination outside the table returns an error wrapping ErrInvalidTransition.
func ApplyTransition(current models.OrderStatus, action Action) (models.OrderStatus, error) {
	next, ok := transitions[edge{current, action}]
	if !ok {
		return current, fmt.Errorf("%w: cannot %s an order that is %s", ErrInvalidTransition, action, describe(current))
	}
	return next, nil
}

// AvailableActions lists the actions valid for status. Terminal and unknown statuses offer none.
func AvailableActions(status models.OrderStatus) []Action {
	var actions []Action
	for _, a := range Actions() {
		if _, ok := transitions[edge{status, a}]; ok {
			actions = append(actions, a)
		}
	}
	return actions
}

// ActionFor finds the action that moves current to next.
func ActionFor(current, next models.OrderStatus) (Action, error) {
	for _, a := range Actions() {
		if to, ok := transitions[edge{current, a}]; ok && to == next {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, describe(current), describe(next))
}

// ValidateStatusChange is the target-status form of the table, used where the API
// carries the new status rather than the action.
func ValidateStatusChange(current, next models.OrderStatus) error {
	_, err := ActionFor(current, next)
	return err
}

func describe(s models.OrderStatus) string {
	if s == "" {
		return "without status"
	}
	return string(s)
}
