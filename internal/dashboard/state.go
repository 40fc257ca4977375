// internal/dashboard/state.go
//
// Package dashboard holds the role-specific views of the marketplace: the
// customer catalog, the farmer's product and order screens and the buyer's
// order history. Views are driven by one user at a time and are not safe for
// concurrent use.
package dashboard

import (
	"errors"
	"net/http"

	"github.com/javajoker/farmfresh/internal/client"
)

const (
	MsgSessionExpired = "Session expired. Please log in again."
	MsgLoginRequired  = "Please log in to continue."
	MsgLoginToOrder   = "Please log in to place an order."
	MsgGenericFailure = "Something went wrong. Please try again."
)

// ErrValidation marks input rejected locally, before any request is sent.
var ErrValidation = errors.New("validation failed")

// ValidationError is a locally rejected input. Cause, when set, is the
// domain error behind it and stays reachable through errors.Is.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrValidation}
	}
	return []error{ErrValidation, e.Cause}
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

func invalidCause(err error) error {
	return &ValidationError{Message: err.Error(), Cause: err}
}

// State is the visible status of a view after its last action. Message holds
// either the success notice or the user-facing text for Err.
type State struct {
	Loading bool
	Message string
	Err     error
}

func (s State) Failed() bool {
	return s.Err != nil
}

func (s *State) begin() {
	s.Loading = true
	s.Message = ""
	s.Err = nil
}

func (s *State) succeed(msg string) {
	s.Loading = false
	s.Message = msg
	s.Err = nil
}

func (s *State) fail(err error, loginMsg string) error {
	s.Loading = false
	s.Message = describeError(err, loginMsg)
	s.Err = err
	return err
}

// describeError maps an error onto the three user-facing categories.
// loginMsg is used when no session exists at all.
func describeError(err error, loginMsg string) string {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case client.StatusCode(err) == http.StatusUnauthorized:
		return MsgSessionExpired
	case errors.Is(err, client.ErrAuthRequired):
		return loginMsg
	}
	if msg := client.ServerMessage(err); msg != "" && client.StatusCode(err) < http.StatusInternalServerError {
		return msg
	}
	return MsgGenericFailure
}

// Describe is the message a view shows for err outside of any particular action.
func Describe(err error) string {
	return describeError(err, MsgLoginRequired)
}

// IsValidation reports whether err was raised locally without a network call.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
