package shipment

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

var (
	// ErrInvalidTransition is returned when the current status does not allow the requested one.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrCancelNotAllowed is returned when cancelling a shipment that has left pending.
	ErrCancelNotAllowed = errors.New("shipment can only be cancelled while pending")
)

// Status is the lifecycle state of a shipment.
//
// State transitions:
//
//	pending ──> picked_up ──> in_transit ──> delivered ──> returned
//	   │            │              │
//	   │            └──────────────┴──> failed ──> returned
//	   └──> cancelled
//
// Besides the arrows above:
//   - any non-final status may jump forward (pending straight to in_transit or delivered)
//   - a status may always be re-applied to itself, which appends a new tracking event
//   - pending is never re-entered
//   - cancelled and returned are final
type Status string

const (
	StatusPending   Status = "pending"
	StatusPickedUp  Status = "picked_up"
	StatusInTransit Status = "in_transit"
	StatusDelivered Status = "delivered"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

// Statuses lists the valid vocabulary in lifecycle order.
func Statuses() []Status {
	return []Status{
		StatusPending,
		StatusPickedUp,
		StatusInTransit,
		StatusDelivered,
		StatusFailed,
		StatusCancelled,
		StatusReturned,
	}
}

// ParseStatus accepts any member of the vocabulary, ignoring case and blanks.
//
// Returns:
//   - the canonical Status on success
//   - a ValueIsInvalidError naming the rejected value otherwise
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

// Validate checks membership in the vocabulary.
func (s Status) Validate() error {
	for _, known := range Statuses() {
		if s == known {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", string(s)))
}

func (s Status) String() string {
	return string(s)
}

// IsFinal reports whether the lifecycle has ended: delivered, failed, cancelled or returned.
func (s Status) IsFinal() bool {
	switch s {
	case StatusDelivered, StatusFailed, StatusCancelled, StatusReturned:
		return true
	}
	return false
}

// ValidateTransition checks whether the shipment may move from s to next.
//
// Rules, evaluated in order:
//   - next must be a valid status
//   - next == s is always allowed
//   - pending cannot be re-entered
//   - cancelled is reachable from pending only (ErrCancelNotAllowed)
//   - cancelled and returned allow nothing else
//   - delivered and failed allow returned only
//   - every other move is allowed
//
// Example:
//
//	if err := current.ValidateTransition(shipment.StatusDelivered); err != nil {
//	    return err // wraps ErrInvalidTransition or ErrCancelNotAllowed
//	}
func (s Status) ValidateTransition(next Status) error {
	if err := next.Validate(); err != nil {
		return err
	}

	switch {
	case next == s:
		return nil
	case next == StatusPending:
		return s.transitionError(next)
	case next == StatusCancelled && s != StatusPending:
		return fmt.Errorf("%w (current status is %s)", ErrCancelNotAllowed, s)
	case s == StatusCancelled || s == StatusReturned:
		return s.transitionError(next)
	case s == StatusDelivered || s == StatusFailed:
		if next != StatusReturned {
			return s.transitionError(next)
		}
	}

	return nil
}

func (s Status) transitionError(next Status) error {
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s, next)
}

// TrackingStatus is the vocabulary of tracking events. It equals the shipment
// vocabulary except that pending is reported as created.
type TrackingStatus string

const (
	TrackingCreated   TrackingStatus = "created"
	TrackingPickedUp  TrackingStatus = "picked_up"
	TrackingInTransit TrackingStatus = "in_transit"
	TrackingDelivered TrackingStatus = "delivered"
	TrackingFailed    TrackingStatus = "failed"
	TrackingCancelled TrackingStatus = "cancelled"
	TrackingReturned  TrackingStatus = "returned"
)

// TrackingStatus maps a shipment status onto the tracking vocabulary.
func (s Status) TrackingStatus() TrackingStatus {
	if s == StatusPending {
		return TrackingCreated
	}
	return TrackingStatus(s)
}

func (t TrackingStatus) String() string {
	return string(t)
}
