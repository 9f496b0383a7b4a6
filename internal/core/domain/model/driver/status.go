package driver

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Status is the availability of a driver. Only active drivers receive shipments.
type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusOnLeave   Status = "on_leave"
	StatusSuspended Status = "suspended"
)

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if err := st.Validate(); err != nil {
		return "", err
	}
	return st, nil
}

func (s Status) Validate() error {
	switch s {
	case StatusActive, StatusInactive, StatusOnLeave, StatusSuspended:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a driver status", string(s)))
}

func (s Status) String() string {
	return string(s)
}
