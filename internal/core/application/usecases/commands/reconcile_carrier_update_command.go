package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrReconcileCarrierUpdateCommandIsNotConstructed = errors.New(
	"ReconcileCarrierUpdateCommand must be created via NewReconcileCarrierUpdateCommand constructor",
)

// ReconcileCarrierUpdateCommand carries one callback from an external carrier,
// whether it arrived over HTTP or from the tracking events topic.
type ReconcileCarrierUpdateCommand struct { //nolint:recvcheck //using for validation
	carrierSlug string
	payload     map[string]any

	guard guard.ConstructorGuard
}

func NewReconcileCarrierUpdateCommand(carrierSlug string, payload map[string]any) (ReconcileCarrierUpdateCommand, error) {
	carrierSlug = strings.ToLower(strings.TrimSpace(carrierSlug))
	if carrierSlug == "" {
		return ReconcileCarrierUpdateCommand{}, errs.NewValueIsRequiredError("carrier")
	}
	if payload == nil {
		return ReconcileCarrierUpdateCommand{}, errs.NewValueIsRequiredError("payload")
	}

	return ReconcileCarrierUpdateCommand{
		carrierSlug: carrierSlug,
		payload:     payload,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileCarrierUpdateCommand) Validate() error {
	return c.guard.Validate(ErrReconcileCarrierUpdateCommandIsNotConstructed)
}

func (c ReconcileCarrierUpdateCommand) CarrierSlug() string {
	return c.carrierSlug
}

func (c ReconcileCarrierUpdateCommand) Payload() map[string]any {
	return c.payload
}
