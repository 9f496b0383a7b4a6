package shipment

import (
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// InternalCarrierSlug identifies the platform's own fleet.
const InternalCarrierSlug = "obana"

// CarrierType tells whether the platform fleet or a third party carries a shipment.
type CarrierType string

const (
	CarrierInternal CarrierType = "internal"
	CarrierExternal CarrierType = "external"
)

// ResolveCarrierType returns internal when either the carrier slug or the
// dispatcher slug names the platform fleet, external otherwise.
func ResolveCarrierType(carrierSlug, dispatcherSlug string) CarrierType {
	if isInternalSlug(carrierSlug) || isInternalSlug(dispatcherSlug) {
		return CarrierInternal
	}
	return CarrierExternal
}

func ParseCarrierType(s string) (CarrierType, error) {
	ct := CarrierType(strings.ToLower(strings.TrimSpace(s)))
	if ct != CarrierInternal && ct != CarrierExternal {
		return "", errs.NewValueIsInvalidErrorWithCause("carrierType", fmt.Errorf("%q is not internal or external", s))
	}
	return ct, nil
}

func (c CarrierType) String() string {
	return string(c)
}

func isInternalSlug(slug string) bool {
	return strings.EqualFold(strings.TrimSpace(slug), InternalCarrierSlug)
}
