package shipment

import (
	"fmt"
	"regexp"
	"time"

	"github.com/labstack/gommon/random"
)

const (
	internalReferencePrefix = "OBANA"
	externalReferencePrefix = "EXT"
	referenceSuffixLength   = 8
	referenceCharset        = random.Numeric + random.Uppercase
)

var referencePattern = regexp.MustCompile(`^(OBANA|EXT)-\d{8}-[0-9A-Z]{8}$`)

// NewReference builds a human readable reference such as OBANA-20250131-7K2QX9AB.
// The date part is taken from now in UTC. The suffix is random base36, so
// uniqueness is enforced by storage and callers retry on collision.
func NewReference(carrierType CarrierType, now time.Time) string {
	prefix := externalReferencePrefix
	if carrierType == CarrierInternal {
		prefix = internalReferencePrefix
	}

	return fmt.Sprintf("%s-%s-%s",
		prefix,
		now.UTC().Format("20060102"),
		random.String(referenceSuffixLength, referenceCharset),
	)
}

// IsReference reports whether s has the shape produced by NewReference.
func IsReference(s string) bool {
	return referencePattern.MatchString(s)
}
