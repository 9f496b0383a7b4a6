package shipment_test

import (
	"strings"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/shipment"

	"github.com/stretchr/testify/assert"
)

func TestNewReference(t *testing.T) {
	now := time.Date(2025, 1, 31, 23, 30, 0, 0, time.UTC)

	internal := shipment.NewReference(shipment.CarrierInternal, now)
	assert.True(t, strings.HasPrefix(internal, "OBANA-20250131-"))
	assert.True(t, shipment.IsReference(internal))

	external := shipment.NewReference(shipment.CarrierExternal, now)
	assert.True(t, strings.HasPrefix(external, "EXT-20250131-"))
	assert.True(t, shipment.IsReference(external))
}

func TestNewReference_UsesUTCDate(t *testing.T) {
	lagos := time.FixedZone("WAT", 3600)
	now := time.Date(2025, 2, 1, 0, 30, 0, 0, lagos)

	ref := shipment.NewReference(shipment.CarrierInternal, now)
	assert.True(t, strings.HasPrefix(ref, "OBANA-20250131-"), ref)
}

func TestIsReference(t *testing.T) {
	assert.False(t, shipment.IsReference("OBANA-2025013-ABCDEFGH"))
	assert.False(t, shipment.IsReference("DHL-20250131-ABCDEFGH"))
	assert.False(t, shipment.IsReference("EXT-20250131-abcdefgh"))
}
