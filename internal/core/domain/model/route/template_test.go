package route_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/route"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func lagosAbuja(brackets ...route.WeightBracket) route.Definition {
	return route.Definition{
		OriginCity:      "Lagos",
		DestinationCity: "Abuja",
		TransportMode:   kernel.TransportModeRoad,
		ServiceLevel:    "Express",
		Brackets:        brackets,
	}
}

func TestWeightBracket_ContainsIsInclusive(t *testing.T) {
	b, err := route.NewWeightBracket(1, ptr(5), 2500, "2 days")
	require.NoError(t, err)

	assert.True(t, b.Contains(1))
	assert.True(t, b.Contains(5))
	assert.False(t, b.Contains(5.01))
	assert.False(t, b.Contains(0.99))
}

func TestWeightBracket_OpenEnded(t *testing.T) {
	b, err := route.NewWeightBracket(10, nil, 9000, "5 days")
	require.NoError(t, err)

	assert.True(t, b.Contains(10))
	assert.True(t, b.Contains(100000))
}

func TestNewWeightBracket_Invalid(t *testing.T) {
	_, err := route.NewWeightBracket(5, ptr(1), 10, "")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = route.NewWeightBracket(-1, nil, -10, "")
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewTemplate(t *testing.T) {
	b, _ := route.NewWeightBracket(0, ptr(5), 2500, "2 days")
	def := lagosAbuja(b)
	def.OriginCity = "  Lagos "
	def.TransportMode = "ROAD"

	tpl, err := route.NewTemplate(kernel.NewUUID(), def, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "Lagos", tpl.OriginCity())
	assert.Equal(t, kernel.TransportModeRoad, tpl.TransportMode())
	assert.Len(t, tpl.Brackets(), 1)
}

func TestNewTemplate_CollectsProblems(t *testing.T) {
	_, err := route.NewTemplate(kernel.NewUUID(), route.Definition{TransportMode: "rail"}, time.Now())
	require.Error(t, err)

	for _, field := range []string{"originCity", "destinationCity", "transportMode", "serviceLevel", "weightBrackets"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestTemplate_Serves(t *testing.T) {
	b, _ := route.NewWeightBracket(0, nil, 1, "")
	tpl, err := route.NewTemplate(kernel.NewUUID(), lagosAbuja(b), time.Now())
	require.NoError(t, err)

	assert.True(t, tpl.Serves("LAGOS", " abuja", "Road", "express"))
	assert.False(t, tpl.Serves("Lagos", "Abuja", "air", "Express"))
	assert.False(t, tpl.Serves("Lagos", "Kano", "road", "Express"))
}

func TestTemplate_BracketForTakesFirstInListOrder(t *testing.T) {
	first, _ := route.NewWeightBracket(0, ptr(10), 100, "1 day")
	overlapping, _ := route.NewWeightBracket(5, ptr(20), 200, "2 days")
	tpl, err := route.NewTemplate(kernel.NewUUID(), lagosAbuja(first, overlapping), time.Now())
	require.NoError(t, err)

	got, ok := tpl.BracketFor(7)
	require.True(t, ok)
	assert.InDelta(t, 100.0, got.Price, 0.001)

	got, ok = tpl.BracketFor(15)
	require.True(t, ok)
	assert.InDelta(t, 200.0, got.Price, 0.001)

	_, ok = tpl.BracketFor(20.01)
	assert.False(t, ok)
}

func TestTemplate_Redefine(t *testing.T) {
	b, _ := route.NewWeightBracket(0, nil, 1, "")
	tpl, err := route.NewTemplate(kernel.NewUUID(), lagosAbuja(b), time.Now())
	require.NoError(t, err)

	def := lagosAbuja(b)
	def.DestinationCity = "Kano"
	require.NoError(t, tpl.Redefine(def))
	assert.Equal(t, "Kano", tpl.DestinationCity())

	require.Error(t, tpl.Redefine(route.Definition{}))
	assert.Equal(t, "Kano", tpl.DestinationCity())
}

func TestRestoreTemplate_ToleratesLegacyBrackets(t *testing.T) {
	legacy := route.WeightBracket{Min: 5, Max: ptr(1), Price: 1}
	tpl, err := route.RestoreTemplate(kernel.NewUUID(), lagosAbuja(legacy), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, tpl.Metadata())
}
