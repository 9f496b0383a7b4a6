package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	lost := errors.New("connection reset")

	tests := []struct {
		name     string
		err      error
		sentinel error
		message  string
	}{
		{
			name:     "shipment not found",
			err:      errs.NewObjectNotFoundError("shipment", "OBN-20260101-ABC123"),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: OBN-20260101-ABC123",
		},
		{
			name:     "not found with cause",
			err:      errs.NewObjectNotFoundErrorWithCause("driver", "d-1", lost),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: param is: driver, ID is: d-1 (cause: connection reset)",
		},
		{
			name:     "numeric id",
			err:      errs.NewObjectNotFoundError("template", 7),
			sentinel: errs.ErrObjectNotFound,
			message:  "object not found: %!s(int=7)",
		},
		{
			name:     "invalid value",
			err:      errs.NewValueIsInvalidError("transportMode"),
			sentinel: errs.ErrValueIsInvalid,
			message:  "value is invalid: transportMode",
		},
		{
			name:     "invalid value with cause",
			err:      errs.NewValueIsInvalidErrorWithCause("status", errors.New(`"lost" is unknown`)),
			sentinel: errs.ErrValueIsInvalid,
			message:  `value is invalid: status (cause: "lost" is unknown)`,
		},
		{
			name:     "out of range",
			err:      errs.NewValueIsOutOfRangeError("weight", -1.5, 0, "unbounded"),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: -1.5 is weight, min value is 0, max value is unbounded",
		},
		{
			name:     "out of range with cause",
			err:      errs.NewValueIsOutOfRangeErrorWithCause("quantity", 0, 1, 1000, lost),
			sentinel: errs.ErrValueIsOutOfRange,
			message:  "value is invalid: 0 is quantity, min value is 1, max value is 1000 (cause: connection reset)",
		},
		{
			name:     "required",
			err:      errs.NewValueIsRequiredError("pickupAddress"),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: pickupAddress",
		},
		{
			name:     "required with cause",
			err:      errs.NewValueIsRequiredErrorWithCause("carrier", errors.New("empty path segment")),
			sentinel: errs.ErrValueIsRequired,
			message:  "value is required: carrier (cause: empty path segment)",
		},
		{
			name:     "version",
			err:      errs.NewVersionIsInvalidError("shipment", errors.New("row changed")),
			sentinel: errs.ErrVersionIsInvalid,
			message:  "version is invalid: shipment (cause: row changed)",
		},
		{
			name:     "version without cause",
			err:      errs.NewVersionIsInvalidErrorWithCause("shipment"),
			sentinel: errs.ErrVersionIsInvalid,
			message:  "version is invalid: shipment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.message, tt.err.Error())
			require.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.sentinel, errors.Unwrap(tt.err))
		})
	}
}

func TestErrorFields(t *testing.T) {
	notFound := errs.NewObjectNotFoundError("shipment", "x")
	assert.Equal(t, "shipment", notFound.ParamName)
	assert.Equal(t, "x", notFound.ID)
	require.NoError(t, notFound.Cause)

	outOfRange := errs.NewValueIsOutOfRangeError("price", -5.0, 0, 100)
	assert.Equal(t, "price", outOfRange.ParamName)
	assert.InDelta(t, -5.0, outOfRange.Value, 0)
	assert.Equal(t, 0, outOfRange.Min)
	assert.Equal(t, 100, outOfRange.Max)
}

func TestValueIsOutOfRangeError_FlattensNewlines(t *testing.T) {
	err := errs.NewValueIsOutOfRangeError("description", "left at\nfront desk", 0, 10)

	assert.Contains(t, err.Error(), "left at front desk")
	assert.NotContains(t, err.Error(), "\n")
}

func TestSentinelErrors(t *testing.T) {
	assert.Equal(t, "object not found", errs.ErrObjectNotFound.Error())
	assert.Equal(t, "value is invalid", errs.ErrValueIsInvalid.Error())
	assert.Equal(t, "value is out of range", errs.ErrValueIsOutOfRange.Error())
	assert.Equal(t, "value is required", errs.ErrValueIsRequired.Error())
	assert.Equal(t, "version is invalid", errs.ErrVersionIsInvalid.Error())
}

func TestErrorsExposeCause(t *testing.T) {
	cause := errors.New("root cause")

	require.ErrorIs(t, errs.NewValueIsInvalidErrorWithCause("status", cause), cause)
	require.ErrorIs(t, errs.NewValueIsRequiredErrorWithCause("reason", cause), cause)
	require.ErrorIs(t, errs.NewObjectNotFoundErrorWithCause("shipment", "x", cause), cause)
	require.ErrorIs(t, errs.NewValueIsOutOfRangeErrorWithCause("weight", 1, 2, 3, cause), cause)
	require.NotErrorIs(t, errs.NewValueIsInvalidError("status"), cause)
}
