package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransportMode(t *testing.T) {
	mode, err := kernel.ParseTransportMode(" ROAD ")
	require.NoError(t, err)
	assert.Equal(t, kernel.TransportModeRoad, mode)

	_, err = kernel.ParseTransportMode("rail")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseServiceLevel(t *testing.T) {
	level, err := kernel.ParseServiceLevel("express")
	require.NoError(t, err)
	assert.Equal(t, kernel.ServiceLevelExpress, level)

	_, err = kernel.ParseServiceLevel("Overnight")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestPrincipal(t *testing.T) {
	p, err := kernel.NewPrincipal(kernel.NewUUID(), kernel.RoleDriver)
	require.NoError(t, err)
	assert.False(t, p.IsAdmin())
	assert.True(t, p.HasRole(kernel.RoleAdmin, kernel.RoleDriver))
	assert.False(t, p.HasRole(kernel.RoleCustomer))

	_, err = kernel.NewPrincipal(kernel.UUID{}, kernel.RoleAdmin)
	require.Error(t, err)

	_, err = kernel.NewPrincipal(kernel.NewUUID(), kernel.Role("root"))
	require.Error(t, err)
}
