package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycoonworld/estate-api/internal/domain"
)

func TestCapabilityDAO_GrantRevoke(t *testing.T) {
	ctx := context.Background()
	d := NewCapabilityDAO(testDB)
	eventDAO := NewEventDAO(testDB)
	alice := newTestUser(t)
	admin := newTestUser(t)

	has, err := d.Has(ctx, alice.ID, domain.CapDeedMint)
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, d.Grant(ctx, alice.ID, domain.CapDeedMint, admin.ID))

	events, err := eventDAO.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "capability.granted", events[0].Kind)
	assert.Equal(t, admin.ID, events[0].ActorID)
	require.NotNil(t, events[0].PrincipalID)
	assert.Equal(t, alice.ID, *events[0].PrincipalID)
	require.NotNil(t, events[0].Capability)
	assert.Equal(t, domain.CapDeedMint, *events[0].Capability)
	grantEventID := events[0].ID

	// Granting twice is a no-op, not a constraint violation, and records
	// no second event.
	require.NoError(t, d.Grant(ctx, alice.ID, domain.CapDeedMint, admin.ID))

	events, err = eventDAO.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, grantEventID, events[0].ID)

	has, err = d.Has(ctx, alice.ID, domain.CapDeedMint)
	require.NoError(t, err)
	assert.True(t, has)

	grants, err := d.FindByPrincipal(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, domain.CapDeedMint, grants[0].Name)

	require.NoError(t, d.Revoke(ctx, alice.ID, domain.CapDeedMint, admin.ID))

	events, err = eventDAO.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "capability.revoked", events[0].Kind)
	revokeEventID := events[0].ID

	has, err = d.Has(ctx, alice.ID, domain.CapDeedMint)
	require.NoError(t, err)
	assert.False(t, has)

	// Revoking an absent grant is also a silent no-op.
	require.NoError(t, d.Revoke(ctx, alice.ID, domain.CapDeedMint, admin.ID))

	events, err = eventDAO.List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, revokeEventID, events[0].ID)
}
