package dao

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseUnits(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWalletDAO_MintTransferBurn(t *testing.T) {
	ctx := context.Background()
	d := NewWalletDAO(testDB)
	alice := newTestUser(t)
	bob := newTestUser(t)

	require.NoError(t, d.Mint(ctx, alice.ID, baseUnits("1000"), alice.ID))

	require.NoError(t, d.Transfer(ctx, alice.ID, bob.ID, baseUnits("300")))

	aliceBalance, err := d.BalanceOf(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, aliceBalance.Equal(baseUnits("700")))

	bobBalance, err := d.BalanceOf(ctx, bob.ID)
	require.NoError(t, err)
	assert.True(t, bobBalance.Equal(baseUnits("300")))

	err = d.Transfer(ctx, alice.ID, bob.ID, baseUnits("10000"))
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	stateBefore, err := d.State(ctx)
	require.NoError(t, err)

	require.NoError(t, d.Burn(ctx, bob.ID, baseUnits("100")))

	stateAfter, err := d.State(ctx)
	require.NoError(t, err)
	assert.True(t, stateAfter.TotalSupply.Equal(stateBefore.TotalSupply.Sub(baseUnits("100"))))

	err = d.Burn(ctx, bob.ID, baseUnits("10000"))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestWalletDAO_TransferFromNeverExistentAccount(t *testing.T) {
	ctx := context.Background()
	d := NewWalletDAO(testDB)
	alice := newTestUser(t)
	bob := newTestUser(t)

	// Accounts are created lazily; a principal with no row has balance
	// zero, not an error.
	balance, err := d.BalanceOf(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.Zero))

	err = d.Transfer(ctx, alice.ID, bob.ID, baseUnits("1"))
	assert.ErrorIs(t, err, ErrInsufficientBalance)
}

func TestWalletDAO_Allowance(t *testing.T) {
	ctx := context.Background()
	d := NewWalletDAO(testDB)
	owner := newTestUser(t)
	spender := newTestUser(t)
	receiver := newTestUser(t)

	require.NoError(t, d.Mint(ctx, owner.ID, baseUnits("500"), owner.ID))

	err := d.TransferFrom(ctx, spender.ID, owner.ID, receiver.ID, baseUnits("100"))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	require.NoError(t, d.Approve(ctx, owner.ID, spender.ID, baseUnits("150")))

	require.NoError(t, d.TransferFrom(ctx, spender.ID, owner.ID, receiver.ID, baseUnits("100")))

	remaining, err := d.Allowance(ctx, owner.ID, spender.ID)
	require.NoError(t, err)
	assert.True(t, remaining.Equal(baseUnits("50")))

	err = d.TransferFrom(ctx, spender.ID, owner.ID, receiver.ID, baseUnits("100"))
	assert.ErrorIs(t, err, ErrInsufficientAllowance)

	// Re-approving overwrites rather than accumulates.
	require.NoError(t, d.Approve(ctx, owner.ID, spender.ID, baseUnits("10")))
	current, err := d.Allowance(ctx, owner.ID, spender.ID)
	require.NoError(t, err)
	assert.True(t, current.Equal(baseUnits("10")))
}

func TestWalletDAO_SupplyCap(t *testing.T) {
	ctx := context.Background()
	d := NewWalletDAO(testDB)
	alice := newTestUser(t)

	state, err := d.State(ctx)
	require.NoError(t, err)
	headroom := state.MaxSupply.Sub(state.TotalSupply)

	err = d.Mint(ctx, alice.ID, headroom.Add(baseUnits("1")), alice.ID)
	assert.ErrorIs(t, err, ErrSupplyCapExceeded)

	// A failed mint leaves the supply untouched.
	after, err := d.State(ctx)
	require.NoError(t, err)
	assert.True(t, after.TotalSupply.Equal(state.TotalSupply))
}

func TestWalletDAO_Pause(t *testing.T) {
	ctx := context.Background()
	d := NewWalletDAO(testDB)
	alice := newTestUser(t)
	bob := newTestUser(t)

	require.NoError(t, d.Mint(ctx, alice.ID, baseUnits("100"), alice.ID))

	require.NoError(t, d.SetPaused(ctx, true, alice.ID))
	defer func() {
		require.NoError(t, d.SetPaused(ctx, false, alice.ID))
	}()

	events, err := NewEventDAO(testDB).List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ledger.paused", events[0].Kind)
	assert.Equal(t, alice.ID, events[0].ActorID)

	assert.ErrorIs(t, d.Transfer(ctx, alice.ID, bob.ID, baseUnits("1")), ErrLedgerPaused)
	assert.ErrorIs(t, d.Mint(ctx, alice.ID, baseUnits("1"), alice.ID), ErrLedgerPaused)
	assert.ErrorIs(t, d.Burn(ctx, alice.ID, baseUnits("1")), ErrLedgerPaused)

	require.NoError(t, d.SetPaused(ctx, false, alice.ID))

	events, err = NewEventDAO(testDB).List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "ledger.unpaused", events[0].Kind)

	assert.NoError(t, d.Transfer(ctx, alice.ID, bob.ID, baseUnits("1")))
}

func TestWalletDAO_EventTrail(t *testing.T) {
	ctx := context.Background()
	d := NewWalletDAO(testDB)
	eventDAO := NewEventDAO(testDB)
	alice := newTestUser(t)
	bob := newTestUser(t)

	latest := func(t *testing.T) Event {
		t.Helper()
		events, err := eventDAO.List(ctx, 1, 0)
		require.NoError(t, err)
		require.Len(t, events, 1)
		return events[0]
	}

	require.NoError(t, d.Mint(ctx, alice.ID, baseUnits("50"), bob.ID))
	event := latest(t)
	assert.Equal(t, "currency.minted", event.Kind)
	assert.Equal(t, bob.ID, event.ActorID)
	require.NotNil(t, event.PrincipalID)
	assert.Equal(t, alice.ID, *event.PrincipalID)
	require.NotNil(t, event.Amount)
	assert.True(t, event.Amount.Equal(baseUnits("50")))

	require.NoError(t, d.Transfer(ctx, alice.ID, bob.ID, baseUnits("20")))
	event = latest(t)
	assert.Equal(t, "currency.transferred", event.Kind)
	assert.Equal(t, alice.ID, event.ActorID)
	require.NotNil(t, event.PrincipalID)
	assert.Equal(t, bob.ID, *event.PrincipalID)

	require.NoError(t, d.Approve(ctx, alice.ID, bob.ID, baseUnits("5")))
	event = latest(t)
	assert.Equal(t, "currency.approved", event.Kind)
	assert.Equal(t, alice.ID, event.ActorID)
	require.NotNil(t, event.PrincipalID)
	assert.Equal(t, bob.ID, *event.PrincipalID)

	require.NoError(t, d.Burn(ctx, bob.ID, baseUnits("10")))
	event = latest(t)
	assert.Equal(t, "currency.burned", event.Kind)
	assert.Equal(t, bob.ID, event.ActorID)
	require.NotNil(t, event.Amount)
	assert.True(t, event.Amount.Equal(baseUnits("10")))
}
