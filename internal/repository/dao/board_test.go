package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardDAO_Genesis(t *testing.T) {
	ctx := context.Background()
	d := NewBoardDAO(testDB)

	genesis, err := d.FindByNumber(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 40, genesis.Lands)
	assert.Equal(t, 3, genesis.RarityLevels)
	assert.Equal(t, 2, genesis.BuildTypes)
	assert.Len(t, genesis.BuildableLands, 28)
}

func TestBoardDAO_InsertAssignsSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	d := NewBoardDAO(testDB)
	actor := newTestUser(t)

	before, err := d.MaxNumber(ctx)
	require.NoError(t, err)

	created, err := d.Insert(ctx, 24, 2, 1, []int{1, 3, 5}, actor.ID)
	require.NoError(t, err)
	assert.Equal(t, before+1, created.Number)

	after, err := d.MaxNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, created.Number, after)

	stored, err := d.FindByNumber(ctx, created.Number)
	require.NoError(t, err)
	assert.Equal(t, 24, stored.Lands)
	assert.Len(t, stored.BuildableLands, 3)

	events, err := NewEventDAO(testDB).List(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "edition.created", events[0].Kind)
}

func TestBoardDAO_UnknownEdition(t *testing.T) {
	ctx := context.Background()
	d := NewBoardDAO(testDB)

	_, err := d.FindByNumber(ctx, 9999)
	assert.ErrorIs(t, err, ErrUnknownEdition)
}
