package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycoonworld/estate-api/internal/domain"
)

func TestBoardService_GetEdition(t *testing.T) {
	ctx := context.Background()
	svc := NewBoardService(newFakeBoardRepo(domain.GenesisEdition()), newFakeCapabilityRepo())

	edition, err := svc.GetEdition(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 40, edition.Lands)

	_, err = svc.GetEdition(ctx, 7)
	assert.ErrorIs(t, err, ErrUnknownEdition)
}

func TestBoardService_CreateEdition(t *testing.T) {
	ctx := context.Background()

	t.Run("valid configuration", func(t *testing.T) {
		svc := NewBoardService(newFakeBoardRepo(domain.GenesisEdition()), newFakeCapabilityRepo())

		edition, err := svc.CreateEdition(ctx, adminUser(), 24, 2, 1, []int{1, 3, 5})
		require.NoError(t, err)
		assert.Equal(t, 1, edition.Number)
		assert.Equal(t, 24, edition.Lands)

		latest, err := svc.LatestEditionNumber(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, latest)
	})

	t.Run("requires the board capability", func(t *testing.T) {
		svc := NewBoardService(newFakeBoardRepo(domain.GenesisEdition()), newFakeCapabilityRepo())

		_, err := svc.CreateEdition(ctx, playerUser(2), 24, 2, 1, nil)
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("rejects bad configurations", func(t *testing.T) {
		svc := NewBoardService(newFakeBoardRepo(domain.GenesisEdition()), newFakeCapabilityRepo())

		tests := []struct {
			name           string
			lands, rar, bt int
			buildable      []int
		}{
			{"zero lands", 0, 1, 1, nil},
			{"zero rarity levels", 10, 0, 1, nil},
			{"zero build types", 10, 1, 0, nil},
			{"negative build types", 10, 1, -1, nil},
			{"buildable land out of range", 10, 1, 1, []int{10}},
			{"negative buildable land", 10, 1, 1, []int{-1}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.CreateEdition(ctx, adminUser(), tt.lands, tt.rar, tt.bt, tt.buildable)
				assert.ErrorIs(t, err, ErrInvalidEditionConfig)
			})
		}
	})
}
