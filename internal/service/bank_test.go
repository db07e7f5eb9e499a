package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycoonworld/estate-api/internal/domain"
)

const testBankID = uint(100)

type bankFixture struct {
	svc    *BankService
	repo   *fakeBankRepo
	deeds  *fakeDeedRepo
	wallet *fakeWalletRepo
	caps   *fakeCapabilityRepo
}

func newBankFixture() *bankFixture {
	deeds := newFakeDeedRepo()
	wallet := newFakeWalletRepo()
	caps := newFakeCapabilityRepo()
	repo := newFakeBankRepo(deeds, wallet)
	board := newFakeBoardRepo(domain.GenesisEdition())
	return &bankFixture{
		svc:    NewBankService(repo, board, deeds, wallet, caps, testBankID),
		repo:   repo,
		deeds:  deeds,
		wallet: wallet,
		caps:   caps,
	}
}

// fund credits the buyer and approves the bank for the whole amount.
func (f *bankFixture) fund(ctx context.Context, t *testing.T, userID uint, amount decimal.Decimal) {
	t.Helper()
	require.NoError(t, f.wallet.Mint(ctx, userID, amount, 1))
	require.NoError(t, f.wallet.Approve(ctx, userID, testBankID, amount))
}

func TestBankService_DeedPrice(t *testing.T) {
	ctx := context.Background()
	f := newBankFixture()

	t.Run("falls back to the rarity default", func(t *testing.T) {
		price, err := f.svc.DeedPrice(ctx, 0, 5, 2)
		require.NoError(t, err)
		assert.True(t, price.Equal(tokens(6)))
	})

	t.Run("table entry overrides the default", func(t *testing.T) {
		require.NoError(t, f.svc.SetDeedPrice(ctx, adminUser(), 0, 5, 2, tokens(9)))

		price, err := f.svc.DeedPrice(ctx, 0, 5, 2)
		require.NoError(t, err)
		assert.True(t, price.Equal(tokens(9)))

		// Other coordinates keep the default.
		price, err = f.svc.DeedPrice(ctx, 0, 6, 2)
		require.NoError(t, err)
		assert.True(t, price.Equal(tokens(6)))
	})

	t.Run("setting a price needs the bank capability", func(t *testing.T) {
		err := f.svc.SetDeedPrice(ctx, playerUser(2), 0, 5, 2, tokens(9))
		assert.ErrorIs(t, err, ErrPermissionDenied)
	})

	t.Run("rejects bad prices and coordinates", func(t *testing.T) {
		assert.ErrorIs(t, f.svc.SetDeedPrice(ctx, adminUser(), 0, 5, 2, decimal.Zero), ErrInvalidAmount)
		assert.ErrorIs(t, f.svc.SetDeedPrice(ctx, adminUser(), 0, 99, 2, tokens(9)), ErrInvalidCoordinate)

		_, err := f.svc.DeedPrice(ctx, 3, 5, 2)
		assert.ErrorIs(t, err, ErrUnknownEdition)
	})
}

func TestBankService_BuyDeed(t *testing.T) {
	ctx := context.Background()

	t.Run("mints to the buyer and pays the bank", func(t *testing.T) {
		f := newBankFixture()
		f.fund(ctx, t, 2, tokens(10))

		deed, price, err := f.svc.BuyDeed(ctx, playerUser(2), 0, 5, 2)
		require.NoError(t, err)
		assert.Equal(t, uint(2), deed.OwnerID)
		assert.Equal(t, 0, deed.Serial)
		assert.True(t, price.Equal(tokens(6)))

		buyerBalance, err := f.wallet.BalanceOf(ctx, 2)
		require.NoError(t, err)
		assert.True(t, buyerBalance.Equal(tokens(4)))

		reserve, err := f.svc.Reserve(ctx)
		require.NoError(t, err)
		assert.True(t, reserve.Equal(tokens(6)))
	})

	t.Run("needs an allowance covering the price", func(t *testing.T) {
		f := newBankFixture()
		require.NoError(t, f.wallet.Mint(ctx, 2, tokens(10), 1))

		_, _, err := f.svc.BuyDeed(ctx, playerUser(2), 0, 5, 2)
		assert.ErrorIs(t, err, ErrInsufficientAllowance)
	})

	t.Run("exhausted supply leaves balances untouched", func(t *testing.T) {
		f := newBankFixture()
		f.fund(ctx, t, 2, tokens(1200))
		f.fund(ctx, t, 3, tokens(1200))

		_, _, err := f.svc.BuyDeed(ctx, playerUser(2), 0, 5, 0)
		require.NoError(t, err)

		_, _, err = f.svc.BuyDeed(ctx, playerUser(3), 0, 5, 0)
		assert.ErrorIs(t, err, ErrSupplyExhausted)

		balance, err := f.wallet.BalanceOf(ctx, 3)
		require.NoError(t, err)
		assert.True(t, balance.Equal(tokens(1200)))
	})

	t.Run("invalid coordinate", func(t *testing.T) {
		f := newBankFixture()

		_, _, err := f.svc.BuyDeed(ctx, playerUser(2), 0, 40, 0)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})

	t.Run("echoes the price the purchase was charged at", func(t *testing.T) {
		f := newBankFixture()
		f.fund(ctx, t, 2, tokens(20))
		require.NoError(t, f.svc.SetDeedPrice(ctx, adminUser(), 0, 5, 2, tokens(9)))

		_, price, err := f.svc.BuyDeed(ctx, playerUser(2), 0, 5, 2)
		require.NoError(t, err)
		assert.True(t, price.Equal(tokens(9)))

		balance, err := f.wallet.BalanceOf(ctx, 2)
		require.NoError(t, err)
		assert.True(t, balance.Equal(tokens(11)))
	})
}

func TestBankService_BuyBuilding(t *testing.T) {
	ctx := context.Background()

	t.Run("charges price times quantity", func(t *testing.T) {
		f := newBankFixture()
		f.fund(ctx, t, 2, tokens(10))

		classID, total, err := f.svc.BuyBuilding(ctx, playerUser(2), 0, 1, 0, 3)
		require.NoError(t, err)
		assert.Equal(t, domain.PackClassID(0, 1, 0), classID)
		assert.True(t, total.Equal(tokens(6)))

		balance, err := f.wallet.BalanceOf(ctx, 2)
		require.NoError(t, err)
		assert.True(t, balance.Equal(tokens(4)))
	})

	t.Run("building price override", func(t *testing.T) {
		f := newBankFixture()
		f.fund(ctx, t, 2, tokens(10))
		require.NoError(t, f.svc.SetBuildingPrice(ctx, adminUser(), 0, 1, 0, tokens(5)))

		_, total, err := f.svc.BuyBuilding(ctx, playerUser(2), 0, 1, 0, 2)
		require.NoError(t, err)
		assert.True(t, total.Equal(tokens(10)))
	})

	t.Run("rejects bad input", func(t *testing.T) {
		f := newBankFixture()

		_, _, err := f.svc.BuyBuilding(ctx, playerUser(2), 0, 1, 0, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)

		_, _, err = f.svc.BuyBuilding(ctx, playerUser(2), 0, 0, 0, 1)
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})
}

func TestBankService_SellDeed(t *testing.T) {
	ctx := context.Background()

	t.Run("pays the table price out of the reserve", func(t *testing.T) {
		f := newBankFixture()
		f.fund(ctx, t, 2, tokens(10))

		deed, _, err := f.svc.BuyDeed(ctx, playerUser(2), 0, 5, 2)
		require.NoError(t, err)
		require.NoError(t, f.deeds.Approve(ctx, deed.AssetID, 2, testBankID))

		price, err := f.svc.SellDeed(ctx, playerUser(2), deed.AssetID)
		require.NoError(t, err)
		assert.True(t, price.Equal(tokens(6)))

		// The round trip restores the buyer's balance and drains the
		// reserve back to zero.
		balance, err := f.wallet.BalanceOf(ctx, 2)
		require.NoError(t, err)
		assert.True(t, balance.Equal(tokens(10)))

		reserve, err := f.svc.Reserve(ctx)
		require.NoError(t, err)
		assert.True(t, reserve.Equal(decimal.Zero))

		sold, err := f.deeds.GetByAssetID(ctx, deed.AssetID)
		require.NoError(t, err)
		assert.Equal(t, testBankID, sold.OwnerID)
	})

	t.Run("requires operator approval on the deed", func(t *testing.T) {
		f := newBankFixture()
		f.fund(ctx, t, 2, tokens(10))

		deed, _, err := f.svc.BuyDeed(ctx, playerUser(2), 0, 5, 2)
		require.NoError(t, err)

		_, err = f.svc.SellDeed(ctx, playerUser(2), deed.AssetID)
		assert.ErrorIs(t, err, ErrNotApproved)
	})

	t.Run("only the owner may sell", func(t *testing.T) {
		f := newBankFixture()
		f.fund(ctx, t, 2, tokens(10))

		deed, _, err := f.svc.BuyDeed(ctx, playerUser(2), 0, 5, 2)
		require.NoError(t, err)
		require.NoError(t, f.deeds.Approve(ctx, deed.AssetID, 2, testBankID))

		_, err = f.svc.SellDeed(ctx, playerUser(3), deed.AssetID)
		assert.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run("fails when the reserve cannot cover the price", func(t *testing.T) {
		f := newBankFixture()

		// Deed granted outside the market, so the bank holds no reserve.
		deed, err := f.deeds.Mint(ctx, 2, 0, 5, 2, 1)
		require.NoError(t, err)
		require.NoError(t, f.deeds.Approve(ctx, deed.AssetID, 2, testBankID))

		_, err = f.svc.SellDeed(ctx, playerUser(2), deed.AssetID)
		assert.ErrorIs(t, err, ErrInsufficientReserve)
	})

	t.Run("unknown asset", func(t *testing.T) {
		f := newBankFixture()

		_, err := f.svc.SellDeed(ctx, playerUser(2), 999)
		assert.ErrorIs(t, err, ErrUnknownAsset)
	})
}
