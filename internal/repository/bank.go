package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository/dao"
)

var (
	ErrInsufficientReserve = dao.ErrInsufficientReserve
)

type BankDAO interface {
	ExecuteDeedPurchase(ctx context.Context, buyerID, bankID uint, edition, land, rarity int, price decimal.Decimal) (dao.Deed, error)
	ExecuteBuildingPurchase(ctx context.Context, buyerID, bankID uint, edition, land, buildType int, quantity int64, total decimal.Decimal) (int64, error)
	ExecuteDeedSale(ctx context.Context, sellerID, bankID uint, assetID int64, price decimal.Decimal) (dao.Deed, error)
}

type PriceDAO interface {
	FindDeedPrice(ctx context.Context, edition, land, rarity int) (decimal.Decimal, bool, error)
	UpsertDeedPrice(ctx context.Context, edition, land, rarity int, amount decimal.Decimal, actorID uint) error
	FindBuildingPrice(ctx context.Context, edition, land, buildType int) (decimal.Decimal, bool, error)
	UpsertBuildingPrice(ctx context.Context, edition, land, buildType int, amount decimal.Decimal, actorID uint) error
}

type BankRepository struct {
	dao      BankDAO
	priceDAO PriceDAO
}

func NewBankRepository(dao BankDAO, priceDAO PriceDAO) *BankRepository {
	return &BankRepository{
		dao:      dao,
		priceDAO: priceDAO,
	}
}

// DeedPrice resolves the coordinate's price: the explicit table entry if
// one was ever set, otherwise the computed default.
func (r *BankRepository) DeedPrice(ctx context.Context, edition, land, rarity int) (decimal.Decimal, error) {
	amount, found, err := r.priceDAO.FindDeedPrice(ctx, edition, land, rarity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.priceDAO.FindDeedPrice -> %w", err)
	}
	if !found {
		return domain.DefaultDeedPrice(rarity), nil
	}

	return amount, nil
}

func (r *BankRepository) SetDeedPrice(ctx context.Context, edition, land, rarity int, amount decimal.Decimal, actorID uint) error {
	if err := r.priceDAO.UpsertDeedPrice(ctx, edition, land, rarity, amount, actorID); err != nil {
		return fmt.Errorf("r.priceDAO.UpsertDeedPrice -> %w", err)
	}

	return nil
}

func (r *BankRepository) BuildingPrice(ctx context.Context, edition, land, buildType int) (decimal.Decimal, error) {
	amount, found, err := r.priceDAO.FindBuildingPrice(ctx, edition, land, buildType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.priceDAO.FindBuildingPrice -> %w", err)
	}
	if !found {
		return domain.DefaultBuildingPrice(), nil
	}

	return amount, nil
}

func (r *BankRepository) SetBuildingPrice(ctx context.Context, edition, land, buildType int, amount decimal.Decimal, actorID uint) error {
	if err := r.priceDAO.UpsertBuildingPrice(ctx, edition, land, buildType, amount, actorID); err != nil {
		return fmt.Errorf("r.priceDAO.UpsertBuildingPrice -> %w", err)
	}

	return nil
}

func (r *BankRepository) ExecuteDeedPurchase(ctx context.Context, buyerID, bankID uint, edition, land, rarity int, price decimal.Decimal) (domain.Deed, error) {
	deed, err := r.dao.ExecuteDeedPurchase(ctx, buyerID, bankID, edition, land, rarity, price)
	if err != nil {
		if isTradeError(err) {
			return domain.Deed{}, err
		}

		return domain.Deed{}, fmt.Errorf("r.dao.ExecuteDeedPurchase -> %w", err)
	}

	return deedDaoToDomain(deed), nil
}

func (r *BankRepository) ExecuteBuildingPurchase(ctx context.Context, buyerID, bankID uint, edition, land, buildType int, quantity int64, total decimal.Decimal) (int64, error) {
	classID, err := r.dao.ExecuteBuildingPurchase(ctx, buyerID, bankID, edition, land, buildType, quantity, total)
	if err != nil {
		if isTradeError(err) {
			return 0, err
		}

		return 0, fmt.Errorf("r.dao.ExecuteBuildingPurchase -> %w", err)
	}

	return classID, nil
}

func (r *BankRepository) ExecuteDeedSale(ctx context.Context, sellerID, bankID uint, assetID int64, price decimal.Decimal) (domain.Deed, error) {
	deed, err := r.dao.ExecuteDeedSale(ctx, sellerID, bankID, assetID, price)
	if err != nil {
		if isTradeError(err) {
			return domain.Deed{}, err
		}

		return domain.Deed{}, fmt.Errorf("r.dao.ExecuteDeedSale -> %w", err)
	}

	return deedDaoToDomain(deed), nil
}

// isTradeError reports whether err is one of the domain failures a trade
// can surface to callers; those pass through unwrapped so services can
// match on them.
func isTradeError(err error) bool {
	for _, known := range []error{
		dao.ErrInsufficientBalance,
		dao.ErrInsufficientAllowance,
		dao.ErrInsufficientReserve,
		dao.ErrLedgerPaused,
		dao.ErrSupplyExhausted,
		dao.ErrUnknownAsset,
		dao.ErrNotOwner,
		dao.ErrNotApproved,
	} {
		if errors.Is(err, known) {
			return true
		}
	}

	return false
}
