package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository"
)

var (
	ErrInsufficientReserve = repository.ErrInsufficientReserve
	ErrNotApproved         = repository.ErrNotApproved
)

type BankRepository interface {
	DeedPrice(ctx context.Context, edition, land, rarity int) (decimal.Decimal, error)
	SetDeedPrice(ctx context.Context, edition, land, rarity int, amount decimal.Decimal, actorID uint) error
	BuildingPrice(ctx context.Context, edition, land, buildType int) (decimal.Decimal, error)
	SetBuildingPrice(ctx context.Context, edition, land, buildType int, amount decimal.Decimal, actorID uint) error
	ExecuteDeedPurchase(ctx context.Context, buyerID, bankID uint, edition, land, rarity int, price decimal.Decimal) (domain.Deed, error)
	ExecuteBuildingPurchase(ctx context.Context, buyerID, bankID uint, edition, land, buildType int, quantity int64, total decimal.Decimal) (int64, error)
	ExecuteDeedSale(ctx context.Context, sellerID, bankID uint, assetID int64, price decimal.Decimal) (domain.Deed, error)
}

// BankService runs the fixed-price primary market. The bank principal
// holds the mint capabilities and the currency reserve that sales pay
// out of; buyers pay the bank through pre-approved allowances.
type BankService struct {
	repo   BankRepository
	board  BoardRepository
	deeds  DeedRepository
	wallet WalletRepository
	caps   CapabilityRepository
	bankID uint
}

func NewBankService(repo BankRepository, board BoardRepository, deeds DeedRepository, wallet WalletRepository, caps CapabilityRepository, bankID uint) *BankService {
	return &BankService{
		repo:   repo,
		board:  board,
		deeds:  deeds,
		wallet: wallet,
		caps:   caps,
		bankID: bankID,
	}
}

func (s *BankService) BankID() uint {
	return s.bankID
}

func (s *BankService) checkDeedCoordinate(ctx context.Context, edition, land, rarity int) error {
	board, err := s.board.GetByNumber(ctx, edition)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownEdition) {
			return ErrUnknownEdition
		}

		return fmt.Errorf("s.board.GetByNumber -> %w", err)
	}
	if !board.ValidDeedCoordinate(land, rarity) {
		return ErrInvalidCoordinate
	}

	return nil
}

func (s *BankService) checkBuildingCoordinate(ctx context.Context, edition, land, buildType int) error {
	board, err := s.board.GetByNumber(ctx, edition)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownEdition) {
			return ErrUnknownEdition
		}

		return fmt.Errorf("s.board.GetByNumber -> %w", err)
	}
	if !board.ValidBuildingCoordinate(land, buildType) {
		return ErrInvalidCoordinate
	}

	return nil
}

func (s *BankService) DeedPrice(ctx context.Context, edition, land, rarity int) (decimal.Decimal, error) {
	if err := s.checkDeedCoordinate(ctx, edition, land, rarity); err != nil {
		return decimal.Zero, err
	}

	price, err := s.repo.DeedPrice(ctx, edition, land, rarity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.DeedPrice -> %w", err)
	}

	return price, nil
}

func (s *BankService) SetDeedPrice(ctx context.Context, actor domain.User, edition, land, rarity int, amount decimal.Decimal) error {
	if err := requireCapability(ctx, s.caps, actor, domain.CapBankAdmin); err != nil {
		return err
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := s.checkDeedCoordinate(ctx, edition, land, rarity); err != nil {
		return err
	}

	if err := s.repo.SetDeedPrice(ctx, edition, land, rarity, amount, actor.ID); err != nil {
		return fmt.Errorf("s.repo.SetDeedPrice -> %w", err)
	}

	return nil
}

func (s *BankService) BuildingPrice(ctx context.Context, edition, land, buildType int) (decimal.Decimal, error) {
	if err := s.checkBuildingCoordinate(ctx, edition, land, buildType); err != nil {
		return decimal.Zero, err
	}

	price, err := s.repo.BuildingPrice(ctx, edition, land, buildType)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.BuildingPrice -> %w", err)
	}

	return price, nil
}

func (s *BankService) SetBuildingPrice(ctx context.Context, actor domain.User, edition, land, buildType int, amount decimal.Decimal) error {
	if err := requireCapability(ctx, s.caps, actor, domain.CapBankAdmin); err != nil {
		return err
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if err := s.checkBuildingCoordinate(ctx, edition, land, buildType); err != nil {
		return err
	}

	if err := s.repo.SetBuildingPrice(ctx, edition, land, buildType, amount, actor.ID); err != nil {
		return fmt.Errorf("s.repo.SetBuildingPrice -> %w", err)
	}

	return nil
}

// BuyDeed mints a fresh deed to the buyer and moves the price from the
// buyer's wallet to the bank, both inside one transaction. The buyer
// must have approved the bank for at least the price beforehand. The
// returned amount is the price actually charged.
func (s *BankService) BuyDeed(ctx context.Context, buyer domain.User, edition, land, rarity int) (domain.Deed, decimal.Decimal, error) {
	if err := s.checkDeedCoordinate(ctx, edition, land, rarity); err != nil {
		return domain.Deed{}, decimal.Zero, err
	}

	price, err := s.repo.DeedPrice(ctx, edition, land, rarity)
	if err != nil {
		return domain.Deed{}, decimal.Zero, fmt.Errorf("s.repo.DeedPrice -> %w", err)
	}

	deed, err := s.repo.ExecuteDeedPurchase(ctx, buyer.ID, s.bankID, edition, land, rarity, price)
	if err != nil {
		if isTradeFailure(err) {
			return domain.Deed{}, decimal.Zero, err
		}

		return domain.Deed{}, decimal.Zero, fmt.Errorf("s.repo.ExecuteDeedPurchase -> %w", err)
	}

	return deed, price, nil
}

// BuyBuilding mints quantity units of the building class to the buyer
// and charges price times quantity, atomically.
func (s *BankService) BuyBuilding(ctx context.Context, buyer domain.User, edition, land, buildType int, quantity int64) (int64, decimal.Decimal, error) {
	if quantity <= 0 {
		return 0, decimal.Zero, ErrInvalidQuantity
	}
	if err := s.checkBuildingCoordinate(ctx, edition, land, buildType); err != nil {
		return 0, decimal.Zero, err
	}

	price, err := s.repo.BuildingPrice(ctx, edition, land, buildType)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("s.repo.BuildingPrice -> %w", err)
	}
	total := price.Mul(decimal.NewFromInt(quantity))

	classID, err := s.repo.ExecuteBuildingPurchase(ctx, buyer.ID, s.bankID, edition, land, buildType, quantity, total)
	if err != nil {
		if isTradeFailure(err) {
			return 0, decimal.Zero, err
		}

		return 0, decimal.Zero, fmt.Errorf("s.repo.ExecuteBuildingPurchase -> %w", err)
	}

	return classID, total, nil
}

// SellDeed buys the deed back at the current table price. The seller
// must own the deed and have approved the bank as its operator; the
// deed moves to the bank and the price moves from the bank's reserve
// to the seller, atomically.
func (s *BankService) SellDeed(ctx context.Context, seller domain.User, assetID int64) (decimal.Decimal, error) {
	deed, err := s.deeds.GetByAssetID(ctx, assetID)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownAsset) {
			return decimal.Zero, ErrUnknownAsset
		}

		return decimal.Zero, fmt.Errorf("s.deeds.GetByAssetID -> %w", err)
	}

	price, err := s.repo.DeedPrice(ctx, deed.Edition, deed.Land, deed.Rarity)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.DeedPrice -> %w", err)
	}

	if _, err = s.repo.ExecuteDeedSale(ctx, seller.ID, s.bankID, assetID, price); err != nil {
		if isTradeFailure(err) {
			return decimal.Zero, err
		}

		return decimal.Zero, fmt.Errorf("s.repo.ExecuteDeedSale -> %w", err)
	}

	return price, nil
}

// Reserve reports the bank's own currency balance, the pool deed
// buybacks pay out of.
func (s *BankService) Reserve(ctx context.Context) (decimal.Decimal, error) {
	reserve, err := s.wallet.BalanceOf(ctx, s.bankID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.wallet.BalanceOf -> %w", err)
	}

	return reserve, nil
}

func isTradeFailure(err error) bool {
	for _, known := range []error{
		repository.ErrInsufficientBalance,
		repository.ErrInsufficientAllowance,
		repository.ErrInsufficientReserve,
		repository.ErrLedgerPaused,
		repository.ErrSupplyExhausted,
		repository.ErrUnknownAsset,
		repository.ErrNotOwner,
		repository.ErrNotApproved,
	} {
		if errors.Is(err, known) {
			return true
		}
	}

	return false
}
