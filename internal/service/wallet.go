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
	ErrInsufficientBalance   = repository.ErrInsufficientBalance
	ErrInsufficientAllowance = repository.ErrInsufficientAllowance
	ErrSupplyCapExceeded     = repository.ErrSupplyCapExceeded
	ErrLedgerPaused          = repository.ErrLedgerPaused
	ErrInvalidAmount         = errors.New("amount must be positive")
)

type WalletRepository interface {
	Mint(ctx context.Context, to uint, amount decimal.Decimal, actorID uint) error
	Burn(ctx context.Context, from uint, amount decimal.Decimal) error
	Transfer(ctx context.Context, from, to uint, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, spender, from, to uint, amount decimal.Decimal) error
	Approve(ctx context.Context, owner, spender uint, amount decimal.Decimal) error
	BalanceOf(ctx context.Context, userID uint) (decimal.Decimal, error)
	Allowance(ctx context.Context, owner, spender uint) (decimal.Decimal, error)
	TotalSupply(ctx context.Context) (decimal.Decimal, error)
	Paused(ctx context.Context) (bool, error)
	SetPaused(ctx context.Context, paused bool, actorID uint) error
}

type WalletService struct {
	repo WalletRepository
	caps CapabilityRepository
}

func NewWalletService(repo WalletRepository, caps CapabilityRepository) *WalletService {
	return &WalletService{
		repo: repo,
		caps: caps,
	}
}

// walletOpError reports whether err is one of the ledger failures callers
// match on; those pass through unwrapped.
func walletOpError(err error) bool {
	for _, known := range []error{
		repository.ErrInsufficientBalance,
		repository.ErrInsufficientAllowance,
		repository.ErrSupplyCapExceeded,
		repository.ErrLedgerPaused,
	} {
		if errors.Is(err, known) {
			return true
		}
	}

	return false
}

func (s *WalletService) Mint(ctx context.Context, actor domain.User, to uint, amount decimal.Decimal) error {
	if err := requireCapability(ctx, s.caps, actor, domain.CapWalletMint); err != nil {
		return err
	}
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	if err := s.repo.Mint(ctx, to, amount, actor.ID); err != nil {
		if walletOpError(err) {
			return err
		}

		return fmt.Errorf("s.repo.Mint -> %w", err)
	}

	return nil
}

func (s *WalletService) Burn(ctx context.Context, actor domain.User, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	if err := s.repo.Burn(ctx, actor.ID, amount); err != nil {
		if walletOpError(err) {
			return err
		}

		return fmt.Errorf("s.repo.Burn -> %w", err)
	}

	return nil
}

func (s *WalletService) Transfer(ctx context.Context, actor domain.User, to uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	if err := s.repo.Transfer(ctx, actor.ID, to, amount); err != nil {
		if walletOpError(err) {
			return err
		}

		return fmt.Errorf("s.repo.Transfer -> %w", err)
	}

	return nil
}

func (s *WalletService) TransferFrom(ctx context.Context, actor domain.User, from, to uint, amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	if err := s.repo.TransferFrom(ctx, actor.ID, from, to, amount); err != nil {
		if walletOpError(err) {
			return err
		}

		return fmt.Errorf("s.repo.TransferFrom -> %w", err)
	}

	return nil
}

// Approve sets the spender's allowance to exactly amount. Zero clears it.
func (s *WalletService) Approve(ctx context.Context, actor domain.User, spender uint, amount decimal.Decimal) error {
	if amount.Sign() < 0 {
		return ErrInvalidAmount
	}

	if err := s.repo.Approve(ctx, actor.ID, spender, amount); err != nil {
		return fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return nil
}

func (s *WalletService) BalanceOf(ctx context.Context, userID uint) (decimal.Decimal, error) {
	balance, err := s.repo.BalanceOf(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.BalanceOf -> %w", err)
	}

	return balance, nil
}

func (s *WalletService) Allowance(ctx context.Context, owner, spender uint) (decimal.Decimal, error) {
	allowance, err := s.repo.Allowance(ctx, owner, spender)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.Allowance -> %w", err)
	}

	return allowance, nil
}

func (s *WalletService) TotalSupply(ctx context.Context) (decimal.Decimal, error) {
	total, err := s.repo.TotalSupply(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("s.repo.TotalSupply -> %w", err)
	}

	return total, nil
}

func (s *WalletService) Paused(ctx context.Context) (bool, error) {
	paused, err := s.repo.Paused(ctx)
	if err != nil {
		return false, fmt.Errorf("s.repo.Paused -> %w", err)
	}

	return paused, nil
}

func (s *WalletService) SetPaused(ctx context.Context, actor domain.User, paused bool) error {
	if err := requireCapability(ctx, s.caps, actor, domain.CapWalletPause); err != nil {
		return err
	}

	if err := s.repo.SetPaused(ctx, paused, actor.ID); err != nil {
		return fmt.Errorf("s.repo.SetPaused -> %w", err)
	}

	return nil
}
