package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tycoonworld/estate-api/internal/repository/dao"
)

var (
	ErrInsufficientBalance   = dao.ErrInsufficientBalance
	ErrInsufficientAllowance = dao.ErrInsufficientAllowance
	ErrSupplyCapExceeded     = dao.ErrSupplyCapExceeded
	ErrLedgerPaused          = dao.ErrLedgerPaused
)

type WalletDAO interface {
	Mint(ctx context.Context, to uint, amount decimal.Decimal, actorID uint) error
	Burn(ctx context.Context, from uint, amount decimal.Decimal) error
	Transfer(ctx context.Context, from, to uint, amount decimal.Decimal) error
	TransferFrom(ctx context.Context, spender, from, to uint, amount decimal.Decimal) error
	Approve(ctx context.Context, owner, spender uint, amount decimal.Decimal) error
	BalanceOf(ctx context.Context, userID uint) (decimal.Decimal, error)
	Allowance(ctx context.Context, owner, spender uint) (decimal.Decimal, error)
	State(ctx context.Context) (dao.LedgerState, error)
	SetPaused(ctx context.Context, paused bool, actorID uint) error
}

type WalletRepository struct {
	dao WalletDAO
}

func NewWalletRepository(dao WalletDAO) *WalletRepository {
	return &WalletRepository{
		dao: dao,
	}
}

func (r *WalletRepository) Mint(ctx context.Context, to uint, amount decimal.Decimal, actorID uint) error {
	return r.dao.Mint(ctx, to, amount, actorID)
}

func (r *WalletRepository) Burn(ctx context.Context, from uint, amount decimal.Decimal) error {
	return r.dao.Burn(ctx, from, amount)
}

func (r *WalletRepository) Transfer(ctx context.Context, from, to uint, amount decimal.Decimal) error {
	return r.dao.Transfer(ctx, from, to, amount)
}

func (r *WalletRepository) TransferFrom(ctx context.Context, spender, from, to uint, amount decimal.Decimal) error {
	return r.dao.TransferFrom(ctx, spender, from, to, amount)
}

func (r *WalletRepository) Approve(ctx context.Context, owner, spender uint, amount decimal.Decimal) error {
	return r.dao.Approve(ctx, owner, spender, amount)
}

func (r *WalletRepository) BalanceOf(ctx context.Context, userID uint) (decimal.Decimal, error) {
	balance, err := r.dao.BalanceOf(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.BalanceOf -> %w", err)
	}

	return balance, nil
}

func (r *WalletRepository) Allowance(ctx context.Context, owner, spender uint) (decimal.Decimal, error) {
	allowance, err := r.dao.Allowance(ctx, owner, spender)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.Allowance -> %w", err)
	}

	return allowance, nil
}

func (r *WalletRepository) TotalSupply(ctx context.Context) (decimal.Decimal, error) {
	state, err := r.dao.State(ctx)
	if err != nil {
		return decimal.Zero, fmt.Errorf("r.dao.State -> %w", err)
	}

	return state.TotalSupply, nil
}

func (r *WalletRepository) Paused(ctx context.Context) (bool, error) {
	state, err := r.dao.State(ctx)
	if err != nil {
		return false, fmt.Errorf("r.dao.State -> %w", err)
	}

	return state.Paused, nil
}

func (r *WalletRepository) SetPaused(ctx context.Context, paused bool, actorID uint) error {
	return r.dao.SetPaused(ctx, paused, actorID)
}
