package dao

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tycoonworld/estate-api/internal/domain"
)

var (
	ErrInsufficientBalance   = errors.New("insufficient currency balance")
	ErrInsufficientAllowance = errors.New("insufficient currency allowance")
	ErrSupplyCapExceeded     = errors.New("currency supply cap exceeded")
	ErrLedgerPaused          = errors.New("currency ledger is paused")
)

// WalletAccount holds one principal's currency balance in 18-decimal base
// units. numeric(78,0) fits any amount the 18-decimal scaling can produce.
type WalletAccount struct {
	ID uint `gorm:"primaryKey"`

	UserID  uint            `gorm:"uniqueIndex;not null"`
	Balance decimal.Decimal `gorm:"type:numeric(78,0);not null"`

	UpdatedAt time.Time `gorm:"not null"`
}

type WalletAllowance struct {
	ID uint `gorm:"primaryKey"`

	OwnerID   uint            `gorm:"uniqueIndex:idx_wallet_allowance;not null"`
	SpenderID uint            `gorm:"uniqueIndex:idx_wallet_allowance;not null"`
	Amount    decimal.Decimal `gorm:"type:numeric(78,0);not null"`

	UpdatedAt time.Time `gorm:"not null"`
}

// LedgerState is the singleton supply/pause row.
type LedgerState struct {
	ID uint `gorm:"primaryKey"`

	Paused      bool            `gorm:"not null"`
	MaxSupply   decimal.Decimal `gorm:"type:numeric(78,0);not null"`
	TotalSupply decimal.Decimal `gorm:"type:numeric(78,0);not null"`

	UpdatedAt time.Time `gorm:"not null"`
}

type WalletDAO struct {
	db *gorm.DB
}

func NewWalletDAO(db *gorm.DB) *WalletDAO {
	return &WalletDAO{
		db: db,
	}
}

func (d *WalletDAO) WithTx(tx *gorm.DB) *WalletDAO {
	return &WalletDAO{
		db: tx,
	}
}

func lockLedgerState(tx *gorm.DB) (LedgerState, error) {
	var state LedgerState

	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&state)
	if result.Error != nil {
		return LedgerState{}, result.Error
	}

	return state, nil
}

// Mint credits newly issued currency, bounded by the configured max
// supply.
func (d *WalletDAO) Mint(ctx context.Context, to uint, amount decimal.Decimal, actorID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := lockLedgerState(tx)
		if err != nil {
			return err
		}
		if state.Paused {
			return ErrLedgerPaused
		}

		supply := state.TotalSupply.Add(amount)
		if supply.GreaterThan(state.MaxSupply) {
			return ErrSupplyCapExceeded
		}

		if err := creditWalletLocked(tx, to, amount); err != nil {
			return err
		}

		result := tx.Model(&LedgerState{}).Where("id = ?", state.ID).
			Update("total_supply", supply)
		if result.Error != nil {
			return result.Error
		}

		return insertEvent(tx, Event{
			Kind:        domain.EventCurrencyMinted,
			ActorID:     actorID,
			PrincipalID: &to,
			Amount:      &amount,
		})
	})
}

// Burn destroys currency from the holder's balance.
func (d *WalletDAO) Burn(ctx context.Context, from uint, amount decimal.Decimal) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := lockLedgerState(tx)
		if err != nil {
			return err
		}
		if state.Paused {
			return ErrLedgerPaused
		}

		if err := debitWalletLocked(tx, from, amount); err != nil {
			return err
		}

		result := tx.Model(&LedgerState{}).Where("id = ?", state.ID).
			Update("total_supply", state.TotalSupply.Sub(amount))
		if result.Error != nil {
			return result.Error
		}

		return insertEvent(tx, Event{
			Kind:    domain.EventCurrencyBurned,
			ActorID: from,
			Amount:  &amount,
		})
	})
}

func (d *WalletDAO) Transfer(ctx context.Context, from, to uint, amount decimal.Decimal) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return transferLocked(tx, from, to, amount)
	})
}

// TransferFrom moves currency on the owner's behalf, consuming the
// spender's allowance.
func (d *WalletDAO) TransferFrom(ctx context.Context, spender, from, to uint, amount decimal.Decimal) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return transferFromLocked(tx, spender, from, to, amount)
	})
}

func (d *WalletDAO) Approve(ctx context.Context, owner, spender uint, amount decimal.Decimal) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		allowance := WalletAllowance{
			OwnerID:   owner,
			SpenderID: spender,
			Amount:    decimal.Zero,
		}
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ? AND spender_id = ?", owner, spender).
			FirstOrCreate(&allowance)
		if result.Error != nil {
			return result.Error
		}

		result = tx.Model(&WalletAllowance{}).
			Where("owner_id = ? AND spender_id = ?", owner, spender).
			Update("amount", amount)
		if result.Error != nil {
			return result.Error
		}

		return insertEvent(tx, Event{
			Kind:        domain.EventCurrencyApproved,
			ActorID:     owner,
			PrincipalID: &spender,
			Amount:      &amount,
		})
	})
}

func (d *WalletDAO) BalanceOf(ctx context.Context, userID uint) (decimal.Decimal, error) {
	var account WalletAccount

	result := d.db.WithContext(ctx).First(&account, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}

		return decimal.Zero, result.Error
	}

	return account.Balance, nil
}

func (d *WalletDAO) Allowance(ctx context.Context, owner, spender uint) (decimal.Decimal, error) {
	var allowance WalletAllowance

	result := d.db.WithContext(ctx).
		First(&allowance, "owner_id = ? AND spender_id = ?", owner, spender)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return decimal.Zero, nil
		}

		return decimal.Zero, result.Error
	}

	return allowance.Amount, nil
}

func (d *WalletDAO) State(ctx context.Context) (LedgerState, error) {
	var state LedgerState

	result := d.db.WithContext(ctx).First(&state)
	if result.Error != nil {
		return LedgerState{}, result.Error
	}

	return state, nil
}

func (d *WalletDAO) SetPaused(ctx context.Context, paused bool, actorID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		state, err := lockLedgerState(tx)
		if err != nil {
			return err
		}

		result := tx.Model(&LedgerState{}).Where("id = ?", state.ID).
			Update("paused", paused)
		if result.Error != nil {
			return result.Error
		}

		kind := domain.EventLedgerPaused
		if !paused {
			kind = domain.EventLedgerUnpaused
		}

		return insertEvent(tx, Event{
			Kind:    kind,
			ActorID: actorID,
		})
	})
}

// transferLocked moves currency between accounts. Must run inside a
// transaction.
func transferLocked(tx *gorm.DB, from, to uint, amount decimal.Decimal) error {
	var state LedgerState
	if result := tx.First(&state); result.Error != nil {
		return result.Error
	}
	if state.Paused {
		return ErrLedgerPaused
	}

	if err := debitWalletLocked(tx, from, amount); err != nil {
		return err
	}

	if err := creditWalletLocked(tx, to, amount); err != nil {
		return err
	}

	return insertEvent(tx, Event{
		Kind:        domain.EventCurrencyTransferred,
		ActorID:     from,
		PrincipalID: &to,
		Amount:      &amount,
	})
}

// transferFromLocked consumes allowance(from→spender) then transfers.
func transferFromLocked(tx *gorm.DB, spender, from, to uint, amount decimal.Decimal) error {
	var allowance WalletAllowance
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&allowance, "owner_id = ? AND spender_id = ?", from, spender)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrInsufficientAllowance
		}

		return result.Error
	}
	if allowance.Amount.LessThan(amount) {
		return ErrInsufficientAllowance
	}

	result = tx.Model(&WalletAllowance{}).
		Where("owner_id = ? AND spender_id = ?", from, spender).
		Update("amount", allowance.Amount.Sub(amount))
	if result.Error != nil {
		return result.Error
	}

	return transferLocked(tx, from, to, amount)
}

func debitWalletLocked(tx *gorm.DB, from uint, amount decimal.Decimal) error {
	var account WalletAccount

	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&account, "user_id = ?", from)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ErrInsufficientBalance
		}

		return result.Error
	}
	if account.Balance.LessThan(amount) {
		return ErrInsufficientBalance
	}

	result = tx.Model(&WalletAccount{}).Where("user_id = ?", from).
		Update("balance", account.Balance.Sub(amount))

	return result.Error
}

func creditWalletLocked(tx *gorm.DB, to uint, amount decimal.Decimal) error {
	account := WalletAccount{
		UserID:  to,
		Balance: decimal.Zero,
	}
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", to).
		FirstOrCreate(&account)
	if result.Error != nil {
		return result.Error
	}

	result = tx.Model(&WalletAccount{}).Where("user_id = ?", to).
		Update("balance", account.Balance.Add(amount))

	return result.Error
}
