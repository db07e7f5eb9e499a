package dao

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tycoonworld/estate-api/internal/config"
	"github.com/tycoonworld/estate-api/internal/domain"
)

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Edition{},
		&BuildableLand{},
		&Deed{},
		&BuildingClass{},
		&BuildingBalance{},
		&WalletAccount{},
		&WalletAllowance{},
		&LedgerState{},
		&DeedPrice{},
		&BuildingPrice{},
		&Capability{},
		&Event{},
	)
}

// SeedGenesis installs the state the system assumes from genesis: edition
// 0, the ledger supply row, the bank system account with its issuance
// capabilities and reserve, and the configured administrator. Safe to run
// on every startup; existing rows are left alone.
func SeedGenesis(db *gorm.DB, seed *config.SeedConfig, ledger *config.LedgerConfig) error {
	ctx := context.Background()

	boardDAO := NewBoardDAO(db)
	if _, err := boardDAO.FindByNumber(ctx, 0); err != nil {
		if !errors.Is(err, ErrUnknownEdition) {
			return fmt.Errorf("boardDAO.FindByNumber -> %w", err)
		}

		genesis := domain.GenesisEdition()
		err = boardDAO.insertGenesis(genesis.Lands, genesis.RarityLevels, genesis.BuildTypes, genesis.BuildableLands)
		if err != nil {
			return fmt.Errorf("boardDAO.insertGenesis -> %w", err)
		}
	}

	maxSupply, err := decimal.NewFromString(ledger.MaxSupply)
	if err != nil {
		return fmt.Errorf("invalid ledger max supply -> %w", err)
	}
	bankReserve, err := decimal.NewFromString(ledger.BankReserve)
	if err != nil {
		return fmt.Errorf("invalid bank reserve -> %w", err)
	}

	var state LedgerState
	result := db.First(&state)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		state = LedgerState{
			Paused:      false,
			MaxSupply:   maxSupply,
			TotalSupply: decimal.Zero,
		}
		if result := db.Create(&state); result.Error != nil {
			return result.Error
		}
	}

	userDAO := NewUserDAO(db)
	walletDAO := NewWalletDAO(db)
	capabilityDAO := NewCapabilityDAO(db)

	bank, err := seedUser(ctx, userDAO, seed.BankEmail, "Bank", domain.RoleSystem, "")
	if err != nil {
		return fmt.Errorf("seed bank user -> %w", err)
	}

	// The bank issues assets on purchases, mirroring the genesis grant of
	// the minter role to the bank.
	for _, name := range []string{domain.CapDeedMint, domain.CapBuildingMint} {
		if err := capabilityDAO.Grant(ctx, bank.ID, name, bank.ID); err != nil {
			return fmt.Errorf("capabilityDAO.Grant -> %w", err)
		}
	}

	balance, err := walletDAO.BalanceOf(ctx, bank.ID)
	if err != nil {
		return fmt.Errorf("walletDAO.BalanceOf -> %w", err)
	}
	if balance.IsZero() && bankReserve.IsPositive() {
		if err := walletDAO.Mint(ctx, bank.ID, bankReserve, bank.ID); err != nil {
			return fmt.Errorf("walletDAO.Mint bank reserve -> %w", err)
		}
	}

	admin, err := seedUser(ctx, userDAO, seed.AdminEmail, "Administrator", domain.RoleAdmin, seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("seed admin user -> %w", err)
	}

	for _, name := range domain.Capabilities() {
		if err := capabilityDAO.Grant(ctx, admin.ID, name, admin.ID); err != nil {
			return fmt.Errorf("capabilityDAO.Grant -> %w", err)
		}
	}

	return nil
}

func seedUser(ctx context.Context, userDAO *UserDAO, email, name, role, password string) (User, error) {
	user, err := userDAO.FindByEmail(ctx, email)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	// System accounts never log in; store an unusable hash for them.
	if password == "" {
		password = "!disabled"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	return userDAO.Insert(ctx, User{
		Email:    email,
		Password: string(hash),
		Name:     name,
		Role:     role,
	})
}
