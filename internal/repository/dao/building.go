package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tycoonworld/estate-api/internal/domain"
)

var (
	ErrInsufficientUnits = errors.New("insufficient building units")
)

// BuildingClass is one fungible asset class keyed by the packed
// (edition, land, type) class id. Rows are created lazily on first mint.
type BuildingClass struct {
	ID uint `gorm:"primaryKey"`

	ClassID       int64 `gorm:"uniqueIndex;not null"`
	EditionNumber int   `gorm:"not null"`
	Land          int   `gorm:"not null"`
	BuildType     int   `gorm:"not null"`

	TotalSupply int64 `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type BuildingBalance struct {
	ID uint `gorm:"primaryKey"`

	ClassID int64 `gorm:"uniqueIndex:idx_building_holder;not null"`
	OwnerID uint  `gorm:"uniqueIndex:idx_building_holder;not null"`

	Quantity int64 `gorm:"not null;default:0"`

	UpdatedAt time.Time `gorm:"not null"`
}

type BuildingDAO struct {
	db *gorm.DB
}

func NewBuildingDAO(db *gorm.DB) *BuildingDAO {
	return &BuildingDAO{
		db: db,
	}
}

func (d *BuildingDAO) WithTx(tx *gorm.DB) *BuildingDAO {
	return &BuildingDAO{
		db: tx,
	}
}

// Insert mints quantity units in its own transaction. The bank purchase
// flow uses mintBuildingLocked so the mint shares the trade transaction.
func (d *BuildingDAO) Insert(ctx context.Context, to uint, edition, land, buildType int, quantity int64, actorID uint) (int64, error) {
	var classID int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		classID, err = mintBuildingLocked(tx, to, edition, land, buildType, quantity)
		if err != nil {
			return err
		}

		return insertEvent(tx, Event{
			Kind:      domain.EventBuildingMinted,
			ActorID:   actorID,
			Edition:   &edition,
			Land:      &land,
			BuildType: &buildType,
			ClassID:   &classID,
			Quantity:  &quantity,
		})
	})
	if err != nil {
		return 0, err
	}

	return classID, nil
}

// mintBuildingLocked accumulates quantity onto the class and the holder
// balance. Must run inside a transaction.
func mintBuildingLocked(tx *gorm.DB, to uint, edition, land, buildType int, quantity int64) (int64, error) {
	classID := domain.PackClassID(edition, land, buildType)

	class := BuildingClass{
		ClassID:       classID,
		EditionNumber: edition,
		Land:          land,
		BuildType:     buildType,
	}
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("class_id = ?", classID).
		FirstOrCreate(&class)
	if result.Error != nil {
		return 0, result.Error
	}

	result = tx.Model(&BuildingClass{}).Where("class_id = ?", classID).
		Update("total_supply", gorm.Expr("total_supply + ?", quantity))
	if result.Error != nil {
		return 0, result.Error
	}

	if err := creditBuildingLocked(tx, classID, to, quantity); err != nil {
		return 0, err
	}

	return classID, nil
}

func creditBuildingLocked(tx *gorm.DB, classID int64, owner uint, quantity int64) error {
	balance := BuildingBalance{
		ClassID: classID,
		OwnerID: owner,
	}
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("class_id = ? AND owner_id = ?", classID, owner).
		FirstOrCreate(&balance)
	if result.Error != nil {
		return result.Error
	}

	result = tx.Model(&BuildingBalance{}).
		Where("class_id = ? AND owner_id = ?", classID, owner).
		Update("quantity", gorm.Expr("quantity + ?", quantity))

	return result.Error
}

func (d *BuildingDAO) BalanceOf(ctx context.Context, owner uint, classID int64) (int64, error) {
	var balance BuildingBalance

	result := d.db.WithContext(ctx).
		First(&balance, "class_id = ? AND owner_id = ?", classID, owner)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, result.Error
	}

	return balance.Quantity, nil
}

func (d *BuildingDAO) TotalSupply(ctx context.Context, classID int64) (int64, error) {
	var class BuildingClass

	result := d.db.WithContext(ctx).First(&class, "class_id = ?", classID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, nil
		}

		return 0, result.Error
	}

	return class.TotalSupply, nil
}

// Transfer moves quantity units between holders.
func (d *BuildingDAO) Transfer(ctx context.Context, classID int64, from, to uint, quantity int64) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var balance BuildingBalance
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&balance, "class_id = ? AND owner_id = ?", classID, from)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrRecordNotFound) {
				return ErrInsufficientUnits
			}

			return result.Error
		}
		if balance.Quantity < quantity {
			return ErrInsufficientUnits
		}

		result = tx.Model(&BuildingBalance{}).
			Where("class_id = ? AND owner_id = ?", classID, from).
			Update("quantity", gorm.Expr("quantity - ?", quantity))
		if result.Error != nil {
			return result.Error
		}

		if err := creditBuildingLocked(tx, classID, to, quantity); err != nil {
			return err
		}

		return insertEvent(tx, Event{
			Kind:     domain.EventBuildingTransferred,
			ActorID:  from,
			ClassID:  &classID,
			Quantity: &quantity,
		})
	})
}
