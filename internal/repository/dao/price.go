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

// DeedPrice is one administrator-set override. Coordinates with no row
// fall back to the computed default, so rows only exist once set.
type DeedPrice struct {
	ID uint `gorm:"primaryKey"`

	EditionNumber int `gorm:"uniqueIndex:idx_deed_price;not null"`
	Land          int `gorm:"uniqueIndex:idx_deed_price;not null"`
	Rarity        int `gorm:"uniqueIndex:idx_deed_price;not null"`

	Amount decimal.Decimal `gorm:"type:numeric(78,0);not null"`

	UpdatedAt time.Time `gorm:"not null"`
}

type BuildingPrice struct {
	ID uint `gorm:"primaryKey"`

	EditionNumber int `gorm:"uniqueIndex:idx_building_price;not null"`
	Land          int `gorm:"uniqueIndex:idx_building_price;not null"`
	BuildType     int `gorm:"uniqueIndex:idx_building_price;not null"`

	Amount decimal.Decimal `gorm:"type:numeric(78,0);not null"`

	UpdatedAt time.Time `gorm:"not null"`
}

type PriceDAO struct {
	db *gorm.DB
}

func NewPriceDAO(db *gorm.DB) *PriceDAO {
	return &PriceDAO{
		db: db,
	}
}

// FindDeedPrice returns the explicit price for the coordinate, reporting
// whether one was ever set.
func (d *PriceDAO) FindDeedPrice(ctx context.Context, edition, land, rarity int) (decimal.Decimal, bool, error) {
	var price DeedPrice

	result := d.db.WithContext(ctx).
		First(&price, "edition_number = ? AND land = ? AND rarity = ?", edition, land, rarity)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}

		return decimal.Zero, false, result.Error
	}

	return price.Amount, true, nil
}

// UpsertDeedPrice overwrites any prior value unconditionally.
func (d *PriceDAO) UpsertDeedPrice(ctx context.Context, edition, land, rarity int, amount decimal.Decimal, actorID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		price := DeedPrice{
			EditionNumber: edition,
			Land:          land,
			Rarity:        rarity,
			Amount:        amount,
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "edition_number"}, {Name: "land"}, {Name: "rarity"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(&price)
		if result.Error != nil {
			return result.Error
		}

		return insertEvent(tx, Event{
			Kind:    domain.EventDeedPriceSet,
			ActorID: actorID,
			Edition: &edition,
			Land:    &land,
			Rarity:  &rarity,
			Amount:  &amount,
		})
	})
}

func (d *PriceDAO) FindBuildingPrice(ctx context.Context, edition, land, buildType int) (decimal.Decimal, bool, error) {
	var price BuildingPrice

	result := d.db.WithContext(ctx).
		First(&price, "edition_number = ? AND land = ? AND build_type = ?", edition, land, buildType)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}

		return decimal.Zero, false, result.Error
	}

	return price.Amount, true, nil
}

func (d *PriceDAO) UpsertBuildingPrice(ctx context.Context, edition, land, buildType int, amount decimal.Decimal, actorID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		price := BuildingPrice{
			EditionNumber: edition,
			Land:          land,
			BuildType:     buildType,
			Amount:        amount,
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "edition_number"}, {Name: "land"}, {Name: "build_type"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount", "updated_at"}),
		}).Create(&price)
		if result.Error != nil {
			return result.Error
		}

		return insertEvent(tx, Event{
			Kind:      domain.EventBuildingPriceSet,
			ActorID:   actorID,
			Edition:   &edition,
			Land:      &land,
			BuildType: &buildType,
			Amount:    &amount,
		})
	})
}
