package dao

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tycoonworld/estate-api/internal/domain"
)

var (
	ErrInsufficientReserve = errors.New("bank reserve cannot cover the payout")
)

// BankDAO owns the trade transactions. Each trade is one database
// transaction: the currency leg, the asset leg and the event either all
// commit or all roll back.
type BankDAO struct {
	db *gorm.DB
}

func NewBankDAO(db *gorm.DB) *BankDAO {
	return &BankDAO{
		db: db,
	}
}

// ExecuteDeedPurchase pulls price from the buyer into the bank account
// (against the buyer's allowance to the bank), then mints the deed to the
// buyer. A failed mint rolls the currency pull back.
func (d *BankDAO) ExecuteDeedPurchase(ctx context.Context, buyerID, bankID uint, edition, land, rarity int, price decimal.Decimal) (Deed, error) {
	var deed Deed

	var err error
	for attempt := 0; attempt < mintAttempts; attempt++ {
		err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := transferFromLocked(tx, bankID, buyerID, bankID, price); err != nil {
				return err
			}

			var err error
			deed, err = mintDeedLocked(tx, buyerID, edition, land, rarity)
			if err != nil {
				return err
			}

			return insertEvent(tx, Event{
				Kind:    domain.EventDeedPurchased,
				ActorID: buyerID,
				Edition: &deed.EditionNumber,
				Land:    &deed.Land,
				Rarity:  &deed.Rarity,
				AssetID: &deed.AssetID,
				Amount:  &price,
			})
		})
		if err == nil || !isAssetIDTaken(err) {
			break
		}
	}
	if err != nil {
		return Deed{}, err
	}

	return deed, nil
}

// ExecuteBuildingPurchase mirrors the deed protocol with price x quantity
// and the stackable registry.
func (d *BankDAO) ExecuteBuildingPurchase(ctx context.Context, buyerID, bankID uint, edition, land, buildType int, quantity int64, total decimal.Decimal) (int64, error) {
	var classID int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := transferFromLocked(tx, bankID, buyerID, bankID, total); err != nil {
			return err
		}

		var err error
		classID, err = mintBuildingLocked(tx, buyerID, edition, land, buildType, quantity)
		if err != nil {
			return err
		}

		return insertEvent(tx, Event{
			Kind:      domain.EventBuildingPurchased,
			ActorID:   buyerID,
			Edition:   &edition,
			Land:      &land,
			BuildType: &buildType,
			ClassID:   &classID,
			Quantity:  &quantity,
			Amount:    &total,
		})
	})
	if err != nil {
		return 0, err
	}

	return classID, nil
}

// ExecuteDeedSale moves the deed into the bank's holding account and pays
// the seller from the bank reserve. The deed record survives; only
// ownership changes.
func (d *BankDAO) ExecuteDeedSale(ctx context.Context, sellerID, bankID uint, assetID int64, price decimal.Decimal) (Deed, error) {
	var deed Deed

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deed, err = lockDeed(tx, assetID)
		if err != nil {
			return err
		}
		if deed.OwnerID != sellerID {
			return ErrNotOwner
		}
		if deed.ApprovedID == nil || *deed.ApprovedID != bankID {
			return ErrNotApproved
		}

		if err := transferLocked(tx, bankID, sellerID, price); err != nil {
			if errors.Is(err, ErrInsufficientBalance) {
				return ErrInsufficientReserve
			}
			return err
		}

		result := tx.Model(&Deed{}).Where("asset_id = ?", assetID).
			Updates(map[string]interface{}{"owner_id": bankID, "approved_id": nil})
		if result.Error != nil {
			return result.Error
		}
		deed.OwnerID = bankID
		deed.ApprovedID = nil

		return insertEvent(tx, Event{
			Kind:    domain.EventDeedSold,
			ActorID: sellerID,
			Edition: &deed.EditionNumber,
			Land:    &deed.Land,
			Rarity:  &deed.Rarity,
			AssetID: &assetID,
			Amount:  &price,
		})
	})
	if err != nil {
		return Deed{}, err
	}

	return deed, nil
}
