package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tycoonworld/estate-api/internal/domain"
)

var (
	ErrUnknownAsset    = errors.New("unknown asset")
	ErrSupplyExhausted = errors.New("deed supply exhausted for this land and rarity")
	ErrNotOwner        = errors.New("caller does not own the asset")
	ErrNotApproved     = errors.New("caller is not approved to move the asset")
)

// Deed is one unique land-deed record. AssetID is the public identity,
// allocated as the global deed count inside the minting transaction so a
// rolled-back mint never advances the sequence.
type Deed struct {
	ID uint `gorm:"primaryKey"`

	AssetID int64 `gorm:"uniqueIndex;not null"`

	EditionNumber int `gorm:"index:idx_deed_bucket;not null"`
	Land          int `gorm:"index:idx_deed_bucket;not null"`
	Rarity        int `gorm:"index:idx_deed_bucket;not null"`
	Serial        int `gorm:"not null"`

	OwnerID    uint `gorm:"index;not null"`
	ApprovedID *uint

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type DeedDAO struct {
	db *gorm.DB
}

func NewDeedDAO(db *gorm.DB) *DeedDAO {
	return &DeedDAO{
		db: db,
	}
}

func (d *DeedDAO) WithTx(tx *gorm.DB) *DeedDAO {
	return &DeedDAO{
		db: tx,
	}
}

// mintAttempts bounds the retries when concurrent mints in different
// buckets race for the same asset id.
const mintAttempts = 5

// isAssetIDTaken matches the unique violation raised when another mint
// committed the same asset id first. Mints within one bucket serialize
// on the bucket lock; mints across buckets only collide on this index.
func isAssetIDTaken(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, "idx_deeds_asset_id")
}

// Insert mints one deed in its own transaction. The bank trade flow uses
// mintLocked directly so the mint shares the purchase transaction.
func (d *DeedDAO) Insert(ctx context.Context, to uint, edition, land, rarity int, actorID uint) (Deed, error) {
	var deed Deed

	var err error
	for attempt := 0; attempt < mintAttempts; attempt++ {
		err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var err error
			deed, err = mintDeedLocked(tx, to, edition, land, rarity)
			if err != nil {
				return err
			}

			return insertEvent(tx, Event{
				Kind:    domain.EventDeedMinted,
				ActorID: actorID,
				Edition: &deed.EditionNumber,
				Land:    &deed.Land,
				Rarity:  &deed.Rarity,
				AssetID: &deed.AssetID,
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

// mintDeedLocked allocates serial and asset id and inserts the deed. Must
// run inside a transaction. The bucket count is taken under a pessimistic
// lock on the existing bucket rows so concurrent mints of the same bucket
// serialize.
func mintDeedLocked(tx *gorm.DB, to uint, edition, land, rarity int) (Deed, error) {
	var bucket []Deed
	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("edition_number = ? AND land = ? AND rarity = ?", edition, land, rarity).
		Find(&bucket)
	if result.Error != nil {
		return Deed{}, result.Error
	}

	serial := int64(len(bucket))
	if serial >= domain.MaxDeedSupply(rarity) {
		return Deed{}, ErrSupplyExhausted
	}

	var total int64
	if result := tx.Model(&Deed{}).Count(&total); result.Error != nil {
		return Deed{}, result.Error
	}

	deed := Deed{
		AssetID:       total,
		EditionNumber: edition,
		Land:          land,
		Rarity:        rarity,
		Serial:        int(serial),
		OwnerID:       to,
	}
	if result := tx.Create(&deed); result.Error != nil {
		return Deed{}, result.Error
	}

	return deed, nil
}

func (d *DeedDAO) FindByAssetID(ctx context.Context, assetID int64) (Deed, error) {
	var deed Deed

	result := d.db.WithContext(ctx).First(&deed, "asset_id = ?", assetID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Deed{}, ErrUnknownAsset
		}

		return Deed{}, result.Error
	}

	return deed, nil
}

func (d *DeedDAO) Exists(ctx context.Context, assetID int64) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Deed{}).
		Where("asset_id = ?", assetID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (d *DeedDAO) CountBucket(ctx context.Context, edition, land, rarity int) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Deed{}).
		Where("edition_number = ? AND land = ? AND rarity = ?", edition, land, rarity).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *DeedDAO) TotalCount(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Deed{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *DeedDAO) FindByOwner(ctx context.Context, ownerID uint) ([]Deed, error) {
	var deeds []Deed

	result := d.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("asset_id").
		Find(&deeds)
	if result.Error != nil {
		return nil, result.Error
	}

	return deeds, nil
}

// Transfer reassigns ownership. Any outstanding approval is cleared, as a
// new owner must not inherit the previous owner's delegation.
func (d *DeedDAO) Transfer(ctx context.Context, assetID int64, from, to uint) (Deed, error) {
	var deed Deed

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deed, err = lockDeed(tx, assetID)
		if err != nil {
			return err
		}
		if deed.OwnerID != from {
			return ErrNotOwner
		}

		deed.OwnerID = to
		deed.ApprovedID = nil
		if result := tx.Model(&Deed{}).Where("asset_id = ?", assetID).
			Updates(map[string]interface{}{"owner_id": to, "approved_id": nil}); result.Error != nil {
			return result.Error
		}

		return insertEvent(tx, Event{
			Kind:    domain.EventDeedTransferred,
			ActorID: from,
			AssetID: &assetID,
		})
	})
	if err != nil {
		return Deed{}, err
	}

	return deed, nil
}

// Approve grants spender the right to move the deed, replacing any prior
// approval.
func (d *DeedDAO) Approve(ctx context.Context, assetID int64, owner, spender uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deed, err := lockDeed(tx, assetID)
		if err != nil {
			return err
		}
		if deed.OwnerID != owner {
			return ErrNotOwner
		}

		result := tx.Model(&Deed{}).Where("asset_id = ?", assetID).
			Update("approved_id", spender)
		if result.Error != nil {
			return result.Error
		}

		return insertEvent(tx, Event{
			Kind:        domain.EventDeedApproved,
			ActorID:     owner,
			PrincipalID: &spender,
			AssetID:     &assetID,
		})
	})
}

func lockDeed(tx *gorm.DB, assetID int64) (Deed, error) {
	var deed Deed

	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&deed, "asset_id = ?", assetID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Deed{}, ErrUnknownAsset
		}

		return Deed{}, result.Error
	}

	return deed, nil
}
