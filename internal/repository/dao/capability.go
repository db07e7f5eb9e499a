package dao

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tycoonworld/estate-api/internal/domain"
)

// Capability is one (principal, capability) grant.
type Capability struct {
	ID uint `gorm:"primaryKey"`

	PrincipalID uint   `gorm:"uniqueIndex:idx_capability_grant;not null"`
	Name        string `gorm:"uniqueIndex:idx_capability_grant;not null"`

	CreatedAt time.Time `gorm:"not null"`
}

type CapabilityDAO struct {
	db *gorm.DB
}

func NewCapabilityDAO(db *gorm.DB) *CapabilityDAO {
	return &CapabilityDAO{
		db: db,
	}
}

func (d *CapabilityDAO) Has(ctx context.Context, principalID uint, name string) (bool, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Capability{}).
		Where("principal_id = ? AND name = ?", principalID, name).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// Grant is idempotent: granting an already-held capability is a no-op
// and records no event.
func (d *CapabilityDAO) Grant(ctx context.Context, principalID uint, name string, actorID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		capability := Capability{
			PrincipalID: principalID,
			Name:        name,
		}

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "principal_id"}, {Name: "name"}},
			DoNothing: true,
		}).Create(&capability)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return insertEvent(tx, Event{
			Kind:        domain.EventCapabilityGranted,
			ActorID:     actorID,
			PrincipalID: &principalID,
			Capability:  &name,
		})
	})
}

func (d *CapabilityDAO) Revoke(ctx context.Context, principalID uint, name string, actorID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.
			Where("principal_id = ? AND name = ?", principalID, name).
			Delete(&Capability{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		return insertEvent(tx, Event{
			Kind:        domain.EventCapabilityRevoked,
			ActorID:     actorID,
			PrincipalID: &principalID,
			Capability:  &name,
		})
	})
}

func (d *CapabilityDAO) FindByPrincipal(ctx context.Context, principalID uint) ([]Capability, error) {
	var capabilities []Capability

	result := d.db.WithContext(ctx).
		Where("principal_id = ?", principalID).
		Order("name").
		Find(&capabilities)
	if result.Error != nil {
		return nil, result.Error
	}

	return capabilities, nil
}
