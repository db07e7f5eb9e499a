package dao

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Event is one structured record of a mutating operation, written inside
// the same transaction as the mutation it describes.
type Event struct {
	ID uint `gorm:"primaryKey"`

	Kind    string `gorm:"index;not null"`
	ActorID uint   `gorm:"not null"`

	PrincipalID *uint
	Edition     *int
	Land        *int
	Rarity      *int
	BuildType   *int
	AssetID     *int64 `gorm:"index"`
	ClassID     *int64 `gorm:"index"`
	Quantity    *int64
	Amount      *decimal.Decimal `gorm:"type:numeric(78,0)"`
	Capability  *string

	CreatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) List(ctx context.Context, limit, offset int) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// insertEvent records the event on the given transaction handle so the
// event commits or rolls back together with its operation.
func insertEvent(tx *gorm.DB, event Event) error {
	return tx.Create(&event).Error
}
