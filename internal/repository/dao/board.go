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
	ErrUnknownEdition = errors.New("unknown edition")
)

// Edition rows are append-only. Number is the public edition id; the
// surrogate primary key exists only because the first edition is 0 and
// gorm treats a zero primary key as unset.
type Edition struct {
	ID uint `gorm:"primaryKey"`

	Number       int `gorm:"uniqueIndex;not null"`
	Lands        int `gorm:"not null"`
	RarityLevels int `gorm:"not null"`
	BuildTypes   int `gorm:"not null"`

	BuildableLands []BuildableLand `gorm:"foreignKey:EditionID"`

	CreatedAt time.Time `gorm:"not null"`
}

type BuildableLand struct {
	ID        uint `gorm:"primaryKey"`
	EditionID uint `gorm:"index;not null"`
	LandIndex int  `gorm:"not null"`
}

type BoardDAO struct {
	db *gorm.DB
}

func NewBoardDAO(db *gorm.DB) *BoardDAO {
	return &BoardDAO{
		db: db,
	}
}

func (d *BoardDAO) FindByNumber(ctx context.Context, number int) (Edition, error) {
	var edition Edition

	result := d.db.WithContext(ctx).
		Preload("BuildableLands").
		First(&edition, "number = ?", number)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Edition{}, ErrUnknownEdition
		}

		return Edition{}, result.Error
	}

	return edition, nil
}

func (d *BoardDAO) MaxNumber(ctx context.Context) (int, error) {
	var max int

	result := d.db.WithContext(ctx).
		Model(&Edition{}).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max)
	if result.Error != nil {
		return 0, result.Error
	}

	return max, nil
}

// Insert appends a new edition, assigning the next sequential number.
// The latest edition row is locked so two concurrent inserts cannot claim
// the same number.
func (d *BoardDAO) Insert(ctx context.Context, lands, rarityLevels, buildTypes int, buildableLands []int, actorID uint) (Edition, error) {
	var created Edition

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last Edition
		result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("number DESC").
			First(&last)
		if result.Error != nil && !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return result.Error
		}

		created = Edition{
			Number:       last.Number + 1,
			Lands:        lands,
			RarityLevels: rarityLevels,
			BuildTypes:   buildTypes,
		}
		for _, land := range buildableLands {
			created.BuildableLands = append(created.BuildableLands, BuildableLand{LandIndex: land})
		}

		if result := tx.Create(&created); result.Error != nil {
			return result.Error
		}

		return insertEvent(tx, Event{
			Kind:    domain.EventEditionCreated,
			ActorID: actorID,
			Edition: &created.Number,
		})
	})
	if err != nil {
		return Edition{}, err
	}

	return created, nil
}

// insertGenesis stores the hardcoded edition 0. Used only by seeding.
func (d *BoardDAO) insertGenesis(lands, rarityLevels, buildTypes int, buildableLands []int) error {
	edition := Edition{
		Number:       0,
		Lands:        lands,
		RarityLevels: rarityLevels,
		BuildTypes:   buildTypes,
	}
	for _, land := range buildableLands {
		edition.BuildableLands = append(edition.BuildableLands, BuildableLand{LandIndex: land})
	}

	return d.db.Create(&edition).Error
}
