package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository/dao"
)

var (
	ErrUnknownEdition = dao.ErrUnknownEdition
)

type BoardDAO interface {
	FindByNumber(ctx context.Context, number int) (dao.Edition, error)
	MaxNumber(ctx context.Context) (int, error)
	Insert(ctx context.Context, lands, rarityLevels, buildTypes int, buildableLands []int, actorID uint) (dao.Edition, error)
}

type BoardRepository struct {
	dao BoardDAO
}

func NewBoardRepository(dao BoardDAO) *BoardRepository {
	return &BoardRepository{
		dao: dao,
	}
}

func (r *BoardRepository) daoToDomain(e dao.Edition) domain.Edition {
	edition := domain.Edition{
		Number:       e.Number,
		Lands:        e.Lands,
		RarityLevels: e.RarityLevels,
		BuildTypes:   e.BuildTypes,
		CreatedAt:    e.CreatedAt,
	}
	for _, land := range e.BuildableLands {
		edition.BuildableLands = append(edition.BuildableLands, land.LandIndex)
	}

	return edition
}

func (r *BoardRepository) GetByNumber(ctx context.Context, number int) (domain.Edition, error) {
	edition, err := r.dao.FindByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, dao.ErrUnknownEdition) {
			return domain.Edition{}, ErrUnknownEdition
		}

		return domain.Edition{}, fmt.Errorf("r.dao.FindByNumber -> %w", err)
	}

	return r.daoToDomain(edition), nil
}

func (r *BoardRepository) MaxNumber(ctx context.Context) (int, error) {
	max, err := r.dao.MaxNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.MaxNumber -> %w", err)
	}

	return max, nil
}

func (r *BoardRepository) Create(ctx context.Context, lands, rarityLevels, buildTypes int, buildableLands []int, actorID uint) (domain.Edition, error) {
	created, err := r.dao.Insert(ctx, lands, rarityLevels, buildTypes, buildableLands, actorID)
	if err != nil {
		return domain.Edition{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}
