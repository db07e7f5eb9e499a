package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/repository/dao"
)

var (
	ErrInsufficientUnits = dao.ErrInsufficientUnits
)

type BuildingDAO interface {
	Insert(ctx context.Context, to uint, edition, land, buildType int, quantity int64, actorID uint) (int64, error)
	BalanceOf(ctx context.Context, owner uint, classID int64) (int64, error)
	TotalSupply(ctx context.Context, classID int64) (int64, error)
	Transfer(ctx context.Context, classID int64, from, to uint, quantity int64) error
}

type BuildingRepository struct {
	dao BuildingDAO
}

func NewBuildingRepository(dao BuildingDAO) *BuildingRepository {
	return &BuildingRepository{
		dao: dao,
	}
}

func (r *BuildingRepository) Mint(ctx context.Context, to uint, edition, land, buildType int, quantity int64, actorID uint) (int64, error) {
	classID, err := r.dao.Insert(ctx, to, edition, land, buildType, quantity, actorID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return classID, nil
}

func (r *BuildingRepository) BalanceOf(ctx context.Context, owner uint, classID int64) (int64, error) {
	balance, err := r.dao.BalanceOf(ctx, owner, classID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.BalanceOf -> %w", err)
	}

	return balance, nil
}

func (r *BuildingRepository) TotalSupply(ctx context.Context, classID int64) (int64, error) {
	supply, err := r.dao.TotalSupply(ctx, classID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.TotalSupply -> %w", err)
	}

	return supply, nil
}

func (r *BuildingRepository) Transfer(ctx context.Context, classID int64, from, to uint, quantity int64) error {
	if err := r.dao.Transfer(ctx, classID, from, to, quantity); err != nil {
		if errors.Is(err, dao.ErrInsufficientUnits) {
			return ErrInsufficientUnits
		}

		return fmt.Errorf("r.dao.Transfer -> %w", err)
	}

	return nil
}
