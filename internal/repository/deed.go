package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository/dao"
)

var (
	ErrUnknownAsset    = dao.ErrUnknownAsset
	ErrSupplyExhausted = dao.ErrSupplyExhausted
	ErrNotOwner        = dao.ErrNotOwner
	ErrNotApproved     = dao.ErrNotApproved
)

type DeedDAO interface {
	Insert(ctx context.Context, to uint, edition, land, rarity int, actorID uint) (dao.Deed, error)
	FindByAssetID(ctx context.Context, assetID int64) (dao.Deed, error)
	Exists(ctx context.Context, assetID int64) (bool, error)
	CountBucket(ctx context.Context, edition, land, rarity int) (int64, error)
	TotalCount(ctx context.Context) (int64, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]dao.Deed, error)
	Transfer(ctx context.Context, assetID int64, from, to uint) (dao.Deed, error)
	Approve(ctx context.Context, assetID int64, owner, spender uint) error
}

type DeedRepository struct {
	dao DeedDAO
}

func NewDeedRepository(dao DeedDAO) *DeedRepository {
	return &DeedRepository{
		dao: dao,
	}
}

func deedDaoToDomain(d dao.Deed) domain.Deed {
	return domain.Deed{
		AssetID:    d.AssetID,
		Edition:    d.EditionNumber,
		Land:       d.Land,
		Rarity:     d.Rarity,
		Serial:     d.Serial,
		OwnerID:    d.OwnerID,
		ApprovedID: d.ApprovedID,
		CreatedAt:  d.CreatedAt,
	}
}

func (r *DeedRepository) Mint(ctx context.Context, to uint, edition, land, rarity int, actorID uint) (domain.Deed, error) {
	deed, err := r.dao.Insert(ctx, to, edition, land, rarity, actorID)
	if err != nil {
		if errors.Is(err, dao.ErrSupplyExhausted) {
			return domain.Deed{}, ErrSupplyExhausted
		}

		return domain.Deed{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return deedDaoToDomain(deed), nil
}

func (r *DeedRepository) GetByAssetID(ctx context.Context, assetID int64) (domain.Deed, error) {
	deed, err := r.dao.FindByAssetID(ctx, assetID)
	if err != nil {
		if errors.Is(err, dao.ErrUnknownAsset) {
			return domain.Deed{}, ErrUnknownAsset
		}

		return domain.Deed{}, fmt.Errorf("r.dao.FindByAssetID -> %w", err)
	}

	return deedDaoToDomain(deed), nil
}

func (r *DeedRepository) Exists(ctx context.Context, assetID int64) (bool, error) {
	exists, err := r.dao.Exists(ctx, assetID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Exists -> %w", err)
	}

	return exists, nil
}

func (r *DeedRepository) CountOf(ctx context.Context, edition, land, rarity int) (int64, error) {
	count, err := r.dao.CountBucket(ctx, edition, land, rarity)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountBucket -> %w", err)
	}

	return count, nil
}

func (r *DeedRepository) TotalSupply(ctx context.Context) (int64, error) {
	total, err := r.dao.TotalCount(ctx)
	if err != nil {
		return 0, fmt.Errorf("r.dao.TotalCount -> %w", err)
	}

	return total, nil
}

func (r *DeedRepository) GetByOwner(ctx context.Context, ownerID uint) ([]domain.Deed, error) {
	daoDeeds, err := r.dao.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByOwner -> %w", err)
	}

	deeds := make([]domain.Deed, len(daoDeeds))
	for i, d := range daoDeeds {
		deeds[i] = deedDaoToDomain(d)
	}

	return deeds, nil
}

func (r *DeedRepository) Transfer(ctx context.Context, assetID int64, from, to uint) (domain.Deed, error) {
	deed, err := r.dao.Transfer(ctx, assetID, from, to)
	if err != nil {
		if errors.Is(err, dao.ErrUnknownAsset) || errors.Is(err, dao.ErrNotOwner) {
			return domain.Deed{}, err
		}

		return domain.Deed{}, fmt.Errorf("r.dao.Transfer -> %w", err)
	}

	return deedDaoToDomain(deed), nil
}

func (r *DeedRepository) Approve(ctx context.Context, assetID int64, owner, spender uint) error {
	if err := r.dao.Approve(ctx, assetID, owner, spender); err != nil {
		if errors.Is(err, dao.ErrUnknownAsset) || errors.Is(err, dao.ErrNotOwner) {
			return err
		}

		return fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return nil
}
