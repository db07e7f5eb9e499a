package repository

import (
	"context"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/repository/dao"
)

type CapabilityDAO interface {
	Has(ctx context.Context, principalID uint, name string) (bool, error)
	Grant(ctx context.Context, principalID uint, name string, actorID uint) error
	Revoke(ctx context.Context, principalID uint, name string, actorID uint) error
	FindByPrincipal(ctx context.Context, principalID uint) ([]dao.Capability, error)
}

type CapabilityRepository struct {
	dao CapabilityDAO
}

func NewCapabilityRepository(dao CapabilityDAO) *CapabilityRepository {
	return &CapabilityRepository{
		dao: dao,
	}
}

func (r *CapabilityRepository) Has(ctx context.Context, principalID uint, name string) (bool, error) {
	has, err := r.dao.Has(ctx, principalID, name)
	if err != nil {
		return false, fmt.Errorf("r.dao.Has -> %w", err)
	}

	return has, nil
}

func (r *CapabilityRepository) Grant(ctx context.Context, principalID uint, name string, actorID uint) error {
	if err := r.dao.Grant(ctx, principalID, name, actorID); err != nil {
		return fmt.Errorf("r.dao.Grant -> %w", err)
	}

	return nil
}

func (r *CapabilityRepository) Revoke(ctx context.Context, principalID uint, name string, actorID uint) error {
	if err := r.dao.Revoke(ctx, principalID, name, actorID); err != nil {
		return fmt.Errorf("r.dao.Revoke -> %w", err)
	}

	return nil
}

func (r *CapabilityRepository) ListByPrincipal(ctx context.Context, principalID uint) ([]string, error) {
	grants, err := r.dao.FindByPrincipal(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByPrincipal -> %w", err)
	}

	names := make([]string, len(grants))
	for i, grant := range grants {
		names[i] = grant.Name
	}

	return names, nil
}
