package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/domain"
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnknownCapability = errors.New("unknown capability")
)

type CapabilityRepository interface {
	Has(ctx context.Context, principalID uint, name string) (bool, error)
	Grant(ctx context.Context, principalID uint, name string, actorID uint) error
	Revoke(ctx context.Context, principalID uint, name string, actorID uint) error
	ListByPrincipal(ctx context.Context, principalID uint) ([]string, error)
}

type CapabilityService struct {
	repo CapabilityRepository
}

func NewCapabilityService(repo CapabilityRepository) *CapabilityService {
	return &CapabilityService{
		repo: repo,
	}
}

func (s *CapabilityService) Has(ctx context.Context, principalID uint, name string) (bool, error) {
	has, err := s.repo.Has(ctx, principalID, name)
	if err != nil {
		return false, fmt.Errorf("s.repo.Has -> %w", err)
	}

	return has, nil
}

func (s *CapabilityService) Grant(ctx context.Context, granter domain.User, principalID uint, name string) error {
	if granter.Role != domain.RoleAdmin {
		return ErrPermissionDenied
	}
	if !isKnownCapability(name) {
		return ErrUnknownCapability
	}

	if err := s.repo.Grant(ctx, principalID, name, granter.ID); err != nil {
		return fmt.Errorf("s.repo.Grant -> %w", err)
	}

	return nil
}

func (s *CapabilityService) Revoke(ctx context.Context, revoker domain.User, principalID uint, name string) error {
	if revoker.Role != domain.RoleAdmin {
		return ErrPermissionDenied
	}
	if !isKnownCapability(name) {
		return ErrUnknownCapability
	}

	if err := s.repo.Revoke(ctx, principalID, name, revoker.ID); err != nil {
		return fmt.Errorf("s.repo.Revoke -> %w", err)
	}

	return nil
}

func (s *CapabilityService) ListByPrincipal(ctx context.Context, principalID uint) ([]string, error) {
	names, err := s.repo.ListByPrincipal(ctx, principalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByPrincipal -> %w", err)
	}

	return names, nil
}

// requireCapability returns ErrPermissionDenied unless the actor holds
// the capability. Admins hold every capability implicitly.
func requireCapability(ctx context.Context, repo CapabilityRepository, actor domain.User, name string) error {
	if actor.Role == domain.RoleAdmin {
		return nil
	}

	has, err := repo.Has(ctx, actor.ID, name)
	if err != nil {
		return fmt.Errorf("repo.Has -> %w", err)
	}
	if !has {
		return ErrPermissionDenied
	}

	return nil
}

func isKnownCapability(name string) bool {
	for _, known := range domain.Capabilities() {
		if name == known {
			return true
		}
	}

	return false
}
