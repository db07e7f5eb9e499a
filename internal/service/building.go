package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository"
)

var (
	ErrInsufficientUnits = repository.ErrInsufficientUnits
	ErrInvalidQuantity   = errors.New("quantity must be positive")
)

type BuildingRepository interface {
	Mint(ctx context.Context, to uint, edition, land, buildType int, quantity int64, actorID uint) (int64, error)
	BalanceOf(ctx context.Context, owner uint, classID int64) (int64, error)
	TotalSupply(ctx context.Context, classID int64) (int64, error)
	Transfer(ctx context.Context, classID int64, from, to uint, quantity int64) error
}

type BuildingService struct {
	repo  BuildingRepository
	board BoardRepository
	caps  CapabilityRepository
}

func NewBuildingService(repo BuildingRepository, board BoardRepository, caps CapabilityRepository) *BuildingService {
	return &BuildingService{
		repo:  repo,
		board: board,
		caps:  caps,
	}
}

// resolveBuildingCoordinate loads the edition and checks the land is
// buildable and the build type is in range.
func (s *BuildingService) resolveBuildingCoordinate(ctx context.Context, edition, land, buildType int) error {
	board, err := s.board.GetByNumber(ctx, edition)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownEdition) {
			return ErrUnknownEdition
		}

		return fmt.Errorf("s.board.GetByNumber -> %w", err)
	}

	if !board.ValidBuildingCoordinate(land, buildType) {
		return ErrInvalidCoordinate
	}

	return nil
}

func (s *BuildingService) Mint(ctx context.Context, actor domain.User, to uint, edition, land, buildType int, quantity int64) (int64, error) {
	if err := requireCapability(ctx, s.caps, actor, domain.CapBuildingMint); err != nil {
		return 0, err
	}
	if quantity <= 0 {
		return 0, ErrInvalidQuantity
	}

	if err := s.resolveBuildingCoordinate(ctx, edition, land, buildType); err != nil {
		return 0, err
	}

	classID, err := s.repo.Mint(ctx, to, edition, land, buildType, quantity, actor.ID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.Mint -> %w", err)
	}

	return classID, nil
}

func (s *BuildingService) BalanceOf(ctx context.Context, owner uint, edition, land, buildType int) (int64, error) {
	balance, err := s.repo.BalanceOf(ctx, owner, domain.PackClassID(edition, land, buildType))
	if err != nil {
		return 0, fmt.Errorf("s.repo.BalanceOf -> %w", err)
	}

	return balance, nil
}

func (s *BuildingService) TotalSupply(ctx context.Context, edition, land, buildType int) (int64, error) {
	supply, err := s.repo.TotalSupply(ctx, domain.PackClassID(edition, land, buildType))
	if err != nil {
		return 0, fmt.Errorf("s.repo.TotalSupply -> %w", err)
	}

	return supply, nil
}

func (s *BuildingService) Transfer(ctx context.Context, actor domain.User, edition, land, buildType int, to uint, quantity int64) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	classID := domain.PackClassID(edition, land, buildType)
	if err := s.repo.Transfer(ctx, classID, actor.ID, to, quantity); err != nil {
		if errors.Is(err, repository.ErrInsufficientUnits) {
			return ErrInsufficientUnits
		}

		return fmt.Errorf("s.repo.Transfer -> %w", err)
	}

	return nil
}
