package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository"
)

var (
	ErrUnknownAsset      = repository.ErrUnknownAsset
	ErrSupplyExhausted   = repository.ErrSupplyExhausted
	ErrNotOwner          = repository.ErrNotOwner
	ErrInvalidCoordinate = errors.New("coordinate outside edition bounds")
)

type DeedRepository interface {
	Mint(ctx context.Context, to uint, edition, land, rarity int, actorID uint) (domain.Deed, error)
	GetByAssetID(ctx context.Context, assetID int64) (domain.Deed, error)
	Exists(ctx context.Context, assetID int64) (bool, error)
	CountOf(ctx context.Context, edition, land, rarity int) (int64, error)
	TotalSupply(ctx context.Context) (int64, error)
	GetByOwner(ctx context.Context, ownerID uint) ([]domain.Deed, error)
	Transfer(ctx context.Context, assetID int64, from, to uint) (domain.Deed, error)
	Approve(ctx context.Context, assetID int64, owner, spender uint) error
}

type DeedService struct {
	repo  DeedRepository
	board BoardRepository
	caps  CapabilityRepository
}

func NewDeedService(repo DeedRepository, board BoardRepository, caps CapabilityRepository) *DeedService {
	return &DeedService{
		repo:  repo,
		board: board,
		caps:  caps,
	}
}

// resolveDeedCoordinate loads the edition and checks the (land, rarity)
// pair falls inside its bounds.
func (s *DeedService) resolveDeedCoordinate(ctx context.Context, edition, land, rarity int) error {
	board, err := s.board.GetByNumber(ctx, edition)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownEdition) {
			return ErrUnknownEdition
		}

		return fmt.Errorf("s.board.GetByNumber -> %w", err)
	}

	if !board.ValidDeedCoordinate(land, rarity) {
		return ErrInvalidCoordinate
	}

	return nil
}

func (s *DeedService) Mint(ctx context.Context, actor domain.User, to uint, edition, land, rarity int) (domain.Deed, error) {
	if err := requireCapability(ctx, s.caps, actor, domain.CapDeedMint); err != nil {
		return domain.Deed{}, err
	}

	if err := s.resolveDeedCoordinate(ctx, edition, land, rarity); err != nil {
		return domain.Deed{}, err
	}

	deed, err := s.repo.Mint(ctx, to, edition, land, rarity, actor.ID)
	if err != nil {
		if errors.Is(err, repository.ErrSupplyExhausted) {
			return domain.Deed{}, ErrSupplyExhausted
		}

		return domain.Deed{}, fmt.Errorf("s.repo.Mint -> %w", err)
	}

	return deed, nil
}

func (s *DeedService) GetDeed(ctx context.Context, assetID int64) (domain.Deed, error) {
	deed, err := s.repo.GetByAssetID(ctx, assetID)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownAsset) {
			return domain.Deed{}, ErrUnknownAsset
		}

		return domain.Deed{}, fmt.Errorf("s.repo.GetByAssetID -> %w", err)
	}

	return deed, nil
}

func (s *DeedService) Exists(ctx context.Context, assetID int64) (bool, error) {
	exists, err := s.repo.Exists(ctx, assetID)
	if err != nil {
		return false, fmt.Errorf("s.repo.Exists -> %w", err)
	}

	return exists, nil
}

// CountOf reports how many deeds have been minted for the coordinate,
// which is also the serial the next mint would receive.
func (s *DeedService) CountOf(ctx context.Context, edition, land, rarity int) (int64, error) {
	if err := s.resolveDeedCoordinate(ctx, edition, land, rarity); err != nil {
		return 0, err
	}

	count, err := s.repo.CountOf(ctx, edition, land, rarity)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountOf -> %w", err)
	}

	return count, nil
}

func (s *DeedService) TotalSupply(ctx context.Context) (int64, error) {
	total, err := s.repo.TotalSupply(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.TotalSupply -> %w", err)
	}

	return total, nil
}

func (s *DeedService) ListByOwner(ctx context.Context, ownerID uint) ([]domain.Deed, error) {
	deeds, err := s.repo.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetByOwner -> %w", err)
	}

	return deeds, nil
}

func (s *DeedService) Transfer(ctx context.Context, actor domain.User, assetID int64, to uint) (domain.Deed, error) {
	deed, err := s.repo.Transfer(ctx, assetID, actor.ID, to)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownAsset) || errors.Is(err, repository.ErrNotOwner) {
			return domain.Deed{}, err
		}

		return domain.Deed{}, fmt.Errorf("s.repo.Transfer -> %w", err)
	}

	return deed, nil
}

func (s *DeedService) Approve(ctx context.Context, actor domain.User, assetID int64, spender uint) error {
	if err := s.repo.Approve(ctx, assetID, actor.ID, spender); err != nil {
		if errors.Is(err, repository.ErrUnknownAsset) || errors.Is(err, repository.ErrNotOwner) {
			return err
		}

		return fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return nil
}
