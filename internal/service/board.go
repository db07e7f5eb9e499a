package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository"
)

var (
	ErrUnknownEdition       = repository.ErrUnknownEdition
	ErrInvalidEditionConfig = errors.New("invalid edition configuration")
)

type BoardRepository interface {
	GetByNumber(ctx context.Context, number int) (domain.Edition, error)
	MaxNumber(ctx context.Context) (int, error)
	Create(ctx context.Context, lands, rarityLevels, buildTypes int, buildableLands []int, actorID uint) (domain.Edition, error)
}

type BoardService struct {
	repo BoardRepository
	caps CapabilityRepository
}

func NewBoardService(repo BoardRepository, caps CapabilityRepository) *BoardService {
	return &BoardService{
		repo: repo,
		caps: caps,
	}
}

func (s *BoardService) GetEdition(ctx context.Context, number int) (domain.Edition, error) {
	edition, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, repository.ErrUnknownEdition) {
			return domain.Edition{}, ErrUnknownEdition
		}

		return domain.Edition{}, fmt.Errorf("s.repo.GetByNumber -> %w", err)
	}

	return edition, nil
}

func (s *BoardService) LatestEditionNumber(ctx context.Context) (int, error) {
	max, err := s.repo.MaxNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.repo.MaxNumber -> %w", err)
	}

	return max, nil
}

// CreateEdition opens a new board edition. Edition numbers are assigned
// sequentially and never reused.
func (s *BoardService) CreateEdition(ctx context.Context, actor domain.User, lands, rarityLevels, buildTypes int, buildableLands []int) (domain.Edition, error) {
	if err := requireCapability(ctx, s.caps, actor, domain.CapBoardManage); err != nil {
		return domain.Edition{}, err
	}

	if lands <= 0 || rarityLevels <= 0 || buildTypes <= 0 {
		return domain.Edition{}, ErrInvalidEditionConfig
	}
	for _, land := range buildableLands {
		if land < 0 || land >= lands {
			return domain.Edition{}, ErrInvalidEditionConfig
		}
	}

	edition, err := s.repo.Create(ctx, lands, rarityLevels, buildTypes, buildableLands, actor.ID)
	if err != nil {
		return domain.Edition{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return edition, nil
}
