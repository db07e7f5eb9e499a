package service

import (
	"context"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/domain"
)

const (
	defaultEventPageSize = 50
	maxEventPageSize     = 200
)

type EventRepository interface {
	List(ctx context.Context, limit, offset int) ([]domain.Event, error)
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

// List returns events newest first. Limits outside (0, maxEventPageSize]
// fall back to the defaults.
func (s *EventService) List(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	if limit <= 0 {
		limit = defaultEventPageSize
	}
	if limit > maxEventPageSize {
		limit = maxEventPageSize
	}
	if offset < 0 {
		offset = 0
	}

	events, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, nil
}
