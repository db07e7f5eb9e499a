package repository

import (
	"context"
	"fmt"

	"github.com/tycoonworld/estate-api/internal/domain"
	"github.com/tycoonworld/estate-api/internal/repository/dao"
)

type EventDAO interface {
	List(ctx context.Context, limit, offset int) ([]dao.Event, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func eventDaoToDomain(e dao.Event) domain.Event {
	return domain.Event{
		ID:          e.ID,
		Kind:        e.Kind,
		ActorID:     e.ActorID,
		PrincipalID: e.PrincipalID,
		Edition:     e.Edition,
		Land:        e.Land,
		Rarity:      e.Rarity,
		BuildType:   e.BuildType,
		AssetID:     e.AssetID,
		ClassID:     e.ClassID,
		Quantity:    e.Quantity,
		Amount:      e.Amount,
		Capability:  e.Capability,
		CreatedAt:   e.CreatedAt,
	}
}

func (r *EventRepository) List(ctx context.Context, limit, offset int) ([]domain.Event, error) {
	daoEvents, err := r.dao.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	events := make([]domain.Event, len(daoEvents))
	for i, e := range daoEvents {
		events[i] = eventDaoToDomain(e)
	}

	return events, nil
}
