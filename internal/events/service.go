package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"stagedoor/internal/layouts"
	"stagedoor/internal/shared/constants"
	"stagedoor/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateEventRequest creates a new event.
type CreateEventRequest struct {
	Name           string    `json:"name" binding:"required,min=1,max=200"`
	Description    string    `json:"description" binding:"omitempty,max=2000"`
	StartsAt       time.Time `json:"startsAt" binding:"required"`
	SeatingEnabled *bool     `json:"seatingEnabled"`
	LayoutID       string    `json:"layoutId" binding:"omitempty,uuid"`
}

// UpdateEventRequest partially updates an event.
type UpdateEventRequest struct {
	Name           *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string    `json:"description" binding:"omitempty,max=2000"`
	StartsAt       *time.Time `json:"startsAt"`
	SeatingEnabled *bool      `json:"seatingEnabled"`
	LayoutID       *string    `json:"layoutId" binding:"omitempty,uuid"`
}

// SnapshotLayoutRequest freezes a template layout onto an event.
type SnapshotLayoutRequest struct {
	LayoutID string `json:"layoutId" binding:"required,uuid"`
}

type Service interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error)
	GetEvent(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context) ([]Event, error)
	UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*Event, error)
	DeleteEvent(ctx context.Context, id string) error

	// SnapshotLayout copies a template layout into an event-owned row so
	// later template edits cannot change a live event's seating.
	SnapshotLayout(ctx context.Context, id string, req SnapshotLayoutRequest) error
}

type service struct {
	repo      Repository
	layoutSvc layouts.Service
	cacheSvc  cache.Service
}

func NewService(repo Repository, layoutSvc layouts.Service, cacheSvc cache.Service) Service {
	return &service{
		repo:      repo,
		layoutSvc: layoutSvc,
		cacheSvc:  cacheSvc,
	}
}

var ErrEventNotFound = fmt.Errorf("event not found")

func (s *service) CreateEvent(ctx context.Context, req CreateEventRequest) (*Event, error) {
	event := &Event{
		ID:             uuid.New(),
		Name:           req.Name,
		Description:    req.Description,
		StartsAt:       req.StartsAt,
		SeatingEnabled: true,
	}
	if req.SeatingEnabled != nil {
		event.SeatingEnabled = *req.SeatingEnabled
	}
	if req.LayoutID != "" {
		layoutID, err := uuid.Parse(req.LayoutID)
		if err != nil {
			return nil, fmt.Errorf("invalid layout ID: %w", err)
		}
		event.LayoutID = &layoutID
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *service) GetEvent(ctx context.Context, id string) (*Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	cacheKey := constants.CACHE_KEY_EVENT_DETAIL + id

	var event Event
	err = s.cacheSvc.GetOrSet(ctx, cacheKey, constants.TTL_EVENT_DETAIL, func() (interface{}, error) {
		row, err := s.repo.GetByID(ctx, eventID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrEventNotFound
			}
			return nil, fmt.Errorf("failed to get event: %w", err)
		}
		return row, nil
	}, &event)
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (s *service) ListEvents(ctx context.Context) ([]Event, error) {
	events, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return events, nil
}

func (s *service) UpdateEvent(ctx context.Context, id string, req UpdateEventRequest) (*Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StartsAt != nil {
		updates["starts_at"] = *req.StartsAt
	}
	if req.SeatingEnabled != nil {
		updates["seating_enabled"] = *req.SeatingEnabled
	}
	if req.LayoutID != nil {
		if *req.LayoutID == "" {
			updates["layout_id"] = nil
		} else {
			layoutID, err := uuid.Parse(*req.LayoutID)
			if err != nil {
				return nil, fmt.Errorf("invalid layout ID: %w", err)
			}
			updates["layout_id"] = layoutID
		}
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, eventID, updates); err != nil {
			return nil, fmt.Errorf("failed to update event: %w", err)
		}
	}

	s.invalidateEvent(ctx, id)

	event, err := s.repo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

func (s *service) DeleteEvent(ctx context.Context, id string) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if err := s.repo.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}

	s.invalidateEvent(ctx, id)
	return nil
}

func (s *service) SnapshotLayout(ctx context.Context, id string, req SnapshotLayoutRequest) error {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid event ID: %w", err)
	}

	if _, err := s.repo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if _, err := s.layoutSvc.SnapshotForEvent(ctx, req.LayoutID, eventID); err != nil {
		return err
	}

	s.invalidateEvent(ctx, id)
	return nil
}

func (s *service) invalidateEvent(ctx context.Context, id string) {
	if err := s.cacheSvc.Delete(ctx, constants.CACHE_KEY_EVENT_DETAIL+id); err != nil {
		log.Printf("Warning: failed to invalidate event cache: %v", err)
	}
	if err := s.cacheSvc.Delete(ctx, constants.BuildSeatingKey(id)); err != nil {
		log.Printf("Warning: failed to invalidate seating cache: %v", err)
	}
}
