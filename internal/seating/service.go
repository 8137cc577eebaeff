package seating

import (
	"context"
	"errors"
	"fmt"

	"stagedoor/internal/availability"
	"stagedoor/internal/events"
	"stagedoor/internal/geometry"
	"stagedoor/internal/layouts"
	"stagedoor/internal/requests"
	"stagedoor/internal/shared/constants"
	"stagedoor/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// GetEventSeating returns the raw seating surface: layout document plus
	// availability sets, for clients that resolve seat status themselves.
	GetEventSeating(ctx context.Context, eventID string) (*EventSeatingResponse, error)

	// GetEventSeatingView returns the server-rendered projection.
	GetEventSeatingView(ctx context.Context, eventID string, opts ViewOptions) (*SeatingViewResponse, error)
}

type service struct {
	eventRepo   events.Repository
	layoutRepo  layouts.Repository
	requestsSvc requests.Service
	cacheSvc    cache.Service
}

func NewService(eventRepo events.Repository, layoutRepo layouts.Repository, requestsSvc requests.Service, cacheSvc cache.Service) Service {
	return &service{
		eventRepo:   eventRepo,
		layoutRepo:  layoutRepo,
		requestsSvc: requestsSvc,
		cacheSvc:    cacheSvc,
	}
}

var ErrEventNotFound = fmt.Errorf("event not found")

func (s *service) GetEventSeating(ctx context.Context, eventID string) (*EventSeatingResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	doc, err := s.resolveLayout(ctx, event)
	if err != nil {
		return nil, err
	}

	sets, err := s.availabilitySets(ctx, id)
	if err != nil {
		return nil, err
	}

	elements := doc.Elements
	if elements == nil {
		elements = []geometry.LayoutElement{}
	}

	return &EventSeatingResponse{
		Seating:        elements,
		ReservedSeats:  sets.Reserved,
		PendingSeats:   sets.Pending,
		HoldSeats:      sets.Holds,
		SeatingEnabled: event.SeatingEnabled,
		StagePosition:  doc.StagePosition,
		StageSize:      doc.StageSize,
		CanvasSettings: doc.Canvas,
	}, nil
}

func (s *service) GetEventSeatingView(ctx context.Context, eventID string, opts ViewOptions) (*SeatingViewResponse, error) {
	id, err := uuid.Parse(eventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	doc, err := s.resolveLayout(ctx, event)
	if err != nil {
		return nil, err
	}

	sets, err := s.availabilitySets(ctx, id)
	if err != nil {
		return nil, err
	}

	// The guest's selection may be stale against the fresh sets: any seat
	// that was reserved, requested or held since they picked it is dropped,
	// and the corrected list goes back in the response.
	opts.Selected = availability.FilterUnavailable(
		opts.Selected,
		availability.NewSeatSet(sets.Reserved...),
		availability.NewSeatSet(sets.Pending...),
		availability.NewSeatSet(sets.Holds...),
	)

	resp := &SeatingViewResponse{
		EventID:        eventID,
		SeatingEnabled: event.SeatingEnabled,
		Elements:       BuildSeatingView(doc, *sets, opts),
		SelectedSeats:  opts.Selected,
		StagePosition:  doc.StagePosition,
		StageSize:      doc.StageSize,
		CanvasSettings: doc.Canvas,
		Scale:          1,
	}

	if opts.Viewport != nil {
		resp.Scale, resp.Offset = layouts.FitToViewport(
			geometry.Size{Width: doc.Canvas.Width, Height: doc.Canvas.Height},
			*opts.Viewport,
		)
	}
	return resp, nil
}

// resolveLayout picks the layout document for an event: its snapshot if one
// exists, then its assigned template, then the venue default.
func (s *service) resolveLayout(ctx context.Context, event *events.Event) (*layouts.Document, error) {
	if snapshot, err := s.layoutRepo.GetByEventID(ctx, event.ID); err == nil {
		return snapshot.Decode()
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to get event layout: %w", err)
	}

	if event.LayoutID != nil {
		layout, err := s.layoutRepo.GetByID(ctx, *event.LayoutID)
		if err == nil {
			return layout.Decode()
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get assigned layout: %w", err)
		}
	}

	layout, err := s.layoutRepo.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No layout anywhere: serve an empty surface rather than 500.
			return &layouts.Document{}, nil
		}
		return nil, fmt.Errorf("failed to get default layout: %w", err)
	}
	return layout.Decode()
}

// availabilitySets fetches the three seat-id sets with a short-TTL cache in
// front. The sets are real-time sensitive, so the TTL trades a few seconds
// of staleness for not hammering Postgres and Redis on every render.
func (s *service) availabilitySets(ctx context.Context, eventID uuid.UUID) (*Sets, error) {
	cacheKey := constants.BuildAvailabilityKey(eventID.String())

	var sets Sets
	err := s.cacheSvc.GetOrSet(ctx, cacheKey, constants.TTL_AVAILABILITY, func() (interface{}, error) {
		raw, err := s.requestsSvc.AvailabilitySets(ctx, eventID)
		if err != nil {
			return nil, err
		}
		return Sets{
			Reserved: raw.Reserved,
			Pending:  raw.Pending,
			Holds:    raw.Holds,
		}, nil
	}, &sets)
	if err != nil {
		return nil, fmt.Errorf("failed to get availability sets: %w", err)
	}

	if sets.Reserved == nil {
		sets.Reserved = []string{}
	}
	if sets.Pending == nil {
		sets.Pending = []string{}
	}
	if sets.Holds == nil {
		sets.Holds = []string{}
	}
	return &sets, nil
}
