package layouts

import (
	"context"
	"errors"
	"fmt"
	"log"

	"stagedoor/internal/shared/constants"
	"stagedoor/pkg/cache"
	"stagedoor/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	GetLayout(ctx context.Context, id string) (*LayoutResponse, error)
	GetDefaultLayout(ctx context.Context) (*LayoutResponse, error)
	ListLayouts(ctx context.Context) ([]LayoutSummary, error)
	CreateLayout(ctx context.Context, req CreateLayoutRequest) (*LayoutResponse, error)
	SaveLayout(ctx context.Context, id string, req SaveLayoutRequest) (*LayoutResponse, error)
	DeleteLayout(ctx context.Context, id string) error
	SetDefaultLayout(ctx context.Context, id string) error

	// SnapshotForEvent copies a template layout into an event-owned row.
	// Later edits to the template never reach the snapshot.
	SnapshotForEvent(ctx context.Context, layoutID string, eventID uuid.UUID) (*SeatingLayout, error)
}

type service struct {
	repo     Repository
	cacheSvc cache.Service
	log      *logger.Logger
}

func NewService(repo Repository, cacheSvc cache.Service) Service {
	return &service{
		repo:     repo,
		cacheSvc: cacheSvc,
		log:      logger.GetDefault(),
	}
}

func (s *service) GetLayout(ctx context.Context, id string) (*LayoutResponse, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid layout ID: %w", err)
	}

	cacheKey := constants.BuildLayoutKey(id)

	var resp LayoutResponse
	err = s.cacheSvc.GetOrSet(ctx, cacheKey, constants.TTL_LAYOUT, func() (interface{}, error) {
		layout, err := s.repo.GetByID(ctx, layoutID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrLayoutNotFound
			}
			return nil, fmt.Errorf("failed to get layout: %w", err)
		}
		return layout.ToResponse()
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) GetDefaultLayout(ctx context.Context) (*LayoutResponse, error) {
	var resp LayoutResponse
	err := s.cacheSvc.GetOrSet(ctx, constants.CACHE_KEY_LAYOUT_DEFAULT, constants.TTL_LAYOUT_DEFAULT, func() (interface{}, error) {
		layout, err := s.repo.GetDefault(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNoDefaultLayout
			}
			return nil, fmt.Errorf("failed to get default layout: %w", err)
		}
		return layout.ToResponse()
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *service) ListLayouts(ctx context.Context) ([]LayoutSummary, error) {
	var summaries []LayoutSummary
	err := s.cacheSvc.GetOrSet(ctx, constants.CACHE_KEY_LAYOUT_LIST, constants.TTL_LAYOUT, func() (interface{}, error) {
		layouts, err := s.repo.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list layouts: %w", err)
		}

		out := make([]LayoutSummary, 0, len(layouts))
		for i := range layouts {
			out = append(out, layouts[i].ToSummary())
		}
		return out, nil
	}, &summaries)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		summaries = []LayoutSummary{}
	}
	return summaries, nil
}

func (s *service) CreateLayout(ctx context.Context, req CreateLayoutRequest) (*LayoutResponse, error) {
	existing, err := s.repo.GetByName(ctx, req.Name)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check layout name: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("layout with name '%s' already exists", req.Name)
	}

	doc := &Document{
		Elements:      req.Elements,
		StagePosition: req.StagePosition,
		StageSize:     req.StageSize,
		Canvas:        req.CanvasSettings,
	}
	doc.NormalizeForSave()

	layout := &SeatingLayout{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
	}
	if err := layout.Encode(doc); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, layout); err != nil {
		return nil, fmt.Errorf("failed to create layout: %w", err)
	}

	s.invalidateLayoutCaches(ctx, layout.ID.String())
	return layout.ToResponse()
}

// SaveLayout replaces the full document atomically. Validation happens
// before any write so a failed save leaves the stored layout untouched.
func (s *service) SaveLayout(ctx context.Context, id string, req SaveLayoutRequest) (*LayoutResponse, error) {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid layout ID: %w", err)
	}

	layout, err := s.repo.GetByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	// Name uniqueness across other layouts
	if req.Name != layout.Name {
		existing, err := s.repo.GetByName(ctx, req.Name)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to check layout name: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("layout with name '%s' already exists", req.Name)
		}
	}

	doc := &Document{
		Elements:      req.Elements,
		StagePosition: req.StagePosition,
		StageSize:     req.StageSize,
		Canvas:        req.CanvasSettings,
	}
	doc.NormalizeForSave()

	layout.Name = req.Name
	layout.Description = req.Description
	if err := layout.Encode(doc); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, layout); err != nil {
		return nil, fmt.Errorf("failed to save layout: %w", err)
	}

	s.log.LogLayoutSaved(ctx, id, len(doc.Elements))
	s.invalidateLayoutCaches(ctx, id)
	return layout.ToResponse()
}

func (s *service) DeleteLayout(ctx context.Context, id string) error {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid layout ID: %w", err)
	}

	layout, err := s.repo.GetByID(ctx, layoutID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLayoutNotFound
		}
		return fmt.Errorf("failed to get layout: %w", err)
	}
	if layout.IsDefault {
		return fmt.Errorf("cannot delete the default layout")
	}

	if err := s.repo.Delete(ctx, layoutID); err != nil {
		return fmt.Errorf("failed to delete layout: %w", err)
	}

	s.invalidateLayoutCaches(ctx, id)
	return nil
}

func (s *service) SetDefaultLayout(ctx context.Context, id string) error {
	layoutID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid layout ID: %w", err)
	}

	if err := s.repo.SetDefault(ctx, layoutID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLayoutNotFound
		}
		return fmt.Errorf("failed to set default layout: %w", err)
	}

	s.invalidateLayoutCaches(ctx, id)
	return nil
}

func (s *service) SnapshotForEvent(ctx context.Context, layoutID string, eventID uuid.UUID) (*SeatingLayout, error) {
	id, err := uuid.Parse(layoutID)
	if err != nil {
		return nil, fmt.Errorf("invalid layout ID: %w", err)
	}

	source, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("failed to get layout: %w", err)
	}

	// Replace any previous snapshot for this event.
	if prev, err := s.repo.GetByEventID(ctx, eventID); err == nil {
		if err := s.repo.Delete(ctx, prev.ID); err != nil {
			return nil, fmt.Errorf("failed to replace previous snapshot: %w", err)
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check previous snapshot: %w", err)
	}

	snapshot := &SeatingLayout{
		ID:             uuid.New(),
		Name:           fmt.Sprintf("%s (event %s)", source.Name, eventID),
		Description:    source.Description,
		EventID:        &eventID,
		LayoutData:     source.LayoutData,
		StagePosition:  source.StagePosition,
		StageSize:      source.StageSize,
		CanvasSettings: source.CanvasSettings,
	}
	if err := s.repo.Create(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to create snapshot: %w", err)
	}

	// The event's seating surface changed shape.
	if err := s.cacheSvc.Delete(ctx, constants.BuildSeatingKey(eventID.String())); err != nil {
		log.Printf("Warning: failed to invalidate seating cache: %v", err)
	}
	return snapshot, nil
}

func (s *service) invalidateLayoutCaches(ctx context.Context, id string) {
	if err := s.cacheSvc.Delete(ctx, constants.BuildLayoutKey(id)); err != nil {
		log.Printf("Warning: failed to invalidate layout cache: %v", err)
	}
	if err := s.cacheSvc.Delete(ctx, constants.CACHE_KEY_LAYOUT_DEFAULT); err != nil {
		log.Printf("Warning: failed to invalidate default layout cache: %v", err)
	}
	if err := s.cacheSvc.Delete(ctx, constants.CACHE_KEY_LAYOUT_LIST); err != nil {
		log.Printf("Warning: failed to invalidate layout list cache: %v", err)
	}
	// Seating surfaces embed the layout, so drop them wholesale.
	if err := s.cacheSvc.DeletePattern(ctx, constants.CACHE_KEY_SEATING+"*"); err != nil {
		log.Printf("Warning: failed to invalidate seating caches: %v", err)
	}
}

// Error definitions
var (
	ErrLayoutNotFound  = fmt.Errorf("layout not found")
	ErrNoDefaultLayout = fmt.Errorf("no default layout configured")
)
