package layouts

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository interface for layout persistence
type Repository interface {
	Create(ctx context.Context, layout *SeatingLayout) error
	GetByID(ctx context.Context, id uuid.UUID) (*SeatingLayout, error)
	GetByName(ctx context.Context, name string) (*SeatingLayout, error)
	GetDefault(ctx context.Context) (*SeatingLayout, error)
	GetByEventID(ctx context.Context, eventID uuid.UUID) (*SeatingLayout, error)
	List(ctx context.Context) ([]SeatingLayout, error)
	Save(ctx context.Context, layout *SeatingLayout) error
	Delete(ctx context.Context, id uuid.UUID) error
	SetDefault(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new layout repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, layout *SeatingLayout) error {
	return r.db.WithContext(ctx).Create(layout).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SeatingLayout, error) {
	var layout SeatingLayout
	err := r.db.WithContext(ctx).First(&layout, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *repository) GetByName(ctx context.Context, name string) (*SeatingLayout, error) {
	var layout SeatingLayout
	err := r.db.WithContext(ctx).First(&layout, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *repository) GetDefault(ctx context.Context) (*SeatingLayout, error) {
	var layout SeatingLayout
	err := r.db.WithContext(ctx).
		Where("is_default = true AND event_id IS NULL").
		First(&layout).Error
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

func (r *repository) GetByEventID(ctx context.Context, eventID uuid.UUID) (*SeatingLayout, error) {
	var layout SeatingLayout
	err := r.db.WithContext(ctx).First(&layout, "event_id = ?", eventID).Error
	if err != nil {
		return nil, err
	}
	return &layout, nil
}

// List returns template layouts only. Event snapshots are reached through
// their event.
func (r *repository) List(ctx context.Context) ([]SeatingLayout, error) {
	var layouts []SeatingLayout
	err := r.db.WithContext(ctx).
		Where("event_id IS NULL").
		Order("created_at DESC").
		Find(&layouts).Error
	return layouts, err
}

// Save writes the full document in one statement. Either the whole layout
// row updates or nothing does.
func (r *repository) Save(ctx context.Context, layout *SeatingLayout) error {
	return r.db.WithContext(ctx).
		Model(&SeatingLayout{}).
		Where("id = ?", layout.ID).
		Updates(map[string]interface{}{
			"name":            layout.Name,
			"description":     layout.Description,
			"layout_data":     layout.LayoutData,
			"stage_position":  layout.StagePosition,
			"stage_size":      layout.StageSize,
			"canvas_settings": layout.CanvasSettings,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&SeatingLayout{}, "id = ?", id).Error
}

// SetDefault marks one template layout as the default inside a transaction
// so there is never a moment with two defaults.
func (r *repository) SetDefault(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&SeatingLayout{}).
			Where("is_default = true").
			Update("is_default", false).Error; err != nil {
			return err
		}
		result := tx.Model(&SeatingLayout{}).
			Where("id = ? AND event_id IS NULL", id).
			Update("is_default", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
