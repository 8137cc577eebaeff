package requests

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filters narrows admin request listings.
type Filters struct {
	EventID string        `form:"event_id" binding:"omitempty,uuid"`
	Status  RequestStatus `form:"status" binding:"omitempty,oneof=PENDING APPROVED DENIED"`
}

// Repository interface for seat request persistence
type Repository interface {
	Create(ctx context.Context, request *SeatRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*SeatRequest, error)
	List(ctx context.Context, filters Filters) ([]SeatRequest, error)

	// GetByEventAndStatus returns all requests of one event in one state,
	// locking the rows when called inside a transaction with forUpdate.
	GetByEventAndStatus(ctx context.Context, eventID uuid.UUID, status RequestStatus, forUpdate bool) ([]SeatRequest, error)

	// LockEvent takes a per-event advisory lock for the duration of the
	// enclosing transaction. Row locks alone cannot exclude requests that
	// become approved inside a concurrent transaction, so every write that
	// validates seat conflicts must serialize on this lock first.
	LockEvent(ctx context.Context, eventID uuid.UUID) error

	UpdateDecision(ctx context.Context, id uuid.UUID, status RequestStatus, decidedBy string, decidedAt time.Time) error

	// Transaction runs fn against a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(txRepo Repository) error) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository creates a new seat request repository
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, request *SeatRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*SeatRequest, error) {
	var request SeatRequest
	err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) List(ctx context.Context, filters Filters) ([]SeatRequest, error) {
	query := r.db.WithContext(ctx).Model(&SeatRequest{})

	if filters.EventID != "" {
		query = query.Where("event_id = ?", filters.EventID)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	var requests []SeatRequest
	err := query.Order("created_at DESC").Find(&requests).Error
	return requests, err
}

func (r *repository) GetByEventAndStatus(ctx context.Context, eventID uuid.UUID, status RequestStatus, forUpdate bool) ([]SeatRequest, error) {
	query := r.db.WithContext(ctx).
		Where("event_id = ? AND status = ?", eventID, status)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var requests []SeatRequest
	err := query.Find(&requests).Error
	return requests, err
}

func (r *repository) LockEvent(ctx context.Context, eventID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", eventID.String()).Error
}

func (r *repository) UpdateDecision(ctx context.Context, id uuid.UUID, status RequestStatus, decidedBy string, decidedAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&SeatRequest{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"decided_by": decidedBy,
			"decided_at": decidedAt,
		}).Error
}

func (r *repository) Transaction(ctx context.Context, fn func(txRepo Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&repository{db: tx})
	})
}
