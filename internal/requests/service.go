package requests

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"stagedoor/internal/availability"
	"stagedoor/internal/notifications"
	"stagedoor/internal/shared/constants"
	"stagedoor/pkg/cache"
	"stagedoor/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	// Guest surface
	SubmitRequest(ctx context.Context, req SubmitRequestRequest) (*SeatRequestResponse, error)
	PlaceHold(ctx context.Context, req PlaceHoldRequest) (*HoldResponse, error)
	ReleaseHold(ctx context.Context, holdID string) error
	GetHold(ctx context.Context, holdID string) (*HoldResponse, error)

	// Admin surface
	GetRequest(ctx context.Context, id string) (*SeatRequestResponse, error)
	ListRequests(ctx context.Context, filters Filters) ([]SeatRequestResponse, error)
	ApproveRequest(ctx context.Context, id, decidedBy string) (*SeatRequestResponse, error)
	DenyRequest(ctx context.Context, id, decidedBy string) (*SeatRequestResponse, error)

	// AvailabilitySets assembles the three seat-id sets for one event:
	// reserved from approved requests, pending from pending requests,
	// holds from the live Redis index.
	AvailabilitySets(ctx context.Context, eventID uuid.UUID) (*AvailabilitySets, error)
}

type service struct {
	repo     Repository
	atomic   *AtomicRedisOperations
	producer notifications.Producer
	cacheSvc cache.Service
	holdTTL  time.Duration
	log      *logger.Logger
}

func NewService(repo Repository, atomic *AtomicRedisOperations, producer notifications.Producer, cacheSvc cache.Service, holdTTL time.Duration) Service {
	return &service{
		repo:     repo,
		atomic:   atomic,
		producer: producer,
		cacheSvc: cacheSvc,
		holdTTL:  holdTTL,
		log:      logger.GetDefault(),
	}
}

// Error definitions
var (
	ErrRequestNotFound = fmt.Errorf("seat request not found")
	ErrHoldNotFound    = fmt.Errorf("hold not found")
	ErrAlreadyDecided  = fmt.Errorf("request already decided")
)

// ConflictError reports exactly which requested seats were unavailable.
// The whole operation fails: no partial success.
type ConflictError struct {
	Seats []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("seats unavailable: %s", strings.Join(e.Seats, ", "))
}

// ConflictingSeats returns the subset of selection present in taken,
// preserving selection order.
func ConflictingSeats(selection []string, taken availability.SeatSet) []string {
	conflicts := make([]string, 0)
	for _, id := range selection {
		if taken.Has(id) {
			conflicts = append(conflicts, id)
		}
	}
	return conflicts
}

// dedupe drops repeated seat ids while preserving first-seen order.
func dedupe(seats []string) []string {
	seen := make(map[string]struct{}, len(seats))
	out := make([]string, 0, len(seats))
	for _, id := range seats {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// SubmitRequest validates the guest's selection against every seat already
// reserved, pending, or held by someone else, inside one transaction. Any
// conflict fails the whole submission and names the conflicting seats.
func (s *service) SubmitRequest(ctx context.Context, req SubmitRequestRequest) (*SeatRequestResponse, error) {
	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, fmt.Errorf("invalid event ID: %w", err)
	}

	selected := dedupe(req.SelectedSeats)
	if len(selected) == 0 {
		return nil, fmt.Errorf("at least one seat must be selected")
	}

	// Foreign holds: live holds minus the guest's own. Redis being down
	// must not block submissions; the transaction still guards against
	// double-booking via the request rows.
	foreignHolds := availability.SeatSet{}
	if held, err := s.atomic.HeldSeats(ctx, req.EventID); err == nil {
		foreignHolds = availability.NewSeatSet(held...)
		if req.HoldID != "" {
			if own, err := s.atomic.GetHold(ctx, req.HoldID); err == nil && own != nil && own.EventID == req.EventID {
				for _, seat := range own.SeatIDs {
					delete(foreignHolds, seat)
				}
			}
		}
	} else {
		log.Printf("Warning: failed to read holds, validating against requests only: %v", err)
	}

	request := &SeatRequest{
		ID:              uuid.New(),
		EventID:         eventID,
		CustomerName:    req.CustomerName,
		Email:           req.Contact.Email,
		Phone:           req.Contact.Phone,
		SpecialRequests: req.SpecialRequests,
		Status:          StatusPending,
	}
	if err := request.SetSeats(selected); err != nil {
		return nil, err
	}

	err = s.repo.Transaction(ctx, func(txRepo Repository) error {
		// Serialize all conflict-validating writes for this event. Without
		// the advisory lock two concurrent submissions of the same seat each
		// lock a snapshot that misses the other's uncommitted row.
		if err := txRepo.LockEvent(ctx, eventID); err != nil {
			return fmt.Errorf("failed to lock event: %w", err)
		}

		taken, err := takenSeats(ctx, txRepo, eventID, true)
		if err != nil {
			return err
		}
		for seat := range foreignHolds {
			taken[seat] = struct{}{}
		}

		if conflicts := ConflictingSeats(selected, taken); len(conflicts) > 0 {
			return &ConflictError{Seats: conflicts}
		}

		return txRepo.Create(ctx, request)
	})
	if err != nil {
		return nil, err
	}

	// The seats are now protected by the pending row; the guest's hold has
	// done its job.
	if req.HoldID != "" {
		if _, err := s.atomic.AtomicReleaseHold(ctx, req.HoldID); err != nil {
			log.Printf("Warning: failed to release hold %s after submission: %v", req.HoldID, err)
		}
	}

	s.invalidateAvailability(ctx, req.EventID)
	s.log.LogSeatRequestSubmitted(ctx, request.ID.String(), req.EventID, len(selected))
	s.publish(ctx, notifications.TypeRequestSubmitted, request, selected)

	return request.ToResponse()
}

func (s *service) GetRequest(ctx context.Context, id string) (*SeatRequestResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid request ID: %w", err)
	}

	request, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return request.ToResponse()
}

func (s *service) ListRequests(ctx context.Context, filters Filters) ([]SeatRequestResponse, error) {
	rows, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	responses := make([]SeatRequestResponse, 0, len(rows))
	for i := range rows {
		resp, err := rows[i].ToResponse()
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}

// ApproveRequest re-checks the request's seats against every other approved
// request for the event inside the transaction, so two admins approving
// overlapping requests cannot both succeed.
func (s *service) ApproveRequest(ctx context.Context, id, decidedBy string) (*SeatRequestResponse, error) {
	return s.decide(ctx, id, decidedBy, StatusApproved)
}

func (s *service) DenyRequest(ctx context.Context, id, decidedBy string) (*SeatRequestResponse, error) {
	return s.decide(ctx, id, decidedBy, StatusDenied)
}

func (s *service) decide(ctx context.Context, id, decidedBy string, target RequestStatus) (*SeatRequestResponse, error) {
	requestID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid request ID: %w", err)
	}

	var request *SeatRequest
	err = s.repo.Transaction(ctx, func(txRepo Repository) error {
		request, err = txRepo.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("failed to get request: %w", err)
		}

		// Two admins approving overlapping requests must not both pass the
		// re-check: each one's new approval is invisible to the other's
		// FOR UPDATE read until commit, so decisions serialize per event.
		if err := txRepo.LockEvent(ctx, request.EventID); err != nil {
			return fmt.Errorf("failed to lock event: %w", err)
		}

		// Re-read after the lock: the request may have been decided while
		// this transaction waited.
		request, err = txRepo.GetByID(ctx, requestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRequestNotFound
			}
			return fmt.Errorf("failed to get request: %w", err)
		}

		if !request.Status.CanTransitionTo(target) {
			return ErrAlreadyDecided
		}

		if target == StatusApproved {
			seats, err := request.Seats()
			if err != nil {
				return err
			}

			approved, err := txRepo.GetByEventAndStatus(ctx, request.EventID, StatusApproved, true)
			if err != nil {
				return fmt.Errorf("failed to get approved requests: %w", err)
			}
			reserved, err := seatSetOf(approved)
			if err != nil {
				return err
			}

			if conflicts := ConflictingSeats(seats, reserved); len(conflicts) > 0 {
				return &ConflictError{Seats: conflicts}
			}
		}

		now := time.Now().UTC()
		if err := txRepo.UpdateDecision(ctx, requestID, target, decidedBy, now); err != nil {
			return fmt.Errorf("failed to update request: %w", err)
		}
		request.Status = target
		request.DecidedBy = decidedBy
		request.DecidedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	seats, _ := request.Seats()
	s.invalidateAvailability(ctx, request.EventID.String())
	s.log.LogSeatRequestDecided(ctx, id, request.EventID.String(), string(target))
	s.publish(ctx, notifications.TypeRequestDecided, request, seats)

	return request.ToResponse()
}

func (s *service) AvailabilitySets(ctx context.Context, eventID uuid.UUID) (*AvailabilitySets, error) {
	approved, err := s.repo.GetByEventAndStatus(ctx, eventID, StatusApproved, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved requests: %w", err)
	}
	pending, err := s.repo.GetByEventAndStatus(ctx, eventID, StatusPending, false)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending requests: %w", err)
	}

	reservedSet, err := seatSetOf(approved)
	if err != nil {
		return nil, err
	}
	pendingSet, err := seatSetOf(pending)
	if err != nil {
		return nil, err
	}

	// Holds fail open: an unreachable Redis renders seats clickable, and
	// the submit transaction still catches real conflicts.
	holds, err := s.atomic.HeldSeats(ctx, eventID.String())
	if err != nil {
		log.Printf("Warning: failed to read holds for event %s: %v", eventID, err)
		holds = []string{}
	}

	return &AvailabilitySets{
		Reserved: reservedSet.IDs(),
		Pending:  pendingSet.IDs(),
		Holds:    holds,
	}, nil
}

func (s *service) PlaceHold(ctx context.Context, req PlaceHoldRequest) (*HoldResponse, error) {
	seats := dedupe(req.SeatIDs)
	holdID := uuid.New().String()

	if err := s.atomic.AtomicHoldSeats(ctx, holdID, req.EventID, seats, s.holdTTL); err != nil {
		return nil, err
	}

	s.invalidateAvailability(ctx, req.EventID)
	s.log.LogSeatHoldPlaced(ctx, holdID, req.EventID, len(seats))

	return &HoldResponse{
		HoldID:    holdID,
		EventID:   req.EventID,
		SeatIDs:   seats,
		ExpiresAt: time.Now().Add(s.holdTTL),
	}, nil
}

func (s *service) ReleaseHold(ctx context.Context, holdID string) error {
	hold, err := s.atomic.GetHold(ctx, holdID)
	if err != nil {
		return err
	}
	if hold == nil {
		return ErrHoldNotFound
	}

	if _, err := s.atomic.AtomicReleaseHold(ctx, holdID); err != nil {
		return err
	}

	s.invalidateAvailability(ctx, hold.EventID)
	s.log.LogSeatHoldReleased(ctx, holdID, hold.EventID)
	return nil
}

func (s *service) GetHold(ctx context.Context, holdID string) (*HoldResponse, error) {
	hold, err := s.atomic.GetHold(ctx, holdID)
	if err != nil {
		return nil, err
	}
	if hold == nil {
		return nil, ErrHoldNotFound
	}

	return &HoldResponse{
		HoldID:    hold.HoldID,
		EventID:   hold.EventID,
		SeatIDs:   hold.SeatIDs,
		ExpiresAt: hold.ExpiresAt,
	}, nil
}

// takenSeats unions the seats of approved and pending requests for an event.
func takenSeats(ctx context.Context, repo Repository, eventID uuid.UUID, forUpdate bool) (availability.SeatSet, error) {
	taken := availability.SeatSet{}
	for _, status := range []RequestStatus{StatusApproved, StatusPending} {
		rows, err := repo.GetByEventAndStatus(ctx, eventID, status, forUpdate)
		if err != nil {
			return nil, fmt.Errorf("failed to get %s requests: %w", status, err)
		}
		set, err := seatSetOf(rows)
		if err != nil {
			return nil, err
		}
		for seat := range set {
			taken[seat] = struct{}{}
		}
	}
	return taken, nil
}

func seatSetOf(rows []SeatRequest) (availability.SeatSet, error) {
	set := availability.SeatSet{}
	for i := range rows {
		seats, err := rows[i].Seats()
		if err != nil {
			return nil, err
		}
		for _, seat := range seats {
			set[seat] = struct{}{}
		}
	}
	return set, nil
}

func (s *service) invalidateAvailability(ctx context.Context, eventID string) {
	if err := s.cacheSvc.Delete(ctx, constants.BuildAvailabilityKey(eventID)); err != nil {
		log.Printf("Warning: failed to invalidate availability cache: %v", err)
	}
}

func (s *service) publish(ctx context.Context, eventType string, request *SeatRequest, seats []string) {
	if s.producer == nil {
		return
	}
	msg := notifications.RequestLifecycleMessage{
		Type:         eventType,
		RequestID:    request.ID.String(),
		EventID:      request.EventID.String(),
		Status:       string(request.Status),
		SeatIDs:      seats,
		CustomerName: request.CustomerName,
		OccurredAt:   time.Now().UTC(),
	}
	if err := s.producer.PublishRequestLifecycle(ctx, msg); err != nil {
		log.Printf("Warning: failed to publish %s: %v", eventType, err)
	}
}
