package requests

import (
	"context"
	"testing"
	"time"

	"stagedoor/internal/availability"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictingSeatsReportsExactSubset(t *testing.T) {
	taken := availability.NewSeatSet("Main Floor-A-2", "Main Floor-A-5", "Bar-B-1")

	conflicts := ConflictingSeats(
		[]string{"Main Floor-A-1", "Main Floor-A-2", "Main Floor-A-5", "Main Floor-A-6"},
		taken,
	)
	assert.Equal(t, []string{"Main Floor-A-2", "Main Floor-A-5"}, conflicts)
}

func TestConflictingSeatsEmptyWhenAllFree(t *testing.T) {
	conflicts := ConflictingSeats([]string{"Main Floor-A-1"}, availability.NewSeatSet())
	assert.Empty(t, conflicts)
}

func TestDedupePreservesOrder(t *testing.T) {
	out := dedupe([]string{"a", "b", "a", "c", "b"})
	assert.Equal(t, []string{"a", "b", "c"}, out)
}

func TestStatusTransitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.True(t, StatusPending.CanTransitionTo(StatusDenied))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))

	// Decided requests are immutable
	assert.False(t, StatusApproved.CanTransitionTo(StatusDenied))
	assert.False(t, StatusDenied.CanTransitionTo(StatusApproved))
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusDenied.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
}

func TestSeatRequestSeatRoundTrip(t *testing.T) {
	var r SeatRequest
	require.NoError(t, r.SetSeats([]string{"Main Floor-A-1", "Main Floor-A-2"}))

	seats, err := r.Seats()
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Floor-A-1", "Main Floor-A-2"}, seats)
}

func TestSeatSetOfUnionsRows(t *testing.T) {
	var a, b SeatRequest
	require.NoError(t, a.SetSeats([]string{"X-1-1", "X-1-2"}))
	require.NoError(t, b.SetSeats([]string{"X-1-2", "X-1-3"}))

	set, err := seatSetOf([]SeatRequest{a, b})
	require.NoError(t, err)
	assert.True(t, set.Has("X-1-1"))
	assert.True(t, set.Has("X-1-2"))
	assert.True(t, set.Has("X-1-3"))
	assert.False(t, set.Has("X-1-4"))
}

func TestPhonePattern(t *testing.T) {
	valid := []string{
		"+1 555 867 5309",
		"5558675309",
		"+44 (0) 20-7946-0958",
		"020 7946 0958",
	}
	for _, p := range valid {
		assert.True(t, phonePattern.MatchString(p), "expected %q to be valid", p)
	}

	invalid := []string{
		"",
		"call me",
		"12345",
		"+",
		"phone: 5551234567",
	}
	for _, p := range invalid {
		assert.False(t, phonePattern.MatchString(p), "expected %q to be invalid", p)
	}
}

func TestHoldConflictErrorMessage(t *testing.T) {
	err := &HoldConflictError{Seats: []string{"Main Floor-A-1", "Main Floor-A-2"}}
	assert.Contains(t, err.Error(), "Main Floor-A-1")

	cerr := &ConflictError{Seats: []string{"Bar-B-3"}}
	assert.Contains(t, cerr.Error(), "Bar-B-3")
}

// stubRepository records the order of repository calls so tests can assert
// that conflict validation happens only after the event lock is taken.
type stubRepository struct {
	ops     []string
	request *SeatRequest
	rows    map[RequestStatus][]SeatRequest

	// statusAfterLock simulates a concurrent admin: the re-read after
	// LockEvent sees the request in this state instead of its original one.
	statusAfterLock RequestStatus
	reads           int
}

func (r *stubRepository) Create(ctx context.Context, request *SeatRequest) error {
	r.ops = append(r.ops, "create")
	return nil
}

func (r *stubRepository) GetByID(ctx context.Context, id uuid.UUID) (*SeatRequest, error) {
	r.ops = append(r.ops, "get")
	r.reads++
	if r.statusAfterLock != "" && r.reads > 1 {
		r.request.Status = r.statusAfterLock
	}
	return r.request, nil
}

func (r *stubRepository) List(ctx context.Context, filters Filters) ([]SeatRequest, error) {
	return nil, nil
}

func (r *stubRepository) GetByEventAndStatus(ctx context.Context, eventID uuid.UUID, status RequestStatus, forUpdate bool) ([]SeatRequest, error) {
	r.ops = append(r.ops, "read "+string(status))
	return r.rows[status], nil
}

func (r *stubRepository) LockEvent(ctx context.Context, eventID uuid.UUID) error {
	r.ops = append(r.ops, "lock")
	return nil
}

func (r *stubRepository) UpdateDecision(ctx context.Context, id uuid.UUID, status RequestStatus, decidedBy string, decidedAt time.Time) error {
	r.ops = append(r.ops, "decide")
	return nil
}

func (r *stubRepository) Transaction(ctx context.Context, fn func(txRepo Repository) error) error {
	return fn(r)
}

type stubCache struct{}

func (stubCache) Get(ctx context.Context, key string, dest interface{}) error { return nil }
func (stubCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (stubCache) Delete(ctx context.Context, key string) error            { return nil }
func (stubCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (stubCache) Exists(ctx context.Context, key string) bool             { return false }
func (stubCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	return nil
}
func (stubCache) Ping(ctx context.Context) error { return nil }

func stubService(repo *stubRepository) Service {
	return NewService(repo, NewAtomicRedisOperations(nil), nil, stubCache{}, time.Minute)
}

func approvedRow(t *testing.T, eventID uuid.UUID, seats ...string) SeatRequest {
	t.Helper()
	row := SeatRequest{ID: uuid.New(), EventID: eventID, Status: StatusApproved}
	require.NoError(t, row.SetSeats(seats))
	return row
}

func TestSubmitRequestLocksEventBeforeValidation(t *testing.T) {
	repo := &stubRepository{}
	svc := stubService(repo)
	eventID := uuid.New()

	resp, err := svc.SubmitRequest(context.Background(), SubmitRequestRequest{
		EventID:       eventID.String(),
		CustomerName:  "Dana Whitfield",
		Contact:       Contact{Email: "dana@example.com", Phone: "+1 555 867 5309"},
		SelectedSeats: []string{"Main Floor-A-1", "Main Floor-A-2"},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusPending, resp.Status)

	// The advisory lock must come first: two concurrent submissions of the
	// same seat each read a snapshot that misses the other's uncommitted
	// row, so validation is only sound once the event is serialized.
	assert.Equal(t, []string{"lock", "read APPROVED", "read PENDING", "create"}, repo.ops)
}

func TestSubmitRequestConflictRollsBack(t *testing.T) {
	eventID := uuid.New()
	repo := &stubRepository{rows: map[RequestStatus][]SeatRequest{
		StatusApproved: {approvedRow(t, eventID, "Main Floor-A-1")},
	}}
	svc := stubService(repo)

	_, err := svc.SubmitRequest(context.Background(), SubmitRequestRequest{
		EventID:       eventID.String(),
		CustomerName:  "Dana Whitfield",
		Contact:       Contact{Phone: "+1 555 867 5309"},
		SelectedSeats: []string{"Main Floor-A-1", "Main Floor-A-3"},
	})

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"Main Floor-A-1"}, conflict.Seats)
	assert.NotContains(t, repo.ops, "create")
}

func TestApproveRequestLocksEventBeforeRecheck(t *testing.T) {
	eventID := uuid.New()
	request := SeatRequest{ID: uuid.New(), EventID: eventID, Status: StatusPending}
	require.NoError(t, request.SetSeats([]string{"Main Floor-A-1"}))
	repo := &stubRepository{request: &request}
	svc := stubService(repo)

	resp, err := svc.ApproveRequest(context.Background(), request.ID.String(), "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, resp.Status)
	assert.Equal(t, "admin@example.com", resp.DecidedBy)

	// Lock, then re-read the request, then re-check conflicts. The re-read
	// catches a decision committed while this transaction waited on the lock.
	assert.Equal(t, []string{"get", "lock", "get", "read APPROVED", "decide"}, repo.ops)
}

func TestApproveRequestDecidedWhileWaitingOnLock(t *testing.T) {
	eventID := uuid.New()
	request := SeatRequest{ID: uuid.New(), EventID: eventID, Status: StatusPending}
	require.NoError(t, request.SetSeats([]string{"Main Floor-A-1"}))
	repo := &stubRepository{request: &request, statusAfterLock: StatusApproved}
	svc := stubService(repo)

	_, err := svc.ApproveRequest(context.Background(), request.ID.String(), "admin@example.com")
	require.ErrorIs(t, err, ErrAlreadyDecided)
	assert.NotContains(t, repo.ops, "decide")
}

func TestApproveRequestConflictWithExistingApproval(t *testing.T) {
	eventID := uuid.New()
	request := SeatRequest{ID: uuid.New(), EventID: eventID, Status: StatusPending}
	require.NoError(t, request.SetSeats([]string{"Main Floor-A-1", "Main Floor-A-2"}))
	repo := &stubRepository{
		request: &request,
		rows: map[RequestStatus][]SeatRequest{
			StatusApproved: {approvedRow(t, eventID, "Main Floor-A-2", "Bar-B-1")},
		},
	}
	svc := stubService(repo)

	_, err := svc.ApproveRequest(context.Background(), request.ID.String(), "admin@example.com")

	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []string{"Main Floor-A-2"}, conflict.Seats)
	assert.NotContains(t, repo.ops, "decide")
}
