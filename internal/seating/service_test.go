package seating

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"stagedoor/internal/availability"
	"stagedoor/internal/events"
	"stagedoor/internal/geometry"
	"stagedoor/internal/layouts"
	"stagedoor/internal/requests"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubEventRepo struct {
	event *events.Event
}

func (r *stubEventRepo) Create(ctx context.Context, event *events.Event) error { return nil }
func (r *stubEventRepo) GetByID(ctx context.Context, id uuid.UUID) (*events.Event, error) {
	if r.event == nil || r.event.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return r.event, nil
}
func (r *stubEventRepo) List(ctx context.Context) ([]events.Event, error) { return nil, nil }
func (r *stubEventRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}
func (r *stubEventRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type stubLayoutRepo struct {
	defaultLayout *layouts.SeatingLayout
}

func (r *stubLayoutRepo) Create(ctx context.Context, layout *layouts.SeatingLayout) error {
	return nil
}
func (r *stubLayoutRepo) GetByID(ctx context.Context, id uuid.UUID) (*layouts.SeatingLayout, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubLayoutRepo) GetByName(ctx context.Context, name string) (*layouts.SeatingLayout, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubLayoutRepo) GetDefault(ctx context.Context) (*layouts.SeatingLayout, error) {
	if r.defaultLayout == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return r.defaultLayout, nil
}
func (r *stubLayoutRepo) GetByEventID(ctx context.Context, eventID uuid.UUID) (*layouts.SeatingLayout, error) {
	return nil, gorm.ErrRecordNotFound
}
func (r *stubLayoutRepo) List(ctx context.Context) ([]layouts.SeatingLayout, error) {
	return nil, nil
}
func (r *stubLayoutRepo) Save(ctx context.Context, layout *layouts.SeatingLayout) error { return nil }
func (r *stubLayoutRepo) Delete(ctx context.Context, id uuid.UUID) error                { return nil }
func (r *stubLayoutRepo) SetDefault(ctx context.Context, id uuid.UUID) error            { return nil }

type stubRequestsSvc struct {
	sets requests.AvailabilitySets
}

func (s *stubRequestsSvc) SubmitRequest(ctx context.Context, req requests.SubmitRequestRequest) (*requests.SeatRequestResponse, error) {
	return nil, nil
}
func (s *stubRequestsSvc) PlaceHold(ctx context.Context, req requests.PlaceHoldRequest) (*requests.HoldResponse, error) {
	return nil, nil
}
func (s *stubRequestsSvc) ReleaseHold(ctx context.Context, holdID string) error { return nil }
func (s *stubRequestsSvc) GetHold(ctx context.Context, holdID string) (*requests.HoldResponse, error) {
	return nil, nil
}
func (s *stubRequestsSvc) GetRequest(ctx context.Context, id string) (*requests.SeatRequestResponse, error) {
	return nil, nil
}
func (s *stubRequestsSvc) ListRequests(ctx context.Context, filters requests.Filters) ([]requests.SeatRequestResponse, error) {
	return nil, nil
}
func (s *stubRequestsSvc) ApproveRequest(ctx context.Context, id, decidedBy string) (*requests.SeatRequestResponse, error) {
	return nil, nil
}
func (s *stubRequestsSvc) DenyRequest(ctx context.Context, id, decidedBy string) (*requests.SeatRequestResponse, error) {
	return nil, nil
}
func (s *stubRequestsSvc) AvailabilitySets(ctx context.Context, eventID uuid.UUID) (*requests.AvailabilitySets, error) {
	sets := s.sets
	return &sets, nil
}

// passthroughCache always misses and relays the fetcher's value, the same
// round trip the real cache service does on a cold key.
type passthroughCache struct{}

func (passthroughCache) Get(ctx context.Context, key string, dest interface{}) error { return nil }
func (passthroughCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}
func (passthroughCache) Delete(ctx context.Context, key string) error            { return nil }
func (passthroughCache) DeletePattern(ctx context.Context, pattern string) error { return nil }
func (passthroughCache) Exists(ctx context.Context, key string) bool             { return false }
func (passthroughCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	value, err := fetcher()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}
func (passthroughCache) Ping(ctx context.Context) error { return nil }

func seatingFixture(t *testing.T, sets requests.AvailabilitySets) (Service, *events.Event) {
	t.Helper()

	x, y := 50.0, 50.0
	doc := &layouts.Document{
		Elements: []geometry.LayoutElement{{
			ID:          "t1",
			ElementType: geometry.ElementTable,
			SectionName: "Main Floor",
			RowLabel:    "A",
			TableShape:  geometry.ShapeTable6,
			TotalSeats:  6,
			PosX:        &x,
			PosY:        &y,
			Width:       150,
			Height:      60,
		}},
		Canvas: layouts.CanvasSettings{Width: 1200, Height: 800},
	}
	layout := &layouts.SeatingLayout{ID: uuid.New(), Name: "Main Hall", IsDefault: true}
	require.NoError(t, layout.Encode(doc))

	event := &events.Event{ID: uuid.New(), Name: "Friday Jazz Quartet", SeatingEnabled: true}

	svc := NewService(
		&stubEventRepo{event: event},
		&stubLayoutRepo{defaultLayout: layout},
		&stubRequestsSvc{sets: sets},
		passthroughCache{},
	)
	return svc, event
}

func TestGetEventSeatingViewCorrectsStaleSelection(t *testing.T) {
	svc, event := seatingFixture(t, requests.AvailabilitySets{
		Reserved: []string{"Main Floor-A-2"},
		Pending:  []string{"Main Floor-A-3"},
		Holds:    []string{"Main Floor-A-4"},
	})

	resp, err := svc.GetEventSeatingView(context.Background(), event.ID.String(), ViewOptions{
		Interactive: true,
		Selected:    []string{"Main Floor-A-1", "Main Floor-A-2", "Main Floor-A-3", "Main Floor-A-4"},
	})
	require.NoError(t, err)

	// Every seat taken since the guest picked it drops out; the survivor
	// keeps its place and its selected status in the render.
	assert.Equal(t, []string{"Main Floor-A-1"}, resp.SelectedSeats)

	require.Len(t, resp.Elements, 1)
	seats := resp.Elements[0].Seats
	require.Len(t, seats, 6)
	assert.Equal(t, availability.StatusSelected, seats[0].Status)
	assert.Equal(t, availability.StatusReserved, seats[1].Status)
}

func TestGetEventSeatingViewKeepsFreshSelection(t *testing.T) {
	svc, event := seatingFixture(t, requests.AvailabilitySets{})

	resp, err := svc.GetEventSeatingView(context.Background(), event.ID.String(), ViewOptions{
		Selected: []string{"Main Floor-A-5", "Main Floor-A-6"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Main Floor-A-5", "Main Floor-A-6"}, resp.SelectedSeats)
}

func TestGetEventSeatingViewUnknownEvent(t *testing.T) {
	svc, _ := seatingFixture(t, requests.AvailabilitySets{})

	_, err := svc.GetEventSeatingView(context.Background(), uuid.New().String(), ViewOptions{})
	assert.ErrorIs(t, err, ErrEventNotFound)
}
