package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatusPriority(t *testing.T) {
	reserved := NewSeatSet("Main Floor-A-1")
	selected := NewSeatSet("Main Floor-A-1")

	// Reserved wins over a stale local selection, never the other way round.
	status := ResolveStatus("Main Floor-A-1", reserved, nil, nil, selected)
	assert.Equal(t, StatusReserved, status)

	// Hold beats pending, pending beats selected.
	both := NewSeatSet("Main Floor-A-2")
	assert.Equal(t, StatusHold, ResolveStatus("Main Floor-A-2", nil, both, both, both))
	assert.Equal(t, StatusPending, ResolveStatus("Main Floor-A-2", nil, both, nil, both))
	assert.Equal(t, StatusSelected, ResolveStatus("Main Floor-A-2", nil, nil, nil, both))
}

func TestResolveStatusUnknownSeatFailsOpen(t *testing.T) {
	// A seat id the server has never heard of must render as available,
	// not crash or block.
	status := ResolveStatus("Nowhere-Z-99", NewSeatSet("Main Floor-A-1"), nil, nil, nil)
	assert.Equal(t, StatusAvailable, status)

	assert.Equal(t, StatusAvailable, ResolveStatus("any", nil, nil, nil, nil))
}

func TestIsInteractable(t *testing.T) {
	assert.True(t, IsInteractable(StatusAvailable))
	assert.True(t, IsInteractable(StatusSelected))
	assert.False(t, IsInteractable(StatusReserved))
	assert.False(t, IsInteractable(StatusPending))
	assert.False(t, IsInteractable(StatusHold))
}

func TestFilterUnavailableDropsTakenSeats(t *testing.T) {
	selection := []string{"Main Floor-A-1", "Main Floor-A-2"}
	reserved := NewSeatSet("Main Floor-A-2")

	filtered := FilterUnavailable(selection, reserved, nil, nil)
	assert.Equal(t, []string{"Main Floor-A-1"}, filtered)
}

func TestFilterUnavailableIdempotent(t *testing.T) {
	selection := []string{"s1", "s2", "s3", "s4"}
	reserved := NewSeatSet("s2")
	pending := NewSeatSet("s3")
	hold := NewSeatSet("s4")

	once := FilterUnavailable(selection, reserved, pending, hold)
	twice := FilterUnavailable(once, reserved, pending, hold)
	assert.Equal(t, once, twice)
	assert.Equal(t, []string{"s1"}, once)
}

func TestFilterUnavailablePreservesOrder(t *testing.T) {
	selection := []string{"c", "a", "b"}
	filtered := FilterUnavailable(selection, nil, nil, nil)
	assert.Equal(t, []string{"c", "a", "b"}, filtered)
}

func TestDisableReasonFor(t *testing.T) {
	reserved := NewSeatSet("Main Floor-A-1")
	pending := NewSeatSet("Main Floor-A-2")
	hold := NewSeatSet("Main Floor-A-3")

	assert.Equal(t, ReasonReserved, DisableReasonFor("Main Floor-A-1", reserved, pending, hold))
	assert.Equal(t, ReasonPending, DisableReasonFor("Main Floor-A-2", reserved, pending, hold))
	assert.Equal(t, ReasonHold, DisableReasonFor("Main Floor-A-3", reserved, pending, hold))
	assert.Equal(t, ReasonNone, DisableReasonFor("Main Floor-A-4", reserved, pending, hold))
}
