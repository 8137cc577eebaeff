package constants

import "time"

// Redis Cache Configuration
// This file centralizes all Redis cache keys and TTL values for the Stagedoor backend
// Pattern: stagedoor:{module}:{operation}:{identifier}

// ================== CACHE TTL DURATIONS ==================

// Layout documents change only on explicit admin saves.
const (
	TTL_LAYOUT          = 4 * time.Hour
	TTL_LAYOUT_DEFAULT  = 4 * time.Hour
	TTL_EVENT_DETAIL    = 1 * time.Hour
	TTL_SEATING_SURFACE = 2 * time.Minute
)

// Availability sets are real-time sensitive.
const (
	TTL_AVAILABILITY = 30 * time.Second
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "stagedoor"
)

// Layout cache keys
const (
	CACHE_KEY_LAYOUT         = CACHE_PREFIX + ":layouts:detail:uuid:" // + layout-id
	CACHE_KEY_LAYOUT_DEFAULT = CACHE_PREFIX + ":layouts:default"
	CACHE_KEY_LAYOUT_LIST    = CACHE_PREFIX + ":layouts:list"
)

// Event cache keys
const (
	CACHE_KEY_EVENT_DETAIL = CACHE_PREFIX + ":events:detail:uuid:" // + event-id
)

// Seating surface cache keys (layout + availability per event)
const (
	CACHE_KEY_SEATING      = CACHE_PREFIX + ":seating:event:"      // + event-id
	CACHE_KEY_AVAILABILITY = CACHE_PREFIX + ":availability:event:" // + event-id
)

// Hold key prefixes. These are not cache entries: they are the authoritative
// short-lived seat locks written by the Lua scripts.
const (
	HOLD_KEY_SEAT       = CACHE_PREFIX + ":seat_hold:"   // + event-id + ":" + seat-id
	HOLD_KEY_HOLD       = CACHE_PREFIX + ":hold:"        // + hold-id
	HOLD_KEY_HOLD_SEATS = CACHE_PREFIX + ":hold_seats:"  // + hold-id
	HOLD_KEY_EVENT_SET  = CACHE_PREFIX + ":event_holds:" // + event-id
)

// BuildLayoutKey builds the cache key for one layout document
func BuildLayoutKey(layoutID string) string {
	return CACHE_KEY_LAYOUT + layoutID
}

// BuildSeatingKey builds the cache key for an event's seating surface
func BuildSeatingKey(eventID string) string {
	return CACHE_KEY_SEATING + eventID
}

// BuildAvailabilityKey builds the cache key for an event's availability sets
func BuildAvailabilityKey(eventID string) string {
	return CACHE_KEY_AVAILABILITY + eventID
}
