package requests

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"stagedoor/internal/shared/constants"

	"github.com/redis/go-redis/v9"
)

// AtomicRedisOperations handles atomic Redis operations for seat holding.
// Holds are keyed by derived seat-id strings scoped per event, so the same
// physical table in two different events never collides.
type AtomicRedisOperations struct {
	redis *redis.Client
}

// NewAtomicRedisOperations creates a new atomic Redis operations handler
func NewAtomicRedisOperations(redisClient *redis.Client) *AtomicRedisOperations {
	return &AtomicRedisOperations{
		redis: redisClient,
	}
}

// HoldInfo is the metadata stored with a live hold.
type HoldInfo struct {
	HoldID    string    `json:"holdId"`
	EventID   string    `json:"eventId"`
	SeatIDs   []string  `json:"seatIds"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// HoldConflictError reports every requested seat that was already held.
type HoldConflictError struct {
	Seats []string
}

func (e *HoldConflictError) Error() string {
	return fmt.Sprintf("seats already held: %v", e.Seats)
}

// Lua script for atomic seat holding - prevents race conditions.
// The event-scoped sorted set indexes held seats by expiry timestamp so the
// availability read can drop expired members without a scan. Key prefixes
// are spliced in from the shared constants so the scripts and the Go-side
// reads below cannot drift apart.
const luaAtomicSeatHold = `
-- KEYS[1] = hold_id
-- ARGV[1] = event_id
-- ARGV[2] = ttl_seconds
-- ARGV[3..N] = seat_ids

local hold_id = KEYS[1]
local event_id = ARGV[1]
local ttl = tonumber(ARGV[2])
local now = tonumber(redis.call("TIME")[1])

-- Check all seats first; collect every conflict so the caller can report
-- the full set, not just the first one.
local conflicts = {}
for i = 3, #ARGV do
    local seat_id = ARGV[i]
    local seat_hold_key = "` + constants.HOLD_KEY_SEAT + `" .. event_id .. ":" .. seat_id

    if redis.call("EXISTS", seat_hold_key) == 1 then
        table.insert(conflicts, seat_id)
    end
end

if #conflicts > 0 then
    return {0, unpack(conflicts)}
end

-- All seats are free, hold them atomically
local hold_key = "` + constants.HOLD_KEY_HOLD + `" .. hold_id
local hold_seats_key = "` + constants.HOLD_KEY_HOLD_SEATS + `" .. hold_id
local event_set_key = "` + constants.HOLD_KEY_EVENT_SET + `" .. event_id

redis.call("HMSET", hold_key,
    "event_id", event_id,
    "seat_count", #ARGV - 2,
    "created_at", now
)
redis.call("EXPIRE", hold_key, ttl)

for i = 3, #ARGV do
    local seat_id = ARGV[i]
    local seat_hold_key = "` + constants.HOLD_KEY_SEAT + `" .. event_id .. ":" .. seat_id

    redis.call("SETEX", seat_hold_key, ttl, hold_id)
    redis.call("SADD", hold_seats_key, seat_id)
    redis.call("ZADD", event_set_key, now + ttl, seat_id)
end

redis.call("EXPIRE", hold_seats_key, ttl)
redis.call("EXPIRE", event_set_key, ttl)

return {1}
`

// Lua script for atomic hold release
const luaAtomicSeatRelease = `
-- KEYS[1] = hold_id
local hold_id = KEYS[1]

local hold_key = "` + constants.HOLD_KEY_HOLD + `" .. hold_id
local hold_seats_key = "` + constants.HOLD_KEY_HOLD_SEATS + `" .. hold_id

local event_id = redis.call("HGET", hold_key, "event_id")
if not event_id then
    return {0, "hold_not_found"}
end

local event_set_key = "` + constants.HOLD_KEY_EVENT_SET + `" .. event_id
local seat_ids = redis.call("SMEMBERS", hold_seats_key)

for i = 1, #seat_ids do
    local seat_hold_key = "` + constants.HOLD_KEY_SEAT + `" .. event_id .. ":" .. seat_ids[i]
    redis.call("DEL", seat_hold_key)
    redis.call("ZREM", event_set_key, seat_ids[i])
end

redis.call("DEL", hold_key)
redis.call("DEL", hold_seats_key)

return {1, #seat_ids}
`

// AtomicHoldSeats atomically holds a set of seats for one event. On
// conflict no seat is held and the returned error names every seat that
// was already taken.
func (a *AtomicRedisOperations) AtomicHoldSeats(ctx context.Context, holdID, eventID string, seatIDs []string, ttl time.Duration) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	keys := []string{holdID}
	args := []interface{}{
		eventID,
		strconv.Itoa(int(ttl.Seconds())),
	}
	for _, seatID := range seatIDs {
		args = append(args, seatID)
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicSeatHold, keys, args...).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = a.redis.Eval(ctx, luaAtomicSeatHold, keys, args...).Result()
		if err != nil {
			return fmt.Errorf("failed to execute atomic seat hold: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) < 1 {
		return fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		conflicts := make([]string, 0, len(resultArray)-1)
		for _, v := range resultArray[1:] {
			if s, ok := v.(string); ok {
				conflicts = append(conflicts, s)
			}
		}
		return &HoldConflictError{Seats: conflicts}
	}

	return nil
}

// AtomicReleaseHold atomically releases a hold and returns how many seats
// were freed.
func (a *AtomicRedisOperations) AtomicReleaseHold(ctx context.Context, holdID string) (int, error) {
	if a.redis == nil {
		return 0, fmt.Errorf("redis client not available")
	}

	result, err := a.redis.EvalSha(ctx, luaAtomicSeatRelease, []string{holdID}).Result()
	if err != nil {
		// If script is not loaded, try to load and execute
		result, err = a.redis.Eval(ctx, luaAtomicSeatRelease, []string{holdID}).Result()
		if err != nil {
			return 0, fmt.Errorf("failed to execute atomic seat release: %w", err)
		}
	}

	resultArray, ok := result.([]interface{})
	if !ok || len(resultArray) != 2 {
		return 0, fmt.Errorf("unexpected result format from Lua script")
	}

	success, ok := resultArray[0].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid success flag in Lua script result")
	}

	if success == 0 {
		reason, ok := resultArray[1].(string)
		if ok {
			return 0, fmt.Errorf("failed to release hold: %s", reason)
		}
		return 0, fmt.Errorf("failed to release hold")
	}

	releasedCount, ok := resultArray[1].(int64)
	if !ok {
		return 0, fmt.Errorf("invalid released count in Lua script result")
	}

	return int(releasedCount), nil
}

// GetHold returns a live hold's metadata, or nil if it expired.
func (a *AtomicRedisOperations) GetHold(ctx context.Context, holdID string) (*HoldInfo, error) {
	if a.redis == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	holdKey := constants.HOLD_KEY_HOLD + holdID
	data, err := a.redis.HGetAll(ctx, holdKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get hold: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	seats, err := a.redis.SMembers(ctx, constants.HOLD_KEY_HOLD_SEATS+holdID).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get hold seats: %w", err)
	}

	ttl, err := a.redis.TTL(ctx, holdKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get hold ttl: %w", err)
	}

	return &HoldInfo{
		HoldID:    holdID,
		EventID:   data["event_id"],
		SeatIDs:   seats,
		ExpiresAt: time.Now().Add(ttl),
	}, nil
}

// HeldSeats returns the seat ids currently held for an event. Expired
// members are pruned from the index before reading.
func (a *AtomicRedisOperations) HeldSeats(ctx context.Context, eventID string) ([]string, error) {
	if a.redis == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	eventSetKey := constants.HOLD_KEY_EVENT_SET + eventID
	now := strconv.FormatInt(time.Now().Unix(), 10)

	pipe := a.redis.Pipeline()
	pipe.ZRemRangeByScore(ctx, eventSetKey, "-inf", now)
	members := pipe.ZRange(ctx, eventSetKey, 0, -1)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to read event holds: %w", err)
	}

	return members.Val(), nil
}

// PreloadScripts loads Lua scripts into Redis for better performance
func (a *AtomicRedisOperations) PreloadScripts(ctx context.Context) error {
	if a.redis == nil {
		return fmt.Errorf("redis client not available")
	}

	if _, err := a.redis.ScriptLoad(ctx, luaAtomicSeatHold).Result(); err != nil {
		return fmt.Errorf("failed to load seat hold script: %w", err)
	}
	if _, err := a.redis.ScriptLoad(ctx, luaAtomicSeatRelease).Result(); err != nil {
		return fmt.Errorf("failed to load seat release script: %w", err)
	}

	return nil
}
