package requests

import (
	"context"
	"testing"

	"stagedoor/internal/shared/constants"

	"github.com/stretchr/testify/assert"
)

// The hold scripts and the Go-side reads must address the same keys. Both
// sides derive their prefixes from the shared constants; this pins the
// script text to them so an edit to one without the other fails here.
func TestHoldScriptsShareKeyPrefixes(t *testing.T) {
	for _, script := range []string{luaAtomicSeatHold, luaAtomicSeatRelease} {
		assert.Contains(t, script, `"`+constants.HOLD_KEY_SEAT+`"`)
		assert.Contains(t, script, `"`+constants.HOLD_KEY_HOLD+`"`)
		assert.Contains(t, script, `"`+constants.HOLD_KEY_HOLD_SEATS+`"`)
		assert.Contains(t, script, `"`+constants.HOLD_KEY_EVENT_SET+`"`)
	}
}

func TestAtomicOperationsRequireClient(t *testing.T) {
	ops := NewAtomicRedisOperations(nil)
	ctx := context.Background()

	assert.Error(t, ops.AtomicHoldSeats(ctx, "h1", "e1", []string{"s1"}, 0))
	_, err := ops.AtomicReleaseHold(ctx, "h1")
	assert.Error(t, err)
	_, err = ops.GetHold(ctx, "h1")
	assert.Error(t, err)
	_, err = ops.HeldSeats(ctx, "e1")
	assert.Error(t, err)
	assert.Error(t, ops.PreloadScripts(ctx))
}
