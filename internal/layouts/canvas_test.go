package layouts

import (
	"testing"

	"stagedoor/internal/geometry"

	"github.com/stretchr/testify/assert"
)

func TestSnapToGrid(t *testing.T) {
	assert.Equal(t, 40.0, SnapToGrid(42.3, 5))
	assert.Equal(t, 45.0, SnapToGrid(43.2, 5))
	assert.Equal(t, 45.0, SnapToGrid(42.5, 5))
	assert.Equal(t, 0.0, SnapToGrid(2.4, 5))

	// Non-positive grid disables snapping
	assert.Equal(t, 42.3, SnapToGrid(42.3, 0))
	assert.Equal(t, 42.3, SnapToGrid(42.3, -1))
}

func TestClampPercent(t *testing.T) {
	assert.Equal(t, 0.0, ClampPercent(-3))
	assert.Equal(t, 100.0, ClampPercent(104.2))
	assert.Equal(t, 57.5, ClampPercent(57.5))
}

func TestNormalizeRotation(t *testing.T) {
	assert.Equal(t, 15.0, NormalizeRotation(375))
	assert.Equal(t, 345.0, NormalizeRotation(-15))
	assert.Equal(t, 0.0, NormalizeRotation(720))
	assert.Equal(t, 0.0, NormalizeRotation(0))
}

func TestScreenToCanvasPercentIdentity(t *testing.T) {
	rect := Rect{Left: 100, Top: 50, Width: 1200, Height: 800}

	// No zoom, no pan: point at the rect center maps to (50, 50)
	p := ScreenToCanvasPercent(100+600, 50+400, rect, 1, geometry.Point{})
	assert.InDelta(t, 50, p.X, 1e-9)
	assert.InDelta(t, 50, p.Y, 1e-9)
}

func TestScreenToCanvasPercentInvertsPanThenZoom(t *testing.T) {
	rect := Rect{Left: 0, Top: 0, Width: 1000, Height: 500}
	zoom := 2.0
	pan := geometry.Point{X: 100, Y: -40}

	// A point known to be at canvas (25%, 50%): its screen position is
	// percent -> px -> zoom -> pan.
	screenX := 0.25*1000*zoom + pan.X
	screenY := 0.50*500*zoom + pan.Y

	p := ScreenToCanvasPercent(screenX, screenY, rect, zoom, pan)
	assert.InDelta(t, 25, p.X, 1e-9)
	assert.InDelta(t, 50, p.Y, 1e-9)
}

func TestScreenToCanvasRoundTrip(t *testing.T) {
	rect := Rect{Left: 37, Top: 12, Width: 1200, Height: 800}
	zoom := 1.5
	pan := geometry.Point{X: -80, Y: 33}

	for _, pt := range []geometry.Point{
		{X: 0, Y: 0},
		{X: 100, Y: 100},
		{X: 42.3, Y: 77.7},
		{X: 50, Y: 50},
	} {
		sx, sy := CanvasPercentToScreen(pt, rect, zoom, pan)
		back := ScreenToCanvasPercent(sx, sy, rect, zoom, pan)
		assert.InDelta(t, pt.X, back.X, 1e-9)
		assert.InDelta(t, pt.Y, back.Y, 1e-9)
	}
}

func TestScreenToCanvasPercentClampsOutside(t *testing.T) {
	rect := Rect{Left: 0, Top: 0, Width: 1000, Height: 500}

	p := ScreenToCanvasPercent(-50, 9999, rect, 1, geometry.Point{})
	assert.Equal(t, 0.0, p.X)
	assert.Equal(t, 100.0, p.Y)
}

func TestFitToViewportDownscalesAndCenters(t *testing.T) {
	scale, offset := FitToViewport(
		geometry.Size{Width: 1200, Height: 800},
		geometry.Size{Width: 600, Height: 600},
	)
	assert.InDelta(t, 0.5, scale, 1e-9)
	assert.InDelta(t, 0, offset.X, 1e-9)
	assert.InDelta(t, 100, offset.Y, 1e-9)
}

func TestFitToViewportNeverUpscales(t *testing.T) {
	scale, offset := FitToViewport(
		geometry.Size{Width: 400, Height: 300},
		geometry.Size{Width: 1200, Height: 900},
	)
	assert.Equal(t, 1.0, scale)
	assert.InDelta(t, 400, offset.X, 1e-9)
	assert.InDelta(t, 300, offset.Y, 1e-9)
}
