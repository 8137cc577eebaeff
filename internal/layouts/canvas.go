package layouts

import (
	"math"

	"stagedoor/internal/geometry"
)

// Rect is the canvas element's unscaled bounding box in screen pixels. The
// coordinate conversions below always work against the unscaled box; zoom and
// pan are inverted explicitly rather than baked into the rect.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// SnapToGrid rounds a pixel value to the nearest grid line. A non-positive
// grid size disables snapping.
func SnapToGrid(v, gridSize float64) float64 {
	if gridSize <= 0 {
		return v
	}
	return math.Round(v/gridSize) * gridSize
}

// ClampPercent confines a canvas coordinate to the visible [0,100] range.
func ClampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// NormalizeRotation maps any angle in degrees onto [0,360).
func NormalizeRotation(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// ScreenToCanvasPercent converts a pointer position in screen pixels to
// canvas percent coordinates. Pan is undone first, then zoom, and only then
// is the point divided by the unscaled rect. The result is clamped so a drop
// outside the canvas lands on its edge.
func ScreenToCanvasPercent(clientX, clientY float64, rect Rect, zoom float64, pan geometry.Point) geometry.Point {
	if zoom <= 0 {
		zoom = 1
	}

	x := (clientX - rect.Left - pan.X) / zoom
	y := (clientY - rect.Top - pan.Y) / zoom

	px, py := 0.0, 0.0
	if rect.Width > 0 {
		px = x / rect.Width * 100
	}
	if rect.Height > 0 {
		py = y / rect.Height * 100
	}

	return geometry.Point{X: ClampPercent(px), Y: ClampPercent(py)}
}

// CanvasPercentToScreen is the inverse of ScreenToCanvasPercent for points
// already inside the canvas.
func CanvasPercentToScreen(p geometry.Point, rect Rect, zoom float64, pan geometry.Point) (float64, float64) {
	if zoom <= 0 {
		zoom = 1
	}
	x := p.X/100*rect.Width*zoom + pan.X + rect.Left
	y := p.Y/100*rect.Height*zoom + pan.Y + rect.Top
	return x, y
}

// FitToViewport computes the uniform scale and centering offset that fit a
// canvas into a viewport. The canvas is never scaled up past 1:1; small
// canvases are centered instead of stretched.
func FitToViewport(canvas, viewport geometry.Size) (float64, geometry.Point) {
	if canvas.Width <= 0 || canvas.Height <= 0 || viewport.Width <= 0 || viewport.Height <= 0 {
		return 1, geometry.Point{}
	}

	scale := math.Min(viewport.Width/canvas.Width, viewport.Height/canvas.Height)
	if scale > 1 {
		scale = 1
	}

	offset := geometry.Point{
		X: (viewport.Width - canvas.Width*scale) / 2,
		Y: (viewport.Height - canvas.Height*scale) / 2,
	}
	return scale, offset
}
