package layouts

import "stagedoor/internal/geometry"

// CreateLayoutRequest creates a new template layout. Elements are optional:
// a fresh layout usually starts empty and gets built up in the editor.
// Bodies use the same snake_case keys the layout responses serve, so the
// editor can PUT back exactly what it fetched.
type CreateLayoutRequest struct {
	Name           string                   `json:"name" binding:"required,min=1,max=120"`
	Description    string                   `json:"description" binding:"omitempty,max=500"`
	Elements       []geometry.LayoutElement `json:"layout_data"`
	StagePosition  geometry.Point           `json:"stage_position"`
	StageSize      geometry.Size            `json:"stage_size"`
	CanvasSettings CanvasSettings           `json:"canvas_settings"`
}

// SaveLayoutRequest replaces a layout document wholesale. Partial updates are
// deliberately not supported: the editor always submits the full document.
type SaveLayoutRequest struct {
	Name           string                   `json:"name" binding:"required,min=1,max=120"`
	Description    string                   `json:"description" binding:"omitempty,max=500"`
	Elements       []geometry.LayoutElement `json:"layout_data" binding:"required"`
	StagePosition  geometry.Point           `json:"stage_position"`
	StageSize      geometry.Size            `json:"stage_size"`
	CanvasSettings CanvasSettings           `json:"canvas_settings"`
}
