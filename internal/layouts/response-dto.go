package layouts

import (
	"time"

	"stagedoor/internal/geometry"
)

// LayoutResponse is a layout row with its JSON columns decoded. The layout
// surface uses snake_case keys; external consumers parse layout_data,
// stage_position, stage_size and canvas_settings by those exact names.
type LayoutResponse struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Description    string                   `json:"description"`
	IsDefault      bool                     `json:"is_default"`
	EventID        string                   `json:"event_id,omitempty"`
	Elements       []geometry.LayoutElement `json:"layout_data"`
	StagePosition  geometry.Point           `json:"stage_position"`
	StageSize      geometry.Size            `json:"stage_size"`
	CanvasSettings CanvasSettings           `json:"canvas_settings"`
	CreatedAt      time.Time                `json:"created_at"`
	UpdatedAt      time.Time                `json:"updated_at"`
}

// LayoutSummary is the list view: metadata without the element payload.
type LayoutSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	IsDefault    bool      `json:"is_default"`
	ElementCount int       `json:"element_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ToResponse decodes the row into its API shape.
func (l *SeatingLayout) ToResponse() (*LayoutResponse, error) {
	doc, err := l.Decode()
	if err != nil {
		return nil, err
	}

	elements := doc.Elements
	if elements == nil {
		elements = []geometry.LayoutElement{}
	}

	resp := &LayoutResponse{
		ID:             l.ID.String(),
		Name:           l.Name,
		Description:    l.Description,
		IsDefault:      l.IsDefault,
		Elements:       elements,
		StagePosition:  doc.StagePosition,
		StageSize:      doc.StageSize,
		CanvasSettings: doc.Canvas,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
	if l.EventID != nil {
		resp.EventID = l.EventID.String()
	}
	return resp, nil
}

// ToSummary builds the list entry for a layout.
func (l *SeatingLayout) ToSummary() LayoutSummary {
	elements, _ := l.Elements()
	return LayoutSummary{
		ID:           l.ID.String(),
		Name:         l.Name,
		Description:  l.Description,
		IsDefault:    l.IsDefault,
		ElementCount: len(elements),
		UpdatedAt:    l.UpdatedAt,
	}
}
