package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// Seat identity is derived, never stored. The id format below is the join key
// between layout documents, reservation sets and guest-facing summaries, so
// every consumer must produce byte-identical ids for the same inputs.

// SeatID builds the canonical wire id for one seat:
// "<section>-<row>-<seatNumber>".
func SeatID(sectionName, rowLabel string, seatNumber int) string {
	return fmt.Sprintf("%s-%s-%d", sectionName, rowLabel, seatNumber)
}

// ParseSeatID splits a wire seat id back into its parts. The section name may
// itself contain dashes, so the split anchors on the trailing numeric seat
// component and the row label before it.
func ParseSeatID(id string) (sectionName, rowLabel string, seatNumber int, err error) {
	lastDash := strings.LastIndex(id, "-")
	if lastDash <= 0 {
		return "", "", 0, fmt.Errorf("malformed seat id: %q", id)
	}
	seatNumber, err = strconv.Atoi(id[lastDash+1:])
	if err != nil {
		return "", "", 0, fmt.Errorf("malformed seat id: %q", id)
	}
	rest := id[:lastDash]
	rowDash := strings.LastIndex(rest, "-")
	if rowDash < 0 {
		return "", "", 0, fmt.Errorf("malformed seat id: %q", id)
	}
	return rest[:rowDash], rest[rowDash+1:], seatNumber, nil
}

// SeatIDsFor derives the ordered seat ids 1..TotalSeats for an element.
// Non-seat-bearing elements and elements without seats yield nil.
func SeatIDsFor(e *LayoutElement) []string {
	if !IsSeatBearing(e) || e.TotalSeats <= 0 {
		return nil
	}
	ids := make([]string, 0, e.TotalSeats)
	for n := 1; n <= e.TotalSeats; n++ {
		ids = append(ids, SeatID(e.SectionName, e.RowLabel, n))
	}
	return ids
}

// SeatLabelFor returns the guest-facing label for one seat: an explicit
// override from the element's seatLabels map when present, otherwise the
// derived default. Out-of-range seat numbers fall through to the default
// derivation rather than erroring; this layer never fails.
func SeatLabelFor(e *LayoutElement, seatNumber int) string {
	if override, ok := e.SeatLabels[strconv.Itoa(seatNumber)]; ok && override != "" {
		return override
	}
	return defaultSeatLabel(e.RowLabel, seatNumber, e.TotalSeats)
}

// defaultSeatLabel appends a letter suffix to the row label when the element
// has more than one seat; a lone seat uses the bare row label.
func defaultSeatLabel(rowLabel string, seatNumber, totalSeats int) string {
	if totalSeats <= 1 {
		return rowLabel
	}
	return rowLabel + seatLetter(seatNumber)
}

// seatLetter maps a 1-based seat number to its letter suffix: A..Z for the
// first 26 seats, then repeated letters (AA, BB, ...) beyond that.
func seatLetter(seatNumber int) string {
	if seatNumber < 1 {
		seatNumber = 1
	}
	letter := string(rune('A' + (seatNumber-1)%26))
	return strings.Repeat(letter, (seatNumber-1)/26+1)
}

// HeaderLabelsFor returns the section/row header pair for an element. For a
// single-seat element the row header collapses to the seat's own label so a
// lone chair shows its seat label instead of a redundant row tag.
func HeaderLabelsFor(e *LayoutElement) HeaderLabels {
	labels := HeaderLabels{
		SectionLabel: e.SectionName,
		RowLabel:     e.RowLabel,
	}
	if IsSeatBearing(e) && e.TotalSeats <= 1 {
		labels.RowLabel = SeatLabelFor(e, 1)
	}
	return labels
}
