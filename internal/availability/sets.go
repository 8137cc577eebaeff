package availability

// SeatSet is a read-only snapshot of seat ids sharing one status (reserved,
// pending or held) for a given event. Sets are populated from the reservation
// backend and never mutated by rendering or editor code.
type SeatSet map[string]struct{}

// NewSeatSet builds a set from a slice of seat ids.
func NewSeatSet(ids ...string) SeatSet {
	set := make(SeatSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports membership. A nil set contains nothing, so callers can pass
// missing snapshots without guarding.
func (s SeatSet) Has(seatID string) bool {
	_, ok := s[seatID]
	return ok
}

// IDs returns the members as a slice. Order is unspecified.
func (s SeatSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	return ids
}
