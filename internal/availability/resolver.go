package availability

// Status is the resolved visual/interaction state of one seat.
type Status string

const (
	StatusReserved  Status = "reserved"
	StatusHold      Status = "hold"
	StatusPending   Status = "pending"
	StatusSelected  Status = "selected"
	StatusAvailable Status = "available"
)

// Reason is a user-facing code explaining why a seat cannot be picked.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonReserved Reason = "reserved"
	ReasonPending  Reason = "pending"
	ReasonHold     Reason = "hold"
)

// ResolveStatus decides what one seat looks like given the availability
// snapshots and the guest's local selection. Priority order is the core
// correctness invariant: reserved > hold > pending > selected > available.
// A seat that is both reserved and locally selected (a stale selection)
// must resolve to reserved.
//
// Seat ids unknown to every set resolve to available. The id space is
// derived client-side, so a mismatch with the server snapshot must degrade
// to a clickable seat, never crash the renderer.
func ResolveStatus(seatID string, reserved, pending, hold, selected SeatSet) Status {
	switch {
	case reserved.Has(seatID):
		return StatusReserved
	case hold.Has(seatID):
		return StatusHold
	case pending.Has(seatID):
		return StatusPending
	case selected.Has(seatID):
		return StatusSelected
	default:
		return StatusAvailable
	}
}

// IsInteractable reports whether a click on a seat with this status is
// allowed. Only the guest's own selection and free seats respond.
func IsInteractable(status Status) bool {
	return status == StatusSelected || status == StatusAvailable
}

// FilterUnavailable drops every selected seat id that has since become
// reserved, pending or held, preserving selection order. It is called after
// each availability refresh so a stale local selection self-corrects before
// submission. The operation is idempotent.
func FilterUnavailable(selection []string, reserved, pending, hold SeatSet) []string {
	kept := make([]string, 0, len(selection))
	for _, id := range selection {
		if reserved.Has(id) || pending.Has(id) || hold.Has(id) {
			continue
		}
		kept = append(kept, id)
	}
	return kept
}

// DisableReasonFor maps a blocked seat to its user-facing reason code for
// toast/tooltip messaging. Available and selected seats return ReasonNone.
func DisableReasonFor(seatID string, reserved, pending, hold SeatSet) Reason {
	switch ResolveStatus(seatID, reserved, pending, hold, nil) {
	case StatusReserved:
		return ReasonReserved
	case StatusHold:
		return ReasonHold
	case StatusPending:
		return ReasonPending
	default:
		return ReasonNone
	}
}
