package requests

// RequestStatus is the lifecycle state of a seat request.
type RequestStatus string

const (
	StatusPending  RequestStatus = "PENDING"
	StatusApproved RequestStatus = "APPROVED"
	StatusDenied   RequestStatus = "DENIED"
)

// IsValid reports whether the status is a known lifecycle state.
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusDenied:
		return true
	}
	return false
}

// IsTerminal reports whether the status permits no further transition.
// Approved and denied requests are immutable history.
func (s RequestStatus) IsTerminal() bool {
	return s == StatusApproved || s == StatusDenied
}

// CanTransitionTo reports whether moving to the target state is allowed.
// Only pending requests can be decided.
func (s RequestStatus) CanTransitionTo(target RequestStatus) bool {
	if s != StatusPending {
		return false
	}
	return target == StatusApproved || target == StatusDenied
}
