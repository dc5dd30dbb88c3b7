package appointment

import "github.com/BruksfildServices01/barberpro/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Transitions
// ===============================

// Only pending appointments can be cancelled.
func CanCancel(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidRequest("invalid_state", "only pending appointments can be cancelled")
	}
	return nil
}

func CanComplete(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidRequest("invalid_state", "only pending appointments can be completed")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
