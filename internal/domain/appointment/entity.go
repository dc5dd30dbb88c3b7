package appointment

import (
	"time"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

// Cancel moves a pending appointment to cancelled, freeing its slot.
func Cancel(ap *models.Appointment, now time.Time) error {
	return finish(ap, StatusCancelled, now)
}

// Complete marks a pending appointment as served.
func Complete(ap *models.Appointment, now time.Time) error {
	return finish(ap, StatusCompleted, now)
}

func finish(ap *models.Appointment, to Status, now time.Time) error {
	from := Status(ap.Status)

	switch to {
	case StatusCancelled:
		if err := CanCancel(from); err != nil {
			return err
		}
		ap.CancelledAt = &now
	case StatusCompleted:
		if err := CanComplete(from); err != nil {
			return err
		}
		ap.CompletedAt = &now
	}

	ap.Status = string(to)
	return nil
}
