package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

type ValidateInput struct {
	Shop      *models.Barbershop
	Date      string
	StartTime string
	// Service may be nil for appointments whose service was removed.
	Service   *models.Service
	ExcludeID uint
}

// ConflictValidator checks a proposed appointment against the pending
// appointments of the same shop and day.
type ConflictValidator struct {
	FallbackDurationMin int
}

func NewConflictValidator(opts Options) *ConflictValidator {
	return &ConflictValidator{FallbackDurationMin: opts.FallbackDurationMin}
}

// Validate returns the first colliding appointment, or nil when the slot is
// free. repo should be bound to the transaction that performs the write.
func (v *ConflictValidator) Validate(
	ctx context.Context,
	repo domain.Repository,
	in ValidateInput,
) (*domain.Conflict, error) {

	loc := timezone.Location(in.Shop.Timezone)

	start, err := timezone.ParseDateTime(in.Shop.Timezone, in.Date, in.StartTime)
	if err != nil {
		return nil, errInvalidDateTime
	}

	duration := v.FallbackDurationMin
	if in.Service != nil {
		duration = in.Service.DurationMinutes
	}
	proposed := domain.NewInterval(start, duration)

	existing, err := repo.ListPendingForDay(ctx, in.Shop.ID, in.Date, in.ExcludeID)
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	booked, err := v.booked(existing, loc)
	if err != nil {
		return nil, err
	}

	return domain.FindConflict(proposed, booked), nil
}

// booked derives the occupied intervals of aps in loc.
func (v *ConflictValidator) booked(aps []models.Appointment, loc *time.Location) ([]domain.Booked, error) {
	out := make([]domain.Booked, 0, len(aps))
	for _, ap := range aps {
		b, err := domain.BookedFromAppointment(ap, loc, v.FallbackDurationMin)
		if err != nil {
			return nil, httperr.ErrStorage(err)
		}
		out = append(out, b)
	}
	return out, nil
}
