package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

// transition closes a pending appointment. The shop row is locked so the
// state change cannot interleave with an edit of the same schedule.
type transition struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	event  string
	finish func(ap *models.Appointment, now time.Time) error
}

func (t *transition) run(
	ctx context.Context,
	barbershopID uint,
	userID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	shop, err := t.repo.GetBarbershopByID(ctx, barbershopID)
	if err != nil {
		return nil, storeErr(err, errShopNotFound)
	}

	var ap *models.Appointment

	err = t.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarbershop(ctx, shop.ID); err != nil {
			return httperr.ErrStorage(err)
		}

		found, err := tx.GetAppointment(ctx, shop.ID, appointmentID)
		if err != nil {
			return storeErr(err, errAppointmentNotFound)
		}

		if err := t.finish(found, timezone.NowIn(shop.Timezone)); err != nil {
			return err
		}
		ap = found

		return httperr.ErrStorage(tx.UpdateAppointment(ctx, found))
	})
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	t.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &userID,
		Action:       t.event,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

// ======================================================
// CANCEL
// ======================================================

type CancelAppointment struct {
	transition
}

func NewCancelAppointment(repo domain.Repository, audit *audit.Dispatcher) *CancelAppointment {
	return &CancelAppointment{transition{
		repo:   repo,
		audit:  audit,
		event:  "appointment_cancelled",
		finish: domain.Cancel,
	}}
}

func (uc *CancelAppointment) Execute(ctx context.Context, barbershopID, userID, appointmentID uint) (*models.Appointment, error) {
	return uc.run(ctx, barbershopID, userID, appointmentID)
}

// ======================================================
// COMPLETE
// ======================================================

type CompleteAppointment struct {
	transition
}

func NewCompleteAppointment(repo domain.Repository, audit *audit.Dispatcher) *CompleteAppointment {
	return &CompleteAppointment{transition{
		repo:   repo,
		audit:  audit,
		event:  "appointment_completed",
		finish: domain.Complete,
	}}
}

func (uc *CompleteAppointment) Execute(ctx context.Context, barbershopID, userID, appointmentID uint) (*models.Appointment, error) {
	return uc.run(ctx, barbershopID, userID, appointmentID)
}
