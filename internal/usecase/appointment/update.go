package appointment

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	domainerr "github.com/BruksfildServices01/barberpro/internal/domain"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

// UpdateAppointmentInput holds the fields an owner may edit. Nil fields
// are left unchanged.
type UpdateAppointmentInput struct {
	BarbershopID  uint
	UserID        uint
	AppointmentID uint

	ClientID   *uint
	ServiceID  *uint
	Date       *string
	Time       *string
	Status     *string
	TotalPrice *decimal.Decimal
}

type UpdateAppointment struct {
	repo      domain.Repository
	validator *ConflictValidator
	audit     *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:      repo,
		validator: NewConflictValidator(opts),
		audit:     audit,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, storeErr(err, errShopNotFound)
	}

	if in.Status != nil && !domain.Status(*in.Status).Valid() {
		return nil, httperr.ErrInvalidRequest("invalid_status", "status must be pending, completed or cancelled")
	}
	if in.TotalPrice != nil && in.TotalPrice.IsNegative() {
		return nil, httperr.ErrInvalidRequest("invalid_price", "total price cannot be negative")
	}

	var ap *models.Appointment

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarbershop(ctx, shop.ID); err != nil {
			return err
		}

		found, err := tx.GetAppointment(ctx, shop.ID, in.AppointmentID)
		if err != nil {
			return storeErr(err, errAppointmentNotFound)
		}
		ap = found

		if err := uc.apply(ctx, tx, shop, ap, in); err != nil {
			return err
		}

		if err := checkSlot(shop.Timezone, ap.Date, ap.StartTime); err != nil {
			return err
		}

		if ap.Status == string(domain.StatusPending) {
			conflict, err := uc.validator.Validate(ctx, tx, ValidateInput{
				Shop:      shop,
				Date:      ap.Date,
				StartTime: ap.StartTime,
				Service:   ap.Service,
				ExcludeID: ap.ID,
			})
			if err != nil {
				return err
			}
			if conflict != nil {
				return httperr.ErrSlotConflict(conflict.Message(), conflict)
			}
		}

		return tx.UpdateAppointment(ctx, ap)
	})
	if err != nil {
		if errors.Is(err, domainerr.ErrSlotTaken) {
			return nil, errSlotTaken
		}
		return nil, storeErr(err, errShopNotFound)
	}

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		UserID:       &in.UserID,
		Action:       "appointment_updated",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}

// apply copies the requested changes onto ap, resolving the new client and
// service within the shop.
func (uc *UpdateAppointment) apply(
	ctx context.Context,
	tx domain.Repository,
	shop *models.Barbershop,
	ap *models.Appointment,
	in UpdateAppointmentInput,
) error {

	if in.ClientID != nil {
		client, err := tx.GetClient(ctx, shop.ID, *in.ClientID)
		if err != nil {
			return storeErr(err, errClientNotFound)
		}
		ap.ClientID = client.ID
		ap.Client = client
	}

	if in.ServiceID != nil {
		svc, err := tx.GetService(ctx, shop.ID, *in.ServiceID)
		if err != nil {
			return storeErr(err, errServiceNotFound)
		}
		ap.ServiceID = &svc.ID
		ap.Service = svc
	}

	if in.Date != nil {
		ap.Date = *in.Date
	}
	if in.Time != nil {
		ap.StartTime = *in.Time
	}
	if in.TotalPrice != nil {
		ap.TotalPrice = *in.TotalPrice
	}

	if in.Status != nil && *in.Status != ap.Status {
		now := timezone.NowIn(shop.Timezone)
		switch domain.Status(*in.Status) {
		case domain.StatusCancelled:
			return domain.Cancel(ap, now)
		case domain.StatusCompleted:
			return domain.Complete(ap, now)
		case domain.StatusPending:
			reopen(ap)
		}
	}

	return nil
}

func reopen(ap *models.Appointment) {
	ap.Status = string(domain.StatusPending)
	ap.CancelledAt = nil
	ap.CompletedAt = nil
}
