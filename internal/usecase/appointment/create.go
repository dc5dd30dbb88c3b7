package appointment

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	domainerr "github.com/BruksfildServices01/barberpro/internal/domain"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	BarbershopID uint
	UserID       uint

	ClientID  uint
	ServiceID uint

	Date string
	Time string

	// Defaults to the service price.
	TotalPrice *decimal.Decimal
}

// ======================================================
// USE CASE
// ======================================================

// CreateAppointment books on behalf of an existing client from the owner
// panel.
type CreateAppointment struct {
	repo      domain.Repository
	validator *ConflictValidator
	audit     *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		validator: NewConflictValidator(opts),
		audit:     audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, storeErr(err, errShopNotFound)
	}

	if err := checkSlot(shop.Timezone, in.Date, in.Time); err != nil {
		return nil, err
	}

	if in.TotalPrice != nil && in.TotalPrice.IsNegative() {
		return nil, httperr.ErrInvalidRequest("invalid_price", "total price cannot be negative")
	}

	svc, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, storeErr(err, errServiceNotFound)
	}

	client, err := uc.repo.GetClient(ctx, shop.ID, in.ClientID)
	if err != nil {
		return nil, storeErr(err, errClientNotFound)
	}

	price := svc.Price
	if in.TotalPrice != nil {
		price = *in.TotalPrice
	}

	ap := &models.Appointment{
		Reference:    uuid.NewString(),
		BarbershopID: shop.ID,
		ClientID:     client.ID,
		ServiceID:    &svc.ID,
		Date:         in.Date,
		StartTime:    in.Time,
		Status:       string(domain.InitialStatus()),
		TotalPrice:   price,
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.LockBarbershop(ctx, shop.ID); err != nil {
			return err
		}

		conflict, err := uc.validator.Validate(ctx, tx, ValidateInput{
			Shop:      shop,
			Date:      in.Date,
			StartTime: in.Time,
			Service:   svc,
		})
		if err != nil {
			return err
		}
		if conflict != nil {
			return httperr.ErrSlotConflict(conflict.Message(), conflict)
		}

		return tx.CreateAppointment(ctx, ap)
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
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	ap.Client = client
	ap.Service = svc
	return ap, nil
}
