package appointment

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barberpro/internal/audit"
	domainerr "github.com/BruksfildServices01/barberpro/internal/domain"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/dto"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/logger"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type BookInput struct {
	BarbershopID uint
	ServiceID    uint

	ClientName  string
	ClientPhone string

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

// Book is the public self-booking flow.
type Book struct {
	repo      domain.Repository
	validator *ConflictValidator
	audit     *audit.Dispatcher
	opts      Options
}

func NewBook(
	repo domain.Repository,
	audit *audit.Dispatcher,
	opts Options,
) *Book {
	return &Book{
		repo:      repo,
		validator: NewConflictValidator(opts),
		audit:     audit,
		opts:      opts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*dto.Confirmation, error) {

	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		return nil, httperr.ErrInvalidRequest("client_name_required", "client name is required")
	}

	// --------------------------------------------------
	// Barbershop / date / phone
	// --------------------------------------------------
	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, storeErr(err, errShopNotFound)
	}

	if err := checkSlot(shop.Timezone, in.Date, in.Time); err != nil {
		return nil, err
	}

	phone, err := validators.NormalizePhone(in.ClientPhone, uc.opts.PhoneRegion)
	if err != nil {
		return nil, httperr.ErrInvalidRequest("invalid_phone", "client phone is not a valid phone number")
	}

	// --------------------------------------------------
	// Service
	// --------------------------------------------------
	svc, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, storeErr(err, errServiceNotFound)
	}

	// --------------------------------------------------
	// Validate + client + appointment, atomically
	// --------------------------------------------------
	var (
		ap     *models.Appointment
		client *models.Client
	)

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

		client, err = tx.ResolveClient(ctx, shop.ID, name, phone)
		if err != nil {
			return err
		}

		ap = &models.Appointment{
			Reference:    uuid.NewString(),
			BarbershopID: shop.ID,
			ClientID:     client.ID,
			ServiceID:    &svc.ID,
			Date:         in.Date,
			StartTime:    in.Time,
			Status:       string(domain.InitialStatus()),
			TotalPrice:   svc.Price,
		}
		return tx.CreateAppointment(ctx, ap)
	})
	if err != nil {
		return nil, bookingErr(err)
	}

	logger.FromContext(ctx).Info("appointment booked",
		"barbershop_id", shop.ID,
		"appointment_id", ap.ID,
		"date", ap.Date,
		"start_time", ap.StartTime,
	)

	uc.audit.Dispatch(audit.Event{
		BarbershopID: shop.ID,
		Action:       "appointment_booked",
		Entity:       "appointment",
		EntityID:     &ap.ID,
		Metadata: map[string]any{
			"client_id": client.ID,
			"date":      ap.Date,
			"time":      ap.StartTime,
		},
	})

	ap.Client = client
	ap.Service = svc
	return buildConfirmation(shop, ap, uc.opts.FallbackDurationMin), nil
}

// bookingErr maps errors raised inside a booking or edit transaction.
func bookingErr(err error) error {
	switch {
	case errors.Is(err, domainerr.ErrSlotTaken):
		return errSlotTaken
	case errors.Is(err, domainerr.ErrPhoneTaken):
		return errPhoneInUse
	case errors.Is(err, domainerr.ErrNotFound):
		return errShopNotFound
	}
	return httperr.ErrStorage(err)
}
