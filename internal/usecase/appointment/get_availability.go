package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/dto"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

// GetAvailability lists the free start times of a service on one day.
// It only reads and takes no locks.
type GetAvailability struct {
	repo      domain.Repository
	validator *ConflictValidator
	opts      Options
}

func NewGetAvailability(repo domain.Repository, opts Options) *GetAvailability {
	return &GetAvailability{
		repo:      repo,
		validator: NewConflictValidator(opts),
		opts:      opts,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*dto.AvailabilityDTO, error) {

	shop, err := uc.repo.GetBarbershopByID(ctx, in.BarbershopID)
	if err != nil {
		return nil, storeErr(err, errShopNotFound)
	}

	date, err := timezone.ParseDate(shop.Timezone, in.Date)
	if err != nil {
		return nil, httperr.ErrInvalidRequest("invalid_date", "date must be a calendar date in YYYY-MM-DD format")
	}

	if in.ServiceID == 0 {
		return nil, httperr.ErrInvalidRequest("service_required", "service_id is required")
	}
	svc, err := uc.repo.GetService(ctx, shop.ID, in.ServiceID)
	if err != nil {
		return nil, storeErr(err, httperr.ErrInvalidRequest("unknown_service", "service does not exist in this barbershop"))
	}

	gen, err := domain.WindowFor(shop, uc.opts.DefaultWindow).Generator(date, svc.DurationMinutes)
	if err != nil {
		return nil, httperr.ErrStorage(fmt.Errorf("barbershop %d working window: %w", shop.ID, err))
	}

	existing, err := uc.repo.ListPendingForDay(ctx, shop.ID, in.Date, 0)
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}

	booked, err := uc.validator.booked(existing, date.Location())
	if err != nil {
		return nil, err
	}

	free := domain.FreeSlots(gen, domain.Intervals(booked))

	slots := make([]string, 0, len(free))
	for _, s := range free {
		slots = append(slots, s.Format(timezone.ClockLayout))
	}

	return &dto.AvailabilityDTO{
		Date:      in.Date,
		ServiceID: svc.ID,
		Slots:     slots,
	}, nil
}
