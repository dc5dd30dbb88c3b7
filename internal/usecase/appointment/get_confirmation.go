package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/dto"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
)

type GetConfirmation struct {
	repo domain.Repository
	opts Options
}

func NewGetConfirmation(repo domain.Repository, opts Options) *GetConfirmation {
	return &GetConfirmation{repo: repo, opts: opts}
}

func (uc *GetConfirmation) Execute(ctx context.Context, reference string) (*dto.Confirmation, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, httperr.ErrInvalidRequest("reference_required", "booking reference is required")
	}

	ap, err := uc.repo.GetAppointmentByReference(ctx, reference)
	if err != nil {
		return nil, storeErr(err, errAppointmentNotFound)
	}

	return buildConfirmation(ap.Barbershop, ap, uc.opts.FallbackDurationMin), nil
}

func buildConfirmation(shop *models.Barbershop, ap *models.Appointment, fallbackMin int) *dto.Confirmation {
	c := &dto.Confirmation{
		Reference:  ap.Reference,
		Date:       ap.Date,
		StartTime:  ap.StartTime,
		Status:     ap.Status,
		TotalPrice: ap.TotalPrice,
		CreatedAt:  ap.CreatedAt,
	}

	tz := ""
	if shop != nil {
		c.Barbershop = shop.Name
		tz = shop.Timezone
	}
	if ap.Client != nil {
		c.ClientName = ap.Client.Name
	}
	if ap.Service != nil {
		c.ServiceName = ap.Service.Name
	}

	if b, err := domain.BookedFromAppointment(*ap, timezone.Location(tz), fallbackMin); err == nil {
		c.EndTime = b.Interval.End.Format(timezone.ClockLayout)
	}

	return c
}
