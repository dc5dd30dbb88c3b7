package appointment

import (
	"context"
	"fmt"

	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/dto"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/models"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

// ListAppointments returns a shop's appointments, most recent date and time
// first.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute lists every appointment matching status; an empty status lists
// all of them.
func (uc *ListAppointments) Execute(
	ctx context.Context,
	barbershopID uint,
	status string,
) ([]dto.AppointmentListDTO, error) {

	if status != "" && !domain.Status(status).Valid() {
		return nil, httperr.ErrInvalidRequest("invalid_status", "status must be pending, completed or cancelled")
	}

	return uc.list(ctx, barbershopID, domain.ListFilter{Status: status})
}

func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barbershopID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if !validators.IsISODate(date) {
		return nil, httperr.ErrInvalidRequest("invalid_date", "date must be YYYY-MM-DD")
	}

	return uc.list(ctx, barbershopID, domain.ListFilter{Date: date})
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barbershopID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	if year < 1 || month < 1 || month > 12 {
		return nil, httperr.ErrInvalidRequest("invalid_month", "year and month are required")
	}

	next := year*12 + month
	return uc.list(ctx, barbershopID, domain.ListFilter{
		DateFrom:  fmt.Sprintf("%04d-%02d-01", year, month),
		DateUntil: fmt.Sprintf("%04d-%02d-01", next/12, next%12+1),
	})
}

func (uc *ListAppointments) list(
	ctx context.Context,
	barbershopID uint,
	filter domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	apps, err := uc.repo.ListAppointments(ctx, barbershopID, filter)
	if err != nil {
		return nil, httperr.ErrStorage(err)
	}
	return dto.ToAppointmentLists(apps), nil
}

// GetAppointment loads one appointment of the shop with its client and
// service.
type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(
	ctx context.Context,
	barbershopID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, barbershopID, appointmentID)
	if err != nil {
		return nil, storeErr(err, errAppointmentNotFound)
	}
	return ap, nil
}
