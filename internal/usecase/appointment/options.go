package appointment

import (
	"errors"
	"time"

	"github.com/BruksfildServices01/barberpro/internal/config"
	domainerr "github.com/BruksfildServices01/barberpro/internal/domain"
	domain "github.com/BruksfildServices01/barberpro/internal/domain/appointment"
	"github.com/BruksfildServices01/barberpro/internal/httperr"
	"github.com/BruksfildServices01/barberpro/internal/timezone"
	"github.com/BruksfildServices01/barberpro/internal/validators"
)

// Options carries the scheduling defaults shared by the use cases.
type Options struct {
	DefaultWindow       domain.WorkingWindow
	FallbackDurationMin int
	PhoneRegion         string
}

func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		DefaultWindow: domain.WorkingWindow{
			Opens:  cfg.DefaultOpensAt,
			Closes: cfg.DefaultClosesAt,
			Step:   time.Duration(cfg.DefaultSlotStepMinutes) * time.Minute,
		},
		FallbackDurationMin: cfg.FallbackDurationMinutes,
		PhoneRegion:         cfg.PhoneRegion,
	}
}

// storeErr converts a repository error. ErrNotFound becomes notFound when
// given; other sentinels and unknown errors become storage failures.
func storeErr(err error, notFound error) error {
	if err == nil {
		return nil
	}
	if notFound != nil && errors.Is(err, domainerr.ErrNotFound) {
		return notFound
	}
	return httperr.ErrStorage(err)
}

var (
	errShopNotFound        = httperr.ErrNotFound("barbershop_not_found", "barbershop not found")
	errServiceNotFound     = httperr.ErrNotFound("service_not_found", "service not found")
	errClientNotFound      = httperr.ErrNotFound("client_not_found", "client not found")
	errAppointmentNotFound = httperr.ErrNotFound("appointment_not_found", "appointment not found")

	errInvalidDateTime = httperr.ErrInvalidRequest("invalid_date_or_time", "date must be YYYY-MM-DD and time HH:MM")
	errSlotTaken       = httperr.ErrSlotConflict("this time slot has just been booked, please choose another time", nil)
	errPhoneInUse      = httperr.ErrInvalidRequest("phone_in_use", "phone number is registered to another barbershop")
)

// checkSlot accepts only a real YYYY-MM-DD date and a zero-padded HH:MM
// clock. Start times are stored and uniquely indexed in that form.
func checkSlot(tz, date, clock string) error {
	if !validators.IsISODate(date) || !validators.IsClock(clock) {
		return errInvalidDateTime
	}
	if _, err := timezone.ParseDateTime(tz, date, clock); err != nil {
		return errInvalidDateTime
	}
	return nil
}
