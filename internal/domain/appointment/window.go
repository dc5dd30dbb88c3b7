package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

const clockLayout = "15:04"

// WorkingWindow is the daily opening range of a shop.
type WorkingWindow struct {
	Opens  string
	Closes string
	Step   time.Duration
}

// WindowFor returns the shop's window, using def for every field the shop
// has not configured.
func WindowFor(shop *models.Barbershop, def WorkingWindow) WorkingWindow {
	w := def
	if shop == nil {
		return w
	}
	if shop.OpensAt != "" {
		w.Opens = shop.OpensAt
	}
	if shop.ClosesAt != "" {
		w.Closes = shop.ClosesAt
	}
	if shop.SlotStepMinutes > 0 {
		w.Step = time.Duration(shop.SlotStepMinutes) * time.Minute
	}
	return w
}

// Generator builds the slot generator for the calendar day of date, in the
// location carried by date.
func (w WorkingWindow) Generator(date time.Time, durationMin int) (SlotGenerator, error) {
	start, err := atClock(date, w.Opens)
	if err != nil {
		return SlotGenerator{}, fmt.Errorf("opens: %w", err)
	}
	end, err := atClock(date, w.Closes)
	if err != nil {
		return SlotGenerator{}, fmt.Errorf("closes: %w", err)
	}

	return SlotGenerator{
		WindowStart: start,
		WindowEnd:   end,
		Step:        w.Step,
		Duration:    time.Duration(durationMin) * time.Minute,
	}, nil
}

func atClock(date time.Time, hhmm string) (time.Time, error) {
	t, err := time.Parse(clockLayout, hhmm)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}
