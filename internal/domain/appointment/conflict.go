package appointment

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barberpro/internal/models"
)

const (
	DateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// Booked is a pending appointment reduced to what overlap checks need.
type Booked struct {
	AppointmentID uint
	ServiceName   string
	Interval      Interval
}

// Conflict describes the existing appointment a proposal collides with.
type Conflict struct {
	AppointmentID uint   `json:"appointment_id"`
	ServiceName   string `json:"service_name"`
	Start         string `json:"start"`
	End           string `json:"end"`
}

func (c *Conflict) Message() string {
	return fmt.Sprintf(
		"Conflict: existing appointment for '%s' from %s to %s. Please choose another time.",
		c.ServiceName, c.Start, c.End,
	)
}

// FindConflict returns the first existing appointment that overlaps
// proposed, or nil.
func FindConflict(proposed Interval, existing []Booked) *Conflict {
	for _, b := range existing {
		if proposed.Overlaps(b.Interval) {
			return &Conflict{
				AppointmentID: b.AppointmentID,
				ServiceName:   b.ServiceName,
				Start:         b.Interval.Start.Format(clockLayout),
				End:           b.Interval.End.Format(clockLayout),
			}
		}
	}
	return nil
}

// BookedFromAppointment derives the occupied interval of ap in loc. The
// duration comes from the linked service; fallbackMin is used when the
// service has been removed.
func BookedFromAppointment(ap models.Appointment, loc *time.Location, fallbackMin int) (Booked, error) {
	start, err := time.ParseInLocation(dateTimeLayout, ap.Date+" "+ap.StartTime, loc)
	if err != nil {
		return Booked{}, fmt.Errorf("appointment %d: %w", ap.ID, err)
	}

	duration := fallbackMin
	name := "removed service"
	if ap.Service != nil {
		duration = ap.Service.DurationMinutes
		name = ap.Service.Name
	}

	return Booked{
		AppointmentID: ap.ID,
		ServiceName:   name,
		Interval:      NewInterval(start, duration),
	}, nil
}

func Intervals(booked []Booked) []Interval {
	out := make([]Interval, 0, len(booked))
	for _, b := range booked {
		out = append(out, b.Interval)
	}
	return out
}
