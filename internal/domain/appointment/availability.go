package appointment

import "time"

type AvailabilityInput struct {
	BarbershopID uint
	ServiceID    uint
	Date         string
}

// FreeSlots returns, in generation order, every candidate whose interval
// overlaps none of busy.
func FreeSlots(gen SlotGenerator, busy []Interval) []time.Time {
	durationMin := int(gen.Duration / time.Minute)
	free := []time.Time{}

	for start := range gen.Candidates() {
		candidate := NewInterval(start, durationMin)

		taken := false
		for _, b := range busy {
			if candidate.Overlaps(b) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, start)
		}
	}

	return free
}
