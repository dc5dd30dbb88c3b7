package appointment

import (
	"iter"
	"time"
)

const DefaultSlotStep = 30 * time.Minute

// SlotGenerator enumerates candidate start times inside a working window.
type SlotGenerator struct {
	WindowStart time.Time
	WindowEnd   time.Time
	Step        time.Duration
	Duration    time.Duration
}

// Candidates yields every start t, beginning at WindowStart and advancing by
// Step, for which t+Duration does not pass WindowEnd. The sequence is lazy
// and can be ranged over any number of times.
func (g SlotGenerator) Candidates() iter.Seq[time.Time] {
	step := g.Step
	if step <= 0 {
		step = DefaultSlotStep
	}

	return func(yield func(time.Time) bool) {
		if g.Duration <= 0 {
			return
		}
		for t := g.WindowStart; !t.Add(g.Duration).After(g.WindowEnd); t = t.Add(step) {
			if !yield(t) {
				return
			}
		}
	}
}
