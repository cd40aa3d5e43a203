package analytics

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// SwitchingPoints returns the last event of every run of consecutive events
// from the same sender. The final event always closes the last run.
func (c *Conversation[E]) SwitchingPoints() []E {
	if len(c.events) == 0 {
		return nil
	}
	var points []E
	for i := 0; i < len(c.events)-1; i++ {
		if c.events[i].Sender() != c.events[i+1].Sender() {
			points = append(points, c.events[i])
		}
	}
	return append(points, c.events[len(c.events)-1])
}

// ResponseStats measures how long identity takes between the ends of its own
// consecutive volleys, that is the time it characteristically takes to answer
// after the other side has finished. Only identity's side is measured; call it
// once per participant for both directions.
func (c *Conversation[E]) ResponseStats(identity string) (DescriptiveStats[time.Duration], error) {
	if !c.IsParticipant(identity) {
		return DescriptiveStats[time.Duration]{}, fmt.Errorf("%w: %w: %q", ErrInsufficientData, ErrNotAParticipant, identity)
	}

	own := lo.FilterMap(c.SwitchingPoints(), func(e E, _ int) (time.Time, bool) {
		return e.Timestamp(), e.Sender() == identity
	})
	if len(own) < 2 {
		return DescriptiveStats[time.Duration]{}, fmt.Errorf("%w: %q has %d switching points", ErrInsufficientData, identity, len(own))
	}

	gaps := make([]time.Duration, 0, len(own)-1)
	for i := 1; i < len(own); i++ {
		gaps = append(gaps, own[i].Sub(own[i-1]))
	}
	return DurationStats(gaps)
}
