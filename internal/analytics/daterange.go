package analytics

import (
	"fmt"
	"time"
)

// DateRange is an inclusive [Start, End] interval.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	return DateRange{Start: start, End: end}, nil
}

func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func (r DateRange) Overlaps(other DateRange) bool {
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	return !start.After(end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("DateRange(%s, %s)", r.Start.Format(time.DateTime), r.End.Format(time.DateTime))
}
