package analytics

import (
	"fmt"
	"slices"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/samber/lo"
)

// Date is a calendar day, read in the zone the timestamp was recorded in.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

func (d Date) Compare(other Date) int {
	return d.Time().Compare(other.Time())
}

func (d Date) Before(other Date) bool {
	return d.Compare(other) < 0
}

// DaysUntil counts whole days from d to other.
func (d Date) DaysUntil(other Date) int {
	return int(other.Time().Sub(d.Time()).Hours() / 24)
}

func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ActiveDays returns the distinct days with at least one event, ascending.
func ActiveDays[E event.Event](events []E) []Date {
	days := lo.Uniq(lo.Map(events, func(e E, _ int) Date { return DateOf(e.Timestamp()) }))
	slices.SortFunc(days, Date.Compare)
	return days
}

// InactiveDays returns every day between the first and last active day that
// has no event, ascending.
func InactiveDays[E event.Event](events []E) ([]Date, error) {
	if len(events) == 0 {
		return nil, fmt.Errorf("inactive days: %w", ErrEmptyInput)
	}
	active := ActiveDays(events)
	seen := lo.SliceToMap(active, func(d Date) (Date, struct{}) { return d, struct{}{} })

	var inactive []Date
	last := active[len(active)-1]
	for d := active[0]; !last.Before(d); d = d.AddDays(1) {
		if _, ok := seen[d]; !ok {
			inactive = append(inactive, d)
		}
	}
	return inactive, nil
}

// LongestGap is the longest run of consecutive inactive days, as an inclusive
// pair of dates. ok is false when there is no inactive day.
func LongestGap[E event.Event](events []E) (from, to Date, ok bool, err error) {
	inactive, err := InactiveDays(events)
	if err != nil {
		return Date{}, Date{}, false, err
	}
	best := 0
	for i := 0; i < len(inactive); {
		j := i
		for j+1 < len(inactive) && inactive[j].AddDays(1) == inactive[j+1] {
			j++
		}
		if j-i+1 > best {
			best, from, to = j-i+1, inactive[i], inactive[j]
		}
		i = j + 1
	}
	return from, to, best > 0, nil
}

// ActivityPerDay summarises how many events happened on each active day.
func ActivityPerDay[E event.Event](events []E) (DescriptiveStats[float64], error) {
	if len(events) == 0 {
		return DescriptiveStats[float64]{}, fmt.Errorf("activity per day: %w", ErrEmptyInput)
	}
	perDay := lo.CountValuesBy(events, func(e E) Date { return DateOf(e.Timestamp()) })
	return FloatStats(lo.Map(lo.Values(perDay), func(n int, _ int) float64 { return float64(n) }))
}

func DaysTopSenderSent[E event.Event](events []E) ([]Date, error) {
	_, subset, err := ByTop(events, AsSender)
	if err != nil {
		return nil, err
	}
	return ActiveDays(subset), nil
}

func DaysTopSenderDidNotSend[E event.Event](events []E) ([]Date, error) {
	_, subset, err := ByTop(events, AsSender)
	if err != nil {
		return nil, err
	}
	return InactiveDays(subset)
}

func DaysTopReceiverReceived[E event.Event](events []E) ([]Date, error) {
	_, subset, err := ByTop(events, AsReceiver)
	if err != nil {
		return nil, err
	}
	return ActiveDays(subset), nil
}

func DaysTopReceiverDidNotReceive[E event.Event](events []E) ([]Date, error) {
	_, subset, err := ByTop(events, AsReceiver)
	if err != nil {
		return nil, err
	}
	return InactiveDays(subset)
}
