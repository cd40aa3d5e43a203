// Package analytics derives rankings, conversations, reply latency and
// calendar presence from flat lists of events. Every function is pure: inputs
// are never mutated and results are recomputed on each call.
package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/samber/lo"
)

// Role selects which side of an event an identity is matched against.
type Role int

const (
	AsSender Role = iota
	AsReceiver
)

func (r Role) String() string {
	if r == AsReceiver {
		return "receiver"
	}
	return "sender"
}

func identityOf[E event.Event](e E, role Role) string {
	if role == AsReceiver {
		return e.Receiver()
	}
	return e.Sender()
}

type Count struct {
	Identity string `json:"identity"`
	Count    int    `json:"count"`
}

// Ranking is ordered by descending count; equal counts keep first-seen order.
type Ranking []Count

func (r Ranking) Top() (string, bool) {
	if len(r) == 0 {
		return "", false
	}
	return r[0].Identity, true
}

func (r Ranking) Of(identity string) int {
	c, _ := lo.Find(r, func(c Count) bool { return c.Identity == identity })
	return c.Count
}

func (r Ranking) Total() int {
	return lo.SumBy(r, func(c Count) int { return c.Count })
}

func (r Ranking) Identities() []string {
	return lo.Map(r, func(c Count, _ int) string { return c.Identity })
}

// CountBy ranks the identities found in the given role.
func CountBy[E event.Event](events []E, role Role) Ranking {
	return rankIdentities(lo.Map(events, func(e E, _ int) string { return identityOf(e, role) }))
}

func rankIdentities(ids []string) Ranking {
	var ranking Ranking
	seen := make(map[string]int)
	for _, id := range ids {
		i, ok := seen[id]
		if !ok {
			i = len(ranking)
			seen[id] = i
			ranking = append(ranking, Count{Identity: id})
		}
		ranking[i].Count++
	}
	// ranking is in first-seen order here, so a stable sort keeps ties that way
	slices.SortStableFunc(ranking, func(a, b Count) int { return cmp.Compare(b.Count, a.Count) })
	return ranking
}

func CountBySender[E event.Event](events []E) Ranking   { return CountBy(events, AsSender) }
func CountByReceiver[E event.Event](events []E) Ranking { return CountBy(events, AsReceiver) }

func top[E event.Event](events []E, role Role) (string, error) {
	id, ok := CountBy(events, role).Top()
	if !ok {
		return "", fmt.Errorf("top %s: %w", role, ErrEmptyInput)
	}
	return id, nil
}

func TopSender[E event.Event](events []E) (string, error)   { return top(events, AsSender) }
func TopReceiver[E event.Event](events []E) (string, error) { return top(events, AsReceiver) }

// Filter keeps the events where identity plays role, preserving order.
func Filter[E event.Event](events []E, identity string, role Role) []E {
	return lo.Filter(events, func(e E, _ int) bool { return identityOf(e, role) == identity })
}

func FilterBySender[E event.Event](events []E, identity string) []E {
	return Filter(events, identity, AsSender)
}

func FilterByReceiver[E event.Event](events []E, identity string) []E {
	return Filter(events, identity, AsReceiver)
}

// ByTop returns the events of the most frequent identity in role.
func ByTop[E event.Event](events []E, role Role) (string, []E, error) {
	id, err := top(events, role)
	if err != nil {
		return "", nil, err
	}
	return id, Filter(events, id, role), nil
}

func CountTypes[E event.Event](events []E) map[event.Type]int {
	return lo.CountValuesBy(events, func(e E) event.Type { return e.Type() })
}

// TypeRatio divides the number of num-typed events by the number of den-typed
// events in the same list.
func TypeRatio[E event.Event](events []E, num, den event.Type) (float64, error) {
	counts := CountTypes(events)
	if counts[den] == 0 {
		return 0, fmt.Errorf("%s to %s ratio: %w", num, den, ErrDivisionByZero)
	}
	return float64(counts[num]) / float64(counts[den]), nil
}

func TypeRatioBySender[E event.Event](events []E, identity string, num, den event.Type) (float64, error) {
	return TypeRatio(FilterBySender(events, identity), num, den)
}

func TypeRatioByReceiver[E event.Event](events []E, identity string, num, den event.Type) (float64, error) {
	return TypeRatio(FilterByReceiver(events, identity), num, den)
}

func TypeRatioOfTopSender[E event.Event](events []E, num, den event.Type) (float64, error) {
	_, subset, err := ByTop(events, AsSender)
	if err != nil {
		return 0, err
	}
	return TypeRatio(subset, num, den)
}

func TypeRatioOfTopReceiver[E event.Event](events []E, num, den event.Type) (float64, error) {
	_, subset, err := ByTop(events, AsReceiver)
	if err != nil {
		return 0, err
	}
	return TypeRatio(subset, num, den)
}

func byTimestamp[E event.Event](a, b E) int {
	return a.Timestamp().Compare(b.Timestamp())
}

// SortAscending returns a chronologically ordered copy; equal timestamps keep input order.
func SortAscending[E event.Event](events []E) []E {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, byTimestamp[E])
	return sorted
}

func SortDescending[E event.Event](events []E) []E {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b E) int { return byTimestamp(b, a) })
	return sorted
}

// Span is the range covered by events. It needs at least two events.
func Span[E event.Event](events []E) (DateRange, error) {
	if len(events) < 2 {
		return DateRange{}, fmt.Errorf("span of %d events: %w", len(events), ErrInsufficientData)
	}
	first := slices.MinFunc(events, byTimestamp[E])
	last := slices.MaxFunc(events, byTimestamp[E])
	return NewDateRange(first.Timestamp(), last.Timestamp())
}

func DurationWithTopSender[E event.Event](events []E) (time.Duration, error) {
	return durationWithTop(events, AsSender)
}

func DurationWithTopReceiver[E event.Event](events []E) (time.Duration, error) {
	return durationWithTop(events, AsReceiver)
}

func durationWithTop[E event.Event](events []E, role Role) (time.Duration, error) {
	_, subset, err := ByTop(events, role)
	if err != nil {
		return 0, err
	}
	span, err := Span(subset)
	if err != nil {
		return 0, err
	}
	return span.Duration(), nil
}
