package analytics

import (
	"fmt"
	"slices"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/samber/lo"
)

// Conversation is the validated set of events exchanged by exactly two
// identities, each of which both sent and received. It is never mutated;
// build a new one when more events arrive.
type Conversation[E event.Event] struct {
	events       []E
	participants [2]string
}

func NewConversation[E event.Event](events []E) (*Conversation[E], error) {
	senders := lo.Uniq(lo.Map(events, func(e E, _ int) string { return e.Sender() }))
	receivers := lo.Uniq(lo.Map(events, func(e E, _ int) string { return e.Receiver() }))
	union := lo.Union(senders, receivers)
	if len(senders) != 2 || len(receivers) != 2 || len(union) != 2 {
		return nil, fmt.Errorf("%w: senders=%v receivers=%v", ErrInvariantViolation, senders, receivers)
	}

	sorted := SortAscending(events)
	// the earliest event may be self-addressed
	first := sorted[0].Sender()
	second, _ := lo.Find(union, func(id string) bool { return id != first })
	return &Conversation[E]{
		events:       sorted,
		participants: [2]string{first, second},
	}, nil
}

// Events returns a copy of the events in ascending timestamp order.
func (c *Conversation[E]) Events() []E {
	return slices.Clone(c.events)
}

func (c *Conversation[E]) Len() int {
	return len(c.events)
}

// Participants returns both identities, the sender of the earliest event first.
func (c *Conversation[E]) Participants() [2]string {
	return c.participants
}

func (c *Conversation[E]) IsParticipant(identity string) bool {
	return identity == c.participants[0] || identity == c.participants[1]
}

// Other returns the participant that is not identity.
func (c *Conversation[E]) Other(identity string) (string, error) {
	switch identity {
	case c.participants[0]:
		return c.participants[1], nil
	case c.participants[1]:
		return c.participants[0], nil
	default:
		return "", fmt.Errorf("%w: %q", ErrNotAParticipant, identity)
	}
}

func (c *Conversation[E]) Earliest() (E, error) {
	if len(c.events) == 0 {
		var zero E
		return zero, ErrEmptyConversation
	}
	return c.events[0], nil
}

func (c *Conversation[E]) Latest() (E, error) {
	if len(c.events) == 0 {
		var zero E
		return zero, ErrEmptyConversation
	}
	return c.events[len(c.events)-1], nil
}

func (c *Conversation[E]) Duration() (time.Duration, error) {
	first, err := c.Earliest()
	if err != nil {
		return 0, err
	}
	last, err := c.Latest()
	if err != nil {
		return 0, err
	}
	return last.Timestamp().Sub(first.Timestamp()), nil
}

func (c *Conversation[E]) DominantSender() string {
	id, _ := CountBySender(c.events).Top()
	return id
}

func (c *Conversation[E]) DominantReceiver() string {
	id, _ := CountByReceiver(c.events).Top()
	return id
}

// EventsBy returns the events in which identity plays role.
func (c *Conversation[E]) EventsBy(identity string, role Role) ([]E, error) {
	if !c.IsParticipant(identity) {
		return nil, fmt.Errorf("%w: %q", ErrNotAParticipant, identity)
	}
	return Filter(c.events, identity, role), nil
}

func (c *Conversation[E]) CountBy(identity string, role Role) (int, error) {
	events, err := c.EventsBy(identity, role)
	if err != nil {
		return 0, err
	}
	return len(events), nil
}

func (c *Conversation[E]) String() string {
	first, _ := c.Earliest()
	last, _ := c.Latest()
	return fmt.Sprintf("Conversation(users=%v, events=%d, earliest=%s, latest=%s)",
		c.participants, len(c.events),
		event.FormatTimestamp(first.Timestamp()), event.FormatTimestamp(last.Timestamp()))
}

// Between keeps the events exchanged by a and b, in either direction.
func Between[E event.Event](a, b string, events []E) []E {
	return lo.Filter(events, func(e E, _ int) bool {
		return (e.Sender() == a && e.Receiver() == b) || (e.Sender() == b && e.Receiver() == a)
	})
}

// Conversations builds one conversation per counterpart of owner, most active
// counterpart first. Relationships that only flow one way are skipped.
func Conversations[E event.Event](owner string, events []E) []*Conversation[E] {
	involving := lo.Filter(events, func(e E, _ int) bool {
		return e.Sender() == owner || e.Receiver() == owner
	})
	counterparts := rankIdentities(lo.Map(involving, func(e E, _ int) string {
		if e.Sender() == owner {
			return e.Receiver()
		}
		return e.Sender()
	}))

	var out []*Conversation[E]
	for _, id := range counterparts.Identities() {
		conv, err := NewConversation(Between(owner, id, involving))
		if err != nil {
			continue
		}
		out = append(out, conv)
	}
	return out
}
