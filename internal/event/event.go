// Package event holds the immutable records read from a messaging export.
// A record is either a Snap or a Chat; the set is closed.
package event

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	ErrUnknownType     = errors.New("unknown event type")
	ErrTimestampFormat = errors.New("malformed timestamp")
)

// TimestampLayout is the layout used by the export, e.g. "2024-01-02 15:04:05 UTC".
const TimestampLayout = "2006-01-02 15:04:05 MST"

var timestampRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} [A-Za-z][A-Za-z0-9+\-]{1,5}$`)

type Kind int

const (
	KindSnap Kind = iota + 1
	KindChat
)

func (k Kind) String() string {
	switch k {
	case KindSnap:
		return "snap"
	case KindChat:
		return "chat"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "snap":
		return KindSnap, nil
	case "chat":
		return KindChat, nil
	default:
		return 0, fmt.Errorf("%w: kind %q", ErrUnknownType, s)
	}
}

type Type string

const (
	Image Type = "IMAGE"
	Video Type = "VIDEO"
	Text  Type = "TEXT"
	Media Type = "MEDIA"
)

// Kind reports which variant a type belongs to, or 0 for an unrecognized type.
func (t Type) Kind() Kind {
	switch t {
	case Image, Video:
		return KindSnap
	case Text, Media:
		return KindChat
	default:
		return 0
	}
}

// ParseType accepts only the types of the given variant.
func ParseType(kind Kind, raw string) (Type, error) {
	t := Type(raw)
	if t.Kind() != kind {
		return "", fmt.Errorf("%w: %q is not a %s type", ErrUnknownType, raw, kind)
	}
	return t, nil
}

// Event is implemented by Snap and Chat only.
type Event interface {
	Sender() string
	Receiver() string
	Type() Type
	Timestamp() time.Time
	Kind() Kind
	sealed()
}

// ParseTimestamp parses the export layout. Unknown zone abbreviations keep
// their name with a zero offset.
func ParseTimestamp(s string) (time.Time, error) {
	if !timestampRe.MatchString(s) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrTimestampFormat, s)
	}
	t, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrTimestampFormat, s, err)
	}
	return t, nil
}

// FormatTimestamp renders t in the export layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
