package event

import (
	"fmt"
	"time"
)

// Snap is a single image or video sent from one account to another.
type Snap struct {
	sender   string
	receiver string
	typ      Type
	at       time.Time
}

// NewSnap builds a Snap from the raw cell values of an export row.
func NewSnap(sender, receiver, typ, timestamp string) (Snap, error) {
	t, err := ParseType(KindSnap, typ)
	if err != nil {
		return Snap{}, err
	}
	at, err := ParseTimestamp(timestamp)
	if err != nil {
		return Snap{}, err
	}
	return Snap{sender: sender, receiver: receiver, typ: t, at: at}, nil
}

// SnapAt builds a Snap from an already parsed type and time.
func SnapAt(sender, receiver string, typ Type, at time.Time) (Snap, error) {
	if typ.Kind() != KindSnap {
		return Snap{}, fmt.Errorf("%w: %q is not a snap type", ErrUnknownType, typ)
	}
	return Snap{sender: sender, receiver: receiver, typ: typ, at: at}, nil
}

func (s Snap) Sender() string       { return s.sender }
func (s Snap) Receiver() string     { return s.receiver }
func (s Snap) Type() Type           { return s.typ }
func (s Snap) Timestamp() time.Time { return s.at }
func (s Snap) Kind() Kind           { return KindSnap }
func (Snap) sealed()                {}

func (s Snap) String() string {
	return fmt.Sprintf("Snap(%s -> %s, %s, %s)", s.sender, s.receiver, s.typ, FormatTimestamp(s.at))
}
