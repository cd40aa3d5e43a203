package event

import (
	"fmt"
	"time"
)

// Chat is a text or media message. Text is only kept for TEXT chats.
type Chat struct {
	sender   string
	receiver string
	typ      Type
	text     string
	at       time.Time
}

// NewChat builds a Chat from the raw cell values of an export row.
func NewChat(sender, receiver, typ, text, timestamp string) (Chat, error) {
	t, err := ParseType(KindChat, typ)
	if err != nil {
		return Chat{}, err
	}
	at, err := ParseTimestamp(timestamp)
	if err != nil {
		return Chat{}, err
	}
	return newChat(sender, receiver, t, text, at), nil
}

// ChatAt builds a Chat from an already parsed type and time. Text is dropped for MEDIA.
func ChatAt(sender, receiver string, typ Type, text string, at time.Time) (Chat, error) {
	if typ.Kind() != KindChat {
		return Chat{}, fmt.Errorf("%w: %q is not a chat type", ErrUnknownType, typ)
	}
	return newChat(sender, receiver, typ, text, at), nil
}

func newChat(sender, receiver string, typ Type, text string, at time.Time) Chat {
	if typ == Media {
		text = ""
	}
	return Chat{sender: sender, receiver: receiver, typ: typ, text: text, at: at}
}

func (c Chat) Sender() string       { return c.sender }
func (c Chat) Receiver() string     { return c.receiver }
func (c Chat) Type() Type           { return c.typ }
func (c Chat) Text() string         { return c.text }
func (c Chat) Timestamp() time.Time { return c.at }
func (c Chat) Kind() Kind           { return KindChat }
func (Chat) sealed()                {}

func (c Chat) String() string {
	return fmt.Sprintf("Chat(%s -> %s, %s, %s, %q)", c.sender, c.receiver, c.typ, FormatTimestamp(c.at), c.text)
}
