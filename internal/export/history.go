// Package export reads the HTML pages of a Snapchat data export into events.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/Zuo-Peng/snapsimp/internal/event"
)

var ErrUnexpectedLayout = errors.New("unexpected export layout")

// Direction is also the index of the direction's table in a history page.
type Direction int

const (
	Received Direction = iota
	Sent
)

const historyTables = 2

// History holds the two tables of a snap or chat history page.
type History[E event.Event] struct {
	Received []E
	Sent     []E
}

func (h History[E]) All() []E {
	all := make([]E, 0, len(h.Received)+len(h.Sent))
	all = append(all, h.Received...)
	return append(all, h.Sent...)
}

func (h History[E]) Len() int {
	return len(h.Received) + len(h.Sent)
}

// rowFunc turns the cells of one row into an event; ok is false for rows
// that carry no event, such as headers.
type rowFunc[E event.Event] func(sender, receiver string, cells []string) (e E, ok bool, err error)

func ParseSnapHistory(r io.Reader, owner string) (History[event.Snap], error) {
	return parseHistory(r, owner, func(sender, receiver string, cells []string) (event.Snap, bool, error) {
		if len(cells) < 3 {
			return event.Snap{}, false, nil
		}
		s, err := event.NewSnap(sender, receiver, cells[1], cells[2])
		return s, err == nil, err
	})
}

// ParseChatHistory accepts rows of other|type|timestamp and other|type|text|timestamp.
func ParseChatHistory(r io.Reader, owner string) (History[event.Chat], error) {
	return parseHistory(r, owner, func(sender, receiver string, cells []string) (event.Chat, bool, error) {
		var typ, text, ts string
		switch len(cells) {
		case 3:
			typ, ts = cells[1], cells[2]
		case 4:
			typ, text, ts = cells[1], cells[2], cells[3]
		default:
			return event.Chat{}, false, nil
		}
		c, err := event.NewChat(sender, receiver, typ, text, ts)
		return c, err == nil, err
	})
}

func parseHistory[E event.Event](r io.Reader, owner string, row rowFunc[E]) (History[E], error) {
	var h History[E]
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return h, fmt.Errorf("read html: %w", err)
	}

	tables := doc.Find("table")
	if tables.Length() != historyTables {
		return h, fmt.Errorf("%w: want %d tables, found %d", ErrUnexpectedLayout, historyTables, tables.Length())
	}

	for _, dir := range []Direction{Received, Sent} {
		events, err := parseTable(tables.Eq(int(dir)), dir, owner, row)
		if err != nil {
			return History[E]{}, err
		}
		if dir == Received {
			h.Received = events
		} else {
			h.Sent = events
		}
	}
	return h, nil
}

func parseTable[E event.Event](table *goquery.Selection, dir Direction, owner string, row rowFunc[E]) ([]E, error) {
	var events []E
	var rowErr error
	table.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := tr.Find("td").Map(func(_ int, td *goquery.Selection) string {
			return strings.TrimSpace(td.Text())
		})
		if len(cells) == 0 {
			return true
		}

		// the first cell is always the other account
		sender, receiver := cells[0], owner
		if dir == Sent {
			sender, receiver = owner, cells[0]
		}

		e, ok, err := row(sender, receiver, cells)
		if err != nil {
			rowErr = fmt.Errorf("%s table row %d: %w", dir, i+1, err)
			return false
		}
		if ok {
			events = append(events, e)
		}
		return true
	})
	return events, rowErr
}

func (d Direction) String() string {
	if d == Sent {
		return "sent"
	}
	return "received"
}

func ParseSnapHistoryFile(path, owner string) (History[event.Snap], error) {
	f, err := os.Open(path)
	if err != nil {
		return History[event.Snap]{}, err
	}
	defer f.Close()
	return ParseSnapHistory(f, owner)
}

func ParseChatHistoryFile(path, owner string) (History[event.Chat], error) {
	f, err := os.Open(path)
	if err != nil {
		return History[event.Chat]{}, err
	}
	defer f.Close()
	return ParseChatHistory(f, owner)
}
