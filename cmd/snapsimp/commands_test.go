package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/stretchr/testify/require"
)

func chats(t *testing.T) []event.Chat {
	t.Helper()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	rows := []struct {
		from, to string
		typ      event.Type
		day      int
	}{
		{"me", "alice", event.Text, 0},
		{"alice", "me", event.Text, 0},
		{"me", "alice", event.Media, 1},
		{"me", "bob", event.Text, 4},
		{"bob", "me", event.Text, 4},
	}
	var out []event.Chat
	for _, r := range rows {
		c, err := event.ChatAt(r.from, r.to, r.typ, "x", base.AddDate(0, 0, r.day))
		require.NoError(t, err)
		out = append(out, c)
	}
	return out
}

func TestPrintTop(t *testing.T) {
	var buf bytes.Buffer
	printTop(&buf, "Chats", chats(t), event.Text, event.Media, 5)
	out := buf.String()

	require.Contains(t, out, "=== Chats by sender ===")
	require.Contains(t, out, "=== Chats by receiver ===")
	require.Contains(t, out, "top sender me: TEXT/MEDIA ratio 2.00")
	require.Contains(t, out, "top receiver alice: TEXT/MEDIA ratio 1.00")

	buf.Reset()
	printTop(&buf, "Snaps", []event.Snap{}, event.Image, event.Video, 5)
	require.Contains(t, buf.String(), "none indexed")
}

func TestPrintPresence(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printPresence(&buf, "Chats", chats(t), true))
	out := buf.String()

	require.Contains(t, out, "=== Chats: 2024-03-01 to 2024-03-05 ===")
	require.Contains(t, out, "active days:   3")
	require.Contains(t, out, "inactive days: 2")
	require.Contains(t, out, "longest gap:   2024-03-03 .. 2024-03-04 (2 days)")
	require.Contains(t, out, "top sender me sent on 3 days")
	require.Contains(t, out, "top sender me did not send on 2 days")
	require.Contains(t, out, "2024-03-03 2024-03-04")

	require.Error(t, printPresence(&buf, "Chats", []event.Chat{}, false))
}
