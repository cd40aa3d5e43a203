package analytics

import (
	"testing"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// at returns base shifted by the given number of minutes.
func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func snap(t *testing.T, from, to string, typ event.Type, when time.Time) event.Snap {
	t.Helper()
	s, err := event.SnapAt(from, to, typ, when)
	require.NoError(t, err)
	return s
}

func chat(t *testing.T, from, to, text string, when time.Time) event.Chat {
	t.Helper()
	c, err := event.ChatAt(from, to, event.Text, text, when)
	require.NoError(t, err)
	return c
}

func day(t *testing.T, s string) Date {
	t.Helper()
	d, err := ParseDate(s)
	require.NoError(t, err)
	return d
}
