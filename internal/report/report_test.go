package report

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/index"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func at(minutes int) time.Time {
	return base.Add(time.Duration(minutes) * time.Minute)
}

func snap(t *testing.T, from, to string, typ event.Type, minutes int) event.Snap {
	t.Helper()
	s, err := event.SnapAt(from, to, typ, at(minutes))
	require.NoError(t, err)
	return s
}

func chat(t *testing.T, from, to string, typ event.Type, text string, minutes int) event.Chat {
	t.Helper()
	c, err := event.ChatAt(from, to, typ, text, at(minutes))
	require.NoError(t, err)
	return c
}

func fixture(t *testing.T) ([]event.Snap, []event.Chat) {
	snaps := []event.Snap{
		snap(t, "alice", "me", event.Image, 0),
		snap(t, "me", "alice", event.Video, 5),
		snap(t, "bob", "me", event.Image, 30),
		snap(t, "alice", "me", event.Image, 2*24*60),
	}
	chats := []event.Chat{
		chat(t, "alice", "me", event.Text, "hi", 0),
		chat(t, "me", "alice", event.Text, "hey", 3),
		chat(t, "alice", "me", event.Media, "", 10),
		chat(t, "me", "alice", event.Text, "ok", 20),
	}
	return snaps, chats
}

func TestBuildRelationship(t *testing.T) {
	snaps, chats := fixture(t)

	r, err := BuildRelationship("me", "alice", snaps, chats)
	require.NoError(t, err)
	require.Empty(t, r.Errors)

	require.Equal(t, Counts{Sent: 1, Received: 2}, r.Snaps)
	require.Equal(t, Counts{Sent: 2, Received: 2}, r.Chats)

	require.Len(t, r.Ratios, 4)
	require.Equal(t, "snaps sent IMAGE/VIDEO", r.Ratios[0].Label)
	require.InDelta(t, 0.0, *r.Ratios[0].Value, 1e-9)
	require.Nil(t, r.Ratios[1].Value) // no video received
	require.Nil(t, r.Ratios[2].Value) // no media sent
	require.InDelta(t, 1.0, *r.Ratios[3].Value, 1e-9)

	require.NotNil(t, r.ChatConv)
	require.Equal(t, 4, r.ChatConv.Events)
	require.Equal(t, 20*time.Minute, r.ChatConv.Duration)
	require.Equal(t, 4, r.ChatConv.SwitchingPoints)
	require.Equal(t, "me", r.ChatConv.Responses[0].Identity)
	require.Equal(t, 17*time.Minute, r.ChatConv.Responses[0].Stats.Average)
	require.Equal(t, 10*time.Minute, r.ChatConv.Responses[1].Stats.Average)

	require.NotNil(t, r.SnapConv)
	require.Equal(t, "alice", r.SnapConv.DominantSender)
	require.Nil(t, r.SnapConv.Responses[0].Stats)
	require.Equal(t, 48*time.Hour, r.SnapConv.Responses[1].Stats.Maximum)

	require.Equal(t, 2, r.Calendar.ActiveDays)
	require.Equal(t, 1, r.Calendar.InactiveDays)
	require.Equal(t, "2024-01-02", r.Calendar.GapFrom.String())
	require.Equal(t, 6.0, r.Calendar.PerDay.Maximum)
	require.Equal(t, 3.5, r.Calendar.PerDay.Average)
}

func TestBuildRelationship_Partial(t *testing.T) {
	snaps, chats := fixture(t)

	r, err := BuildRelationship("me", "bob", snaps, chats)
	require.NoError(t, err)
	require.Nil(t, r.SnapConv)
	require.Nil(t, r.ChatConv)
	require.Contains(t, r.Errors, "snap conversation")
	require.Contains(t, r.Errors, "chat conversation")
	require.NotContains(t, r.Errors, "calendar")
	require.Equal(t, 1, r.Calendar.ActiveDays)
	require.Nil(t, r.Calendar.GapFrom)

	_, err = BuildRelationship("me", "stranger", snaps, chats)
	require.ErrorIs(t, err, analytics.ErrEmptyInput)
}

func TestRenderRelationship(t *testing.T) {
	snaps, chats := fixture(t)
	r, err := BuildRelationship("me", "alice", snaps, chats)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, RenderRelationship(&buf, r))
	out := buf.String()

	require.Contains(t, out, "me <> alice")
	require.Contains(t, out, "snaps  sent 1  received 2")
	require.Contains(t, out, "n/a")
	require.Contains(t, out, "me replies  not enough data")
	require.Contains(t, out, "alice replies  min 2d  avg 2d  max 2d")
	require.Contains(t, out, "alice replies  min 10m0s")
	require.Contains(t, out, "longest gap    2024-01-02 .. 2024-01-02 (1 days)")

	r, err = BuildRelationship("me", "bob", snaps, chats)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, RenderRelationship(&buf, r))
	require.Contains(t, buf.String(), "unavailable:")
}

func TestRenderRanking(t *testing.T) {
	snaps, _ := fixture(t)

	var buf bytes.Buffer
	RenderRanking(&buf, analytics.CountBySender(snaps), 2)
	out := buf.String()
	require.Contains(t, out, "alice")
	require.Contains(t, out, "50.0%")
	require.Contains(t, out, "me")
	require.NotContains(t, out, "bob")
}

func TestWriteConversationJSON(t *testing.T) {
	_, chats := fixture(t)
	conv, err := analytics.NewConversation(chats)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteConversationJSON(&buf, conv))

	var doc struct {
		Users []string `json:"users"`
		Chats []struct {
			Sender    string `json:"sender"`
			Type      string `json:"type"`
			Text      string `json:"text"`
			Timestamp string `json:"timestamp"`
		} `json:"chats"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Equal(t, []string{"alice", "me"}, doc.Users)
	require.Len(t, doc.Chats, 4)
	require.Equal(t, "hey", doc.Chats[1].Text)
	require.Equal(t, "MEDIA", doc.Chats[2].Type)
	require.Equal(t, "2024-01-01 12:03:00 UTC", doc.Chats[1].Timestamp)

	path, err := SaveConversationJSON(t.TempDir(), conv)
	require.NoError(t, err)
	require.Equal(t, "alice_me.json", filepath.Base(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, buf.String(), string(data))
}

func TestHighlightKeywords(t *testing.T) {
	require.Equal(t, "no query", highlightKeywords("no query", ""))
	require.Equal(t, "a "+colorBoldRed+"Pizza"+colorReset+" b", highlightKeywords("a Pizza b", "pizza AND"))
	require.Equal(t, colorBoldRed+"pie"+colorReset, highlightKeywords("pie", `"pie"`))
}

func TestWrapLine(t *testing.T) {
	require.Equal(t, []string{"abc", "def", "g"}, wrapLine("abcdefg", 3))
	require.Equal(t, []string{"\033[1mab", "cd\033[0m"}, wrapLine("\033[1mabcd\033[0m", 2))
	require.Equal(t, []string{"你好", "世界"}, wrapLine("你好世界", 4))
	require.Equal(t, []string{""}, wrapLine("", 4))
	require.Equal(t, []string{"abcdefg"}, wrapLine("abcdefg", 0))
}

const chatHistoryHTML = `<table>
  <tr><td>alice</td><td>TEXT</td><td>pizza tonight?</td><td>2024-01-01 18:00:00 UTC</td></tr>
  <tr><td>alice</td><td>MEDIA</td><td>2024-01-01 18:01:00 UTC</td></tr>
  <tr><td>alice</td><td>TEXT</td><td>see you</td><td>2024-01-01 18:10:00 UTC</td></tr>
</table>
<table>
  <tr><td>alice</td><td>TEXT</td><td>yes, pizza</td><td>2024-01-01 18:05:00 UTC</td></tr>
</table>`

func TestRenderConversation(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "chat_history.html"), []byte(chatHistoryHTML), 0o644))
	db, err := index.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()
	_, err = index.IndexAll(db, root, "nathan", slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	var hitID int64
	require.NoError(t, db.Raw().QueryRow("SELECT rowid FROM events WHERE text = 'yes, pizza'").Scan(&hitID))

	out, hitLine, err := RenderConversation(db, "nathan", "alice", Options{HitID: hitID, Context: -1, Query: "pizza"})
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	require.Equal(t, 5, hitLine)
	require.Contains(t, lines[1], "alice >")
	require.Contains(t, lines[4], "nathan >")
	require.Contains(t, lines[hitLine], "yes, "+colorBoldRed+"pizza")
	require.NotContains(t, out, "(media)")
	require.Contains(t, out, "see you")

	out, hitLine, err = RenderConversation(db, "nathan", "alice", Options{HitID: hitID, Context: 1})
	require.NoError(t, err)
	require.Equal(t, 3, hitLine)
	require.NotContains(t, out, "pizza tonight?")
	require.Contains(t, out, "(1 chats before)")

	out, _, err = RenderConversation(db, "nathan", "nobody", Options{})
	require.NoError(t, err)
	require.Equal(t, "(no chats with nobody)", out)
}
