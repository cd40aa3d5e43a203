package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/search"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func testListModel(t *testing.T) model {
	t.Helper()
	var snaps []event.Snap
	for i, pair := range [][2]string{{"alice", "me"}, {"me", "alice"}, {"alicia", "me"}, {"me", "alicia"}} {
		s, err := event.SnapAt(pair[0], pair[1], event.Image, base.Add(time.Duration(i)*time.Minute))
		require.NoError(t, err)
		snaps = append(snaps, s)
	}
	contacts := []search.Contact{
		{Name: "alice", Snaps: 2, Last: "2024-01-01 12:01:00 UTC"},
		{Name: "alicia", Snaps: 2, Last: "2024-01-01 12:03:00 UTC"},
		{Name: "bob", Chats: 1, Last: "2024-01-02 09:00:00 UTC"},
	}
	return listModel(nil, "me", contacts, snaps, nil)
}

func update(t *testing.T, m model, msg tea.Msg) model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(model)
}

func TestListMode_Filter(t *testing.T) {
	m := testListModel(t)

	msg := m.doFilter("")().(itemsMsg)
	require.Len(t, msg.items, 3)

	msg = m.doFilter("ALI")().(itemsMsg)
	require.Len(t, msg.items, 2)
	require.Equal(t, "alice", msg.items[0].contact)
	require.Equal(t, "2 snaps 0 chats", msg.items[0].summary)

	// results for an outdated query are dropped
	m.query = "bo"
	m = update(t, m, msg)
	require.Empty(t, m.items)

	m.query = "ALI"
	m = update(t, m, msg)
	require.Len(t, m.items, 2)
}

func TestListMode_NavigateAndChoose(t *testing.T) {
	m := testListModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, m.doFilter("")())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	require.Equal(t, 1, m.cursor)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(t, 0, m.cursor)

	preview := m.loadCurrentPreview()
	require.NotNil(t, preview)
	rendered := preview().(previewRenderedMsg)
	require.NoError(t, rendered.err)
	require.Contains(t, rendered.content, "me <> alice")

	m = update(t, m, rendered)
	require.Equal(t, "alice:0:report", m.previewKey)
	require.Nil(t, m.loadCurrentPreview())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.quitting)
	require.Equal(t, "alice", m.chosen.contact)
	require.Empty(t, m.View())
}

func TestListMode_PreviewError(t *testing.T) {
	m := testListModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m.query = "bob"
	m = update(t, m, m.doFilter("bob")())
	require.Len(t, m.items, 1)

	rendered := m.loadCurrentPreview()().(previewRenderedMsg)
	require.Error(t, rendered.err)
	m = update(t, m, rendered)
	require.Contains(t, m.preview.View(), "Preview error")
}

func TestView(t *testing.T) {
	m := testListModel(t)
	require.Empty(t, m.View())

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, m.doFilter("")())
	view := m.View()
	require.Contains(t, view, "alicia")
	require.Contains(t, view, "3 contacts")
}

func TestFormatItem(t *testing.T) {
	it := hitItem(search.Result{
		Contact:   "alice",
		EventID:   7,
		Direction: "sent",
		Ts:        "2024-01-01 18:05:00 UTC",
		Snippet:   "yes, >>>pizza<<<",
	})
	lines := formatItem(it, 40, true)
	require.Len(t, lines, 2)
	require.Contains(t, lines[0], "alice")
	require.Contains(t, lines[0], "24-01-01")
	require.Contains(t, lines[1], "yes, pizza")
	require.False(t, strings.Contains(lines[1], ">>>"))
	require.Equal(t, "alice:7:chats", previewCacheKey(it, previewChats))
}

func TestHitTest(t *testing.T) {
	m := model{width: 100, height: 30}
	region, idx := m.hitTest(5, 2)
	require.Equal(t, regionList, region)
	require.Equal(t, 0, idx)

	region, idx = m.hitTest(5, 5)
	require.Equal(t, regionList, region)
	require.Equal(t, 1, idx)

	region, _ = m.hitTest(90, 10)
	require.Equal(t, regionPreview, region)

	region, _ = m.hitTest(5, 0)
	require.Equal(t, regionNone, region)
}

func TestSwitchPreview(t *testing.T) {
	m := testListModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, m.doFilter("")())
	require.Equal(t, previewReport, m.show)

	m = update(t, m, m.loadCurrentPreview()())
	require.Equal(t, "alice:0:report", m.previewKey)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(model)
	require.Equal(t, previewChats, m.show)
	require.NotNil(t, cmd)
	require.Contains(t, m.View(), "chats")

	// a report finishing after the switch is stale
	m = update(t, m, previewRenderedMsg{key: "alice:0:report", content: "old"})
	require.Equal(t, "alice:0:report", m.previewKey)
	require.NotContains(t, m.preview.View(), "old")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, previewReport, m.show)
	require.Nil(t, m.loadCurrentPreview())
}
