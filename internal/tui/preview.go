package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/index"
	"github.com/Zuo-Peng/snapsimp/internal/report"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// previewKind selects what the right panel shows for the current item.
type previewKind int

const (
	previewChats previewKind = iota
	previewReport
)

func (k previewKind) String() string {
	if k == previewReport {
		return "report"
	}
	return "chats"
}

func (k previewKind) toggle() previewKind {
	if k == previewReport {
		return previewChats
	}
	return previewReport
}

// previewRenderedMsg is sent when an async preview render completes.
type previewRenderedMsg struct {
	key     string
	content string
	hitLine int
	err     error
}

func previewCacheKey(it item, kind previewKind) string {
	return fmt.Sprintf("%s:%d:%s", it.contact, it.hitID, kind)
}

// loadConversationCmd renders the chats with the item's contact, scrolled to
// the hit when there is one.
func loadConversationCmd(db *index.DB, owner string, it item, query string, width int) tea.Cmd {
	return func() tea.Msg {
		content, hitLine, err := report.RenderConversation(db, owner, it.contact, report.Options{
			HitID:   it.hitID,
			Context: -1,
			Width:   width,
			Query:   query,
		})
		return previewRenderedMsg{key: previewCacheKey(it, previewChats), content: content, hitLine: hitLine, err: err}
	}
}

// loadRelationshipCmd renders the relationship report of the item's contact.
// Events not handed in are read from db.
func loadRelationshipCmd(db *index.DB, owner string, it item, snaps []event.Snap, chats []event.Chat) tea.Cmd {
	return func() tea.Msg {
		msg := previewRenderedMsg{key: previewCacheKey(it, previewReport), hitLine: -1}
		if snaps == nil && chats == nil && db != nil {
			if snaps, msg.err = db.Snaps(); msg.err != nil {
				return msg
			}
			if chats, msg.err = db.Chats(); msg.err != nil {
				return msg
			}
		}
		r, err := report.BuildRelationship(owner, it.contact, snaps, chats)
		if err != nil {
			msg.err = err
			return msg
		}
		var b strings.Builder
		msg.err = report.RenderRelationship(&b, r)
		msg.content = b.String()
		return msg
	}
}

func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = styleListFrame
	return vp
}
