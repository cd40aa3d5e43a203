package tui

import (
	"fmt"
	"strings"

	"github.com/Zuo-Peng/snapsimp/internal/search"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/samber/lo"
)

// linesPerItem is the number of terminal lines each item occupies.
const linesPerItem = 2

// renderList renders the left panel: the item list with scrolling.
func (m model) renderList(width, height int) string {
	if len(m.items) == 0 {
		return lipgloss.NewStyle().
			Foreground(colorDim).
			Width(width).
			Height(height).
			Align(lipgloss.Center, lipgloss.Center).
			Render("No results")
	}

	var lines []string
	for i, it := range m.items {
		if i < m.listOffset {
			continue
		}
		if len(lines)+linesPerItem > height {
			break
		}
		lines = append(lines, formatItem(it, width, i == m.cursor)...)
	}

	// Pad remaining lines
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	return strings.Join(lines, "\n")
}

// formatItem formats a single item as two lines:
//
//	line 1: [>] contact  date  summary
//	line 2:    snippet or last seen (dimmed)
func formatItem(it item, width int, selected bool) []string {
	// Extract short date from the timestamp (e.g. "2024-01-27 ..." -> "24-01-27")
	date := it.ts
	if len(date) >= 10 {
		date = date[2:10]
	}

	var summary string
	switch it.summary {
	case "sent":
		summary = styleSent.Render("sent")
	case "received":
		summary = styleRecv.Render("received")
	default:
		summary = it.summary
	}

	contact := it.contact
	contactMax := max(width-2-9-runewidth.StringWidth(it.summary)-2, 4)
	if runewidth.StringWidth(contact) > contactMax {
		contact = runewidth.Truncate(contact, contactMax, "…")
	}

	line1 := fmt.Sprintf("%s %s %s", styleContact.Render(contact), date, summary)
	if selected {
		line1 = styleCursor.Render("> ") + line1
	} else {
		line1 = "  " + line1
	}

	// Line 2: snippet (dimmed, indented)
	snippet := strings.NewReplacer("\n", " ", "\t", " ", ">>>", "", "<<<", "").Replace(it.snippet)
	if snippet == "" && it.ts != "" {
		snippet = "last " + it.ts
	}
	snippetMax := max(width-4, 0)
	if runewidth.StringWidth(snippet) > snippetMax {
		snippet = runewidth.Truncate(snippet, snippetMax, "")
	}
	line2 := "    " + styleFaint.Render(snippet)

	return []string{line1, line2}
}

// adjustListScroll keeps the cursor visible within the list viewport.
func (m *model) adjustListScroll(listHeight int) {
	visibleItems := max(listHeight/linesPerItem, 1)
	if m.cursor < m.listOffset {
		m.listOffset = m.cursor
	}
	if m.cursor >= m.listOffset+visibleItems {
		m.listOffset = m.cursor - visibleItems + 1
	}
}

// doFilter narrows the contact list to names containing filter.
func (m model) doFilter(filter string) tea.Cmd {
	contacts := m.contacts
	return func() tea.Msg {
		needle := strings.ToLower(filter)
		matched := lo.Filter(contacts, func(c search.Contact, _ int) bool {
			return strings.Contains(strings.ToLower(c.Name), needle)
		})
		return itemsMsg{query: filter, items: lo.Map(matched, func(c search.Contact, _ int) item {
			return contactItem(c)
		})}
	}
}
