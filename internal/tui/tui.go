package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/index"
	"github.com/Zuo-Peng/snapsimp/internal/search"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const debounceDelay = 200 * time.Millisecond

type tuiMode int

const (
	modeSearch tuiMode = iota
	modeList
)

// item is one row of the left panel: a search hit or a contact.
type item struct {
	contact string
	hitID   int64 // 0 in list mode
	ts      string
	summary string
	snippet string
}

func hitItem(r search.Result) item {
	return item{contact: r.Contact, hitID: r.EventID, ts: r.Ts, summary: r.Direction, snippet: r.Snippet}
}

func contactItem(c search.Contact) item {
	return item{
		contact: c.Name,
		ts:      c.Last,
		summary: fmt.Sprintf("%d snaps %d chats", c.Snaps, c.Chats),
	}
}

// itemsMsg carries the rows for the query typed at the time it was sent.
type itemsMsg struct {
	query string
	items []item
	err   error
}

type debounceTickMsg struct {
	query string
}

type model struct {
	db         *index.DB
	owner      string
	searchOpts search.Options
	mode       tuiMode
	show       previewKind

	query    string
	items    []item
	contacts []search.Contact // list mode, unfiltered
	snaps    []event.Snap     // list mode, for reports
	chats    []event.Chat

	cursor     int
	listOffset int
	input      textinput.Model
	preview    viewport.Model
	previewKey string

	width, height int
	ready         bool
	quitting      bool
	chosen        *item
}

func newInput(placeholder, value string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.SetValue(value)
	ti.Prompt = "> "
	ti.PromptStyle = styleInput
	ti.TextStyle = styleInput
	ti.CharLimit = 256
	return ti
}

func initialModel(db *index.DB, query string, opts search.Options) model {
	return model{
		db:         db,
		owner:      opts.Owner,
		searchOpts: opts,
		show:       previewChats,
		query:      query,
		input:      newInput("Search chats...", query),
		preview:    viewport.New(0, 0),
	}
}

func listModel(db *index.DB, owner string, contacts []search.Contact, snaps []event.Snap, chats []event.Chat) model {
	return model{
		db:         db,
		owner:      owner,
		searchOpts: search.Options{Owner: owner},
		mode:       modeList,
		show:       previewReport,
		contacts:   contacts,
		snaps:      snaps,
		chats:      chats,
		input:      newInput("Filter contacts...", ""),
		preview:    viewport.New(0, 0),
	}
}

// Run starts the TUI on chat search and blocks until it exits.
// If the user picks a hit, the contact's name is copied to the clipboard.
func Run(db *index.DB, query string, opts search.Options) error {
	return run(initialModel(db, query, opts))
}

// RunList starts the TUI on the contacts of owner, most interactions first.
func RunList(db *index.DB, owner string) error {
	contacts, err := search.Contacts(db, owner)
	if err != nil {
		return err
	}
	snaps, err := db.Snaps()
	if err != nil {
		return fmt.Errorf("load snaps: %w", err)
	}
	chats, err := db.Chats()
	if err != nil {
		return fmt.Errorf("load chats: %w", err)
	}
	return run(listModel(db, owner, contacts, snaps, chats))
}

func run(m model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	if fm := final.(model); fm.chosen != nil {
		copyContact(fm.chosen.contact)
	}
	return nil
}

// copyContact puts the contact name on the clipboard, or prints it when no
// clipboard is available.
func copyContact(name string) {
	if err := clipboard.WriteAll(name); err != nil {
		fmt.Println(name)
		return
	}
	fmt.Printf("Copied to clipboard: %s\n", name)
}

func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	switch {
	case m.mode == modeList:
		cmds = append(cmds, m.doFilter(""))
	case m.query != "":
		cmds = append(cmds, m.doSearch(m.query))
	}
	return tea.Batch(cmds...)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height, m.ready = msg.Width, msg.Height, true
		m.preview = newViewport(m.previewWidth(), m.panelHeight())
		m.previewKey = ""
		return m, m.loadCurrentPreview()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case debounceTickMsg:
		if msg.query != m.query {
			return m, nil
		}
		if m.mode == modeList {
			return m, m.doFilter(msg.query)
		}
		return m, m.doSearch(msg.query)

	case itemsMsg:
		return m.applyItems(msg)

	case previewRenderedMsg:
		return m.applyPreview(msg), nil
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	half, page := m.panelHeight()/2, m.panelHeight()

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, keys.Choose):
		if it, ok := m.current(); ok {
			m.chosen = &it
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, keys.SwitchPreview):
		m.show = m.show.toggle()
		return m, m.loadCurrentPreview()

	case key.Matches(msg, keys.Up):
		return m.moveCursor(m.cursor - 1)
	case key.Matches(msg, keys.Down):
		return m.moveCursor(m.cursor + 1)

	case key.Matches(msg, keys.HalfUp):
		m.preview.LineUp(half)
		return m, nil
	case key.Matches(msg, keys.HalfDown):
		m.preview.LineDown(half)
		return m, nil
	case key.Matches(msg, keys.PageUp):
		m.preview.LineUp(page)
		return m, nil
	case key.Matches(msg, keys.PageDown):
		m.preview.LineDown(page)
		return m, nil
	}

	// everything else edits the query
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if q := m.input.Value(); q != m.query {
		m.query = q
		return m, tea.Batch(cmd, m.scheduleDebouncedSearch(q))
	}
	return m, cmd
}

func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if !m.ready || len(m.items) == 0 {
		return m, nil
	}

	region, idx := m.hitTest(msg.X, msg.Y)
	wheel := msg.Button == tea.MouseButtonWheelUp || msg.Button == tea.MouseButtonWheelDown

	switch {
	case region == regionList && msg.Button == tea.MouseButtonWheelUp:
		m.listOffset = max(m.listOffset-1, 0)
	case region == regionList && msg.Button == tea.MouseButtonWheelDown:
		maxOffset := max(len(m.items)-m.panelHeight()/linesPerItem, 0)
		m.listOffset = min(m.listOffset+1, maxOffset)
	case region == regionList && msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionPress:
		if idx != m.cursor {
			return m.moveCursor(idx)
		}
	case region == regionPreview && wheel:
		var cmd tea.Cmd
		m.preview, cmd = m.preview.Update(msg)
		return m, cmd
	}
	return m, nil
}

// moveCursor selects row i if it exists and loads its preview.
func (m model) moveCursor(i int) (tea.Model, tea.Cmd) {
	if i < 0 || i >= len(m.items) {
		return m, nil
	}
	m.cursor = i
	m.adjustListScroll(m.panelHeight())
	return m, m.loadCurrentPreview()
}

func (m model) applyItems(msg itemsMsg) (tea.Model, tea.Cmd) {
	if msg.query != m.query {
		return m, nil
	}
	m.cursor, m.listOffset, m.previewKey = 0, 0, ""
	if msg.err != nil {
		m.items = nil
		m.preview.SetContent("Error: " + msg.err.Error())
		return m, nil
	}
	m.items = msg.items
	if len(m.items) == 0 {
		m.preview.SetContent("")
		return m, nil
	}
	return m, m.loadCurrentPreview()
}

func (m model) applyPreview(msg previewRenderedMsg) model {
	if msg.key == m.previewKey {
		return m
	}
	if it, ok := m.current(); ok && previewCacheKey(it, m.show) != msg.key {
		return m // stale
	}
	m.previewKey = msg.key
	if msg.err != nil {
		m.preview.SetContent("Preview error: " + msg.err.Error())
		return m
	}
	m.preview.SetContent(msg.content)
	if msg.hitLine > 0 {
		m.preview.SetYOffset(msg.hitLine)
	} else {
		m.preview.GotoTop()
	}
	return m
}

func (m model) View() string {
	if m.quitting || !m.ready {
		return ""
	}

	panelH := m.panelHeight()
	list := styleListFrame.
		Width(m.listWidth()).
		Height(panelH).
		Render(m.renderList(m.listWidth(), panelH))

	m.preview.Width = m.previewWidth()
	m.preview.Height = panelH
	preview := stylePreviewFrame.
		Width(m.previewWidth()).
		Height(panelH).
		Render(m.preview.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, list, preview)
	return lipgloss.JoinVertical(lipgloss.Left, m.input.View(), panels, m.statusBar())
}

func (m model) current() (item, bool) {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return item{}, false
	}
	return m.items[m.cursor], true
}

// Panels split the width 40/60; borders take 4 columns and the input row,
// status bar and borders take 6 lines.
func (m model) listWidth() int {
	if m.width <= 0 {
		return 40
	}
	return max(m.width*40/100-4, 20)
}

func (m model) previewWidth() int {
	if m.width <= 0 {
		return 60
	}
	return max(m.width*60/100-4, 20)
}

func (m model) panelHeight() int {
	if m.height <= 0 {
		return 20
	}
	return max(m.height-6, 5)
}

type mouseRegion int

const (
	regionNone mouseRegion = iota
	regionList
	regionPreview
)

// hitTest maps terminal coordinates to a panel region and list item index.
func (m model) hitTest(x, y int) (mouseRegion, int) {
	const top = 2 // input row + top border
	if y < top || y > top+m.panelHeight()-1 {
		return regionNone, -1
	}

	lw := m.listWidth()
	switch {
	case x >= 1 && x <= lw:
		return regionList, m.listOffset + (y-top)/linesPerItem
	case x > lw+2:
		return regionPreview, -1
	default:
		return regionNone, -1
	}
}

func (m model) statusBar() string {
	noun := "results"
	if m.mode == modeList {
		noun = "contacts"
	}
	parts := append([]string{fmt.Sprintf("%d %s", len(m.items), noun)}, keys.helpLine()...)
	return styleViewTag.Render(m.show.String()) + styleStatus.Render(strings.Join(parts, " | "))
}

func (m model) doSearch(query string) tea.Cmd {
	db, opts := m.db, m.searchOpts
	opts.Query = query
	return func() tea.Msg {
		if query == "" {
			return itemsMsg{query: query}
		}
		results, err := search.Search(db, opts)
		items := make([]item, 0, len(results))
		for _, r := range results {
			items = append(items, hitItem(r))
		}
		return itemsMsg{query: query, items: items, err: err}
	}
}

func (m model) scheduleDebouncedSearch(query string) tea.Cmd {
	return tea.Tick(debounceDelay, func(time.Time) tea.Msg {
		return debounceTickMsg{query: query}
	})
}

func (m model) loadCurrentPreview() tea.Cmd {
	it, ok := m.current()
	if !ok || previewCacheKey(it, m.show) == m.previewKey {
		return nil
	}
	if m.show == previewReport {
		return loadRelationshipCmd(m.db, m.owner, it, m.snaps, m.chats)
	}
	return loadConversationCmd(m.db, m.owner, it, m.query, m.previewWidth())
}
