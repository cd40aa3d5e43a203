package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/index"
	"github.com/mattn/go-runewidth"
)

const (
	colorReset   = "\033[0m"
	colorOwner   = "\033[1;34m" // bold blue
	colorContact = "\033[1;32m" // bold green
	colorDim     = "\033[2m"
	colorHit     = "\033[43m"   // yellow background
	colorBoldRed = "\033[1;31m" // bold red for keyword highlights
)

type Options struct {
	HitID   int64
	Context int    // chats before/after hit to show
	Width   int    // wrap width (0 = no wrap)
	Query   string // search query for keyword highlighting
}

// fts5Operators are FTS5 operators that should not be highlighted as keywords.
var fts5Operators = map[string]bool{
	"AND": true, "OR": true, "NOT": true, "NEAR": true,
	"and": true, "or": true, "not": true, "near": true,
}

// highlightKeywords wraps case-insensitive matches of query terms in bold red ANSI codes.
func highlightKeywords(text, query string) string {
	if query == "" {
		return text
	}
	var filtered []string
	for _, t := range strings.Fields(query) {
		t = strings.Trim(t, `"*()`)
		if t != "" && !fts5Operators[t] {
			filtered = append(filtered, t)
		}
	}
	for _, term := range filtered {
		lower := strings.ToLower(term)
		i := 0
		for i < len(text) {
			idx := strings.Index(strings.ToLower(text[i:]), lower)
			if idx < 0 {
				break
			}
			pos := i + idx
			if pos+len(term) > len(text) {
				break
			}
			orig := text[pos : pos+len(term)]
			replacement := colorBoldRed + orig + colorReset
			text = text[:pos] + replacement + text[pos+len(term):]
			i = pos + len(replacement)
		}
	}
	return text
}

// indentLines prepends each line of text with the given prefix.
func indentLines(text, prefix string) string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

// wrapLine breaks a single line into multiple lines that fit within maxWidth
// visible columns, correctly skipping ANSI escape sequences when measuring width.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var result []string
	var cur strings.Builder
	visW := 0

	i := 0
	for i < len(line) {
		// check for ANSI escape sequence: ESC[ ... m
		if i+1 < len(line) && line[i] == '\033' && line[i+1] == '[' {
			j := i + 2
			for j < len(line) && line[j] != 'm' {
				j++
			}
			if j < len(line) {
				j++ // include 'm'
			}
			cur.WriteString(line[i:j])
			i = j
			continue
		}

		r, size := utf8.DecodeRuneInString(line[i:])
		rw := runewidth.RuneWidth(r)

		if visW+rw > maxWidth {
			result = append(result, cur.String())
			cur.Reset()
			visW = 0
		}

		cur.WriteRune(r)
		visW += rw
		i += size
	}

	if cur.Len() > 0 {
		result = append(result, cur.String())
	}

	if len(result) == 0 {
		return []string{""}
	}
	return result
}

// RenderConversation renders the chats between owner and contact, grouped
// into runs by sender. Media chats carry no text and are left out. It returns
// the content and the 0-based line number of the hit chat (-1 if no hit).
func RenderConversation(db *index.DB, owner, contact string, opts Options) (string, int, error) {
	if opts.Context == 0 {
		opts.Context = 10
	}
	if opts.Context < 0 {
		opts.Context = 1000000 // no limit
	}

	chats, hitIdx, startPos, totalCount, err := db.ChatWindow(contact, opts.HitID, opts.Context)
	if err != nil {
		return "", -1, fmt.Errorf("get chats: %w", err)
	}

	if totalCount == 0 {
		return fmt.Sprintf("(no chats with %s)", contact), -1, nil
	}

	skipAfter := totalCount - startPos - len(chats)

	var b strings.Builder
	hitLine := -1
	lineCount := 0
	separator := colorDim + "--------------------------------------------------" + colorReset

	writeLine := func(s string) {
		for _, wl := range wrapLine(s, opts.Width) {
			b.WriteString(wl)
			b.WriteString("\n")
			lineCount++
		}
	}

	writeLine(fmt.Sprintf("%s--- %s <> %s ---%s", colorDim, owner, contact, colorReset))

	if startPos > 0 {
		writeLine(fmt.Sprintf("%s... (%d chats before) ...%s", colorDim, startPos, colorReset))
	}

	prevSender := ""
	for i, c := range chats {
		isHit := i == hitIdx
		if c.Type == string(event.Media) && !isHit {
			continue
		}

		if c.Sender != prevSender {
			if prevSender != "" {
				writeLine(separator)
			}
			color := colorContact
			if c.Sender == owner {
				color = colorOwner
			}
			writeLine(fmt.Sprintf("%s%s >%s %s%s%s", color, c.Sender, colorReset, colorDim, c.Ts, colorReset))
			prevSender = c.Sender
		}

		text := c.Text
		if c.Type == string(event.Media) {
			text = colorDim + "(media)" + colorReset
		}
		if isHit {
			hitLine = lineCount
			text = colorHit + ">>" + colorReset + " " + text
		}
		text = highlightKeywords(text, opts.Query)
		for _, tl := range strings.Split(indentLines(text, "  "), "\n") {
			writeLine(tl)
		}
	}

	if skipAfter > 0 {
		writeLine(fmt.Sprintf("%s... (%d chats after) ...%s", colorDim, skipAfter, colorReset))
	}

	return b.String(), hitLine, nil
}
