// Package search finds chats by their text and lists the owner's contacts.
package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/Zuo-Peng/snapsimp/internal/index"
)

type Result struct {
	EventID   int64
	Contact   string
	Sender    string
	Direction string // "sent" or "received", seen from the owner
	Ts        string
	Snippet   string
	Rank      float64
}

type Options struct {
	Query     string
	Owner     string
	Contact   string // "" = all
	Direction string // "" = all, "sent", "received"
	Since     string // "" = no filter, e.g. "2024-01-01"
	Limit     int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 || len(lower) != len(text) {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := max(runePos-contextChars, 0)
	end := min(runePos+len(qRunes)+contextChars, len(runes))
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search returns the best matching chat per contact, best first.
func Search(db *index.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	// Fetch more results before dedup so we still have enough after
	origLimit := opts.Limit
	opts.Limit = origLimit * 3

	var results []Result
	var err error
	if containsCJK(opts.Query) {
		results, err = searchLike(db, opts)
	} else {
		results, err = searchFTS(db, opts)
	}
	if err != nil {
		return nil, err
	}

	// Deduplicate: keep only the best-ranked result per contact
	seen := make(map[string]bool)
	var deduped []Result
	for _, r := range results {
		if seen[r.Contact] {
			continue
		}
		seen[r.Contact] = true
		deduped = append(deduped, r)
		if len(deduped) >= origLimit {
			break
		}
	}
	return deduped, nil
}

// filters builds the conditions shared by both search paths. The first
// argument is always the owner, consumed by the contact and direction columns.
func filters(opts Options) ([]string, []any, error) {
	var conditions []string
	var args []any

	conditions = append(conditions, "e.kind = 'chat'")

	if opts.Contact != "" {
		conditions = append(conditions, "(e.sender = ? OR e.receiver = ?)")
		args = append(args, opts.Contact, opts.Contact)
	}

	switch opts.Direction {
	case "":
	case "sent":
		conditions = append(conditions, "e.sender = ?")
		args = append(args, opts.Owner)
	case "received":
		conditions = append(conditions, "e.receiver = ?")
		args = append(args, opts.Owner)
	default:
		return nil, nil, fmt.Errorf("unknown direction %q (want sent or received)", opts.Direction)
	}

	if opts.Since != "" {
		d, err := analytics.ParseDate(opts.Since)
		if err != nil {
			return nil, nil, fmt.Errorf("since: %w", err)
		}
		conditions = append(conditions, "e.ts_unix >= ?")
		args = append(args, d.Time().Unix())
	}
	return conditions, args, nil
}

const resultColumns = `
	e.rowid,
	CASE WHEN e.sender = ? THEN e.receiver ELSE e.sender END AS contact,
	e.sender,
	CASE WHEN e.sender = ? THEN 'sent' ELSE 'received' END AS direction,
	e.ts`

func searchFTS(db *index.DB, opts Options) ([]Result, error) {
	conditions, args, err := filters(opts)
	if err != nil {
		return nil, err
	}
	conditions = append([]string{"events_fts MATCH ?"}, conditions...)
	args = append([]any{opts.Owner, opts.Owner, opts.Query}, args...)

	query := fmt.Sprintf(`
		SELECT %s,
			snippet(events_fts, 0, '>>>','<<<', '...', 40) as snip,
			bm25(events_fts, 1.0) as rank
		FROM events_fts
		JOIN events e ON events_fts.rowid = e.rowid
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, resultColumns, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *index.DB, opts Options) ([]Result, error) {
	conditions, args, err := filters(opts)
	if err != nil {
		return nil, err
	}
	// LIKE match for CJK substring search
	conditions = append([]string{"e.text LIKE ?"}, conditions...)
	args = append([]any{opts.Owner, opts.Owner, "%" + opts.Query + "%"}, args...)

	query := fmt.Sprintf(`
		SELECT %s, e.text
		FROM events e
		WHERE %s
		ORDER BY e.ts_unix DESC
		LIMIT ?
	`, resultColumns, strings.Join(conditions, " AND "))

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullText string
		if err := rows.Scan(&r.EventID, &r.Contact, &r.Sender, &r.Direction, &r.Ts, &fullText); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullText, opts.Query, 30)
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(&r.EventID, &r.Contact, &r.Sender, &r.Direction, &r.Ts, &r.Snippet, &r.Rank); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
