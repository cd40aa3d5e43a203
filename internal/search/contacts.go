package search

import (
	"fmt"

	"github.com/Zuo-Peng/snapsimp/internal/index"
)

// Contact summarises everything the owner exchanged with one account.
type Contact struct {
	Name  string
	Snaps int
	Chats int
	Last  string // timestamp of the latest event
}

func (c Contact) Total() int {
	return c.Snaps + c.Chats
}

// Contacts ranks the owner's counterparts by total interactions. Ties go to
// the counterpart seen first.
func Contacts(db *index.DB, owner string) ([]Contact, error) {
	// ts is a bare column: SQLite takes it from the row holding MAX(ts_unix)
	rows, err := db.Raw().Query(`
		SELECT
			CASE WHEN sender = ? THEN receiver ELSE sender END AS contact,
			SUM(kind = 'snap'),
			SUM(kind = 'chat'),
			MAX(ts_unix),
			ts
		FROM events
		WHERE sender = ? OR receiver = ?
		GROUP BY contact
		ORDER BY COUNT(*) DESC, MIN(ts_unix), contact`,
		owner, owner, owner,
	)
	if err != nil {
		return nil, fmt.Errorf("contacts query: %w", err)
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		var c Contact
		var last int64
		if err := rows.Scan(&c.Name, &c.Snaps, &c.Chats, &last, &c.Last); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
