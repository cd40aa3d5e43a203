package index

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/export"
	_ "modernc.org/sqlite"
)

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA cache_size = -64000;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS sources (
    source_key  TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    file_path   TEXT NOT NULL,
    owner       TEXT NOT NULL DEFAULT '',
    mtime       INTEGER NOT NULL DEFAULT 0,
    size        INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS events (
    source_key  TEXT NOT NULL,
    seq         INTEGER NOT NULL,
    kind        TEXT NOT NULL,
    sender      TEXT NOT NULL,
    receiver    TEXT NOT NULL,
    type        TEXT NOT NULL,
    text        TEXT NOT NULL DEFAULT '',
    ts          TEXT NOT NULL,
    ts_unix     INTEGER NOT NULL,
    PRIMARY KEY (source_key, seq)
);

CREATE INDEX IF NOT EXISTS events_sender ON events(sender, ts_unix);
CREATE INDEX IF NOT EXISTS events_receiver ON events(receiver, ts_unix);

CREATE VIRTUAL TABLE IF NOT EXISTS events_fts USING fts5(
    text,
    content=events,
    content_rowid=rowid,
    tokenize='unicode61'
);

-- only chat text goes into the full text index
CREATE TRIGGER IF NOT EXISTS events_ai AFTER INSERT ON events WHEN new.text <> '' BEGIN
    INSERT INTO events_fts(rowid, text) VALUES (new.rowid, new.text);
END;

CREATE TRIGGER IF NOT EXISTS events_ad AFTER DELETE ON events WHEN old.text <> '' BEGIN
    INSERT INTO events_fts(events_fts, rowid, text) VALUES('delete', old.rowid, old.text);
END;

CREATE TABLE IF NOT EXISTS profiles (
    source_key  TEXT PRIMARY KEY,
    username    TEXT NOT NULL,
    name        TEXT NOT NULL DEFAULT '',
    created_at  TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS devices (
    source_key  TEXT NOT NULL,
    seq         INTEGER NOT NULL,
    make        TEXT NOT NULL DEFAULT '',
    model       TEXT NOT NULL DEFAULT '',
    start_time  TEXT NOT NULL DEFAULT '',
    device_type TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (source_key, seq)
);

CREATE TABLE IF NOT EXISTS meta (key TEXT PRIMARY KEY, value TEXT);
`

type DB struct {
	db *sql.DB
}

func OpenDB(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	d := &DB{db: db}
	d.migrateSchemaVersion()
	return d, nil
}

// schemaVersion should be bumped whenever export parsing changes
// to force a full re-index.
const schemaVersion = "1"

func (d *DB) migrateSchemaVersion() {
	var ver string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'schema_version'").Scan(&ver)
	if err != nil || ver != schemaVersion {
		d.db.Exec("UPDATE sources SET mtime = 0, size = 0")
		d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', ?)", schemaVersion)
	}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) Raw() *sql.DB {
	return d.db
}

type SourceInfo struct {
	Owner string
	Mtime int64
	Size  int64
}

func (d *DB) GetSourceInfo(sourceKey string) (*SourceInfo, error) {
	var info SourceInfo
	err := d.db.QueryRow(
		"SELECT owner, mtime, size FROM sources WHERE source_key = ?",
		sourceKey,
	).Scan(&info.Owner, &info.Mtime, &info.Size)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (d *DB) AllSourceKeys() (map[string]struct{}, error) {
	rows, err := d.db.Query("SELECT source_key FROM sources")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make(map[string]struct{})
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys[k] = struct{}{}
	}
	return keys, rows.Err()
}

func (d *DB) DeleteSource(sourceKey string) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"events", "devices", "profiles", "sources"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE source_key = ?", sourceKey); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (d *DB) SourceCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM sources").Scan(&n)
	return n, err
}

func (d *DB) EventCount(kind event.Kind) (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM events WHERE kind = ?", kind.String()).Scan(&n)
	return n, err
}

// Owner returns the export owner recorded by the last IndexAll, or "".
func (d *DB) Owner() (string, error) {
	var owner string
	err := d.db.QueryRow("SELECT value FROM meta WHERE key = 'owner'").Scan(&owner)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return owner, err
}

func (d *DB) setOwner(owner string) error {
	_, err := d.db.Exec("INSERT OR REPLACE INTO meta (key, value) VALUES ('owner', ?)", owner)
	return err
}

// Snaps rebuilds every indexed snap in chronological order.
func (d *DB) Snaps() ([]event.Snap, error) {
	rows, err := d.events(event.KindSnap)
	if err != nil {
		return nil, err
	}
	snaps := make([]event.Snap, 0, len(rows))
	for _, r := range rows {
		s, err := event.NewSnap(r.Sender, r.Receiver, r.Type, r.Ts)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", r.ID, err)
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}

// Chats rebuilds every indexed chat in chronological order.
func (d *DB) Chats() ([]event.Chat, error) {
	rows, err := d.events(event.KindChat)
	if err != nil {
		return nil, err
	}
	chats := make([]event.Chat, 0, len(rows))
	for _, r := range rows {
		c, err := event.NewChat(r.Sender, r.Receiver, r.Type, r.Text, r.Ts)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", r.ID, err)
		}
		chats = append(chats, c)
	}
	return chats, nil
}

type EventRow struct {
	ID        int64
	SourceKey string
	Kind      string
	Sender    string
	Receiver  string
	Type      string
	Text      string
	Ts        string
	TsUnix    int64
}

const eventColumns = "rowid, source_key, kind, sender, receiver, type, text, ts, ts_unix"

func scanEvents(rows *sql.Rows) ([]EventRow, error) {
	defer rows.Close()
	var out []EventRow
	for rows.Next() {
		var r EventRow
		if err := rows.Scan(&r.ID, &r.SourceKey, &r.Kind, &r.Sender, &r.Receiver, &r.Type, &r.Text, &r.Ts, &r.TsUnix); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (d *DB) events(kind event.Kind) ([]EventRow, error) {
	rows, err := d.db.Query(
		"SELECT "+eventColumns+" FROM events WHERE kind = ? ORDER BY ts_unix, rowid",
		kind.String(),
	)
	if err != nil {
		return nil, err
	}
	return scanEvents(rows)
}

// ChatWindow returns up to context chats on each side of the hit chat, taken
// from the hit's conversation with contact. hitIdx is the hit's position in
// the window, or -1 when hitID is not part of that conversation, in which
// case the latest chats are returned. startPos is the number of chats before
// the window and total the size of the whole conversation.
func (d *DB) ChatWindow(contact string, hitID int64, context int) (chats []EventRow, hitIdx, startPos, total int, err error) {
	hitPos := -1
	if hitID > 0 {
		err = d.db.QueryRow(`
			SELECT pos FROM (
				SELECT rowid AS id, ROW_NUMBER() OVER (ORDER BY ts_unix, rowid) - 1 AS pos
				FROM events WHERE kind = 'chat' AND (sender = ? OR receiver = ?)
			) WHERE id = ?`,
			contact, contact, hitID,
		).Scan(&hitPos)
		if err == sql.ErrNoRows {
			hitPos, err = -1, nil
		} else if err != nil {
			return nil, -1, 0, 0, err
		}
	}

	err = d.db.QueryRow(
		"SELECT COUNT(*) FROM events WHERE kind = 'chat' AND (sender = ? OR receiver = ?)",
		contact, contact,
	).Scan(&total)
	if err != nil {
		return nil, -1, 0, 0, err
	}

	startPos = total - (2*context + 1)
	if hitPos >= 0 {
		startPos = hitPos - context
	}
	if startPos < 0 {
		startPos = 0
	}

	rows, err := d.db.Query(
		"SELECT "+eventColumns+" FROM events WHERE kind = 'chat' AND (sender = ? OR receiver = ?) ORDER BY ts_unix, rowid LIMIT ? OFFSET ?",
		contact, contact, 2*context+1, startPos,
	)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	chats, err = scanEvents(rows)
	if err != nil {
		return nil, -1, 0, 0, err
	}
	hitIdx = -1
	for i, c := range chats {
		if c.ID == hitID {
			hitIdx = i
		}
	}
	return chats, hitIdx, startPos, total, nil
}

// Profile returns the most recently indexed account page, or nil.
func (d *DB) Profile() (*export.Account, error) {
	var key, createdAt string
	var acc export.Account
	err := d.db.QueryRow(`
		SELECT p.source_key, p.username, p.name, p.created_at
		FROM profiles p JOIN sources s ON s.source_key = p.source_key
		ORDER BY s.mtime DESC, p.source_key LIMIT 1`,
	).Scan(&key, &acc.Profile.Username, &acc.Profile.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if createdAt != "" {
		if acc.Profile.CreatedAt, err = event.ParseTimestamp(createdAt); err != nil {
			return nil, err
		}
	}

	rows, err := d.db.Query(
		"SELECT make, model, start_time, device_type FROM devices WHERE source_key = ? ORDER BY seq",
		key,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var dev export.Device
		if err := rows.Scan(&dev.Make, &dev.Model, &dev.StartTime, &dev.DeviceType); err != nil {
			return nil, err
		}
		acc.Devices = append(acc.Devices, dev)
	}
	return &acc, rows.Err()
}
