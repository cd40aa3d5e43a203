package index

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/export"
	"github.com/Zuo-Peng/snapsimp/internal/scan"
)

// ErrNoOwner is returned when neither the caller nor any account page names
// the export owner.
var ErrNoOwner = errors.New("export owner unknown: set username or include account.html")

type Stats struct {
	Scanned int
	Updated int
	Skipped int
	Pruned  int
	Errors  int
	Events  int
	Owner   string
}

func (s Stats) String() string {
	return fmt.Sprintf("owner=%s scanned=%d updated=%d skipped=%d pruned=%d errors=%d events=%d",
		s.Owner, s.Scanned, s.Updated, s.Skipped, s.Pruned, s.Errors, s.Events)
}

// IndexAll brings the database in line with the export pages under root.
// owner may be empty, in which case it is taken from account.html or from
// the previous run.
func IndexAll(db *DB, root, owner string, log *slog.Logger) (Stats, error) {
	var stats Stats

	files, err := scan.ScanRoot(root)
	if err != nil {
		return stats, fmt.Errorf("scan: %w", err)
	}
	stats.Scanned = len(files)

	accounts := make(map[string]*export.Account)
	for _, fi := range files {
		if fi.Kind != scan.Account {
			continue
		}
		acc, err := export.ParseAccountFile(fi.Path)
		if err != nil {
			log.Warn("parse account", "path", fi.Path, "err", err)
			continue
		}
		accounts[fi.Path] = acc
		if owner == "" {
			owner = acc.Profile.Username
		}
	}
	if owner == "" {
		if owner, err = db.Owner(); err != nil {
			return stats, err
		}
	}
	if owner == "" {
		return stats, ErrNoOwner
	}
	stats.Owner = owner
	log.Debug("indexing", "root", root, "owner", owner, "files", len(files))

	// track which files we see, for pruning
	seenKeys := make(map[string]struct{})

	for _, fi := range files {
		key := scan.SourceKey(root, fi.Path)
		if fi.Kind == scan.Account && accounts[fi.Path] == nil {
			stats.Errors++
			continue
		}
		seenKeys[key] = struct{}{}

		needs, err := needsUpdate(db, key, owner, fi.Mtime, fi.Size)
		if err != nil {
			stats.Errors++
			continue
		}
		if !needs {
			stats.Skipped++
			continue
		}

		n, err := indexSource(db, key, owner, fi, accounts[fi.Path])
		if err != nil {
			stats.Errors++
			log.Warn("index", "path", fi.Path, "err", err)
			continue
		}
		log.Debug("indexed", "source", key, "events", n)
		stats.Updated++
		stats.Events += n
	}

	// prune sources whose files no longer exist
	pruned, err := pruneSources(db, seenKeys)
	if err != nil {
		return stats, fmt.Errorf("prune: %w", err)
	}
	stats.Pruned = pruned

	if err := db.setOwner(owner); err != nil {
		return stats, err
	}
	return stats, nil
}

func needsUpdate(db *DB, sourceKey, owner string, mtime, size int64) (bool, error) {
	info, err := db.GetSourceInfo(sourceKey)
	if err != nil {
		return false, err
	}
	if info == nil {
		return true, nil // new source
	}
	return info.Owner != owner || info.Mtime != mtime || info.Size != size, nil
}

// indexSource replaces everything stored for one export page and returns the
// number of events written.
func indexSource(db *DB, key, owner string, fi scan.FileInfo, acc *export.Account) (int, error) {
	var (
		snaps export.History[event.Snap]
		chats export.History[event.Chat]
		err   error
	)
	switch fi.Kind {
	case scan.SnapHistory:
		snaps, err = export.ParseSnapHistoryFile(fi.Path, owner)
	case scan.ChatHistory:
		chats, err = export.ParseChatHistoryFile(fi.Path, owner)
	case scan.Account:
	default:
		err = fmt.Errorf("unknown kind: %s", fi.Kind)
	}
	if err != nil {
		return 0, err
	}

	// delete old data first
	if err := db.DeleteSource(key); err != nil {
		return 0, err
	}

	tx, err := db.Raw().Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sources (source_key, kind, file_path, owner, mtime, size) VALUES (?, ?, ?, ?, ?, ?)`,
		key, string(fi.Kind), fi.Path, owner, fi.Mtime, fi.Size,
	)
	if err != nil {
		return 0, err
	}

	n := 0
	switch fi.Kind {
	case scan.SnapHistory:
		n, err = insertEvents(tx, key, snaps.All())
	case scan.ChatHistory:
		n, err = insertEvents(tx, key, chats.All())
	case scan.Account:
		err = insertAccount(tx, key, acc)
	}
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}

func insertEvents[E event.Event](tx *sql.Tx, key string, events []E) (int, error) {
	stmt, err := tx.Prepare(
		`INSERT INTO events (source_key, seq, kind, sender, receiver, type, text, ts, ts_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, e := range events {
		var text string
		if c, ok := any(e).(event.Chat); ok {
			text = c.Text()
		}
		_, err := stmt.Exec(
			key,
			i,
			e.Kind().String(),
			e.Sender(),
			e.Receiver(),
			string(e.Type()),
			text,
			event.FormatTimestamp(e.Timestamp()),
			e.Timestamp().Unix(),
		)
		if err != nil {
			return 0, err
		}
	}
	return len(events), nil
}

func insertAccount(tx *sql.Tx, key string, acc *export.Account) error {
	_, err := tx.Exec(
		`INSERT INTO profiles (source_key, username, name, created_at) VALUES (?, ?, ?, ?)`,
		key, acc.Profile.Username, acc.Profile.Name, event.FormatTimestamp(acc.Profile.CreatedAt),
	)
	if err != nil {
		return err
	}
	for i, d := range acc.Devices {
		_, err := tx.Exec(
			`INSERT INTO devices (source_key, seq, make, model, start_time, device_type) VALUES (?, ?, ?, ?, ?, ?)`,
			key, i, d.Make, d.Model, d.StartTime, d.DeviceType,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func pruneSources(db *DB, seenKeys map[string]struct{}) (int, error) {
	allKeys, err := db.AllSourceKeys()
	if err != nil {
		return 0, err
	}

	pruned := 0
	for key := range allKeys {
		if _, ok := seenKeys[key]; !ok {
			if err := db.DeleteSource(key); err != nil {
				return pruned, err
			}
			pruned++
		}
	}
	return pruned, nil
}
