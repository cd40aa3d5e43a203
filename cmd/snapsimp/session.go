package main

import (
	"fmt"
	"log/slog"

	"github.com/Zuo-Peng/snapsimp/internal/config"
	"github.com/Zuo-Peng/snapsimp/internal/index"
	"github.com/Zuo-Peng/snapsimp/internal/logs"
)

// session holds what every command needs once the config is loaded.
type session struct {
	cfg *config.Config
	db  *index.DB
	log *slog.Logger
}

func openSession() (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	db, err := index.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return &session{cfg: cfg, db: db, log: logs.GetLoggerFromString(cfg.LogLevel)}, nil
}

func (s *session) Close() error {
	return s.db.Close()
}

// refresh brings the index up to date before a read. Failures only warn:
// whatever is already indexed is still usable.
func (s *session) refresh() {
	if _, err := index.IndexAll(s.db, s.cfg.ExportRoot, s.cfg.Username, s.log); err != nil {
		s.log.Warn("refresh index", "err", err)
	}
}

// owner is the configured username, else the one recorded at index time.
func (s *session) owner() (string, error) {
	if s.cfg.Username != "" {
		return s.cfg.Username, nil
	}
	owner, err := s.db.Owner()
	if err != nil {
		return "", err
	}
	if owner == "" {
		return "", index.ErrNoOwner
	}
	return owner, nil
}
