package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/snapsimp/internal/config"
	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/index"
	"github.com/Zuo-Peng/snapsimp/internal/scan"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify export root, DB, FTS5, and show stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}

			fmt.Println("=== Config ===")
			if path, err := config.Path(); err == nil {
				fmt.Printf("  File:     %s\n", path)
			}
			checkDir("Export", cfg.ExportRoot)
			username := cfg.Username
			if username == "" {
				username = "(from account.html)"
			}
			fmt.Printf("  Username: %s\n", username)

			// scan file counts
			fmt.Println("\n=== File Scan ===")
			files, err := scan.ScanRoot(cfg.ExportRoot)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				counts := lo.CountValuesBy(files, func(f scan.FileInfo) scan.Kind { return f.Kind })
				for _, k := range []scan.Kind{scan.SnapHistory, scan.ChatHistory, scan.Account} {
					fmt.Printf("  %-13s %d\n", k+":", counts[k])
				}
			}

			// check DB
			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", cfg.DBPath)
			if _, err := os.Stat(cfg.DBPath); os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'snapsimp index' first)")
				return nil
			}

			db, err := index.OpenDB(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			defer db.Close()

			sourceCount, err := db.SourceCount()
			if err != nil {
				return fmt.Errorf("count sources: %w", err)
			}
			snapCount, err := db.EventCount(event.KindSnap)
			if err != nil {
				return fmt.Errorf("count snaps: %w", err)
			}
			chatCount, err := db.EventCount(event.KindChat)
			if err != nil {
				return fmt.Errorf("count chats: %w", err)
			}
			owner, _ := db.Owner()

			fmt.Printf("  Owner:   %s\n", owner)
			fmt.Printf("  Sources: %d\n", sourceCount)
			fmt.Printf("  Snaps:   %s\n", humanize.Comma(int64(snapCount)))
			fmt.Printf("  Chats:   %s\n", humanize.Comma(int64(chatCount)))

			// check FTS5
			fmt.Println("\n=== FTS5 ===")
			var textCount, ftsCount int
			if err := db.Raw().QueryRow("SELECT COUNT(*) FROM events WHERE text <> ''").Scan(&textCount); err != nil {
				return fmt.Errorf("count chat text: %w", err)
			}
			// external content: only the docsize shadow table reflects what is indexed
			err = db.Raw().QueryRow("SELECT COUNT(*) FROM events_fts_docsize").Scan(&ftsCount)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
			} else {
				fmt.Printf("  FTS5 entries: %d\n", ftsCount)
				if ftsCount == textCount {
					fmt.Println("  Status: OK (synced)")
				} else {
					fmt.Printf("  Status: MISMATCH (texts=%d, fts=%d)\n", textCount, ftsCount)
				}
			}

			if info, err := os.Stat(cfg.DBPath); err == nil {
				fmt.Printf("\n=== DB Size: %s ===\n", humanize.Bytes(uint64(info.Size())))
			}

			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
