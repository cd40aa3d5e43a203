package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/snapsimp/internal/index"
	"github.com/spf13/cobra"
)

func indexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Scan and index the snap, chat and account pages of the export",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			fmt.Fprintf(os.Stderr, "Scanning %s...\n", s.cfg.ExportRoot)

			stats, err := index.IndexAll(s.db, s.cfg.ExportRoot, s.cfg.Username, s.log)
			if err != nil {
				return fmt.Errorf("index: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			return nil
		},
	}
}
