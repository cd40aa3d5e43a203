package main

import (
	"fmt"

	"github.com/Zuo-Peng/snapsimp/internal/report"
	"github.com/spf13/cobra"
)

func previewCmd() *cobra.Command {
	var hitID int64
	var context int
	var query string

	cmd := &cobra.Command{
		Use:   "preview <contact>",
		Short: "Preview the chats with a contact around a hit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			owner, err := s.owner()
			if err != nil {
				return err
			}

			out, _, err := report.RenderConversation(s.db, owner, args[0], report.Options{
				HitID:   hitID,
				Context: context,
				Query:   query,
			})
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().Int64Var(&hitID, "hit", 0, "Event ID to highlight")
	cmd.Flags().IntVar(&context, "context", 10, "Chats before/after hit to show")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")

	return cmd
}
