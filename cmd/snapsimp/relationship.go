package main

import (
	"encoding/json"
	"os"

	"github.com/Zuo-Peng/snapsimp/internal/report"
	"github.com/spf13/cobra"
)

func relationshipCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "relationship <contact>",
		Short: "Counts, reply times and calendar of one relationship",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()
			s.refresh()

			owner, err := s.owner()
			if err != nil {
				return err
			}
			snaps, err := s.db.Snaps()
			if err != nil {
				return err
			}
			chats, err := s.db.Chats()
			if err != nil {
				return err
			}

			r, err := report.BuildRelationship(owner, args[0], snaps, chats)
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(r)
			}
			return report.RenderRelationship(os.Stdout, r)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the report as JSON")

	return cmd
}
