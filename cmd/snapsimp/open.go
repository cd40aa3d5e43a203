package main

import (
	"github.com/Zuo-Peng/snapsimp/internal/open"
	"github.com/spf13/cobra"
)

func openCmd() *cobra.Command {
	var hitID int64

	cmd := &cobra.Command{
		Use:   "open <contact>",
		Short: "Write the conversation with a contact to JSON and open it in $EDITOR",
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
			return open.OpenConversation(s.db, owner, args[0], s.cfg.OutputDir, hitID)
		},
	}

	cmd.Flags().Int64Var(&hitID, "hit", 0, "Event ID to jump to")

	return cmd
}
