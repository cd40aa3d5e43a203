package main

import (
	"github.com/Zuo-Peng/snapsimp/internal/tui"
	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Browse contacts ranked by interactions",
		Long:  `Opens a TUI panel showing every contact, most interactions first, with the relationship report as preview. Type to filter by name.`,
		Args:  cobra.NoArgs,
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
			return tui.RunList(s.db, owner)
		},
	}
}
