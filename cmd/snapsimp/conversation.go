package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/Zuo-Peng/snapsimp/internal/report"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func conversationCmd() *cobra.Command {
	var asJSON bool
	var query string

	cmd := &cobra.Command{
		Use:   "conversation <contact>",
		Short: "Print every chat exchanged with a contact",
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
			contact := args[0]

			if asJSON {
				chats, err := s.db.Chats()
				if err != nil {
					return err
				}
				conv, err := analytics.NewConversation(analytics.Between(owner, contact, chats))
				if err != nil {
					return fmt.Errorf("conversation with %s: %w", contact, err)
				}
				return report.WriteConversationJSON(os.Stdout, conv)
			}

			width := 0
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}
			out, _, err := report.RenderConversation(s.db, owner, contact, report.Options{
				Context: -1,
				Width:   width,
				Query:   query,
			})
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print {\"users\", \"chats\"} JSON instead of text")
	cmd.Flags().StringVar(&query, "query", "", "Highlight these keywords")

	return cmd
}
