package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Zuo-Peng/snapsimp/internal/search"
	"github.com/Zuo-Peng/snapsimp/internal/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorGreen   = "\033[1;32m"
	sColorDim     = "\033[2m"
)

func colorizeDirection(direction string) string {
	switch direction {
	case "sent":
		return sColorBlue + direction + sColorReset
	case "received":
		return sColorGreen + direction + sColorReset
	default:
		return direction
	}
}

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd() *cobra.Command {
	var contact, direction, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across indexed chats",
		Long: `Search chat text using FTS5 (substring match for CJK queries). Output is TSV for fzf integration:
  contact, eventId, timestamp, direction, snippet

Recommended shell function (add to .zshrc):
  snapf() {
    snapsimp search "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview 'snapsimp preview {1} --hit {2} --context 5 --query {q}' \
      --preview-window=right:60%:wrap \
      --bind 'enter:execute(snapsimp open {1} --hit {2})'
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			// Auto-update index before searching
			s.refresh()

			owner, err := s.owner()
			if err != nil {
				return err
			}

			opts := search.Options{
				Owner:     owner,
				Contact:   contact,
				Direction: direction,
				Since:     since,
				Limit:     limit,
			}

			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(s.db, args[0], opts)
			}

			opts.Query = args[0]
			results, err := search.Search(s.db, opts)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.NewReplacer("\t", " ", "\n", " ").Replace(r.Snippet)
				// first two fields (contact, eventID) stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s%s%s\t%s\t%s\n",
					r.Contact,
					r.EventID,
					sColorDim, r.Ts, sColorReset,
					colorizeDirection(r.Direction),
					colorizeSnippet(snippet),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contact, "contact", "", "Only chats with this contact")
	cmd.Flags().StringVar(&direction, "direction", "", "Filter by direction (sent/received)")
	cmd.Flags().StringVar(&since, "since", "", "Only chats since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")

	return cmd
}
