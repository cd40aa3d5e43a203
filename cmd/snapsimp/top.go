package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/Zuo-Peng/snapsimp/internal/report"
	"github.com/spf13/cobra"
)

func topCmd() *cobra.Command {
	var kind string
	var limit int

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank senders and receivers of snaps and chats",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()
			s.refresh()

			if kind == "" || kind == "snap" {
				snaps, err := s.db.Snaps()
				if err != nil {
					return err
				}
				printTop(os.Stdout, "Snaps", snaps, event.Image, event.Video, limit)
			}
			if kind == "" || kind == "chat" {
				chats, err := s.db.Chats()
				if err != nil {
					return err
				}
				printTop(os.Stdout, "Chats", chats, event.Text, event.Media, limit)
			}
			if kind != "" && kind != "snap" && kind != "chat" {
				return fmt.Errorf("unknown kind %q (want snap or chat)", kind)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "", "Only rank snap or chat events")
	cmd.Flags().IntVar(&limit, "limit", 10, "Rows per ranking (0 = all)")

	return cmd
}

func printTop[E event.Event](w io.Writer, title string, events []E, num, den event.Type, limit int) {
	if len(events) == 0 {
		fmt.Fprintf(w, "=== %s ===\n  none indexed\n\n", title)
		return
	}
	for _, role := range []analytics.Role{analytics.AsSender, analytics.AsReceiver} {
		fmt.Fprintf(w, "=== %s by %s ===\n", title, role)
		ranking := analytics.CountBy(events, role)
		report.RenderRanking(w, ranking, limit)

		ratioOf, durationOf := analytics.TypeRatioOfTopSender[E], analytics.DurationWithTopSender[E]
		if role == analytics.AsReceiver {
			ratioOf, durationOf = analytics.TypeRatioOfTopReceiver[E], analytics.DurationWithTopReceiver[E]
		}
		ratio := "n/a"
		if v, err := ratioOf(events, num, den); err == nil {
			ratio = fmt.Sprintf("%.2f", v)
		}
		span := "n/a"
		if d, err := durationOf(events); err == nil {
			span = d.Round(time.Minute).String()
		}
		top, _ := ranking.Top()
		fmt.Fprintf(w, "  top %s %s: %s/%s ratio %s, active over %s\n\n", role, top, num, den, ratio, span)
	}
}
