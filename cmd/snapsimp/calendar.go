package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Zuo-Peng/snapsimp/internal/analytics"
	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func calendarCmd() *cobra.Command {
	var kind, contact string
	var showDays bool

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Days the top sender and top receiver were present or absent",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()
			s.refresh()

			owner := ""
			if contact != "" {
				if owner, err = s.owner(); err != nil {
					return err
				}
			}

			switch kind {
			case "snap":
				snaps, err := s.db.Snaps()
				if err != nil {
					return err
				}
				if contact != "" {
					snaps = analytics.Between(owner, contact, snaps)
				}
				return printPresence(os.Stdout, "Snaps", snaps, showDays)
			case "chat", "":
				chats, err := s.db.Chats()
				if err != nil {
					return err
				}
				if contact != "" {
					chats = analytics.Between(owner, contact, chats)
				}
				return printPresence(os.Stdout, "Chats", chats, showDays)
			default:
				return fmt.Errorf("unknown kind %q (want snap or chat)", kind)
			}
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "chat", "Events to look at: snap or chat")
	cmd.Flags().StringVar(&contact, "contact", "", "Only the events exchanged with this contact")
	cmd.Flags().BoolVar(&showDays, "days", false, "List the dates, not just how many")

	return cmd
}

func printPresence[E event.Event](w io.Writer, title string, events []E, showDays bool) error {
	inactive, err := analytics.InactiveDays(events)
	if err != nil {
		return err
	}
	active := analytics.ActiveDays(events)
	fmt.Fprintf(w, "=== %s: %s to %s ===\n", title, active[0], active[len(active)-1])
	fmt.Fprintf(w, "  active days:   %s\n", humanize.Comma(int64(len(active))))
	fmt.Fprintf(w, "  inactive days: %s\n", humanize.Comma(int64(len(inactive))))
	if from, to, ok, err := analytics.LongestGap(events); err == nil && ok {
		fmt.Fprintf(w, "  longest gap:   %s .. %s (%d days)\n", from, to, from.DaysUntil(to)+1)
	}
	if st, err := analytics.ActivityPerDay(events); err == nil {
		fmt.Fprintf(w, "  per active day: %.0f / %.1f / %.0f (min/avg/max)\n", st.Minimum, st.Average, st.Maximum)
	}

	sender, _ := analytics.TopSender(events)
	receiver, _ := analytics.TopReceiver(events)
	sections := []struct {
		label string
		days  func([]E) ([]analytics.Date, error)
	}{
		{"top sender " + sender + " sent", analytics.DaysTopSenderSent[E]},
		{"top sender " + sender + " did not send", analytics.DaysTopSenderDidNotSend[E]},
		{"top receiver " + receiver + " received", analytics.DaysTopReceiverReceived[E]},
		{"top receiver " + receiver + " did not receive", analytics.DaysTopReceiverDidNotReceive[E]},
	}
	for _, sec := range sections {
		days, err := sec.days(events)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "  %s on %s days\n", sec.label, humanize.Comma(int64(len(days))))
		if showDays && len(days) > 0 {
			fmt.Fprintf(w, "    %s\n", strings.Join(lo.Map(days, func(d analytics.Date, _ int) string { return d.String() }), " "))
		}
	}
	return nil
}
