package main

import (
	"fmt"
	"os"

	"github.com/Zuo-Peng/snapsimp/internal/event"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func profileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the account owner and device history from account.html",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession()
			if err != nil {
				return err
			}
			defer s.Close()

			acc, err := s.db.Profile()
			if err != nil {
				return err
			}
			if acc == nil {
				fmt.Println("No account page indexed (run 'snapsimp index' on an export with account.html)")
				return nil
			}

			p := acc.Profile
			fmt.Printf("Username: %s\n", p.Username)
			fmt.Printf("Name:     %s\n", p.Name)
			fmt.Printf("Created:  %s (%s)\n", event.FormatTimestamp(p.CreatedAt), humanize.Time(p.CreatedAt))

			if len(acc.Devices) == 0 {
				return nil
			}
			fmt.Println("\n=== Devices ===")
			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Make", "Model", "Start Time", "Device Type"})
			table.SetAutoWrapText(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetAlignment(tablewriter.ALIGN_LEFT)
			table.SetBorder(false)
			for _, d := range acc.Devices {
				table.Append([]string{d.Make, d.Model, d.StartTime, d.DeviceType})
			}
			table.Render()
			return nil
		},
	}
}
