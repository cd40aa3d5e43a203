package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "snapsimp",
		Short:   "Snapchat export analytics - who you talk to, how fast you reply, and when",
		Version: version,
	}

	rootCmd.AddCommand(indexCmd())
	rootCmd.AddCommand(topCmd())
	rootCmd.AddCommand(relationshipCmd())
	rootCmd.AddCommand(conversationCmd())
	rootCmd.AddCommand(calendarCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(openCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(doctorCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
