package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/prakasam1973/MOM-Tracker/cmd/momtracker/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "momtracker",
		Short: "MOM Tracker personal dashboard server",
		Long:  `MOM Tracker is a self-hosted personal dashboard covering an event calendar, attendance and step tracking, CSR project records, and reminders, backed by a local storage file.`,
	}

	// Add commands
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewExportCommand())
	rootCmd.AddCommand(commands.NewClearCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
