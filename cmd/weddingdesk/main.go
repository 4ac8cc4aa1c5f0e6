package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/weddingdesk/core/cmd/weddingdesk/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "weddingdesk",
		Short: "WeddingDesk API Server",
		Long:  `WeddingDesk is a business management system for wedding planners, covering weddings, task boards and payment tracking.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewMigrateCommand())
	rootCmd.AddCommand(commands.NewOrganizerCommand())
	rootCmd.AddCommand(commands.NewBoardCommand())
	rootCmd.AddCommand(commands.NewDashboardCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
