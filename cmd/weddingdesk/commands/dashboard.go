package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/weddingdesk/core/internal/adapters/remote"
	"github.com/weddingdesk/core/internal/infrastructure/config"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/viewstate"
)

// NewDashboardCommand creates the dashboard command group, operating on
// the persisted view state.
func NewDashboardCommand() *cobra.Command {
	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Dashboard view-state commands",
		Long:  "Inspect and change the persisted dashboard state (view mode, open tabs)",
	}

	restoreCmd := &cobra.Command{
		Use:   "restore",
		Short: "Print the dashboard state a new session would restore",
		Run: func(cmd *cobra.Command, args []string) {
			apiURL, _ := cmd.Flags().GetString("api-url")
			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				log.Fatal("An access token is required")
			}
			restoreDashboard(apiURL, token)
		},
	}
	restoreCmd.Flags().String("api-url", "http://localhost:8080", "Base URL of the API server")
	restoreCmd.Flags().String("token", "", "Access token (required)")

	setViewCmd := &cobra.Command{
		Use:   "set-view [weddings|tasks|payments]",
		Short: "Persist the top-level view mode",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			token, _ := cmd.Flags().GetString("token")
			if token == "" {
				log.Fatal("An access token is required")
			}
			setDashboardView(token, viewstate.ViewMode(args[0]))
		},
	}
	setViewCmd.Flags().String("token", "", "Access token (required)")

	dashboardCmd.AddCommand(restoreCmd)
	dashboardCmd.AddCommand(setViewCmd)
	return dashboardCmd
}

func newViewStateManager(token string) (*viewstate.Manager, *logger.Logger) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	organizerID, err := remote.Identify(token)
	if err != nil {
		log.Fatalf("Could not read the token's organizer identity: %v", err)
	}

	store, err := viewstate.NewStore(cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to open view state store: %v", err)
	}

	return viewstate.NewManager(store, appLogger, organizerID), appLogger
}

func restoreDashboard(apiURL, token string) {
	manager, appLogger := newViewStateManager(token)
	defer appLogger.Close()

	client := remote.New(apiURL, token, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	weddings, err := client.ListWeddings(ctx)
	if err != nil {
		log.Fatalf("Failed to list weddings: %v", err)
	}

	restored, err := manager.Restore(ctx, weddings)
	if err != nil {
		log.Fatalf("Failed to restore dashboard state: %v", err)
	}

	fmt.Printf("View: %s\n", restored.View)
	if restored.ActiveTab != nil {
		fmt.Printf("Active tab: %s (%s)\n", restored.ActiveTab.Name, restored.ActiveTab.WeddingID)
	}
	for _, tab := range restored.Tabs {
		fmt.Printf("  open: %s (%s)\n", tab.Name, tab.WeddingID)
	}
}

func setDashboardView(token string, view viewstate.ViewMode) {
	manager, appLogger := newViewStateManager(token)
	defer appLogger.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := manager.SetViewMode(ctx, view); err != nil {
		log.Fatalf("Failed to persist view mode: %v", err)
	}
	fmt.Printf("View mode set to %s\n", view)
}
