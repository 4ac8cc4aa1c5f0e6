package commands

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/weddingdesk/core/internal/adapters/remote"
	"github.com/weddingdesk/core/internal/board"
	"github.com/weddingdesk/core/internal/infrastructure/config"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
)

// NewBoardCommand creates the board command, a terminal view of the
// task board backed by the HTTP API.
func NewBoardCommand() *cobra.Command {
	boardCmd := &cobra.Command{
		Use:   "board",
		Short: "Task board commands",
		Long:  "Inspect the task board through the HTTP API",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the board's columns and tasks",
		Run: func(cmd *cobra.Command, args []string) {
			apiURL, _ := cmd.Flags().GetString("api-url")
			token, _ := cmd.Flags().GetString("token")
			lang, _ := cmd.Flags().GetString("language")

			if token == "" {
				log.Fatal("An access token is required (see: weddingdesk organizer create, then login)")
			}

			showBoard(apiURL, token, lang)
		},
	}

	showCmd.Flags().String("api-url", "http://localhost:8080", "Base URL of the API server")
	showCmd.Flags().String("token", "", "Access token (required)")
	showCmd.Flags().String("language", "", "Preferred title language")

	boardCmd.AddCommand(showCmd)
	return boardCmd
}

func showBoard(apiURL, token, lang string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Close()

	client := remote.New(apiURL, token, appLogger)

	organizerID, err := remote.Identify(token)
	if err != nil {
		log.Fatalf("Could not read the token's organizer identity: %v", err)
	}

	store := board.NewStore(client, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := store.Load(ctx, organizerID, board.LoadOptions{}); err != nil {
		log.Fatalf("Failed to load board: %v", err)
	}

	for _, col := range store.Columns() {
		name := "Unsorted"
		if col.Group != nil {
			name = col.Group.Name
		}
		fmt.Printf("%s (%d)\n", name, len(col.Cards))

		active, completed := store.Partition(col)
		for _, card := range active {
			marker := " "
			if card.IsCompleted() {
				marker = "x"
			}
			fmt.Printf("  [%s] %s\n", marker, card.DisplayTitle(lang))
		}
		if len(completed) > 0 {
			fmt.Printf("  -- %d completed --\n", len(completed))
			for _, card := range completed {
				fmt.Printf("  [x] %s\n", card.DisplayTitle(lang))
			}
		}
	}
}
