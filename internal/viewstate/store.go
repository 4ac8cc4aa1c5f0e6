package viewstate

import (
	"fmt"

	"github.com/weddingdesk/core/internal/infrastructure/config"
	"github.com/weddingdesk/core/internal/infrastructure/logger"
	"github.com/weddingdesk/core/internal/ports"
)

// NewStore builds the view-state backend selected by configuration:
// a local JSON file or Redis.
func NewStore(cfg *config.Config, log *logger.Logger) (ports.ViewStateStore, error) {
	switch cfg.ViewState.Backend {
	case "redis":
		return NewRedisStore(cfg.Redis, log)
	case "file", "":
		return NewFileStore(cfg.ViewState.Path)
	default:
		return nil, fmt.Errorf("unknown view state backend: %q", cfg.ViewState.Backend)
	}
}
