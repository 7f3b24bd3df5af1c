package ports

import (
	"context"

	"github.com/websurfer/discovery/internal/core/domain"
)

// ConfigRepository persists the single platform configuration document.
type ConfigRepository interface {
	// Load returns the stored configuration, or domain.DefaultConfig()
	// when none exists or the stored document fails to decode.
	Load(ctx context.Context) (domain.PlatformConfig, error)
	Save(ctx context.Context, cfg domain.PlatformConfig) error
}
