// Package ports defines the interfaces between the daemon core and its
// collaborators.
package ports

import (
	"context"

	"github.com/sdcops/muppet/internal/core/domain"
)

// ConfigurationProvider loads the daemon configuration.
type ConfigurationProvider interface {
	// Load reads and decodes the configuration at path. Failures are typed:
	// *errors.ConfigError with kind ConfigIO or ConfigDecode.
	Load(ctx context.Context, path string) (*domain.Config, error)
}
