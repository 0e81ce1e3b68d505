package ports

import (
	"context"

	"github.com/sdcops/muppet/internal/core/domain"
)

// MembershipEvent is one snapshot of the service members registered under
// the watched registrar path.
type MembershipEvent struct {
	Members []string
}

// CoordinationSession is an established session with the coordination
// service.
type CoordinationSession interface {
	// WatchMembers emits a MembershipEvent for the current membership and
	// again on every change, until ctx is cancelled or the session dies.
	// The returned channel is closed when the watch ends.
	WatchMembers(ctx context.Context, path string) (<-chan MembershipEvent, error)

	Close()
}

// SessionBuilder establishes a coordination-service session from the
// configured ensemble.
type SessionBuilder interface {
	Build(ctx context.Context, cfg domain.CoordinationConfig) (CoordinationSession, error)
}
