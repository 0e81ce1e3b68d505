package ports

import "context"

// Reloader pushes a new backend membership into the load balancer.
type Reloader interface {
	Reload(ctx context.Context, members []string) error
}
