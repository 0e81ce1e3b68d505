package ports

import "context"

// InventorySource produces the raw, structured description of the host's
// network interfaces. The reference implementation shells out to the host
// metadata utility; the core only needs the text or a failure. Callers apply
// any timeout through ctx.
type InventorySource interface {
	Fetch(ctx context.Context) ([]byte, error)
}
