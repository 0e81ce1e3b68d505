package coordination

import (
	"context"
	"log/slog"

	"github.com/sdcops/muppet/internal/adapters/metrics"
	"github.com/sdcops/muppet/internal/core/ports"
)

// Watcher drives the load balancer from registrar membership snapshots.
type Watcher struct {
	log      *slog.Logger
	session  ports.CoordinationSession
	reloader ports.Reloader
}

// NewWatcher creates a watcher.
func NewWatcher(log *slog.Logger, session ports.CoordinationSession, reloader ports.Reloader) *Watcher {
	return &Watcher{log: log, session: session, reloader: reloader}
}

// Run watches path and reloads the load balancer on every membership
// snapshot. It blocks until ctx is cancelled or the session ends.
func (w *Watcher) Run(ctx context.Context, path string) error {
	events, err := w.session.WatchMembers(ctx, path)
	if err != nil {
		return err
	}

	w.log.Info("watching registrar", slog.String("path", path))

	for ev := range events {
		metrics.RecordMembershipEvent()
		w.log.Info("service membership changed",
			slog.String("path", path), slog.Int("members", len(ev.Members)))

		err := w.reloader.Reload(ctx, ev.Members)
		metrics.RecordReload(err)
		if err != nil {
			// keep watching; a later snapshot may succeed
			w.log.Error("load balancer reload failed", slog.String("error", err.Error()))
		}
	}
	return ctx.Err()
}
