// Package coordination connects the daemon to its ZooKeeper ensemble and
// watches the registrar for service-membership changes.
package coordination

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-zookeeper/zk"

	"github.com/sdcops/muppet/internal/core/domain"
	"github.com/sdcops/muppet/internal/core/ports"
)

// watchRetryDelay spaces out re-arming a watch after a transient error,
// e.g. the registrar path not existing yet.
const watchRetryDelay = 5 * time.Second

// ZKSessionBuilder implements ports.SessionBuilder over go-zookeeper.
type ZKSessionBuilder struct {
	log *slog.Logger
}

// NewSessionBuilder creates a builder.
func NewSessionBuilder(log *slog.Logger) *ZKSessionBuilder {
	return &ZKSessionBuilder{log: log}
}

// Build connects to the configured ensemble and blocks until the session is
// established or ctx is done.
func (b *ZKSessionBuilder) Build(ctx context.Context, cfg domain.CoordinationConfig) (ports.CoordinationSession, error) {
	conn, events, err := zk.Connect(cfg.Endpoints(), cfg.SessionTimeout, zk.WithLogInfo(false))
	if err != nil {
		return nil, fmt.Errorf("connect to ensemble %v: %w", cfg.Endpoints(), err)
	}

	for {
		select {
		case <-ctx.Done():
			conn.Close()
			return nil, fmt.Errorf("waiting for coordination session: %w", ctx.Err())
		case ev, ok := <-events:
			if !ok {
				conn.Close()
				return nil, fmt.Errorf("coordination connection closed before session was established")
			}
			if ev.State == zk.StateHasSession {
				b.log.Info("coordination session established",
					slog.Any("servers", cfg.Endpoints()),
					slog.Duration("session_timeout", cfg.SessionTimeout))
				return &zkSession{conn: conn, log: b.log}, nil
			}
		}
	}
}

// zkSession wraps an established ZooKeeper connection.
type zkSession struct {
	conn *zk.Conn
	log  *slog.Logger
}

// WatchMembers emits the children of path now and after every change. The
// channel is closed when ctx is cancelled or the session is lost.
func (s *zkSession) WatchMembers(ctx context.Context, path string) (<-chan ports.MembershipEvent, error) {
	out := make(chan ports.MembershipEvent)

	go func() {
		defer close(out)
		for {
			children, _, watch, err := s.conn.ChildrenW(path)
			if err != nil {
				if err == zk.ErrClosing || err == zk.ErrConnectionClosed {
					s.log.Warn("coordination session lost, stopping watch", slog.String("path", path))
					return
				}
				s.log.Warn("cannot arm registrar watch, retrying",
					slog.String("path", path), slog.String("error", err.Error()))
				select {
				case <-ctx.Done():
					return
				case <-time.After(watchRetryDelay):
					continue
				}
			}

			select {
			case <-ctx.Done():
				return
			case out <- ports.MembershipEvent{Members: children}:
			}

			select {
			case <-ctx.Done():
				return
			case <-watch:
				// membership changed, loop re-arms the watch
			}
		}
	}()

	return out, nil
}

func (s *zkSession) Close() {
	s.conn.Close()
}
