// Package lbreload pushes membership changes into the load balancer.
package lbreload

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// CommandReloader implements ports.Reloader by running a reload command with
// the current members appended as arguments. An empty command degrades to a
// log-only reloader, which keeps the watch loop exercisable on hosts without
// a load balancer installed.
type CommandReloader struct {
	log     *slog.Logger
	command []string
}

// NewCommandReloader creates a reloader. command is the program and its
// fixed arguments, e.g. ["/opt/muppet/bin/reload-haproxy"].
func NewCommandReloader(log *slog.Logger, command []string) *CommandReloader {
	return &CommandReloader{log: log, command: command}
}

// Reload runs the configured command for the given membership.
func (r *CommandReloader) Reload(ctx context.Context, members []string) error {
	if len(r.command) == 0 {
		r.log.Info("no reload command configured, skipping reload",
			slog.Int("members", len(members)))
		return nil
	}

	args := append(append([]string{}, r.command[1:]...), members...)
	cmd := exec.CommandContext(ctx, r.command[0], args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("reload command %q: %w: %s",
			strings.Join(r.command, " "), err, strings.TrimSpace(string(out)))
	}

	r.log.Info("load balancer reloaded", slog.Int("members", len(members)))
	return nil
}
