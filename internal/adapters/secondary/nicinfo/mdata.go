package nicinfo

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

const (
	mdataCommand = "mdata-get"
	nicsKey      = "sdc:nics"
)

// MdataSource implements ports.InventorySource by invoking the host metadata
// utility. The call blocks until the utility exits; callers bound it with a
// context deadline.
type MdataSource struct{}

// NewMdataSource creates a source.
func NewMdataSource() *MdataSource {
	return &MdataSource{}
}

// Fetch runs `mdata-get sdc:nics` and returns its stdout.
func (s *MdataSource) Fetch(ctx context.Context) ([]byte, error) {
	cmd := exec.CommandContext(ctx, mdataCommand, nicsKey)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := bytes.TrimSpace(stderr.Bytes()); len(msg) > 0 {
			return nil, fmt.Errorf("%s %s: %w: %s", mdataCommand, nicsKey, err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", mdataCommand, nicsKey, err)
	}
	return stdout.Bytes(), nil
}
