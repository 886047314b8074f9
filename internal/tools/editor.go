package tools

import (
	"context"
	"io"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// Editor opens files in an interactive text editor.
type Editor struct {
	Command string // may carry arguments, e.g. "code --wait"
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
}

// Edit blocks until the editor exits.
func (e *Editor) Edit(ctx context.Context, path string) error {
	fields := strings.Fields(e.Command)
	if len(fields) == 0 {
		return errors.New("no editor configured")
	}

	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...) //nolint:gosec
	cmd.Stdin, cmd.Stdout, cmd.Stderr = e.Stdin, e.Stdout, e.Stderr

	return errors.Wrapf(cmd.Run(), "editor %s failed", fields[0])
}
