// Package tools wraps the external programs an editing session depends on:
// dig, named-checkzone, diff, nsupdate and the text editor.
package tools

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Result is the outcome of a finished command.
type Result struct {
	ExitCode int
	Output   string // stdout and stderr combined
}

// Runner runs a command to completion.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner. A non-zero exit code is not an error.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	log.Debug().Str("command", name).Strs("args", redact(args)).Msg("running command")

	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	res := Result{Output: strings.TrimPrefix(string(out), "\ufeff")}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}

	if err != nil {
		return res, errors.Wrapf(err, "failed to run %s", name)
	}

	return res, nil
}

// redact hides the argument following -y, it holds the key secret.
func redact(args []string) []string {
	out := make([]string, len(args))
	copy(out, args)

	for i := 0; i < len(out)-1; i++ {
		if out[i] == "-y" {
			out[i+1] = "<redacted>"
		}
	}

	return out
}
