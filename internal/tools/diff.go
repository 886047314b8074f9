package tools

import (
	"context"
)

const (
	diffExitSame    = 0
	diffExitChanged = 1
)

// Diff compares files with diff.
type Diff struct {
	Runner Runner
	Path   string
}

// Unified returns a unified diff between a and b for display.
func (d *Diff) Unified(ctx context.Context, a, b string) (changed bool, diff string, err error) {
	return d.run(ctx, "-Nau", a, b)
}

// Minimal returns a normal diff between a and b, changed lines are prefixed
// with "< " and "> ".
func (d *Diff) Minimal(ctx context.Context, a, b string) (changed bool, diff string, err error) {
	return d.run(ctx, a, b)
}

func (d *Diff) run(ctx context.Context, args ...string) (bool, string, error) {
	res, err := d.Runner.Run(ctx, d.Path, args...)
	if err != nil {
		return false, "", err
	}

	switch res.ExitCode {
	case diffExitSame:
		return false, res.Output, nil
	case diffExitChanged:
		return true, res.Output, nil
	default:
		return false, "", &OutputError{Err: ErrDiff, Output: res.Output}
	}
}
