package tools

import (
	"context"
)

// CheckZone verifies zone files with named-checkzone.
type CheckZone struct {
	Runner Runner
	Path   string
}

// Check runs the syntax check of the zone file at path. ok is false if the
// file has errors, output explains them.
func (c *CheckZone) Check(ctx context.Context, zone, path string) (ok bool, output string, err error) {
	res, err := c.Runner.Run(ctx, c.Path, "-i", "local", zone, path)
	if err != nil {
		return false, "", err
	}

	return res.ExitCode == 0, res.Output, nil
}
