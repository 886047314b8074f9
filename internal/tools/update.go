package tools

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/nsupdate"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/zonefile"
)

// NsUpdate applies batch files with nsupdate.
type NsUpdate struct {
	Runner Runner
	Path   string
	Key    Key
}

// Update sends the batch file at batchPath. The snapshot and change set are
// already contained in the batch file.
func (n *NsUpdate) Update(
	ctx context.Context,
	_ *zonefile.Snapshot,
	changes *nsupdate.ChangeSet,
	batchPath string,
) (string, error) {
	res, err := n.Runner.Run(ctx, n.Path, "-y", n.Key.String(), batchPath)
	if err != nil {
		return "", err
	}

	if res.ExitCode != 0 {
		return res.Output, &OutputError{Err: ErrUpdateFailed, Output: res.Output}
	}

	log.Info().Str("batch", batchPath).Int("add", len(changes.Add)).Int("delete", len(changes.Delete)).
		Msg("nsupdate batch applied")

	return res.Output, nil
}
