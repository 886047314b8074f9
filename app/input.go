package app

import (
	"io"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// readInput returns the content of the file named by the only argument, or stdin.
func readInput(cmd *cobra.Command, fs afero.Fs, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}

		return string(b), nil
	}

	b, err := afero.ReadFile(fs, args[0])
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", args[0])
	}

	return string(b), nil
}
