package app

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/formatter"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/session"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/zonefile"
)

func newFormatCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "format [file]",
		Short: "Render a dig AXFR dump as an editable zone file",
		Long: `Reads the output of "dig -t AXFR" from file or stdin and prints it
in the aligned, sorted layout used by the edit command.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fs := afero.NewOsFs()

			raw, err := readInput(cmd, fs, args)
			if err != nil {
				return err
			}

			exclude := c.cfg.Format.ExcludeTypes
			if c.v.IsSet("exclude") {
				exclude = c.v.GetStringSlice("exclude")
			}

			f := formatter.New(fs, exclude)
			f.Separator = c.cfg.Format.Separator

			lines := f.Render(zonefile.Parse(raw))
			if len(lines) == 0 {
				return session.ErrNoRecords
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(lines, "\n"))

			return err //nolint:wrapcheck
		},
	}

	cmd.Flags().StringSlice("exclude", nil, "Record types to leave out, overrides the configuration")

	return cmd
}
