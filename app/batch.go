package app

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/nsupdate"
)

func newBatchCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [diff]",
		Short: "Build an nsupdate batch from a diff of two zone files",
		Long: `Reads a diff of two zone files rendered by the format command from
file or stdin and prints the nsupdate batch applying it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zone := c.v.GetString("zone")
			if zone == "" {
				return ErrZoneMissing
			}

			server := c.v.GetString("dnsserver")
			if server == "" {
				return ErrServerMissing
			}

			diff, err := readInput(cmd, afero.NewOsFs(), args)
			if err != nil {
				return err
			}

			cs := nsupdate.FromDiff(diff, c.v.GetString("add-marker"), c.v.GetString("delete-marker"))

			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(cs.Batch(server, zone), "\n"))

			return err //nolint:wrapcheck
		},
	}

	cmd.Flags().String("zone", "", "Zone the diff belongs to")
	cmd.Flags().String("dnsserver", "", "Name server to send the batch to")
	cmd.Flags().String("add-marker", nsupdate.DefaultAddMarker, "Prefix of added lines")
	cmd.Flags().String("delete-marker", nsupdate.DefaultDeleteMarker, "Prefix of deleted lines")

	return cmd
}
