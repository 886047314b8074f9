package app

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/controller/journal"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/models"
)

// ErrJournalDisabled is returned by history if the journal is not enabled.
var ErrJournalDisabled = errors.New("journal is disabled, set Journal.Enabled in main.toml")

func newHistoryCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List the change sets sent to the name servers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !c.cfg.Journal.Enabled {
				return ErrJournalDisabled
			}

			gdb, err := db.Open(&c.cfg)
			if err != nil {
				return err
			}

			if id := c.v.GetString("show"); id != "" {
				entry, err := journal.Get(gdb, id)
				if err != nil {
					return errors.Wrapf(err, "entry %s", id)
				}

				_, err = fmt.Fprint(cmd.OutOrStdout(), entry.Batch)

				return err //nolint:wrapcheck
			}

			entries, err := journal.List(gdb, c.v.GetString("zone"), c.v.GetInt("limit"))
			if err != nil {
				return err
			}

			printEntries(cmd.OutOrStdout(), entries)

			return nil
		},
	}

	cmd.Flags().String("zone", "", "Only list changes of this zone")
	cmd.Flags().Int("limit", journal.DefaultLimit, "Maximum number of entries")
	cmd.Flags().String("show", "", "Print the batch of the entry with this ID")

	return cmd
}

func printEntries(out io.Writer, entries []models.Entry) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Time", "Zone", "Server", "Serial", "Changes", "User", "ID"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, e := range entries {
		table.Append([]string{
			e.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			e.Zone,
			e.Server,
			fmt.Sprintf("%d -> %d", e.OldSerial, e.NewSerial),
			fmt.Sprintf("+%d -%d", e.Adds, e.Deletes),
			e.User,
			e.ID,
		})
	}

	table.Render()
}
