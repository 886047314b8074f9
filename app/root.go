// Package app implements the main application commands.
package app

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/config"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/logger"
)

// Version is set at build time.
var Version = "dev" //nolint:gochecknoglobals

// cli carries the state shared by all commands of one invocation.
type cli struct {
	v          *viper.Viper
	cfg        config.Config
	configPath string
}

// bind makes the flags of the running command visible to viper. Several
// commands share flag names, so only the flags of the executed command are bound.
func (c *cli) bind(flags *pflag.FlagSet) error {
	return c.v.BindPFlags(flags) //nolint:wrapcheck
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:   "nsupdate-interactive",
		Short: "nsupdate-interactive edits DNS zones in a text editor",
		Long: `nsupdate-interactive transfers a DNS zone, opens it in a text editor
and sends the changes back to the name server as a minimal nsupdate batch.`,
		Args:          cobra.OnlyValidArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error

			if c.cfg, err = config.ReadConfig(c.configPath); err != nil {
				return err
			}

			if err = c.bind(cmd.Flags()); err != nil {
				return err
			}

			if level := c.v.GetString("log-level"); level != "" {
				c.cfg.Log.LogLevel = level
			}

			return logger.Init(c.cfg.Log)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if err := logger.PushMetrics(c.cfg.Log.PushGateway, c.cfg.Log.ServiceName); err != nil {
				log.Warn().Err(err).Msg("failed to push metrics")
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&c.configPath, "config", "./etc/", "Directory holding main.toml")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")

	rootCmd.AddCommand(
		newEditCmd(c),
		newFormatCmd(c),
		newBatchCmd(c),
		newHistoryCmd(c),
		newVersionCmd(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := newRootCmd()

	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln("Error:", err)
	}

	return err
}
