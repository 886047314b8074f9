package app

import (
	"context"
	"net/url"
	"os"
	"os/user"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/config"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/controller/journal"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/formatter"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/powerdns"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/session"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/tools"
)

func newEditCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a zone and send the changes to the name server",
		Long: `Transfers the zone, opens it in $EDITOR, checks the result with
named-checkzone and sends the differences with nsupdate. The TSIG key is
read from $HMAC as [algorithm:]name:secret.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.applyEditFlags()

			if err := config.Validate(&c.cfg); err != nil {
				return err
			}

			s, err := c.newSession(cmd.Context())
			if err != nil {
				return err
			}

			s.Out = cmd.OutOrStdout()

			return s.Run(cmd.Context())
		},
	}

	cmd.Flags().String("zone", "", "Zone to edit")
	cmd.Flags().String("dnsserver", "", "Name server to transfer from and update, defaults to the SOA primary")
	cmd.Flags().String("editor", "", "Editor command, defaults to $EDITOR")
	cmd.Flags().String("backend", "", "dig or powerdns, overrides the configuration")
	cmd.Flags().String("workdir", "", "Directory for the session files")
	cmd.Flags().Bool("keep-files", false, "Keep the session files after a successful update")
	cmd.Flags().BoolP("yes", "y", false, "Do not wait for ENTER")

	return cmd
}

func (c *cli) applyEditFlags() {
	_ = c.v.BindEnv("hmac", "HMAC")
	_ = c.v.BindEnv("editor", "EDITOR")

	if editor := c.v.GetString("editor"); editor != "" {
		c.cfg.Session.Editor = editor
	}

	if backend := c.v.GetString("backend"); backend != "" {
		c.cfg.Backend = backend
	}

	if workDir := c.v.GetString("workdir"); workDir != "" {
		c.cfg.Session.WorkDir = workDir
	}

	if c.v.GetBool("keep-files") {
		c.cfg.Session.KeepFiles = true
	}

	if c.v.GetBool("yes") {
		c.cfg.Session.AssumeYes = true
	}
}

// newSession wires the collaborators of the configured backend.
func (c *cli) newSession(ctx context.Context) (*session.Session, error) {
	zone := c.v.GetString("zone")
	if zone == "" {
		return nil, ErrZoneMissing
	}

	var (
		runner = tools.ExecRunner{}
		fs     = afero.NewOsFs()
		server = c.v.GetString("dnsserver")
		s      = &session.Session{
			Zone:      zone,
			Backend:   c.cfg.Backend,
			User:      currentUser(),
			WorkDir:   c.cfg.Session.WorkDir,
			KeepFiles: c.cfg.Session.KeepFiles,
			Checker:   &tools.CheckZone{Runner: runner, Path: c.cfg.Tools.CheckZone},
			Differ:    &tools.Diff{Runner: runner, Path: c.cfg.Tools.Diff},
			Editor: &tools.Editor{
				Command: c.cfg.Session.Editor,
				Stdin:   os.Stdin,
				Stdout:  os.Stdout,
				Stderr:  os.Stderr,
			},
			Prompter: tools.NewPrompt(os.Stdin, os.Stderr, c.cfg.Session.AssumeYes),
			Fs:       fs,
		}
	)

	s.Formatter = formatter.New(fs, c.cfg.Format.ExcludeTypes)
	s.Formatter.Separator = c.cfg.Format.Separator

	switch c.cfg.Backend {
	case config.BackendPowerDNS:
		if err := tools.CheckDependencies(c.cfg.Session.Editor, c.cfg.Tools.Diff, c.cfg.Tools.CheckZone); err != nil {
			return nil, err
		}

		engine, err := powerdns.Open(c.cfg.PowerDNS)
		if err != nil {
			return nil, err
		}

		if server == "" {
			if u, err := url.Parse(c.cfg.PowerDNS.URL); err == nil {
				server = u.Hostname()
			}
		}

		s.Fetcher, s.Updater = engine, engine
	default:
		if err := tools.CheckDependencies(
			c.cfg.Session.Editor, c.cfg.Tools.Dig, c.cfg.Tools.Diff, c.cfg.Tools.CheckZone, c.cfg.Tools.NsUpdate,
		); err != nil {
			return nil, err
		}

		hmac := c.v.GetString("hmac")
		if hmac == "" {
			return nil, ErrHMACMissing
		}

		key, err := tools.ParseKey(hmac)
		if err != nil {
			return nil, err
		}

		if server == "" {
			if server, err = c.discoverServer(ctx, zone); err != nil {
				return nil, err
			}
		}

		s.Fetcher = &tools.Dig{Runner: runner, Path: c.cfg.Tools.Dig, Key: key}
		s.Updater = &tools.NsUpdate{Runner: runner, Path: c.cfg.Tools.NsUpdate, Key: key}
	}

	if server == "" {
		return nil, ErrServerMissing
	}

	s.Server = server

	if c.cfg.Journal.Enabled {
		gdb, err := db.Open(&c.cfg)
		if err != nil {
			return nil, err
		}

		s.Journal = journal.Recorder{DB: gdb}
	}

	return s, nil
}

func (c *cli) discoverServer(ctx context.Context, zone string) (string, error) {
	resolver, err := tools.NewResolver(c.cfg.Session.Resolver)
	if err != nil {
		return "", err
	}

	server, err := resolver.AuthoritativeServer(ctx, zone)
	if err != nil {
		return "", err
	}

	log.Info().Str("zone", zone).Str("server", server).Msg("found dns server by SOA record")

	return server, nil
}

func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}

	return os.Getenv("USER")
}
