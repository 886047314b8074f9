// Package session drives one interactive edit of a zone: fetch, render,
// edit until the zone file is valid, review the serial, confirm and apply
// the reconstructed change set.
package session

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/models"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/formatter"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/nsupdate"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/tools"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/zonefile"
)

// Versions of the files written during a session.
const (
	VersionOriginal = "org"
	VersionEdited   = "new"
	VersionPatch    = "patch"
	VersionBatch    = "batch"
)

const (
	timestampLayout = "20060102T150405"
	dirMode         = 0o750
	fileMode        = 0o600
)

type (
	// Fetcher loads the current zone from the server.
	Fetcher interface {
		Fetch(ctx context.Context, server, zone string) (*zonefile.Snapshot, error)
	}

	// Updater applies a change set. batchPath holds the rendered batch.
	Updater interface {
		Update(ctx context.Context, original *zonefile.Snapshot, changes *nsupdate.ChangeSet, batchPath string) (string, error)
	}

	// Checker validates a zone file.
	Checker interface {
		Check(ctx context.Context, zone, path string) (ok bool, output string, err error)
	}

	// Differ compares two zone files.
	Differ interface {
		Unified(ctx context.Context, a, b string) (changed bool, diff string, err error)
		Minimal(ctx context.Context, a, b string) (changed bool, diff string, err error)
	}

	// Editor lets the user change a file.
	Editor interface {
		Edit(ctx context.Context, path string) error
	}

	// Prompter asks the user to continue.
	Prompter interface {
		Confirm(what string) error
	}

	// Journal records applied change sets.
	Journal interface {
		Create(entry *models.Entry) error
	}
)

// Session is one edit of Zone on Server. All collaborators except Journal
// are required.
type Session struct {
	ID      string
	Server  string
	Zone    string
	Backend string // name recorded in the journal
	User    string

	WorkDir   string
	KeepFiles bool

	Fetcher   Fetcher
	Updater   Updater
	Checker   Checker
	Differ    Differ
	Editor    Editor
	Prompter  Prompter
	Journal   Journal
	Formatter *formatter.Formatter

	Fs  afero.Fs
	Out io.Writer
	Now func() time.Time

	state    State
	base     string
	original *zonefile.Snapshot
	changes  *nsupdate.ChangeSet
}

// State returns the state the session reached.
func (s *Session) State() State {
	return s.state
}

// Changes returns the reconstructed change set, nil before reconstruction.
func (s *Session) Changes() *nsupdate.ChangeSet {
	return s.changes
}

// Path returns the path of the session file of version.
func (s *Session) Path(version string) string {
	return fmt.Sprintf(s.base, version)
}

func (s *Session) setState(state State) {
	log.Debug().Str("session", s.ID).Str("zone", s.Zone).
		Str("from", s.state.String()).Str("state", state.String()).Msg("session state changed")

	s.state = state
}

func (s *Session) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.Out, format, args...)
}

func (s *Session) validate() error {
	if s.Fetcher == nil || s.Updater == nil || s.Checker == nil || s.Differ == nil ||
		s.Editor == nil || s.Prompter == nil || s.Formatter == nil || s.Fs == nil {
		return ErrIncomplete
	}

	if s.Out == nil {
		s.Out = io.Discard
	}

	if s.Now == nil {
		s.Now = time.Now
	}

	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	if s.WorkDir == "" {
		s.WorkDir = "."
	}

	return nil
}

// Run executes the session until the change set was applied, nothing was
// changed or an error occurred. Session files are kept on error.
func (s *Session) Run(ctx context.Context) error {
	if err := s.validate(); err != nil {
		return err
	}

	s.base = filepath.Join(s.WorkDir, fmt.Sprintf("nsupdate_%s_%s_%sZ",
		s.Server, s.Zone, s.Now().UTC().Format(timestampLayout))) + ".%s.db"

	if err := s.Fs.MkdirAll(s.WorkDir, dirMode); err != nil {
		return errors.Wrapf(err, "failed to create work directory %s", s.WorkDir)
	}

	originalSOA, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	if err = s.render(); err != nil {
		return err
	}

	if err = s.editLoop(ctx); err != nil {
		return err
	}

	changed, diff, err := s.Differ.Unified(ctx, s.Path(VersionOriginal), s.Path(VersionEdited))
	if err != nil {
		return errors.Wrap(err, "failed to diff zone files")
	}

	s.setState(StateDiffed)

	if !changed {
		s.printf("No changes made. Exit.\n")
		s.cleanup(VersionOriginal, VersionEdited)
		s.setState(StateTerminated)

		return nil
	}

	newSerial, diff, err := s.reviewSerial(ctx, originalSOA, diff)
	if err != nil {
		return err
	}

	s.printf("%s\n", tools.ColorizeDiff(diff))

	if err = afero.WriteFile(s.Fs, s.Path(VersionPatch), []byte(diff), fileMode); err != nil {
		return errors.Wrap(err, "failed to write patch file")
	}

	if err = s.Prompter.Confirm("send the changes to the nameserver"); err != nil {
		return err
	}

	s.setState(StateReadyToReconstruct)

	return s.apply(ctx, originalSOA.Serial, newSerial)
}

func (s *Session) fetch(ctx context.Context) (*zonefile.SoaRecord, error) {
	snapshot, err := s.Fetcher.Fetch(ctx, s.Server, s.Zone)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch zone %s from %s", s.Zone, s.Server)
	}

	if len(snapshot.Records) == 0 {
		return nil, ErrNoRecords
	}

	soa, err := snapshot.SOA()
	if err != nil {
		return nil, errors.Wrapf(err, "zone %s", s.Zone)
	}

	s.original = snapshot
	s.setState(StateFetched)

	log.Info().Str("zone", s.Zone).Str("server", s.Server).Int("records", len(snapshot.Records)).
		Uint32("serial", soa.Serial).Msg("zone fetched")

	return soa, nil
}

func (s *Session) render() error {
	for _, version := range []string{VersionOriginal, VersionEdited} {
		n, err := s.Formatter.Save(s.Path(version), s.original)
		if err != nil {
			return err //nolint:wrapcheck
		}

		if n == 0 {
			return ErrNoRecords
		}
	}

	s.setState(StateRendered)

	return nil
}

func (s *Session) editLoop(ctx context.Context) error {
	path := s.Path(VersionEdited)

	for {
		if err := s.Editor.Edit(ctx, path); err != nil {
			return err //nolint:wrapcheck
		}

		ok, output, err := s.Checker.Check(ctx, s.Zone, path)
		if err != nil {
			return errors.Wrap(err, "failed to check zone file")
		}

		if ok {
			s.setState(StateCheckedValid)

			return nil
		}

		s.setState(StateCheckedInvalid)
		s.printf("Found syntax errors in zone file:\n%s\n", strings.TrimRight(output, "\n"))

		if err = s.Prompter.Confirm("correct the zone file"); err != nil {
			return err //nolint:wrapcheck
		}

		s.setState(StateRendered)
	}
}

// reviewSerial bumps the serial if the user left the SOA record untouched
// and returns the serial and diff to continue with.
func (s *Session) reviewSerial(ctx context.Context, originalSOA *zonefile.SoaRecord, diff string) (uint32, string, error) {
	path := s.Path(VersionEdited)

	edited, err := zonefile.Load(s.Fs, path)
	if err != nil {
		return 0, "", err //nolint:wrapcheck
	}

	edited.Metadata = s.original.Metadata

	editedSOA, err := edited.SOA()
	if err != nil {
		return 0, "", errors.Wrap(err, "edited zone file")
	}

	s.setState(StateSerialReviewed)

	if !originalSOA.Equal(editedSOA) {
		return editedSOA.Serial, diff, nil
	}

	editedSOA.BumpSerialDefault(s.Now())
	s.setState(StateSerialBumped)

	log.Info().Str("zone", s.Zone).Uint32("from", originalSOA.Serial).Uint32("to", editedSOA.Serial).
		Msg("serial increased")

	if _, err = s.Formatter.Save(path, edited); err != nil {
		return 0, "", err //nolint:wrapcheck
	}

	s.setState(StateRendered)

	if _, diff, err = s.Differ.Unified(ctx, s.Path(VersionOriginal), path); err != nil {
		return 0, "", errors.Wrap(err, "failed to diff zone files")
	}

	s.setState(StateDiffed)

	return editedSOA.Serial, diff, nil
}

func (s *Session) apply(ctx context.Context, oldSerial, newSerial uint32) error {
	_, minimal, err := s.Differ.Minimal(ctx, s.Path(VersionOriginal), s.Path(VersionEdited))
	if err != nil {
		return errors.Wrap(err, "failed to diff zone files")
	}

	s.changes = nsupdate.FromDiff(minimal, nsupdate.DefaultAddMarker, nsupdate.DefaultDeleteMarker)
	s.setState(StateReconstructed)

	if s.changes.Empty() {
		s.printf("No record changed. Exit.\n")
		s.cleanup(VersionOriginal, VersionEdited, VersionPatch)
		s.setState(StateTerminated)

		return nil
	}

	batch := strings.Join(s.changes.Batch(s.Server, s.Zone), "\n") + "\n"

	if err = afero.WriteFile(s.Fs, s.Path(VersionBatch), []byte(batch), fileMode); err != nil {
		return errors.Wrap(err, "failed to write batch file")
	}

	s.setState(StateBatchEmitted)
	s.printf("Perform nsupdate...\n")

	output, err := s.Updater.Update(ctx, s.original, s.changes, s.Path(VersionBatch))
	if output != "" {
		s.printf("%s\n", strings.TrimRight(output, "\n"))
	}

	if err != nil {
		return errors.Wrapf(err, "failed to update zone %s", s.Zone)
	}

	s.setState(StateApplied)

	log.Info().Str("zone", s.Zone).Str("server", s.Server).Int("add", len(s.changes.Add)).
		Int("delete", len(s.changes.Delete)).Uint32("serial", newSerial).Msg("zone updated")

	s.record(oldSerial, newSerial, batch)

	if !s.KeepFiles {
		s.cleanup(VersionOriginal, VersionEdited, VersionPatch, VersionBatch)
	}

	return nil
}

// record writes the journal entry. The zone is already updated, so a
// failure is only logged.
func (s *Session) record(oldSerial, newSerial uint32, batch string) {
	if s.Journal == nil {
		return
	}

	entry := &models.Entry{
		Zone:      s.Zone,
		Server:    s.Server,
		Backend:   s.Backend,
		User:      s.User,
		OldSerial: oldSerial,
		NewSerial: newSerial,
		Adds:      len(s.changes.Add),
		Deletes:   len(s.changes.Delete),
		Batch:     batch,
	}

	if err := s.Journal.Create(entry); err != nil {
		log.Warn().Err(err).Str("zone", s.Zone).Msg("failed to write journal entry")
	}
}

func (s *Session) cleanup(versions ...string) {
	for _, v := range versions {
		if err := s.Fs.Remove(s.Path(v)); err != nil {
			log.Warn().Err(err).Str("path", s.Path(v)).Msg("failed to remove session file")
		}
	}
}
