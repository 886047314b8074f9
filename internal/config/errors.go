package config

import (
	"errors"
)

var (
	// ErrPowerDNSURLEmpty error if the powerdns backend is selected without an API URL.
	ErrPowerDNSURLEmpty = errors.New("toml config powerdns.url can not be empty with backend powerdns")

	// ErrJournalPathEmpty error if the sqlite journal has no database file.
	ErrJournalPathEmpty = errors.New("toml config journal.path can not be empty with engine sqlite")

	// ErrJournalHostEmpty error if a networked journal has no database host.
	ErrJournalHostEmpty = errors.New("toml config db.host can not be empty with engine mysql or postgres")
)
