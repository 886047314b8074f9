package config

import (
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/logger"
)

// Backends known by the edit session.
const (
	BackendDig      = "dig"
	BackendPowerDNS = "powerdns"
)

// Config overall data structure.
type Config struct {
	DevMode  bool   // enable dev mode for development
	Backend  string `validate:"oneof=dig powerdns"` // where zones are read from and written to
	Log      logger.Log
	Session  Session
	Tools    Tools
	Format   Format
	PowerDNS PowerDNS
	Journal  Journal
	DB       DB
}

// Session settings of an interactive edit.
type Session struct {
	Editor    string // editor command, $EDITOR wins over this
	WorkDir   string // where snapshot files are written
	KeepFiles bool   // keep snapshot files after a successful update
	AssumeYes bool   // never wait for ENTER
	Resolver  string // resolv.conf used to look up the primary nameserver
}

// Tools holds the paths of the external binaries.
type Tools struct {
	Dig       string `validate:"required"`
	Diff      string `validate:"required"`
	CheckZone string `validate:"required"`
	NsUpdate  string `validate:"required"`
}

// Format controls the zone file layout.
type Format struct {
	ExcludeTypes []string
	Separator    string `validate:"required"`
}

// PowerDNS holds the API settings used by the powerdns backend.
type PowerDNS struct {
	URL    string `validate:"omitempty,url"`
	APIKey string
	VHost  string
}

// Journal settings. Every applied change set is recorded when enabled.
type Journal struct {
	Enabled bool
	Engine  string `validate:"omitempty,oneof=sqlite mysql postgres"`
	Path    string // sqlite database file
}
