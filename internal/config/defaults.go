package config

import (
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/logger"
)

// Default returns the configuration used when no main.toml exists.
func Default() Config {
	return Config{
		Backend: BackendDig,
		Log: logger.Log{
			LogLevel:    "info",
			AppName:     "nsupdate-interactive",
			ServiceName: "nsupdate-interactive",
			Console: logger.Console{
				Enabled:          true,
				UseConsoleWriter: true,
			},
		},
		Session: Session{
			Editor:   "nano",
			WorkDir:  ".",
			Resolver: "/etc/resolv.conf",
		},
		Tools: Tools{
			Dig:       "dig",
			Diff:      "diff",
			CheckZone: "named-checkzone",
			NsUpdate:  "nsupdate",
		},
		Format: Format{
			ExcludeTypes: []string{"DNSKEY", "RRSIG", "NSEC", "TYPE65534", "CDS", "CDNSKEY"},
			Separator:    "    ",
		},
		PowerDNS: PowerDNS{
			VHost: "localhost",
		},
		Journal: Journal{
			Engine: "sqlite",
			Path:   "nsupdate-journal.db",
		},
	}
}
