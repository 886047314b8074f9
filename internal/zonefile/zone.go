package zonefile

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// bannerRe matches the informational first line of a dig zone transfer,
// e.g. "; <<>> DiG 9.18.28 <<>> @ns1.example.com -y hmac-sha256:k:s -t AXFR example.com".
var bannerRe = regexp.MustCompile(`^\s*;\s+<<>>\s+(?P<tool>\S+)\s+(?P<version>[0-9.]+)\S*\s+<<>>\s+` +
	`@(?P<ns>\S+)\s+(?:-y\s+(?P<key>\S+)\s+)?-t\s+AXFR\s+(?P<zone>\S+)\s*$`)

// Metadata is the information found in the banner of a zone dump. Every
// field is empty if the dump carries no banner.
type Metadata struct {
	Tool       string
	Version    string
	Nameserver string
	Zone       string
	KeyType    string // algorithm of the query key, never the secret
}

// Snapshot is the parsed content of one zone dump.
type Snapshot struct {
	Metadata
	Records []Record
}

// Parse reads a zone dump. Lines which are not records are skipped. Only the
// first SOA record is kept, a zone transfer repeats it as its last record.
func Parse(raw string) *Snapshot {
	var (
		s       = &Snapshot{}
		soaSeen bool
		banner  bool
	)

	raw = strings.TrimPrefix(raw, "\ufeff")

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		if !banner {
			banner = s.readBanner(line)
		}

		r := ParseLine(line)
		if r == nil {
			continue
		}

		if r.Type == TypeSOA {
			if soaSeen {
				log.Debug().Str("record", r.String()).Msg("dropping duplicate SOA record")
				continue
			}

			soaSeen = true
		}

		s.Records = append(s.Records, *r)
	}

	return s
}

// Load parses the zone file at path.
func Load(fs afero.Fs, path string) (*Snapshot, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read zone file %s", path)
	}

	return Parse(string(data)), nil
}

func (s *Snapshot) readBanner(line string) bool {
	m := bannerRe.FindStringSubmatch(line)
	if m == nil {
		return false
	}

	s.Tool = m[bannerRe.SubexpIndex("tool")]
	s.Version = m[bannerRe.SubexpIndex("version")]
	s.Nameserver = m[bannerRe.SubexpIndex("ns")]
	s.Zone = m[bannerRe.SubexpIndex("zone")]

	// -y [alg:]name:secret
	if parts := strings.Split(m[bannerRe.SubexpIndex("key")], ":"); len(parts) == 3 { //nolint:mnd
		s.KeyType = parts[0]
	}

	return true
}

// SOA returns a view over the SOA record of the snapshot. Changes made
// through the view are visible in s.Records.
func (s *Snapshot) SOA() (*SoaRecord, error) {
	for i := range s.Records {
		if s.Records[i].Type == TypeSOA {
			return NewSoaRecord(&s.Records[i])
		}
	}

	return nil, ErrNoSOA
}

// Filter returns the records whose type is not listed in exclude.
func (s *Snapshot) Filter(exclude []string) []Record {
	skip := make(map[string]bool, len(exclude))
	for _, t := range exclude {
		skip[t] = true
	}

	records := make([]Record, 0, len(s.Records))

	for _, r := range s.Records {
		if !skip[r.Type] {
			records = append(records, r)
		}
	}

	return records
}
