package app

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/config"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/controller/journal"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/db/models"
	"github.com/nsupdate-interactive/nsupdate-interactive/internal/session"
)

const digDump = `; <<>> DiG 9.18.24 <<>> @ns1.example.com -t AXFR example.com
example.com.		3600	IN	SOA	ns1.example.com. hostmaster.example.com. 2024060100 10800 3600 604800 3600
example.com.		3600	IN	RRSIG	SOA 13 2 3600 20240701000000 20240601000000 12345 example.com. abc=
www.example.com.	300	IN	A	192.0.2.1
example.com.		3600	IN	SOA	ns1.example.com. hostmaster.example.com. 2024060100 10800 3600 604800 3600
`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", t.TempDir(), "--log-level", "error"}, args...))

	err := cmd.Execute()

	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "nsupdate-interactive dev\n", out)
}

func TestFormat(t *testing.T) {
	out, err := execute(t, digDump, "format")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, "; <<>> DiG 9.18.24 <<>> @ns1.example.com -t AXFR example.com", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], "; Name"))
	assert.Equal(t, ";; EOF", lines[len(lines)-1])
	assert.NotContains(t, out, "RRSIG")
	assert.Equal(t, 1, strings.Count(out, " SOA "))
	assert.Contains(t, out, "192.0.2.1")
}

func TestFormat_Exclude(t *testing.T) {
	out, err := execute(t, digDump, "format", "--exclude", "A")
	require.NoError(t, err)

	assert.NotContains(t, out, "192.0.2.1")
	assert.Contains(t, out, "RRSIG")
}

func TestFormat_Empty(t *testing.T) {
	_, err := execute(t, "; nothing here\n", "format")
	require.ErrorIs(t, err, session.ErrNoRecords)
}

func TestBatch(t *testing.T) {
	diff := "2c2\n< www.example.com. 300 IN A 192.0.2.1\n---\n> www.example.com. 300 IN A 192.0.2.99\n"

	out, err := execute(t, diff, "batch", "--zone", "example.com", "--dnsserver", "ns1.example.com")
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		"; nsupdate batch file",
		"",
		"server ns1.example.com",
		"zone example.com",
		"update del www.example.com. 300 IN A 192.0.2.1",
		"update add www.example.com. 300 IN A 192.0.2.99",
		"",
		"; EOF",
	}, "\n")+"\n", out)
}

func TestBatch_MissingFlags(t *testing.T) {
	_, err := execute(t, "", "batch", "--dnsserver", "ns1.example.com")
	require.ErrorIs(t, err, ErrZoneMissing)

	_, err = execute(t, "", "batch", "--zone", "example.com")
	require.ErrorIs(t, err, ErrServerMissing)
}

func TestEdit_MissingZone(t *testing.T) {
	_, err := execute(t, "", "edit")
	require.ErrorIs(t, err, ErrZoneMissing)
}

func TestEdit_PowerDNSWithoutURL(t *testing.T) {
	_, err := execute(t, "", "edit", "--zone", "example.com", "--backend", "powerdns")
	require.ErrorIs(t, err, config.ErrPowerDNSURLEmpty)
}

func TestHistory_Disabled(t *testing.T) {
	_, err := execute(t, "", "history")
	require.ErrorIs(t, err, ErrJournalDisabled)
}

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	t.Setenv(config.EnvJSON, fmt.Sprintf(`{"Journal":{"Enabled":true,"Engine":"sqlite","Path":%q}}`, path))

	cfg := config.Default()
	cfg.Journal.Path = path

	gdb, err := db.Open(&cfg)
	require.NoError(t, err)

	entry := &models.Entry{
		Zone:      "example.com",
		Server:    "ns1.example.com",
		User:      "alice",
		OldSerial: 2024060100,
		NewSerial: 2024060101,
		Adds:      2,
		Deletes:   1,
		Batch:     "server ns1.example.com\nzone example.com\n",
	}
	require.NoError(t, journal.Create(gdb, entry))
	require.NoError(t, journal.Create(gdb, &models.Entry{Zone: "example.org", NewSerial: 7}))

	out, err := execute(t, "", "history", "--zone", "example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "ns1.example.com")
	assert.Contains(t, out, "2024060100 -> 2024060101")
	assert.Contains(t, out, entry.ID)
	assert.NotContains(t, out, "example.org")

	out, err = execute(t, "", "history", "--show", entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry.Batch, out)

	_, err = execute(t, "", "history", "--show", "missing")
	require.ErrorIs(t, err, journal.ErrEntryNotFound)
}
