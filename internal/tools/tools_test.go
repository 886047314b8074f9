package tools

import (
	"context"
	"errors"
	"net"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/miekg/dns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nsupdate-interactive/nsupdate-interactive/internal/nsupdate"
)

var testKey = Key{Algorithm: "hmac-sha256", Name: "update-key", Secret: "c2VjcmV0"}

const transferOK = `
; <<>> DiG 9.18.28 <<>> @ns1.example.com -y hmac-sha256:update-key:c2VjcmV0 -t AXFR example.com
example.com.	3600	IN	SOA	ns1.example.com. hostmaster.example.com. 1 3600 900 604800 300
example.com.	3600	IN	NS	ns1.example.com.
example.com.	3600	IN	SOA	ns1.example.com. hostmaster.example.com. 1 3600 900 604800 300
`

func TestDig_Fetch(t *testing.T) {
	runner := &fakeRunner{results: []Result{{Output: transferOK}}}
	d := &Dig{Runner: runner, Path: "dig", Key: testKey}

	s, err := d.Fetch(context.Background(), "ns1.example.com", "example.com")
	require.NoError(t, err)
	assert.Len(t, s.Records, 2)

	require.Len(t, runner.calls, 1)
	assert.Equal(t, "dig @ns1.example.com -y hmac-sha256:update-key:c2VjcmV0 -t AXFR example.com", runner.calls[0].String())
}

func TestDig_Transfer_Errors(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want error
	}{
		{
			name: "key refused",
			res:  Result{Output: ";; Couldn't verify signature: tsig verify failure\n; Transfer failed.\n"},
			want: ErrKeyInvalid,
		},
		{
			name: "bad key rcode",
			res:  Result{Output: "; TSIG error with server: BADKEY\n; Transfer failed.\n"},
			want: ErrKeyInvalid,
		},
		{
			name: "refused",
			res:  Result{Output: "; Transfer failed.\n"},
			want: ErrTransferFailed,
		},
		{
			name: "exit code",
			res:  Result{ExitCode: 9, Output: ";; connection timed out; no servers could be reached\n"},
			want: ErrTransfer,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := &Dig{Runner: &fakeRunner{results: []Result{tc.res}}, Path: "dig", Key: testKey}

			_, err := d.Transfer(context.Background(), "ns1.example.com", "example.com")
			require.ErrorIs(t, err, tc.want)

			var outErr *OutputError
			require.ErrorAs(t, err, &outErr)
			assert.Equal(t, tc.res.Output, outErr.Output)
		})
	}
}

func TestDig_RunnerError(t *testing.T) {
	d := &Dig{Runner: &fakeRunner{err: errors.New("exec: not found")}, Path: "dig", Key: testKey}

	_, err := d.Fetch(context.Background(), "ns1", "example.com")
	assert.EqualError(t, err, "exec: not found")
}

func TestCheckZone(t *testing.T) {
	runner := &fakeRunner{results: []Result{
		{ExitCode: 1, Output: "zone example.com/IN: NS 'ns1.example.com' has no address records\n"},
		{Output: "zone example.com/IN: loaded serial 2\nOK\n"},
	}}
	c := &CheckZone{Runner: runner, Path: "named-checkzone"}

	ok, out, err := c.Check(context.Background(), "example.com", "/tmp/new.db")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, out, "no address records")

	ok, _, err = c.Check(context.Background(), "example.com", "/tmp/new.db")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Equal(t, "named-checkzone -i local example.com /tmp/new.db", runner.calls[0].String())
}

func TestDiff(t *testing.T) {
	runner := &fakeRunner{results: []Result{
		{ExitCode: 0},
		{ExitCode: 1, Output: "1c1\n< a\n---\n> b\n"},
		{ExitCode: 2, Output: "diff: /tmp/x: No such file or directory\n"},
	}}
	d := &Diff{Runner: runner, Path: "diff"}

	changed, _, err := d.Unified(context.Background(), "/tmp/a", "/tmp/b")
	require.NoError(t, err)
	assert.False(t, changed)

	changed, out, err := d.Minimal(context.Background(), "/tmp/a", "/tmp/b")
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, out, "> b")

	_, _, err = d.Minimal(context.Background(), "/tmp/x", "/tmp/b")
	require.ErrorIs(t, err, ErrDiff)

	assert.Equal(t, "diff -Nau /tmp/a /tmp/b", runner.calls[0].String())
	assert.Equal(t, "diff /tmp/a /tmp/b", runner.calls[1].String())
}

func TestNsUpdate_Update(t *testing.T) {
	runner := &fakeRunner{results: []Result{{}, {ExitCode: 2, Output: "update failed: REFUSED\n"}}}
	n := &NsUpdate{Runner: runner, Path: "nsupdate", Key: testKey}

	_, err := n.Update(context.Background(), nil, &nsupdate.ChangeSet{}, "/tmp/x.batch.db")
	require.NoError(t, err)
	assert.Equal(t, "nsupdate -y hmac-sha256:update-key:c2VjcmV0 /tmp/x.batch.db", runner.calls[0].String())

	out, err := n.Update(context.Background(), nil, &nsupdate.ChangeSet{}, "/tmp/x.batch.db")
	require.ErrorIs(t, err, ErrUpdateFailed)
	assert.Contains(t, out, "REFUSED")
}

func TestRedact(t *testing.T) {
	args := []string{"@ns1", "-y", "hmac-sha256:k:secret", "-t", "AXFR"}

	assert.Equal(t, []string{"@ns1", "-y", "<redacted>", "-t", "AXFR"}, redact(args))
	assert.Equal(t, "hmac-sha256:k:secret", args[2])
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		in      string
		want    Key
		wantErr bool
	}{
		{in: "hmac-sha256:update-key:c2VjcmV0", want: Key{"hmac-sha256", "update-key", "c2VjcmV0"}},
		{in: "HMAC-SHA512:k:c2VjcmV0", want: Key{"hmac-sha512", "k", "c2VjcmV0"}},
		{in: "update-key:c2VjcmV0", want: Key{"hmac-md5", "update-key", "c2VjcmV0"}},
		{in: "", wantErr: true},
		{in: "c2VjcmV0", wantErr: true},
		{in: "hmac-foo:k:c2VjcmV0", wantErr: true},
		{in: "hmac-sha256::c2VjcmV0", wantErr: true},
		{in: "hmac-sha256:k:not base64!", wantErr: true},
		{in: "hmac-sha256:k:", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			k, err := ParseKey(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, k)
		})
	}

	assert.Equal(t, dns.HmacSHA256, testKey.CanonicalAlgorithm())
	assert.Equal(t, "hmac-sha256:update-key:c2VjcmV0", testKey.String())
}

func TestColorizeDiff(t *testing.T) {
	noColor := color.NoColor
	t.Cleanup(func() { color.NoColor = noColor })

	diff := "--- a\n+++ b\n@@ -1 +1 @@\n-old\n+new\n same"

	color.NoColor = true
	assert.Equal(t, diff, ColorizeDiff(diff))

	color.NoColor = false
	out := strings.Split(ColorizeDiff(diff), "\n")
	require.Len(t, out, 6)
	assert.Contains(t, out[3], "\x1b[31m")
	assert.Contains(t, out[4], "\x1b[32m")
	assert.Equal(t, " same", out[5])
}

func TestPrompt_Confirm(t *testing.T) {
	var out strings.Builder

	p := NewPrompt(strings.NewReader("\n\n"), &out, false)
	require.NoError(t, p.Confirm("send the changes"))
	require.NoError(t, p.Confirm("send the changes"))
	assert.ErrorIs(t, p.Confirm("send the changes"), ErrAborted)
	assert.Contains(t, out.String(), "Press ENTER to send the changes, CTRL+C to abort.")

	yes := NewPrompt(strings.NewReader(""), &out, true)
	assert.NoError(t, yes.Confirm("continue"))
}

func TestPrompt_NotATerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)

	t.Cleanup(func() { _ = f.Close() })

	p := NewPrompt(f, &strings.Builder{}, false)
	assert.ErrorIs(t, p.Confirm("continue"), ErrNotInteractive)
}

func TestCheckDependencies(t *testing.T) {
	self, err := os.Executable()
	require.NoError(t, err)

	require.NoError(t, CheckDependencies(self, self+" --wait", ""))

	err = CheckDependencies(self, "surely-not-installed-binary-4711")

	var missing *MissingBinariesError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"surely-not-installed-binary-4711"}, missing.Binaries)
}

func TestResolver_AuthoritativeServer(t *testing.T) {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)

	started := make(chan struct{})
	srv := &dns.Server{
		PacketConn:        pc,
		NotifyStartedFunc: func() { close(started) },
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)

			if r.Question[0].Name == "example.com." {
				rr, _ := dns.NewRR("example.com. 3600 IN SOA ns1.example.com. hostmaster.example.com. 1 3600 900 604800 300")
				m.Answer = append(m.Answer, rr)
			} else {
				m.Rcode = dns.RcodeNameError
			}

			_ = w.WriteMsg(m)
		}),
	}

	go func() { _ = srv.ActivateAndServe() }()

	<-started

	t.Cleanup(func() { _ = srv.Shutdown() })

	r := &Resolver{Servers: []string{pc.LocalAddr().String()}, Client: new(dns.Client)}

	ns, err := r.AuthoritativeServer(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "ns1.example.com", ns)

	_, err = r.AuthoritativeServer(context.Background(), "missing.example")
	assert.ErrorIs(t, err, ErrNoAuthoritativeServer)
}

func TestNewResolver(t *testing.T) {
	path := t.TempDir() + "/resolv.conf"
	require.NoError(t, os.WriteFile(path, []byte("nameserver 192.0.2.53\nnameserver 2001:db8::53\n"), 0o600))

	r, err := NewResolver(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"192.0.2.53:53", "[2001:db8::53]:53"}, r.Servers)

	_, err = NewResolver(t.TempDir() + "/missing")
	assert.Error(t, err)
}
