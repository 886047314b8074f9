package logger

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
	dto "github.com/prometheus/client_model/go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPushMetrics(t *testing.T) {
	var pushed atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut && strings.HasPrefix(r.URL.Path, "/metrics/job/nsupdate-interactive") {
			pushed.Add(1)
		}

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	NewCounterHook("test")

	require.NoError(t, PushMetrics(srv.URL, "nsupdate-interactive"))
	assert.Equal(t, int32(1), pushed.Load())
}

func TestPushMetrics_Disabled(t *testing.T) {
	assert.NoError(t, PushMetrics("", "nsupdate-interactive"))
}

func TestPushMetrics_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	NewCounterHook("test")

	assert.Error(t, PushMetrics(srv.URL, "nsupdate-interactive"))
}

func TestConsoleWriterUsesOneOutput(t *testing.T) {
	level := zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Cleanup(func() { zerolog.SetGlobalLevel(level) })

	tests := []struct {
		name string
		cfg  Log
		want string
	}{
		{
			name: "json",
			cfg:  Log{},
			want: `"message":"zone fetched"`,
		},
		{
			name: "console writer",
			cfg:  Log{Console: Console{UseConsoleWriter: true, NoColor: true}},
			want: "zone fetched",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			l := zerolog.New(zerolog.MultiLevelWriter(newConsoleWriter(tt.cfg, &buf)))
			l.Info().Msg("zone fetched")
			l.Error().Msg("zone transfer failed")

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "zone transfer failed")
		})
	}
}

func TestCounterHook(t *testing.T) {
	hook := NewCounterHook("test")
	before := warnCount(t)

	l := zerolog.New(&bytes.Buffer{}).Hook(hook)
	l.Warn().Msg("failed to remove session file")
	l.Warn().Msg("failed to write journal entry")
	l.Log().Msg("no level")

	assert.InDelta(t, before+2, warnCount(t), 0)
}

func warnCount(t *testing.T) float64 {
	t.Helper()

	var m dto.Metric

	require.NoError(t, counter.WithLabelValues("warn").Write(&m))

	return m.GetCounter().GetValue()
}

func TestWriteFailed(t *testing.T) {
	var buf bytes.Buffer

	out := errorOutput
	errorOutput = &buf

	t.Cleanup(func() { errorOutput = out })

	writeFailed(errors.New("disk full")) //nolint:goerr113

	assert.Equal(t, "nsupdate-interactive: could not write log event: disk full\n", buf.String())
}
