package socketio

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/session"
	"github.com/vk/bldrgo/internal/testutil"
	"github.com/zclconf/go-cty/cty"
	server "github.com/zishang520/socket.io/v2/socket"
)

// newEchoServer answers every "ping" with a "pong" carrying the same data.
func newEchoServer(t *testing.T) string {
	t.Helper()
	io := server.NewServer(nil, nil)
	io.On("connection", func(clients ...any) {
		client := clients[0].(*server.Socket)
		client.On("ping", func(data ...any) {
			client.Emit("pong", data...)
		})
	})
	mux := http.NewServeMux()
	mux.Handle("/socket.io/", io.ServeHandler(nil))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, opts config.Options, args ...string) (call.Outcome, string) {
	t.Helper()
	out := &testutil.SafeBuffer{}
	s, err := session.New(&config.Project{Name: "p"}, session.Options{BuildName: "b", WorkDir: t.TempDir(), Out: out})
	require.NoError(t, err)

	h := &Handler{timeout: 5 * time.Second}
	c := &config.Call{Type: "socketio", Arguments: args, Options: opts}
	require.NoError(t, h.Initialize(s, &config.Task{Name: "ws"}, c))
	h.Configure(call.PolicyFor(c))
	return h.Run(ctxlog.Discard(context.Background()), args), out.String()
}

func TestRun_RoundTrip(t *testing.T) {
	t.Parallel()
	url := newEchoServer(t)

	o, out := run(t, config.Options{
		"emit_event": cty.StringVal("ping"),
		"emit_data":  cty.ObjectVal(map[string]cty.Value{"n": cty.NumberIntVal(1)}),
		"on_event":   cty.StringVal("pong"),
	}, url)

	require.True(t, o.Success, o.Describe())
	assert.Equal(t, "[ws] pong: {\"n\":1}\n", out)
}

func TestRun_ConnectOnly(t *testing.T) {
	t.Parallel()
	url := newEchoServer(t)

	o, out := run(t, nil, url)

	require.True(t, o.Success, o.Describe())
	assert.Contains(t, out, "connected to "+url)
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	// A port that was open a moment ago and is now closed.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	closed := "http://" + l.Addr().String()
	require.NoError(t, l.Close())

	tests := []struct {
		name    string
		opts    config.Options
		args    []string
		wantErr string
	}{
		{name: "no url", wantErr: "requires a URL"},
		{name: "bad url", args: []string{"not a url"}, wantErr: "invalid Socket.IO URL"},
		{name: "unreachable", args: []string{closed}, opts: config.Options{"timeout": cty.StringVal("300ms")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o, _ := run(t, tc.opts, tc.args...)
			assert.False(t, o.Success)
			// An unreachable server reports either the failed attempt or
			// the timeout, depending on reconnection timing.
			if tc.wantErr == "" {
				assert.Error(t, o.Err)
				return
			}
			assert.ErrorContains(t, o.Err, tc.wantErr)
		})
	}
}

func TestRun_WaitTimesOut(t *testing.T) {
	t.Parallel()
	url := newEchoServer(t)

	o, _ := run(t, config.Options{
		"on_event": cty.StringVal("never"),
		"timeout":  cty.StringVal("300ms"),
	}, url)

	assert.False(t, o.Success)
	assert.ErrorContains(t, o.Err, "waiting for event 'never'")
}

func TestInitialize_InvalidTimeout(t *testing.T) {
	t.Parallel()
	s, err := session.New(&config.Project{Name: "p"}, session.Options{WorkDir: t.TempDir()})
	require.NoError(t, err)

	h := &Handler{timeout: time.Second}
	err = h.Initialize(s, &config.Task{Name: "ws"}, &config.Call{
		Type:    "socketio",
		Options: config.Options{"timeout": cty.StringVal("soon")},
	})
	assert.ErrorContains(t, err, `option "timeout"`)
}
