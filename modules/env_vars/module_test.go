package env_vars

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/session"
)

func TestRun(t *testing.T) {
	t.Parallel()
	env := map[string]string{"HOME": "/home/x", "EMPTY": ""}
	s, err := session.New(&config.Project{Name: "p"}, session.Options{
		BuildName: "b",
		WorkDir:   t.TempDir(),
		Out:       io.Discard,
		LookupEnv: func(k string) (string, bool) {
			v, ok := env[k]
			return v, ok
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		args    []string
		success bool
		wantErr string
	}{
		{name: "all present", args: []string{"HOME"}, success: true},
		{name: "nothing required", args: nil, success: true},
		{name: "empty counts as missing", args: []string{"HOME", "EMPTY"}, wantErr: "missing environment variables: EMPTY"},
		{name: "unset", args: []string{"NOPE", "EMPTY"}, wantErr: "NOPE, EMPTY"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			h := &Handler{}
			require.NoError(t, h.Initialize(s, &config.Task{Name: "t"}, &config.Call{Type: "require-env"}))

			o := h.Run(ctxlog.Discard(context.Background()), tc.args)

			assert.Equal(t, tc.success, o.Success)
			if tc.wantErr != "" {
				assert.ErrorContains(t, o.Err, tc.wantErr)
			}
		})
	}
}
