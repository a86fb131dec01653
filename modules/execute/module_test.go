package execute

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/registry"
	"github.com/vk/bldrgo/internal/session"
	"github.com/vk/bldrgo/internal/testutil"
	"github.com/zclconf/go-cty/cty"
)

type env struct {
	dir string
	out *testutil.SafeBuffer
	s   *session.Session
	reg *registry.Registry
}

func newEnv(t *testing.T, files map[string]string) *env {
	t.Helper()
	e := &env{dir: testutil.WriteProject(t, files), out: &testutil.SafeBuffer{}}
	var err error
	e.s, err = session.New(&config.Project{Name: "p"}, session.Options{
		BuildName: "b",
		WorkDir:   e.dir,
		Out:       e.out,
		Err:       e.out,
		Printer:   quietPrinter{},
	})
	require.NoError(t, err)
	e.reg = registry.New()
	require.NoError(t, (&Module{}).Register(e.reg, nil))
	return e
}

type quietPrinter struct{}

func (quietPrinter) Section(string, string) {}

// run drives the handler for c the way the executor does.
func (e *env) run(t *testing.T, c *config.Call) call.Outcome {
	t.Helper()
	factory, err := e.reg.Resolve(c.Type)
	require.NoError(t, err)
	h := factory()
	require.NoError(t, h.Initialize(e.s, &config.Task{Name: "t"}, c))
	p := call.PolicyFor(c)
	h.Configure(p)
	if c.HasFileset() {
		require.NoError(t, h.(call.FilesetAware).SetFileset(c.Fileset))
	}
	return p.Judge(h.Run(ctxlog.Discard(context.Background()), c.Arguments))
}

func TestExec_StatusCodes(t *testing.T) {
	t.Parallel()
	e := newEnv(t, nil)

	tests := []struct {
		name    string
		c       *config.Call
		success bool
		code    int
	}{
		{name: "zero exit", c: &config.Call{Type: "exec", Arguments: []string{"true"}}, success: true},
		{name: "non-zero exit", c: &config.Call{Type: "exec", Arguments: []string{"false"}}, code: 1},
		{name: "accepted code", c: &config.Call{Type: "exec", Arguments: []string{"exit 3"}, SuccessCodes: []int{0, 3}}, success: true, code: 3},
		{name: "rejected code", c: &config.Call{Type: "exec", Arguments: []string{"exit 3"}}, code: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := e.run(t, tc.c)
			assert.Equal(t, tc.success, o.Success)
			assert.True(t, o.HasCode)
			assert.Equal(t, tc.code, o.Code)
		})
	}
}

func TestExec_MissingBinary(t *testing.T) {
	t.Parallel()
	e := newEnv(t, nil)

	o := e.run(t, &config.Call{Type: "exec", Arguments: []string{"definitely-not-a-command-bldr"}})

	assert.False(t, o.Success)
	assert.Equal(t, -1, o.Code)
	assert.ErrorContains(t, o.Err, "failed to run")
}

func TestExec_NoArguments(t *testing.T) {
	t.Parallel()
	e := newEnv(t, nil)

	o := e.run(t, &config.Call{Type: "exec"})

	assert.False(t, o.Success)
	assert.ErrorContains(t, o.Err, "no command given")
}

func TestExec_Output(t *testing.T) {
	t.Parallel()
	e := newEnv(t, nil)

	o := e.run(t, &config.Call{Type: "exec", Arguments: []string{"echo", "hello"}})
	require.True(t, o.Success)
	assert.Equal(t, "hello\n", e.out.String())

	o = e.run(t, &config.Call{Type: "exec", Arguments: []string{"echo", "silent"}, Options: config.Options{"quiet": cty.True}})
	require.True(t, o.Success)
	assert.Equal(t, "hello\n", e.out.String())
}

func TestExec_Options(t *testing.T) {
	t.Parallel()
	e := newEnv(t, map[string]string{"sub/marker": "x"})

	o := e.run(t, &config.Call{
		Type:      "exec",
		Arguments: []string{"test", "-f", "marker"},
		Options:   config.Options{"cwd": cty.StringVal("sub")},
	})
	assert.True(t, o.Success, "cwd is relative to the work dir")

	o = e.run(t, &config.Call{
		Type:      "exec",
		Arguments: []string{`test "$GREETING" = hi`},
		Options:   config.Options{"env": cty.MapVal(map[string]cty.Value{"GREETING": cty.StringVal("hi")})},
	})
	assert.True(t, o.Success, "env is passed to the process")

	o = e.run(t, &config.Call{
		Type:      "exec",
		Arguments: []string{"exit", "4"},
		Options:   config.Options{"shell": cty.True},
	})
	assert.Equal(t, 4, o.Code, "shell joins the arguments")
}

func TestExec_InvalidOptions(t *testing.T) {
	t.Parallel()
	e := newEnv(t, nil)
	factory, err := e.reg.Resolve("exec")
	require.NoError(t, err)

	err = factory().Initialize(e.s, &config.Task{Name: "t"}, &config.Call{
		Type:    "exec",
		Options: config.Options{"quiet": cty.StringVal("sometimes")},
	})
	assert.ErrorContains(t, err, `option "quiet"`)
}

func TestApply_FansOut(t *testing.T) {
	t.Parallel()
	e := newEnv(t, map[string]string{"a.txt": "a", "b.txt": "b", "c.md": "c"})

	o := e.run(t, &config.Call{Type: "apply", Arguments: []string{"cat"}, Fileset: []string{"*.txt"}})

	require.True(t, o.Success)
	require.Len(t, o.Files, 2)
	assert.Equal(t, filepath.Join(e.dir, "a.txt"), o.Files[0].Path)
	assert.Equal(t, "ab", e.out.String())
}

func TestApply_FailOnErrorStops(t *testing.T) {
	t.Parallel()
	e := newEnv(t, map[string]string{"a.txt": "", "b.txt": "b"})

	o := e.run(t, &config.Call{Type: "apply", Arguments: []string{"test", "-s"}, Fileset: []string{"*.txt"}, FailOnError: true})

	assert.False(t, o.Success)
	assert.Len(t, o.Files, 1)
}

func TestApply_WithoutFilesetRunsOnce(t *testing.T) {
	t.Parallel()
	e := newEnv(t, nil)

	o := e.run(t, &config.Call{Type: "apply", Arguments: []string{"echo", "once"}})

	assert.True(t, o.Success)
	assert.Equal(t, "once\n", e.out.String())
}

func TestRegister_CustomShell(t *testing.T) {
	t.Parallel()
	reg := registry.New()
	require.NoError(t, (&Module{}).Register(reg, config.Options{
		"shell": cty.TupleVal([]cty.Value{cty.StringVal("bash"), cty.StringVal("-c")}),
	}))
	factory, err := reg.Resolve("exec")
	require.NoError(t, err)

	h := factory().(*ExecHandler)
	sh := settings{shell: true, script: "a b", declared: 1}
	assert.Equal(t, []string{"bash", "-c", "a b"}, h.runner.command(sh, []string{"a b"}))
	assert.Equal(t, []string{"bash", "-c", `a b "$@"`, "bldr", "my file"}, h.runner.command(sh, []string{"a b", "my file"}))
	assert.Equal(t, []string{"a", "b"}, h.runner.command(settings{}, []string{"a", "b"}))
}

func TestApply_ShellCommandWithFileset(t *testing.T) {
	t.Parallel()
	e := newEnv(t, map[string]string{"a.txt": "alpha\n"})

	o := e.run(t, &config.Call{Type: "apply", Arguments: []string{"cat -n"}, Fileset: []string{"*.txt"}})

	require.True(t, o.Success, o.Describe())
	assert.Contains(t, e.out.String(), "1\talpha")
}

func TestApply_ShellKeepsMatchesIntact(t *testing.T) {
	t.Parallel()
	e := newEnv(t, map[string]string{
		"my file.txt":          "spaced",
		"a;touch injected.txt": "",
	})

	o := e.run(t, &config.Call{
		Type:      "apply",
		Arguments: []string{"cat"},
		Fileset:   []string{"*.txt"},
		Options:   config.Options{"shell": cty.True},
	})

	require.True(t, o.Success, o.Describe())
	require.Len(t, o.Files, 2)
	assert.Equal(t, "spaced", e.out.String())
	assert.NoFileExists(t, filepath.Join(e.dir, "injected.txt"))
}
