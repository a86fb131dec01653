package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/event"
	"github.com/vk/bldrgo/internal/result"
)

func TestConsole_PlainOutput(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(&out, nil, false)

	c.Section("build", "compiling")
	c.Item("lint", "Static checks")
	c.Block(BlockSuccess, "ok", "two\nlines")

	got := out.String()
	assert.Contains(t, got, "[build] compiling\n")
	assert.Contains(t, got, "  lint  Static checks\n")
	assert.Contains(t, got, "  lines  \n")
	assert.NotContains(t, got, "\x1b[", "no escape codes without color")
}

func TestConsole_ColoredOutput(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(&out, nil, true)

	c.Section("build", "compiling")

	assert.Contains(t, out.String(), "build")
	assert.Contains(t, out.String(), "compiling")
}

func TestConsole_Ask(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(&out, strings.NewReader("acme/app\n\n"), false)

	name, err := c.Ask("Project name", "def")
	require.NoError(t, err)
	assert.Equal(t, "acme/app", name)

	desc, err := c.Ask("Description", "def")
	require.NoError(t, err)
	assert.Equal(t, "def", desc, "empty answer selects the default")

	assert.Contains(t, out.String(), "Project name [def]: ")

	_, err = c.Ask("Again", "")
	require.Error(t, err, "input is exhausted")
}

func TestConsole_Confirm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input string
		def   bool
		want  bool
	}{
		{input: "y\n", want: true},
		{input: "YES\n", want: true},
		{input: "n\n", def: true, want: false},
		{input: "\n", def: true, want: true},
		{input: "whatever\n", want: false},
		{input: "yes", want: true},
	}
	for _, tc := range tests {
		c := New(&bytes.Buffer{}, strings.NewReader(tc.input), false)
		got, err := c.Confirm("Continue?", tc.def)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestConsole_NoInput(t *testing.T) {
	t.Parallel()
	c := New(&bytes.Buffer{}, nil, false)
	_, err := c.Ask("name", "x")
	assert.True(t, errors.Is(err, ErrNoInput))
}

func TestConsole_RendersBuild(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(&out, nil, false)

	project := &config.Project{Name: "acme/app", Description: "The app"}
	task := &config.Task{Name: "build", Description: "Compile everything"}
	failed := result.CallRecord{Task: "build", Type: "exec", Outcome: call.Status(2)}

	events := []event.Event{
		{Kind: event.BuildStarted, BuildName: "local_x", Project: project, Profile: "default", Tasks: []string{"build"}},
		{Kind: event.TaskStarted, Task: task},
		{Kind: event.CallFinished, Task: task, Record: &result.CallRecord{Task: "build", Type: "print", Outcome: call.OK()}},
		{Kind: event.CallFinished, Task: task, Record: &failed},
		{Kind: event.TaskFinished, Task: task, Aborted: true},
		{Kind: event.BuildFinished, Outcome: result.Aggregate([]result.CallRecord{failed}, nil)},
	}
	for _, e := range events {
		c.Handle(e)
	}

	got := out.String()
	for _, want := range []string{
		"acme/app",
		"The app",
		"Using the 'default' profile",
		"Build: local_x",
		"Running the build task",
		"> Compile everything",
		"[build] print succeeded",
		"[build] exec #1 failed (status 2)",
		"Task build aborted.",
		"Build Failed!",
		"build: exec #1 failed (status 2)",
	} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "Build Success!")
}

func TestConsole_RendersSuccess(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	c := New(&out, nil, false)

	c.Handle(event.Event{Kind: event.BuildFinished, Outcome: result.Aggregate(nil, nil)})

	assert.Contains(t, out.String(), "Build Success!")
}
