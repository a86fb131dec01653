package app_test

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/vk/bldrgo/internal/app"
	"github.com/vk/bldrgo/internal/registry"
	"github.com/vk/bldrgo/internal/result"
	"github.com/vk/bldrgo/internal/testutil"
)

// harnessResult holds the outcomes of an integration test run.
type harnessResult struct {
	Dir       string
	Output    string
	LogOutput string
	Outcome   *result.BuildOutcome
	Err       error
}

// newTestApp creates an App for dir that writes to the returned buffers.
// With no modules the core modules are used.
func newTestApp(t *testing.T, dir string, modules ...registry.Module) (*app.App, *testutil.SafeBuffer) {
	t.Helper()
	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	cfg := &app.Config{WorkDir: dir, LogLevel: "debug", LogFormat: "text", NoColor: true}
	a := app.NewApp(app.Streams{In: strings.NewReader(""), Out: out, Err: logs}, cfg, modules...)

	t.Cleanup(func() {
		if os.Getenv("BLDR_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})
	return a, out
}

// runBuild writes files into a temporary project and runs one build in it.
func runBuild(t *testing.T, files map[string]string, req app.BuildRequest, modules ...registry.Module) *harnessResult {
	t.Helper()
	dir := testutil.WriteProject(t, files)
	out, logs := &testutil.SafeBuffer{}, &testutil.SafeBuffer{}
	cfg := &app.Config{WorkDir: dir, LogLevel: "debug", LogFormat: "text", NoColor: true}
	a := app.NewApp(app.Streams{In: strings.NewReader(""), Out: out, Err: logs}, cfg, modules...)

	res := &harnessResult{Dir: dir}
	func() {
		defer func() {
			if r := recover(); r != nil {
				res.Err = fmt.Errorf("build panicked | %v", r)
			}
		}()
		res.Outcome, res.Err = a.Build(context.Background(), req)
	}()
	res.Output = out.String()
	res.LogOutput = logs.String()

	if os.Getenv("BLDR_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), res.LogOutput)
	}
	return res
}
