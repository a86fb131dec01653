package execute

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/session"
)

// runner starts processes on behalf of a handler.
type runner struct {
	shell []string
}

// settings are the per-call process options.
type settings struct {
	dir   string
	env   []string
	quiet bool
	// shell is decided from the declared arguments only. Arguments
	// appended after the declared ones reach the script as "$@".
	shell    bool
	script   string
	declared int
}

func readSettings(s *session.Session, c *config.Call) (settings, error) {
	var st settings
	opts := c.Options
	dir, err := opts.String("cwd", "")
	if err != nil {
		return st, err
	}
	switch {
	case dir == "":
		st.dir = s.WorkDir()
	case filepath.IsAbs(dir):
		st.dir = dir
	default:
		st.dir = filepath.Join(s.WorkDir(), dir)
	}

	env, err := opts.StringMap("env")
	if err != nil {
		return st, err
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		st.env = append(st.env, k+"="+env[k])
	}

	if st.shell, err = opts.Bool("shell", false); err != nil {
		return st, err
	}
	args := c.Arguments
	if len(args) == 1 && strings.ContainsAny(args[0], " \t") {
		st.shell = true
	}
	st.script = strings.Join(args, " ")
	st.declared = len(args)
	if st.quiet, err = opts.Bool("quiet", false); err != nil {
		return st, err
	}
	return st, nil
}

// command builds the argv for args. In shell mode the declared arguments
// form the script and anything appended after them is passed as "$@",
// never spliced into the script text.
func (r runner) command(st settings, args []string) []string {
	if !st.shell {
		return args
	}
	argv := append([]string(nil), r.shell...)
	extra := args[min(st.declared, len(args)):]
	if len(extra) == 0 {
		return append(argv, st.script)
	}
	argv = append(argv, st.script+` "$@"`, "bldr")
	return append(argv, extra...)
}

// run executes args and returns the exit status. A process that cannot be
// started reports -1 together with the cause.
func (r runner) run(ctx context.Context, s *session.Session, st settings, args []string) (int, error) {
	logger := ctxlog.FromContext(ctx)
	if len(args) == 0 {
		return -1, fmt.Errorf("no command given")
	}
	argv := r.command(st, args)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = st.dir
	cmd.Env = append(os.Environ(), st.env...)
	cmd.Stdin = nil
	if st.quiet {
		cmd.Stdout, cmd.Stderr = io.Discard, io.Discard
	} else {
		cmd.Stdout, cmd.Stderr = s.Out(), s.Err()
	}

	logger.Debug("Starting process.", "argv", argv, "dir", st.dir)
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() >= 0 {
		logger.Debug("Process exited.", "code", exitErr.ExitCode())
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("failed to run %s: %w", argv[0], err)
}
