// Package session defines the execution context shared by every call
// handler during one build: the build name, the loaded project, the IO
// streams owned by the command layer, and the prompt/formatting helpers.
//
// A Session is built once before the first task runs and is read-only from
// then on; handlers hold a reference but never own it.
package session

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vk/bldrgo/internal/config"
)

// Prompter asks the user interactive questions.
type Prompter interface {
	Ask(question, def string) (string, error)
	Confirm(question string, def bool) (bool, error)
}

// Printer renders handler progress for the user.
type Printer interface {
	// Section writes one message attributed to a section, usually the
	// name of the running task.
	Section(section, message string)
}

// Options configures a new Session. Zero values fall back to the process
// streams and environment.
type Options struct {
	BuildName string
	WorkDir   string
	In        io.Reader
	Out       io.Writer
	Err       io.Writer
	Prompter  Prompter
	Printer   Printer
	LookupEnv func(string) (string, bool)
}

// Session is the per-build execution context.
type Session struct {
	buildName string
	project   *config.Project
	workDir   string
	in        io.Reader
	out       io.Writer
	errOut    io.Writer
	prompter  Prompter
	printer   Printer
	lookupEnv func(string) (string, bool)
}

// New creates the execution context for one build of project.
func New(project *config.Project, opts Options) (*Session, error) {
	if project == nil {
		return nil, fmt.Errorf("session requires a project")
	}
	s := &Session{
		buildName: opts.BuildName,
		project:   project,
		workDir:   opts.WorkDir,
		in:        opts.In,
		out:       opts.Out,
		errOut:    opts.Err,
		prompter:  opts.Prompter,
		printer:   opts.Printer,
		lookupEnv: opts.LookupEnv,
	}
	if s.in == nil {
		s.in = os.Stdin
	}
	if s.out == nil {
		s.out = os.Stdout
	}
	if s.errOut == nil {
		s.errOut = os.Stderr
	}
	if s.lookupEnv == nil {
		s.lookupEnv = os.LookupEnv
	}
	if s.workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine working directory: %w", err)
		}
		s.workDir = wd
	}
	if s.buildName == "" {
		s.buildName = BuildName(project.Name, s.getenv, time.Now())
	}
	if s.printer == nil {
		s.printer = &plainPrinter{w: s.out}
	}
	if s.prompter == nil {
		s.prompter = nonInteractive{}
	}
	return s, nil
}

// BuildName returns the name computed for this build.
func (s *Session) BuildName() string { return s.buildName }

// Project returns the loaded project.
func (s *Session) Project() *config.Project { return s.project }

// WorkDir returns the directory the build runs in.
func (s *Session) WorkDir() string { return s.workDir }

// In returns the input stream.
func (s *Session) In() io.Reader { return s.in }

// Out returns the output stream.
func (s *Session) Out() io.Writer { return s.out }

// Err returns the error stream.
func (s *Session) Err() io.Writer { return s.errOut }

// Prompter returns the interactive prompt helper.
func (s *Session) Prompter() Prompter { return s.prompter }

// Printer returns the progress printer.
func (s *Session) Printer() Printer { return s.printer }

// LookupEnv reads the build's environment.
func (s *Session) LookupEnv(k string) (string, bool) { return s.lookupEnv(k) }

func (s *Session) getenv(k string) string {
	v, _ := s.lookupEnv(k)
	return v
}

// BuildName derives the name of a build from its environment: CI systems
// get their job identifiers, local builds get the project name and a
// timestamp.
func BuildName(projectName string, getenv func(string) string, now time.Time) string {
	switch {
	case getenv("TRAVIS") == "true":
		return fmt.Sprintf("travis_%s", getenv("TRAVIS_JOB_NUMBER"))
	case getenv("GITHUB_ACTIONS") == "true":
		return fmt.Sprintf("github_%s", getenv("GITHUB_RUN_ID"))
	}
	return fmt.Sprintf("local_%s_%s",
		strings.ReplaceAll(projectName, "/", "_"),
		now.Format("2006-01-02_15-04-05"),
	)
}

type plainPrinter struct {
	w io.Writer
}

func (p *plainPrinter) Section(section, message string) {
	fmt.Fprintf(p.w, "[%s] %s\n", section, message)
}

// nonInteractive answers every question with its default.
type nonInteractive struct{}

func (nonInteractive) Ask(_, def string) (string, error) {
	return def, nil
}

func (nonInteractive) Confirm(_ string, def bool) (bool, error) {
	return def, nil
}
