// Package executor runs a list of tasks against a project: strictly one
// call at a time, in declaration order, resolving each call's handler
// through the registry and recording every outcome.
//
// Handler failures, including panics, become failed call records subject to
// the fail-on-error policy. Only resolution errors (unknown task, unknown or
// ambiguous call type) and context cancellation stop a build as fatal
// errors.
package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/event"
	"github.com/vk/bldrgo/internal/registry"
	"github.com/vk/bldrgo/internal/result"
	"github.com/vk/bldrgo/internal/session"
)

// ErrAlreadyRun is returned when Run is called on an executor that has
// already left the pending state.
var ErrAlreadyRun = errors.New("executor has already run")

// Executor orchestrates one build.
type Executor struct {
	session  *session.Session
	registry *registry.Registry
	events   event.Listener

	profile  string
	state    State
	position Position
}

// New creates an executor for one build. The registry should be sealed;
// listeners receive progress events synchronously.
func New(s *session.Session, reg *registry.Registry, listeners ...event.Listener) *Executor {
	return &Executor{
		session:  s,
		registry: reg,
		events:   event.Dispatcher(listeners),
	}
}

// WithProfile records the profile the task list came from, for progress
// reporting only.
func (e *Executor) WithProfile(name string) *Executor {
	e.profile = name
	return e
}

// State returns the executor's current state.
func (e *Executor) State() State {
	return e.state
}

// Position returns the task and call indices last reached.
func (e *Executor) Position() Position {
	return e.position
}

// Run executes taskNames in order. A name listed twice runs twice. The
// returned outcome is never nil; err is non-nil only for build-fatal
// conditions, in which case the outcome is failed and carries the same
// error.
func (e *Executor) Run(ctx context.Context, taskNames []string) (*result.BuildOutcome, error) {
	if e.state != StatePending {
		return result.Aggregate(nil, ErrAlreadyRun), ErrAlreadyRun
	}
	logger := ctxlog.FromContext(ctx)
	project := e.session.Project()

	e.state = StateRunning
	e.emit(event.Event{Kind: event.BuildStarted, Project: project, Profile: e.profile, Tasks: taskNames})
	logger.Debug("Build started.", "build", e.session.BuildName(), "tasks", taskNames)

	records, fatal := e.runTasks(ctx, project, taskNames)

	outcome := result.Aggregate(records, fatal)
	if outcome.Succeeded() {
		e.state = StateSucceeded
	} else {
		e.state = StateFailed
	}
	e.emit(event.Event{Kind: event.BuildFinished, Outcome: outcome})
	logger.Debug("Build finished.", "status", outcome.Status, "failures", outcome.Failures, "aborted", outcome.Aborted)

	return outcome, fatal
}

func (e *Executor) runTasks(ctx context.Context, project *config.Project, taskNames []string) ([]result.CallRecord, error) {
	var records []result.CallRecord

	for ti, name := range taskNames {
		task, err := project.Task(name)
		if err != nil {
			return records, err
		}
		taskCtx, logger := ctxlog.With(ctx, "task", task.Name)
		e.emit(event.Event{Kind: event.TaskStarted, Task: task, TaskIndex: ti})
		logger.Debug("Task started.", "calls", len(task.Calls))

		aborted := false
		for ci, c := range task.Calls {
			if err := ctx.Err(); err != nil {
				return records, fmt.Errorf("build interrupted: %w", err)
			}
			e.position = Position{TaskIndex: ti, CallIndex: ci}

			factory, err := e.registry.Resolve(c.Type)
			if err != nil {
				return records, fmt.Errorf("task '%s', call #%d: %w", task.Name, ci+1, err)
			}

			e.emit(event.Event{Kind: event.CallStarted, Task: task, TaskIndex: ti, Call: c, CallIndex: ci})
			rec := result.CallRecord{
				Task:        task.Name,
				TaskIndex:   ti,
				CallIndex:   ci,
				Type:        c.Type,
				FailOnError: c.FailOnError,
				Outcome:     e.runCall(taskCtx, task, c, factory),
			}
			records = append(records, rec)
			e.emit(event.Event{Kind: event.CallFinished, Task: task, TaskIndex: ti, Call: c, CallIndex: ci, Record: &rec})

			if rec.Aborting() {
				logger.Warn("Call failed; aborting the build.", "type", c.Type, "call", ci+1, "outcome", rec.Outcome.Describe())
				aborted = true
				break
			}
			if rec.Failed() {
				logger.Warn("Call failed; continuing.", "type", c.Type, "call", ci+1, "outcome", rec.Outcome.Describe())
			}
		}

		e.emit(event.Event{Kind: event.TaskFinished, Task: task, TaskIndex: ti, Aborted: aborted})
		if aborted {
			break
		}
	}
	return records, nil
}

func (e *Executor) emit(ev event.Event) {
	if e.events == nil {
		return
	}
	ev.BuildName = e.session.BuildName()
	e.events.Handle(ev)
}
