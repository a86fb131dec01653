// Package result folds the per-call records of a build into one build
// outcome and exit status. It never retries and never runs anything.
package result

import (
	"github.com/vk/bldrgo/internal/call"
)

// Status is the aggregate status of a build.
type Status int

const (
	StatusSucceeded Status = iota
	StatusFailed
)

func (s Status) String() string {
	if s == StatusSucceeded {
		return "succeeded"
	}
	return "failed"
}

// CallRecord is the recorded outcome of one executed call.
type CallRecord struct {
	Task        string
	TaskIndex   int
	CallIndex   int
	Type        string
	FailOnError bool
	Outcome     call.Outcome
}

// Failed reports whether the call failed.
func (r CallRecord) Failed() bool {
	return !r.Outcome.Success
}

// Aborting reports whether the failure cut the run short.
func (r CallRecord) Aborting() bool {
	return r.Failed() && r.FailOnError
}

// BuildOutcome is the aggregate of one build invocation.
type BuildOutcome struct {
	Calls  []CallRecord
	Status Status
	// Aborted is set when a fail-on-error failure truncated the run.
	Aborted bool
	// Failures counts failed calls, aborting or not.
	Failures int
	// Fatal holds a build-fatal resolution error, if one stopped the build.
	Fatal error
}

// Aggregate folds records into a BuildOutcome. The build succeeds only when
// no call failed and no fatal error occurred; a non-aborting failure still
// fails the build.
func Aggregate(records []CallRecord, fatal error) *BuildOutcome {
	out := &BuildOutcome{
		Calls:  records,
		Status: StatusSucceeded,
		Fatal:  fatal,
	}
	for _, r := range records {
		if !r.Failed() {
			continue
		}
		out.Failures++
		if r.Aborting() {
			out.Aborted = true
		}
	}
	if out.Failures > 0 || fatal != nil {
		out.Status = StatusFailed
	}
	return out
}

// Succeeded reports whether the build succeeded.
func (o *BuildOutcome) Succeeded() bool {
	return o.Status == StatusSucceeded
}

// FailedCalls returns the records of failed calls in execution order.
func (o *BuildOutcome) FailedCalls() []CallRecord {
	var failed []CallRecord
	for _, r := range o.Calls {
		if r.Failed() {
			failed = append(failed, r)
		}
	}
	return failed
}

// ExitCode maps the outcome to a process exit status.
func (o *BuildOutcome) ExitCode() int {
	if o.Succeeded() {
		return 0
	}
	return 1
}
