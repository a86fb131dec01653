package call

import "fmt"

// Outcome is what a handler's Run reports. Process-style handlers report a
// status code (HasCode) that the policy judges; other handlers report
// Success directly.
type Outcome struct {
	Success bool
	Code    int
	HasCode bool
	Err     error
	// Files holds per-file results when the call fanned out over a fileset.
	Files []FileOutcome
}

// FileOutcome is the result of one per-file invocation.
type FileOutcome struct {
	Path    string
	Outcome Outcome
}

// Status returns an outcome carrying a process status code. Success is
// decided later by Policy.Judge.
func Status(code int) Outcome {
	return Outcome{Code: code, HasCode: true}
}

// StatusErr returns a status outcome for a process that could not be run
// to completion; it never counts as success.
func StatusErr(code int, err error) Outcome {
	return Outcome{Code: code, HasCode: true, Err: err}
}

// OK returns a successful outcome.
func OK() Outcome {
	return Outcome{Success: true}
}

// Fail returns a failed outcome carrying err.
func Fail(err error) Outcome {
	return Outcome{Err: err}
}

// Failf returns a failed outcome with a formatted error.
func Failf(format string, args ...any) Outcome {
	return Fail(fmt.Errorf(format, args...))
}

// Describe renders the outcome for humans.
func (o Outcome) Describe() string {
	switch {
	case o.Success && o.HasCode:
		return fmt.Sprintf("succeeded (status %d)", o.Code)
	case o.Success:
		return "succeeded"
	case o.HasCode && o.Err != nil:
		return fmt.Sprintf("failed (status %d): %v", o.Code, o.Err)
	case o.HasCode:
		return fmt.Sprintf("failed (status %d)", o.Code)
	case o.Err != nil:
		return fmt.Sprintf("failed: %v", o.Err)
	}
	return "failed"
}
