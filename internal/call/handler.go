package call

import (
	"context"

	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/session"
)

// Handler is the lifecycle implemented by every call type.
type Handler interface {
	// Initialize binds the handler to the build session, the owning task
	// and the call being executed. It must not perform side effects
	// beyond capturing references and validating options.
	Initialize(s *session.Session, task *config.Task, c *config.Call) error
	// Configure stores the call's fail-on-error and success-code policy.
	Configure(p Policy)
	// Run performs the unit of work.
	Run(ctx context.Context, args []string) Outcome
}

// FilesetAware is the optional capability of handlers that operate over
// file system matches. Handlers that do not implement it ignore a call's
// fileset.
type FilesetAware interface {
	SetFileset(patterns []string) error
}

// Factory creates a fresh handler for one call.
type Factory func() Handler

// Base carries the references captured by Initialize and Configure.
// Handlers embed it and implement Run.
type Base struct {
	Session *session.Session
	Task    *config.Task
	Call    *config.Call
	Policy  Policy
}

// Initialize implements Handler.
func (b *Base) Initialize(s *session.Session, task *config.Task, c *config.Call) error {
	b.Session = s
	b.Task = task
	b.Call = c
	return nil
}

// Configure implements Handler.
func (b *Base) Configure(p Policy) {
	b.Policy = p
}

// Options returns the call's type-specific options.
func (b *Base) Options() config.Options {
	if b.Call == nil {
		return nil
	}
	return b.Call.Options
}

// Section prints a progress line attributed to the owning task.
func (b *Base) Section(message string) {
	if b.Session == nil {
		return
	}
	name := ""
	if b.Task != nil {
		name = b.Task.Name
	}
	b.Session.Printer().Section(name, message)
}
