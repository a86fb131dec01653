// Package event defines the structured progress events a build emits.
// Rendering them is left to listeners such as the console.
package event

import (
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/result"
)

// Kind identifies an event.
type Kind int

const (
	BuildStarted Kind = iota
	TaskStarted
	CallStarted
	CallFinished
	TaskFinished
	BuildFinished
)

func (k Kind) String() string {
	switch k {
	case BuildStarted:
		return "build_started"
	case TaskStarted:
		return "task_started"
	case CallStarted:
		return "call_started"
	case CallFinished:
		return "call_finished"
	case TaskFinished:
		return "task_finished"
	case BuildFinished:
		return "build_finished"
	}
	return "unknown"
}

// Event is one progress notification. Only the fields relevant to Kind are
// set.
type Event struct {
	Kind      Kind
	BuildName string

	// BuildStarted
	Project *config.Project
	Profile string
	Tasks   []string

	// Task and call events
	Task      *config.Task
	TaskIndex int
	Call      *config.Call
	CallIndex int

	// CallFinished
	Record *result.CallRecord

	// TaskFinished: set when a fail-on-error failure ended the task early.
	Aborted bool

	// BuildFinished
	Outcome *result.BuildOutcome
}

// Listener receives build events synchronously, in emission order.
type Listener interface {
	Handle(e Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(e Event)

// Handle implements Listener.
func (f ListenerFunc) Handle(e Event) { f(e) }

// Dispatcher fans an event out to several listeners in order.
type Dispatcher []Listener

// Handle implements Listener.
func (d Dispatcher) Handle(e Event) {
	for _, l := range d {
		if l != nil {
			l.Handle(e)
		}
	}
}
