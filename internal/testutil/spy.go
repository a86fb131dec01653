package testutil

import (
	"context"
	"sync"

	"github.com/vk/bldrgo/internal/call"
)

// Script decides the outcome of one spy invocation.
type Script func(args []string) call.Outcome

// Succeed is a Script that always succeeds.
func Succeed(args []string) call.Outcome { return call.OK() }

// ExitWith returns a Script that reports a fixed process status code.
func ExitWith(code int) Script {
	return func([]string) call.Outcome { return call.Status(code) }
}

// Spy records every invocation of the handlers it creates, in order.
type Spy struct {
	mu          sync.Mutex
	invocations []Invocation
}

// Invocations returns a copy of the recorded invocations.
func (s *Spy) Invocations() []Invocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Invocation(nil), s.invocations...)
}

// Tags returns the tags of the recorded invocations, in order.
func (s *Spy) Tags() []string {
	var tags []string
	for _, inv := range s.Invocations() {
		tags = append(tags, inv.Tag)
	}
	return tags
}

func (s *Spy) record(inv Invocation) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invocations = append(s.invocations, inv)
}

// Factory returns a factory for handlers that record themselves under tag
// and answer with script.
func (s *Spy) Factory(tag string, script Script) call.Factory {
	return func() call.Handler {
		return &SpyHandler{spy: s, tag: tag, script: script}
	}
}

// FilesetFactory is like Factory but the handlers implement
// call.FilesetAware and fan out over their fileset.
func (s *Spy) FilesetFactory(tag string, script Script) call.Factory {
	return func() call.Handler {
		return &SpyFilesetHandler{SpyHandler: SpyHandler{spy: s, tag: tag, script: script}}
	}
}

// SpyHandler is a call.Handler that records its invocations.
type SpyHandler struct {
	call.Base
	spy    *Spy
	tag    string
	script Script
}

// Run implements call.Handler.
func (h *SpyHandler) Run(_ context.Context, args []string) call.Outcome {
	h.spy.record(Invocation{
		Tag:    h.tag,
		Task:   h.Task.Name,
		Args:   args,
		Policy: h.Policy,
	})
	if h.script == nil {
		return call.OK()
	}
	return h.script(args)
}

// SpyFilesetHandler is a SpyHandler that supports filesets.
type SpyFilesetHandler struct {
	SpyHandler
	call.Fileset
}

// Run implements call.Handler.
func (h *SpyFilesetHandler) Run(ctx context.Context, args []string) call.Outcome {
	return h.Apply(ctx, h.Session.WorkDir(), h.Policy, args, func(ctx context.Context, args []string) call.Outcome {
		out := h.SpyHandler.Run(ctx, args)
		return out
	})
}
