// Package socketio provides the `socketio` call type: connect to a
// Socket.IO server, emit one event and optionally wait for a reply event.
package socketio

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/registry"
	"github.com/vk/bldrgo/internal/session"
)

const defaultTimeout = 10 * time.Second

// Module implements the registry.Module interface for this package.
type Module struct{}

// ID implements registry.Module.
func (m *Module) ID() string { return "socketio" }

// Register registers the handler with the engine. The extension option
// `timeout` sets the default for every call.
func (m *Module) Register(r *registry.Registry, opts config.Options) error {
	timeout, err := opts.Duration("timeout", defaultTimeout)
	if err != nil {
		return err
	}
	return r.Register("socketio", func() call.Handler { return &Handler{timeout: timeout} })
}

// Handler is the `socketio` call handler.
type Handler struct {
	call.Base
	timeout time.Duration
	input   Input
}

// Input holds the settings of one exchange.
type Input struct {
	URL                string
	Namespace          string
	OnEvent            string
	EmitEvent          string
	EmitData           any
	Timeout            time.Duration
	InsecureSkipVerify bool
}

// Initialize implements call.Handler and reads the call options.
func (h *Handler) Initialize(s *session.Session, task *config.Task, c *config.Call) error {
	if err := h.Base.Initialize(s, task, c); err != nil {
		return err
	}
	opts := c.Options
	in := Input{EmitData: opts.Native("emit_data")}
	var err error
	if in.Namespace, err = opts.String("namespace", "/"); err != nil {
		return err
	}
	if in.OnEvent, err = opts.String("on_event", ""); err != nil {
		return err
	}
	if in.EmitEvent, err = opts.String("emit_event", ""); err != nil {
		return err
	}
	if in.Timeout, err = opts.Duration("timeout", h.timeout); err != nil {
		return err
	}
	if in.InsecureSkipVerify, err = opts.Bool("insecure_skip_verify", false); err != nil {
		return err
	}
	h.input = in
	return nil
}

// Run performs the exchange against the URL in the first argument.
func (h *Handler) Run(ctx context.Context, args []string) call.Outcome {
	if len(args) == 0 {
		return call.Failf("socketio requires a URL argument")
	}
	in := h.input
	in.URL = args[0]

	resp, err := Exchange(ctx, in)
	if err != nil {
		return call.Fail(err)
	}
	if in.OnEvent == "" {
		h.Section(fmt.Sprintf("connected to %s", in.URL))
		return call.OK()
	}
	data, err := json.Marshal(resp)
	if err != nil {
		data = []byte(fmt.Sprint(resp))
	}
	h.Section(fmt.Sprintf("%s: %s", in.OnEvent, data))
	return call.OK()
}
