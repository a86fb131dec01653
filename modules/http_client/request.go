package http_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/session"
)

// RequestHandler is the `http` call handler.
type RequestHandler struct {
	call.Base
	sender   sender
	settings settings
}

// Initialize implements call.Handler and validates the request options.
func (h *RequestHandler) Initialize(s *session.Session, task *config.Task, c *config.Call) error {
	if err := h.Base.Initialize(s, task, c); err != nil {
		return err
	}
	st, err := h.sender.readSettings(c.Options, http.MethodGet)
	if err != nil {
		return err
	}
	st.method = strings.ToUpper(st.method)
	h.settings = st
	return nil
}

// Run sends the request to the URL in the first argument.
func (h *RequestHandler) Run(ctx context.Context, args []string) call.Outcome {
	if len(args) == 0 {
		return call.Failf("http requires a URL argument")
	}
	url := args[0]

	code, err := h.sender.send(ctx, h.settings, func(ctx context.Context) (*http.Request, error) {
		var body io.Reader
		if h.settings.body != "" {
			body = strings.NewReader(h.settings.body)
		}
		return http.NewRequestWithContext(ctx, h.settings.method, url, body)
	})
	if err != nil {
		return call.Fail(fmt.Errorf("%s %s: %w", h.settings.method, url, err))
	}
	h.Section(fmt.Sprintf("%s %s %d", h.settings.method, url, code))
	return call.OK()
}
