// Package http_client provides the HTTP call types: `http` sends one
// request, `upload` PUTs files to a URL. Both share a pooled client and
// retry transport errors and 5xx responses with exponential backoff.
package http_client

import (
	"net/http"
	"time"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// ID implements registry.Module.
func (m *Module) ID() string { return "http" }

// Register registers the handlers with the engine. The extension options
// `timeout`, `retries` and `retry_interval` set the defaults every call
// starts from.
func (m *Module) Register(r *registry.Registry, opts config.Options) error {
	d, err := readDefaults(opts)
	if err != nil {
		return err
	}
	client := newClient(d.timeout)

	if err := r.Register("http", func() call.Handler {
		return &RequestHandler{sender: sender{client: client, defaults: d}}
	}); err != nil {
		return err
	}
	return r.Register("upload", func() call.Handler {
		return &UploadHandler{sender: sender{client: client, defaults: d}}
	})
}

// newClient returns the client shared by every call of one build.
func newClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
