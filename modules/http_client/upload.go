package http_client

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/vk/bldrgo/internal/call"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/session"
)

// UploadHandler is the `upload` call handler. Each fileset match, or the
// second argument when no fileset is set, is sent to the URL in the first
// argument.
type UploadHandler struct {
	call.Base
	call.Fileset
	sender   sender
	settings settings
}

// Initialize implements call.Handler and validates the request options.
func (h *UploadHandler) Initialize(s *session.Session, task *config.Task, c *config.Call) error {
	if err := h.Base.Initialize(s, task, c); err != nil {
		return err
	}
	st, err := h.sender.readSettings(c.Options, http.MethodPut)
	if err != nil {
		return err
	}
	st.method = strings.ToUpper(st.method)
	h.settings = st
	return nil
}

// Run uploads every file.
func (h *UploadHandler) Run(ctx context.Context, args []string) call.Outcome {
	if len(args) == 0 {
		return call.Failf("upload requires a URL argument")
	}
	if len(h.Patterns()) > 0 {
		args = args[:1]
	}
	return h.Apply(ctx, h.Session.WorkDir(), h.Policy, args, h.upload)
}

// targetURL appends the file's base name to a URL ending in "/".
func targetURL(url, path string) string {
	if strings.HasSuffix(url, "/") {
		return url + filepath.Base(path)
	}
	return url
}

func (h *UploadHandler) upload(ctx context.Context, args []string) call.Outcome {
	if len(args) != 2 {
		return call.Failf("upload needs a URL and a file, got %d arguments", len(args))
	}
	path := args[1]
	if !filepath.IsAbs(path) {
		path = filepath.Join(h.Session.WorkDir(), path)
	}
	url := targetURL(args[0], path)

	stat, err := os.Stat(path)
	if err != nil {
		return call.Fail(fmt.Errorf("failed to get file stats for '%s': %w", path, err))
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	logger := ctxlog.FromContext(ctx)
	logger.Info("Uploading file.", "source", path, "size", stat.Size(), "contentType", contentType, "url", url)

	code, err := h.sender.send(ctx, h.settings, func(ctx context.Context) (*http.Request, error) {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open source file '%s': %w", path, err)
		}
		req, err := http.NewRequestWithContext(ctx, h.settings.method, url, file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to create upload request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)
		req.ContentLength = stat.Size()
		return req, nil
	})
	if err != nil {
		return call.Fail(fmt.Errorf("upload of %s failed: %w", filepath.Base(path), err))
	}
	h.Section(fmt.Sprintf("uploaded %s (%d)", filepath.Base(path), code))
	return call.OK()
}
