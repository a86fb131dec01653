package http_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/vk/bldrgo/internal/config"
	"github.com/vk/bldrgo/internal/ctxlog"
)

const (
	defaultTimeout       = 30 * time.Second
	defaultRetries       = 2
	defaultRetryInterval = 500 * time.Millisecond
)

type defaults struct {
	timeout       time.Duration
	retries       int
	retryInterval time.Duration
}

func readDefaults(opts config.Options) (defaults, error) {
	var (
		d   defaults
		err error
	)
	if d.timeout, err = opts.Duration("timeout", defaultTimeout); err != nil {
		return d, err
	}
	if d.retries, err = opts.Int("retries", defaultRetries); err != nil {
		return d, err
	}
	if d.retryInterval, err = opts.Duration("retry_interval", defaultRetryInterval); err != nil {
		return d, err
	}
	if d.retries < 0 {
		return d, fmt.Errorf("option \"retries\" must not be negative")
	}
	return d, nil
}

// settings are the per-call request options.
type settings struct {
	defaults
	method  string
	body    string
	headers map[string]string
	expect  []int
}

func (s sender) readSettings(opts config.Options, method string) (settings, error) {
	st := settings{defaults: s.defaults}
	var err error
	if st.method, err = opts.String("method", method); err != nil {
		return st, err
	}
	if st.body, err = opts.String("body", ""); err != nil {
		return st, err
	}
	if st.headers, err = opts.StringMap("headers"); err != nil {
		return st, err
	}
	if st.expect, err = opts.Ints("expect_status"); err != nil {
		return st, err
	}
	if st.timeout, err = opts.Duration("timeout", st.timeout); err != nil {
		return st, err
	}
	if st.retries, err = opts.Int("retries", st.retries); err != nil {
		return st, err
	}
	if st.retries < 0 {
		return st, fmt.Errorf("option \"retries\" must not be negative")
	}
	return st, nil
}

// accepts reports whether code is an expected response status. Without an
// explicit list any 2xx status is accepted.
func (st settings) accepts(code int) bool {
	if len(st.expect) == 0 {
		return code >= 200 && code < 300
	}
	return slices.Contains(st.expect, code)
}

// sender performs requests with retries.
type sender struct {
	client   *http.Client
	defaults defaults
}

// StatusError reports a response whose status was not expected.
type StatusError struct {
	Status string
	Code   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected response status: %s", e.Status)
}

// send issues the request built by newRequest, retrying transport errors
// and 5xx responses. newRequest is called once per attempt so that bodies
// can be re-read.
func (s sender) send(ctx context.Context, st settings, newRequest func(ctx context.Context) (*http.Request, error)) (int, error) {
	logger := ctxlog.FromContext(ctx)

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = st.retryInterval
	b.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(st.retries)), ctx)

	var (
		code    int
		attempt int
	)
	operation := func() error {
		attempt++
		actx, cancel := context.WithTimeout(ctx, st.timeout)
		defer cancel()

		req, err := newRequest(actx)
		if err != nil {
			return backoff.Permanent(err)
		}
		for k, v := range st.headers {
			req.Header.Set(k, v)
		}

		resp, err := s.client.Do(req)
		if err != nil {
			logger.Debug("HTTP request failed.", "attempt", attempt, "error", err)
			return fmt.Errorf("failed to execute request: %w", err)
		}
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		code = resp.StatusCode
		logger.Debug("Received HTTP response.", "attempt", attempt, "status", resp.Status)
		switch {
		case st.accepts(code):
			return nil
		case code >= 500:
			return &StatusError{Status: resp.Status, Code: code}
		}
		return backoff.Permanent(&StatusError{Status: resp.Status, Code: code})
	}

	if err := backoff.Retry(operation, policy); err != nil {
		if attempt > 1 {
			err = fmt.Errorf("%w (after %d attempts)", err, attempt)
		}
		return code, err
	}
	return code, nil
}
