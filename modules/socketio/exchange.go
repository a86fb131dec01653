package socketio

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// opResult is passed through the done channel.
type opResult struct {
	value any
	err   error
}

// Exchange connects, emits the configured event once connected and waits
// for OnEvent. Without OnEvent it returns as soon as the connection is up
// and the event, if any, was emitted.
func Exchange(ctx context.Context, in Input) (any, error) {
	logger := ctxlog.FromContext(ctx).With("url", in.URL, "onEvent", in.OnEvent, "emitEvent", in.EmitEvent)
	logger.Debug("Socket.IO exchange started.")
	defer logger.Debug("Socket.IO exchange finished.")

	parsedURL, err := url.Parse(in.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid Socket.IO URL '%s'", in.URL)
	}

	var isConnected atomic.Bool
	done := make(chan opResult, 1)
	finish := func(r opResult) {
		select {
		case done <- r:
		default:
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, in.Timeout)
	defer cancel()

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		opts.SetPath(parsedURL.Path)
	}
	if in.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification.")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(in.Namespace, opts)
	defer func() {
		logger.Debug("Disconnecting socket client.")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Info("Connected.", "namespace", in.Namespace, "sid", io.Id())
		if in.EmitEvent != "" {
			jsonData, _ := json.Marshal(in.EmitData)
			logger.Info("Emitting event.", "event", in.EmitEvent, "data", string(jsonData))
			if in.EmitData == nil {
				io.Emit(in.EmitEvent)
			} else {
				io.Emit(in.EmitEvent, in.EmitData)
			}
		}
		if in.OnEvent == "" {
			finish(opResult{})
		}
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connection failed")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = fmt.Errorf("connection failed: %w", e)
			}
		}
		finish(opResult{err: err})
	})

	if in.OnEvent != "" {
		io.On(types.EventName(in.OnEvent), func(data ...any) {
			var responseData any
			if len(data) > 0 {
				responseData = data[0]
			}
			finish(opResult{value: responseData})
		})
	}

	io.Connect()

	select {
	case <-opCtx.Done():
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for event '%s'", in.OnEvent)
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection")
	case res := <-done:
		return res.value, res.err
	}
}
