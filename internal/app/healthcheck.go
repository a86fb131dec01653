package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/vk/bldrgo/internal/ctxlog"
	"github.com/vk/bldrgo/internal/event"
)

// HealthReport is the body served by the health endpoint.
type HealthReport struct {
	Build string `json:"build"`
	State string `json:"state"`
	Task  string `json:"task,omitempty"`
	Call  int    `json:"call,omitempty"`
}

// healthStatus follows build events so the health endpoint can report
// progress from another goroutine.
type healthStatus struct {
	mu     sync.RWMutex
	report HealthReport
}

func newHealthStatus() *healthStatus {
	return &healthStatus{report: HealthReport{State: "pending"}}
}

// Handle implements event.Listener.
func (h *healthStatus) Handle(e event.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.report.Build = e.BuildName
	switch e.Kind {
	case event.BuildStarted:
		h.report.State = "running"
	case event.TaskStarted:
		h.report.Task = e.Task.Name
		h.report.Call = 0
	case event.CallStarted:
		h.report.Call = e.CallIndex + 1
	case event.BuildFinished:
		if e.Outcome != nil {
			h.report.State = e.Outcome.Status.String()
		}
	}
}

// Report returns a snapshot of the current status.
func (h *healthStatus) Report() HealthReport {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.report
}

// healthHandler serves the build status as JSON.
func (app *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(app.health.Report()); err != nil {
		logger.Debug("Failed to write health report.", "error", err)
	}
}

// healthMux routes the health endpoint.
func (app *App) healthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", app.healthHandler)
	return mux
}

// healthCheckServer initializes and runs the health check HTTP server.
func (app *App) healthCheckServer() {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Configuring health check server.")
	if app.config.HealthcheckPort <= 0 {
		logger.Warn("Health check server not started: disabled")
		return
	}

	addr := fmt.Sprintf(":%d", app.config.HealthcheckPort)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		logger.Error("Health check server failed to listen", "address", addr, "error", err)
		return
	}

	app.httpServer = &http.Server{
		Handler:           app.healthMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("🩺 Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// Serve returns ErrServerClosed on graceful shutdown.
		if err := app.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
}

func (app *App) closeHealthCheckServer() error {
	logger := ctxlog.FromContext(app.ctx)
	logger.Debug("Closing health check server...")

	if app.httpServer == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(app.ctx, 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down health check server...")
	if err := app.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	app.httpServer = nil

	logger.Debug("Health check server shut down gracefully.")
	return nil
}
