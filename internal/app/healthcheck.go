package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/vk/t3dlaunch/internal/bootstrap"
	"github.com/vk/t3dlaunch/internal/ctxlog"
)

// manifestStatus is the JSON document served on /manifest.
type manifestStatus struct {
	Variant           string   `json:"variant"`
	Phase             string   `json:"phase"`
	Libraries         []string `json:"libraries"`
	EntrySharedObject string   `json:"entry_shared_object"`
	EntrySymbol       string   `json:"entry_symbol"`
	NativeMethods     []string `json:"native_methods,omitempty"`
	Error             string   `json:"error,omitempty"`
}

// healthHandler reports 200 once the variant's libraries are loaded and 503
// otherwise.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)

	b := a.active.Load()
	if b == nil || b.Phase() != bootstrap.Loaded {
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprintln(w, "NOT READY")
		return
	}
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

// manifestHandler serves the active manifest and its load phase.
func (a *App) manifestHandler(w http.ResponseWriter, r *http.Request) {
	b := a.active.Load()
	if b == nil {
		http.Error(w, "no variant selected", http.StatusNotFound)
		return
	}

	m := b.Manifest()
	status := manifestStatus{
		Variant:           m.Name,
		Phase:             b.Phase().String(),
		Libraries:         m.Libraries,
		EntrySharedObject: b.MainSharedObject(),
		EntrySymbol:       b.MainFunction(),
		NativeMethods:     m.NativeMethods,
	}
	if err := b.Err(); err != nil {
		status.Error = err.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.FromContext(a.ctx).Error("Failed to encode manifest status.", "error", err)
	}
}

func (a *App) healthMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler)
	mux.HandleFunc("/manifest", a.manifestHandler)
	return mux
}

// startHealthcheckServer binds the health check port and serves it in the
// background. A port of 0 disables the server.
func (a *App) startHealthcheckServer(port int) error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Configuring health check server.")
	if port <= 0 {
		logger.Debug("Health check server not started: disabled")
		return nil
	}

	addr := fmt.Sprintf(":%d", port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("health check server: %w", err)
	}

	a.httpServer = &http.Server{
		Addr:              addr,
		Handler:           a.healthMux(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := a.httpServer
	go func() {
		logger.Info("Health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// Serve returns http.ErrServerClosed on graceful shutdown.
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Health check server failed unexpectedly", "error", err)
		}
	}()
	return nil
}

func (a *App) closeHealthcheckServer() error {
	logger := ctxlog.FromContext(a.ctx)
	logger.Debug("Closing health check server...")

	if a.httpServer == nil {
		logger.Debug("Health check server was not running.")
		return nil
	}

	ctx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()

	logger.Info("Shutting down health check server...")
	if err := a.httpServer.Shutdown(ctx); err != nil {
		logger.Error("Health check server shutdown failed", "error", err)
		return err
	}
	a.httpServer = nil

	logger.Debug("Health check server shut down gracefully.")
	return nil
}
