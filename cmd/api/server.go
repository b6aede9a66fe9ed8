// cmd/api/server.go
// This file contains the serve() method: it runs the HTTP server and drains
// in-flight requests cleanly when the process is asked to stop.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// shutdownWindow is how long in-flight requests get to finish once a stop
// signal arrives. A streaming CSV export is the longest-running request the
// catalog serves, so the window is generous.
const shutdownWindow = 20 * time.Second

// serve starts the HTTP server and blocks until it exits. SIGINT and SIGTERM
// trigger a graceful shutdown: the listener closes immediately, active
// requests get shutdownWindow to complete, then the server is torn down.
func (app *applicationDependencies) serve() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", app.config.port),
		Handler:      app.routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	shutdownErr := make(chan error)

	go func() {
		// Buffered so the signal package never drops a notification.
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server",
			"signal", s.String(),
			"shutdown_window", shutdownWindow.String(),
		)

		ctx, cancel := context.WithTimeout(context.Background(), shutdownWindow)
		defer cancel()

		// Shutdown stops accepting new connections and waits for active
		// requests, including any export still streaming, up to the deadline.
		shutdownErr <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server",
		"address", srv.Addr,
		"environment", app.config.environment,
		"token_lifetime", app.config.jwt.expiry.String(),
	)

	// ListenAndServe always returns a non-nil error; ErrServerClosed just
	// means Shutdown was called and is not a failure.
	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdownErr; err != nil {
		return err
	}

	app.logger.Info("server stopped", "address", srv.Addr)
	return nil
}
