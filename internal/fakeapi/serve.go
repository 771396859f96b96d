package fakeapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// Handler wraps s with panic recovery and request logging.
func (s *Server) Handler(logger logging.Logger) http.Handler {
	logged := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		s.ServeHTTP(ww, r)
		logger.Info(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
		)
	})
	return middleware.Recoverer(logged)
}

// Run serves s on address until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, address string, logger logging.Logger) error {
	logger = logger.With("module", "fakeapi")

	listen, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info(context.Background(), "stopping server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info(ctx, "starting server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
