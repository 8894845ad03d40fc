// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/go-chi/chi/v5/middleware"
)

const readHeaderTimeout = 5 * time.Second

type httpServer struct {
	server *http.Server

	logger *logger.Logger
}

// newHTTPServer bounds every request by cfg.RequestTimeout: the request
// context expires and a late handler is answered with 504.
func newHTTPServer(router http.Handler, cfg config.Server, logger *logger.Logger) *httpServer {
	handler := router
	if cfg.RequestTimeout > 0 {
		handler = middleware.Timeout(cfg.RequestTimeout)(router)
	}

	return &httpServer{
		server: &http.Server{
			Addr:              cfg.HTTPAddress,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       cfg.RequestTimeout,
			WriteTimeout:      2 * cfg.RequestTimeout,
			IdleTimeout:       4 * cfg.RequestTimeout,
		},
		logger: logger,
	}
}

func (h *httpServer) Name() string {
	return "http"
}

func (h *httpServer) Serve() error {
	lis, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("http listen on %s: %w", h.server.Addr, err)
	}

	h.logger.Info().Str("address", lis.Addr().String()).Msg("HTTP server listening")

	if err = h.server.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http serve: %w", err)
	}
	return nil
}

func (h *httpServer) Shutdown(ctx context.Context) error {
	h.logger.Info().Msg("HTTP server shutdown")

	if err := h.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}
