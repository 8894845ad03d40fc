// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/handler"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
)

// DefaultShutdownTimeout bounds the drain of all transports.
const DefaultShutdownTimeout = 10 * time.Second

type server struct {
	transports      []transport
	shutdownTimeout time.Duration

	logger *logger.Logger
}

func NewServer(handlers *handler.Handlers, cfg config.Server, logger *logger.Logger) (Server, error) {
	if handlers == nil {
		return nil, errNilHandlers
	}

	logger.Info().Msg("creating new server...")
	servers := &server{
		shutdownTimeout: DefaultShutdownTimeout,
		logger:          logger,
	}

	if cfg.HTTPAddress != "" && handlers.HTTP != nil {
		servers.transports = append(servers.transports, newHTTPServer(handlers.HTTP.Init(), cfg, logger))
	}
	if cfg.GRPCAddress != "" && handlers.GRPC != nil {
		servers.transports = append(servers.transports, newGRPCServer(handlers.GRPC, cfg, logger))
	}

	if len(servers.transports) == 0 {
		return nil, errNoTransports
	}

	return servers, nil
}

func (s *server) RunServer(ctx context.Context) error {
	errs := make(chan error, len(s.transports))
	for _, t := range s.transports {
		s.logger.Info().Str("transport", t.Name()).Msg("launching server")
		go func() {
			errs <- t.Serve()
		}()
	}

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case runErr = <-errs:
		if runErr != nil {
			s.logger.Err(runErr).Msg("transport failed, stopping server")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	shutdownErrs := []error{runErr}
	for _, t := range s.transports {
		if err := t.Shutdown(shutdownCtx); err != nil {
			shutdownErrs = append(shutdownErrs, err)
		}
	}

	if err := errors.Join(shutdownErrs...); err != nil {
		return err
	}

	s.logger.Info().Msg("server shutdown gracefully")
	return nil
}
