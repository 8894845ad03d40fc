// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	myGRPC "github.com/MKhiriev/go-draft-sync/internal/handler/grpc"
	"github.com/MKhiriev/go-draft-sync/internal/logger"

	"google.golang.org/grpc"
)

type grpcServer struct {
	handler *myGRPC.Handler

	server  *grpc.Server
	address string

	logger *logger.Logger
}

func newGRPCServer(handler *myGRPC.Handler, cfg config.Server, logger *logger.Logger) *grpcServer {
	server := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryInterceptor))
	handler.Register(server)

	return &grpcServer{
		handler: handler,
		server:  server,
		address: cfg.GRPCAddress,
		logger:  logger,
	}
}

func (g *grpcServer) Name() string {
	return "grpc"
}

func (g *grpcServer) Serve() error {
	lis, err := net.Listen("tcp", g.address)
	if err != nil {
		return fmt.Errorf("grpc listen on %s: %w", g.address, err)
	}

	g.logger.Info().Str("address", lis.Addr().String()).Msg("gRPC server listening")

	if err = g.server.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return fmt.Errorf("grpc serve: %w", err)
	}
	return nil
}

// Shutdown reports NOT_SERVING, then drains in-flight calls. Calls still
// running when ctx ends are cut off.
func (g *grpcServer) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("gRPC server shutdown")
	g.handler.Shutdown()

	stopped := make(chan struct{})
	go func() {
		g.server.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopped:
		return nil
	case <-ctx.Done():
		g.server.Stop()
		<-stopped
		return fmt.Errorf("grpc shutdown: %w", ctx.Err())
	}
}
