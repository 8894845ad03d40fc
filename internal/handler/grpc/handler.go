// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package grpc exposes the document server's gRPC surface: the standard
// health service and a unary interceptor that gives every call a trace id
// and an access log line.
package grpc

import (
	"context"
	"time"

	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/service"
	"github.com/MKhiriev/go-draft-sync/internal/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// ServiceName is the health service name reported for the document store.
const ServiceName = "draftsync.DocumentStore"

const traceIDKey = "x-trace-id"

// Handler is the root gRPC transport handler.
type Handler struct {
	// services provides access to the application services.
	services *service.Services

	health *health.Server

	logger *logger.Logger
}

// NewHandler constructs a [Handler] whose health service starts out
// NOT_SERVING until [Handler.Register] is called.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)

	return h
}

// Register attaches the handler's services to server and marks them SERVING.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)

	h.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	h.health.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_SERVING)
}

// Shutdown flips every service to NOT_SERVING so that probes fail while the
// server drains.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}

// UnaryInterceptor attaches a trace scoped logger to the call context and
// logs the method, status code and duration.
func (h *Handler) UnaryInterceptor(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
	traceID := traceIDFromMetadata(ctx)

	l := h.logger.GetChildLogger()
	l.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", traceID)
	})
	ctx = l.WithContext(utils.WithTraceID(ctx, traceID))

	start := time.Now()
	resp, err := handler(ctx, req)

	l.Info().
		Str("method", info.FullMethod).
		Str("code", status.Code(err).String()).
		Dur("duration", time.Since(start)).
		Send()

	return resp, err
}

func traceIDFromMetadata(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceIDKey); len(values) > 0 && values[0] != "" && len(values[0]) <= 128 {
			return values[0]
		}
	}
	return uuid.NewString()
}
