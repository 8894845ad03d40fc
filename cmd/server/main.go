// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/handler"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/internal/server"
	"github.com/MKhiriev/go-draft-sync/internal/service"
	"github.com/MKhiriev/go-draft-sync/internal/store"
	"github.com/MKhiriev/go-draft-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Fprintf(os.Stderr, "draft-sync-server %s\n", buildInfo)

	log := logger.NewLogger("draft-sync-server")
	cfg, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if cfg.App.Version == "" {
		cfg.App.Version = buildInfo.BuildVersion()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	if cfg.IssueTokenFor != "" {
		if err = issueToken(ctx, cfg, log); err != nil {
			log.Fatal().Err(err).Msg("error issuing token")
		}
		return
	}

	storages, err := store.NewStorages(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, cfg.App, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		storages.Close()
		os.Exit(1)
	}
}

// issueToken prints a bearer token for cfg.IssueTokenFor. It needs only the
// signing settings, not the database.
func issueToken(ctx context.Context, cfg *config.ServerConfig, log *logger.Logger) error {
	token, err := service.NewAuthService(cfg.App, log).IssueToken(ctx, cfg.IssueTokenFor)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(os.Stdout, token.String())
	return err
}
