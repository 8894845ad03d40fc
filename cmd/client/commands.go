// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-draft-sync/internal/client"
	"github.com/MKhiriev/go-draft-sync/internal/config"
	"github.com/MKhiriev/go-draft-sync/internal/logger"
	"github.com/MKhiriev/go-draft-sync/models"
	"github.com/spf13/cobra"
)

const clientRole = "draft-sync-client"

// appRunner builds the client app from the parsed flags and hands it to fn.
type appRunner func(cmd *cobra.Command, fn func(ctx context.Context, app *client.App) error) error

func newRootCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:          "draft-client",
		Short:        "Edit a form draft and keep it saved on the document server",
		SilenceUsage: true,
	}

	flags := config.BindClientFlags(root.PersistentFlags())
	withApp := newAppRunner(flags, buildInfo)

	root.AddCommand(
		newEditCmd(withApp),
		newWatchCmd(withApp),
		newSpoolCmd(withApp),
		newVersionCmd(buildInfo),
	)

	return root
}

func newAppRunner(flags *config.StructuredConfig, buildInfo models.AppBuildInfo) appRunner {
	return func(cmd *cobra.Command, fn func(ctx context.Context, app *client.App) error) error {
		cfg, err := config.GetClientConfig(flags)
		if err != nil {
			return fmt.Errorf("error getting configs: %w", err)
		}

		log := logger.NewClientLogger(clientRole, logger.FileOptions{Path: cfg.LogFile})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		defer stop()

		app, err := client.NewApp(ctx, cfg, buildInfo, log)
		if err != nil {
			log.Error().Err(err).Msg("init client app error")
			return err
		}
		defer func() {
			if closeErr := app.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("error closing client storages")
			}
		}()

		if err = fn(ctx, app); err != nil {
			log.Error().Err(err).Str("command", cmd.CommandPath()).Msg("command failed")
			return err
		}
		return nil
	}
}

func newEditCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the terminal draft editor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, app *client.App) error {
				return app.Edit(ctx)
			})
		},
	}
}

func newWatchCmd(withApp appRunner) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <file>",
		Short: "Push the fields of a YAML file whenever it is saved",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, func(ctx context.Context, app *client.App) error {
				return app.Watch(ctx, args[0])
			})
		},
	}
}

func newSpoolCmd(withApp appRunner) *cobra.Command {
	spool := &cobra.Command{
		Use:   "spool",
		Short: "Inspect and recover drafts held locally",
	}

	spool.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List held drafts",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, func(ctx context.Context, app *client.App) error {
					return app.SpoolList(ctx, cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "export <id>",
			Short: "Write the content of a held draft to stdout",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, app *client.App) error {
					return app.SpoolExport(ctx, args[0], cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "replay",
			Short: "Push held drafts to the document server now",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withApp(cmd, func(ctx context.Context, app *client.App) error {
					return app.SpoolReplay(ctx, cmd.OutOrStdout())
				})
			},
		},
		&cobra.Command{
			Use:   "drop <id>",
			Short: "Remove a held draft",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return withApp(cmd, func(ctx context.Context, app *client.App) error {
					return app.SpoolDrop(ctx, args[0], cmd.OutOrStdout())
				})
			},
		},
	)

	return spool
}

func newVersionCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Build version: %s\nBuild date: %s\nBuild commit: %s\n",
				buildInfo.BuildVersion(), buildInfo.BuildDate(), buildInfo.BuildCommit())
			return err
		},
	}
}
