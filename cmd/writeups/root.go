package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MKhiriev/go-writeups/internal/client"
	"github.com/MKhiriev/go-writeups/internal/config"
	"github.com/MKhiriev/go-writeups/internal/logger"
	"github.com/MKhiriev/go-writeups/internal/service"
	"github.com/MKhiriev/go-writeups/models"
)

const appRole = "go-writeups"

// appRunner opens the client, runs fn and closes the client again. Tests
// replace it to run commands without a backend.
type appRunner func(cmd *cobra.Command, fn func(ctx context.Context, app appHandle) error) error

// appHandle is the part of the client used by the commands.
type appHandle interface {
	Run(ctx context.Context) error
	Catalog() service.CatalogStore
	Sessions() service.SessionManager
}

type commandDeps struct {
	buildInfo models.AppBuildInfo
	runApp    appRunner
}

func newRootCmd(buildInfo models.AppBuildInfo) *cobra.Command {
	deps := &commandDeps{buildInfo: buildInfo}
	deps.runApp = deps.withClientApp
	return newRootCmdWithDeps(deps)
}

func newRootCmdWithDeps(deps *commandDeps) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "writeups",
		Short: "Browse the security writeups portfolio from the terminal",
		Long: `writeups is a terminal client for the security writeups portfolio.

Without a subcommand it starts the interactive UI. The subcommands cover the
same catalog and session operations for scripts.`,
		Version:       deps.buildInfo.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			printBuildInfo(cmd.OutOrStdout(), deps.buildInfo)
			return deps.runApp(cmd, func(ctx context.Context, app appHandle) error {
				return app.Run(ctx)
			})
		},
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		newListCmd(deps),
		newShowCmd(deps),
		newLoginCmd(deps),
		newSignupCmd(deps),
		newLogoutCmd(deps),
		newWhoamiCmd(deps),
		newVersionCmd(deps),
	)

	return rootCmd
}

func newVersionCmd(deps *commandDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			printBuildInfo(cmd.OutOrStdout(), deps.buildInfo)
		},
	}
}

// withClientApp builds the real client from flags, environment and the
// optional JSON config.
func (d *commandDeps) withClientApp(cmd *cobra.Command, fn func(ctx context.Context, app appHandle) error) error {
	ctx := cmd.Context()

	cfg, err := config.GetClientConfig(cmd.Flags())
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "configuration error:", err)
		return err
	}

	log := logger.NewClientLogger(appRole, cfg.App.LogPath)
	ctx = log.WithContext(ctx)

	app, err := client.NewApp(ctx, cfg, d.buildInfo, log)
	if err != nil {
		log.Err(err).Str("func", "withClientApp").Msg("init client app error")
		fmt.Fprintln(cmd.ErrOrStderr(), "failed to start:", err)
		return err
	}
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			log.Err(closeErr).Str("func", "withClientApp").Msg("close client app error")
		}
	}()

	app.Start(ctx)
	return fn(ctx, app)
}
