// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pdiddy/signal-triage/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard and analysis form locally",
	Long: `Serve runs the local review server: the triage dashboard at /, the
analysis entry form at /analyze, the active themes at /themes, and the
analysis log append endpoint at /save. The server binds to localhost and
is not meant to face a network.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, 127.0.0.1:5050)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	paths := pathsFor(cfg)

	addr := cfg.Server.Addr
	if flag, _ := cmd.Flags().GetString("addr"); flag != "" {
		addr = flag
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := server.New(server.Config{
		Addr:       addr,
		TriagePath: paths.dashboard,
		ThemesPath: cfg.Paths.ThemesFile,
		LogPath:    paths.analysis,
	}, log)
	return srv.Run(ctx)
}
