package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/scheduler"
	"github.com/jonathan/job-board/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the job board REST endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	sweep, err := scheduler.New(srv.DB(), cfg.SweepSchedule, cfg.SweepMaxDays)
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}
	sweep.Start()
	defer sweep.Stop()

	return srv.Start()
}
