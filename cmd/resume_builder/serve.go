package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-builder/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the resume document, templates, export and AI assist over REST.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default from config or PORT, else 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	return withApp(func(_ context.Context, a *app) error {
		port := a.cfg.Port
		if servePort != 0 {
			port = servePort
		}

		srv := server.New(server.Config{Port: port}, a.session, a.themes, a.contact)
		return srv.Start()
	})
}
