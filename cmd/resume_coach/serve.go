package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-coach/internal/config"
	"github.com/jonathan/resume-coach/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the match engine over REST.
DATABASE_URL enables match history and REDIS_ADDR enables the result cache; both are optional.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(config.Config{Port: servePort})
	if err != nil {
		return err
	}

	srv, err := server.New(cmd.Context(), serverConfig(cfg), zlog)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

func serverConfig(cfg config.Config) server.Config {
	return server.Config{
		Port:           cfg.Port,
		DatabaseURL:    cfg.DatabaseURL,
		RedisAddr:      cfg.RedisAddr,
		RedisPassword:  cfg.RedisPassword,
		CacheTTL:       cfg.CacheTTLDuration(),
		EliteEmployers: cfg.EliteEmployers,
		Concurrency:    cfg.Concurrency,
	}
}
