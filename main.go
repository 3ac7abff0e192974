// This is the main entry point of the university directory.
// It loads configuration, builds loggers and database pools, and dispatches to one of the
// CLI commands: serve (the default) runs the HTTP API and frontend, migrate manages the schema,
// import loads the university dataset and useradd provisions login accounts.
//
// @title University Directory API
// @version 1.0
// @description Search universities by country and name, keep a list of favorites, and log in for a bearer token.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/user/unidirectory-go/config"
	"github.com/user/unidirectory-go/logging"
)

func main() {
	// Development convenience; production sets the environment directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		log.Fatalf("%v", err)
	}
}

func newApp() *cli.App {
	serve := serveCommand()
	return &cli.App{
		Name:  "unidirectory",
		Usage: "university directory API, dataset importer and admin tools",
		Flags: serve.Flags,
		// Running the binary without a command starts the server.
		Action: serve.Action,
		Commands: []*cli.Command{
			serve,
			migrateCommand(),
			importCommand(),
			userAddCommand(),
		},
	}
}

// buildLogger returns the process logger and a function that flushes any remote sink.
func buildLogger(cfg *config.AppConfig) (logging.Logger, func(), error) {
	console := logging.NewSlogAdapter(logging.SlogConfig{
		Level: logging.ParseLevel(cfg.Log.Level),
		JSON:  cfg.Log.Format == "json",
	})
	if !cfg.Log.Fluent.Enabled {
		return console, func() {}, nil
	}

	client, err := logging.NewFluentClient(logging.FluentConfig{
		Host:      cfg.Log.Fluent.Host,
		Port:      cfg.Log.Fluent.Port,
		TagPrefix: cfg.AppName,
	})
	if err != nil {
		return nil, nil, err
	}
	fluentLogger, err := logging.NewFluentAdapter(client, logging.ParseLevel(cfg.Log.Fluent.Level))
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	multi, err := logging.NewMultiLogger(console, fluentLogger)
	if err != nil {
		client.Close()
		return nil, nil, err
	}
	return multi, func() {
		if err := client.Close(); err != nil {
			console.Error("Failed to close fluent client", err, nil)
		}
	}, nil
}

// bootstrap loads configuration and the logger shared by every command.
func bootstrap() (*config.AppConfig, logging.Logger, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, closeLogger, err := buildLogger(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	return cfg, logger, closeLogger, nil
}
