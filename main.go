package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dpplayground/internal/config"
	"dpplayground/internal/container"
	"dpplayground/internal/serve"
	"dpplayground/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load application configuration
	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create dependency injection container
	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}
	defer appContainer.Shutdown(context.Background())

	server, err := ui.NewServer(ui.Options{
		Service:    appContainer.Playground,
		Importer:   appContainer.Importer,
		Metrics:    appContainer.Metrics,
		Gatherer:   appContainer.Gatherer(),
		ServiceURL: appConfig.Calculator.BaseURL,
		GinMode:    appConfig.Server.GinMode,
		Logger:     appContainer.Logger,
	})
	if err != nil {
		log.Fatalf("Failed to initialize server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appContainer.Logger.Info("Differential Privacy Playground on http://localhost:%s (calculation service %s)",
		appConfig.Server.Port, appConfig.Calculator.BaseURL)
	if err := serve.Run(ctx, appContainer.Logger, serve.Server{
		Name: "playground",
		HTTP: &http.Server{
			Addr:              net.JoinHostPort("", appConfig.Server.Port),
			Handler:           server.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}); err != nil {
		log.Printf("Server failed: %v", err)
		stop()
		appContainer.Shutdown(context.Background())
		os.Exit(1)
	}
}
