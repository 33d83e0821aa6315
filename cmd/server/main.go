package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mn-config/internal/config"
	"github.com/MKhiriev/mn-config/internal/handler"
	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/internal/registry"
	"github.com/MKhiriev/mn-config/internal/server"
	"github.com/MKhiriev/mn-config/internal/service"
	"github.com/MKhiriev/mn-config/internal/store"
	"github.com/MKhiriev/mn-config/internal/validators"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("mn-config-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	storages, err := store.NewStorages(context.Background(), cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	componentRegistry, err := registry.Load(cfg.Registry.Path, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error loading component registry")
	}

	services := service.NewServices(
		storages,
		componentRegistry,
		validators.NewSchemaValidator(componentRegistry, log),
		log,
	)

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
