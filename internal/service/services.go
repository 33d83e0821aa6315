package service

import (
	"github.com/MKhiriev/mn-config/internal/logger"
	"github.com/MKhiriev/mn-config/internal/registry"
	"github.com/MKhiriev/mn-config/internal/store"
	"github.com/MKhiriev/mn-config/internal/validators"
)

type Services struct {
	Config ConfigService
}

func NewServices(storages *store.Storages, reg *registry.Registry, validator validators.Validator, logger *logger.Logger) *Services {
	return &Services{
		Config: NewConfigResolutionService(storages.Documents, reg, validator, logger),
	}
}
