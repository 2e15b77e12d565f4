package di

import (
	"bookhaven/application/explorer"
	"bookhaven/application/ports"
	"bookhaven/application/services"
	"bookhaven/infrastructure/config"
	"bookhaven/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	BookRepo ports.BookRepository
	EventBus ports.EventBus
	Cache    ports.Cache
	Metrics  *observability.Metrics
	Tracer   *observability.Tracer
	Catalog  *services.CatalogService
	Explorer *explorer.Explorer
}
