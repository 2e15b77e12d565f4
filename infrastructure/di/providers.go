package di

import (
	"context"
	"fmt"
	"time"

	"bookhaven/application/explorer"
	"bookhaven/application/ports"
	"bookhaven/application/services"
	"bookhaven/infrastructure/config"
	"bookhaven/infrastructure/messaging/eventbridge"
	"bookhaven/infrastructure/persistence/dynamodb"
	"bookhaven/infrastructure/persistence/memory"
	"bookhaven/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error

	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}

	if err != nil {
		return nil, err
	}

	return logger, nil
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideCloudWatchClient creates a CloudWatch client
func ProvideCloudWatchClient(awsCfg aws.Config) *awscloudwatch.Client {
	return awscloudwatch.NewFromConfig(awsCfg)
}

// ProvideMetrics creates the metrics emitter, or nil when metrics are
// disabled. Callers rely on the nil-safe methods.
func ProvideMetrics(client *awscloudwatch.Client, cfg *config.Config) *observability.Metrics {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("BookHaven/%s", cfg.Environment)
	return observability.NewMetrics(namespace, client)
}

// ProvideTracer creates the tracer, or nil when tracing is disabled.
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	if !cfg.EnableTracing {
		return nil
	}
	return observability.NewTracer("bookhaven")
}

// ProvideBookRepository creates the book repository for the configured
// persistence backend.
func ProvideBookRepository(
	client *awsdynamodb.Client,
	cfg *config.Config,
	tracer *observability.Tracer,
	logger *zap.Logger,
) ports.BookRepository {
	if cfg.Persistence == config.PersistenceMemory {
		return memory.NewBookRepository()
	}
	return dynamodb.NewBookRepository(
		client,
		cfg.DynamoDBTable,
		tracer,
		logger,
	)
}

// ProvideEventBus creates an event bus, or nil when event publishing is
// disabled.
func ProvideEventBus(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventBus {
	if !cfg.EnableEvents {
		return nil
	}
	return eventbridge.NewPublisher(
		client,
		cfg.EventBusName,
		logger,
	)
}

// ProvideInMemoryCache creates a simple in-memory cache
// In production, this would be Redis or similar
func ProvideInMemoryCache() ports.Cache {
	return NewInMemoryCache()
}

// ProvideCatalogService wires the catalog service over the repository,
// cache, and event bus.
func ProvideCatalogService(
	repo ports.BookRepository,
	eventBus ports.EventBus,
	cache ports.Cache,
	cfg *config.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.CatalogService {
	return services.NewCatalogService(repo, eventBus, cache, cfg.CacheTTLSeconds, metrics, logger)
}

// ProvideExplorer wires the stateful explorer over the catalog service.
func ProvideExplorer(
	catalog *services.CatalogService,
	cfg *config.Config,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *explorer.Explorer {
	debounce := time.Duration(cfg.SearchDebounceMs) * time.Millisecond
	return explorer.New(catalog, debounce, metrics, logger)
}
