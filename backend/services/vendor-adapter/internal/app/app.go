package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"vendoradapter/backend/libs/db"
	libredis "vendoradapter/backend/libs/redis"
	"vendoradapter/backend/services/vendor-adapter/internal/catalog"
	"vendoradapter/backend/services/vendor-adapter/internal/clients"
	"vendoradapter/backend/services/vendor-adapter/internal/config"
	"vendoradapter/backend/services/vendor-adapter/internal/dispatcher"
	httpserver "vendoradapter/backend/services/vendor-adapter/internal/http"
	"vendoradapter/backend/services/vendor-adapter/internal/http/handlers"
	"vendoradapter/backend/services/vendor-adapter/internal/http/middleware"
	"vendoradapter/backend/services/vendor-adapter/internal/ingest"
	"vendoradapter/backend/services/vendor-adapter/internal/vendors/chargemod"
)

// App wires vendor adapter dependencies.
type App struct {
	server       *httpserver.Server
	subscriber   *ingest.Subscriber
	closeCatalog func()
	logger       *zap.Logger
}

// NewDispatcher builds a dispatcher with every supported vendor registered.
func NewDispatcher(cfg *config.Config, writer catalog.Writer, logger *zap.Logger) *dispatcher.Dispatcher {
	if cfg.Vendor.InsecureSkipVerify {
		logger.Warn("vendor TLS verification disabled")
	}
	vendorClient := clients.NewVendorClient(
		clients.NewVendorHTTPClient(cfg.VendorTimeout(), cfg.Vendor.InsecureSkipVerify),
		logger,
	)
	d := dispatcher.New(vendorClient, writer, logger)
	d.Register(chargemod.NewAdapter())
	return d
}

// NewCatalogWriter opens the catalog selected by cfg. The returned cleanup
// releases any connection it opened.
func NewCatalogWriter(ctx context.Context, cfg *config.Config, logger *zap.Logger) (catalog.Writer, func(), error) {
	switch cfg.Catalog.Driver {
	case catalog.DriverPostgres:
		pool, err := db.NewPostgresPool(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog postgres: %w", err)
		}
		return catalog.NewPostgresWriter(pool, logger), pool.Close, nil
	case catalog.DriverRedis:
		client, err := libredis.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog redis: %w", err)
		}
		return catalog.NewRedisWriter(client, cfg.RedisTTL(), logger), func() { _ = client.Close() }, nil
	case catalog.DriverHTTP, "":
		httpClient := clients.NewDefaultHTTPClient(cfg.CatalogTimeout())
		return clients.NewCatalogClient(cfg.Catalog.URL, httpClient, logger), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("catalog: unknown driver %q", cfg.Catalog.Driver)
	}
}

// New constructs application graph.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	writer, cleanup, err := NewCatalogWriter(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	d := NewDispatcher(cfg, writer, logger)

	router := httpserver.NewRouter(httpserver.RouterDeps{
		ActionsHandler: handlers.NewActionsHandler(d, logger),
		HealthHandler:  handlers.NewHealthHandler(d.Vendors(), cfg.Catalog.Driver),
	}, middleware.AuthMiddleware(cfg.JWT.Secret))

	server := httpserver.NewServer(
		cfg.HTTPAddress(),
		router,
		logger,
		cfg.VendorTimeout()+cfg.CatalogTimeout()+5*time.Second,
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
	)

	a := &App{server: server, logger: logger, closeCatalog: cleanup}
	if cfg.MQTTEnabled() {
		a.subscriber = ingest.NewSubscriber(ingest.MQTTConfig{
			Broker:       cfg.MQTT.Broker,
			ClientID:     cfg.MQTT.ClientID,
			Username:     cfg.MQTT.Username,
			Password:     cfg.MQTT.Password,
			RequestTopic: cfg.MQTT.RequestTopic,
			QoS:          cfg.MQTT.QoS,
		}, d, logger)
	}
	return a, nil
}

// Run starts the MQTT subscriber, when configured, and serves HTTP until ctx ends.
func (a *App) Run(ctx context.Context) error {
	if a.subscriber != nil {
		if err := a.subscriber.Start(ctx); err != nil {
			return err
		}
		defer a.subscriber.Stop()
	}
	if err := a.server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// Close releases catalog connections.
func (a *App) Close() {
	a.closeCatalog()
}
