package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "vendoradapter/backend/libs/config"
	"vendoradapter/backend/services/vendor-adapter/internal/catalog"
)

// Config defines vendor adapter configuration.
type Config struct {
	HTTP struct {
		Port string `yaml:"port" env:"VENDOR_ADAPTER_HTTP_PORT"`
	} `yaml:"http"`
	JWT struct {
		Secret string `yaml:"secret" env:"VENDOR_ADAPTER_JWT_SECRET"`
	} `yaml:"jwt"`
	Vendor struct {
		TimeoutSeconds     int  `yaml:"timeoutSeconds" env:"VENDOR_TIMEOUT_SECONDS"`
		InsecureSkipVerify bool `yaml:"insecureSkipVerify" env:"VENDOR_INSECURE_SKIP_VERIFY"`
	} `yaml:"vendor"`
	Catalog struct {
		Driver         string `yaml:"driver" env:"CATALOG_DRIVER" validate:"oneof=http postgres redis"`
		URL            string `yaml:"url" env:"CATALOG_URL" validate:"required_if=Driver http"`
		TimeoutSeconds int    `yaml:"timeoutSeconds" env:"CATALOG_TIMEOUT_SECONDS"`
	} `yaml:"catalog"`
	Database struct {
		DSN string `yaml:"dsn" env:"DATABASE_DSN"`
	} `yaml:"database"`
	Redis struct {
		Addr       string `yaml:"addr" env:"REDIS_ADDR"`
		Password   string `yaml:"password" env:"REDIS_PASSWORD"`
		TTLMinutes int    `yaml:"ttlMinutes" env:"REDIS_TTL_MINUTES"`
	} `yaml:"redis"`
	MQTT struct {
		Broker       string `yaml:"broker" env:"MQTT_BROKER"`
		ClientID     string `yaml:"clientId" env:"MQTT_CLIENT_ID"`
		Username     string `yaml:"username" env:"MQTT_USERNAME"`
		Password     string `yaml:"password" env:"MQTT_PASSWORD"`
		RequestTopic string `yaml:"requestTopic" env:"MQTT_REQUEST_TOPIC"`
		QoS          uint8  `yaml:"qos" env:"MQTT_QOS" validate:"lte=2"`
	} `yaml:"mqtt"`
}

// Load configuration via shared helper.
func Load() (*Config, error) {
	return load(true)
}

// LoadWithoutHTTP loads configuration for entry points that serve no HTTP
// traffic, where the JWT secret is not needed.
func LoadWithoutHTTP() (*Config, error) {
	return load(false)
}

func load(serveHTTP bool) (*Config, error) {
	cfg := &Config{}
	cfg.HTTP.Port = "8080"
	cfg.Vendor.TimeoutSeconds = 15
	cfg.Catalog.Driver = catalog.DriverHTTP
	cfg.Catalog.TimeoutSeconds = 10
	cfg.Redis.TTLMinutes = 60
	cfg.MQTT.ClientID = "vendor-adapter"
	cfg.MQTT.RequestTopic = "vendor-adapter"
	cfg.MQTT.QoS = 1

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if serveHTTP && strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	switch cfg.Catalog.Driver {
	case catalog.DriverPostgres:
		if strings.TrimSpace(cfg.Database.DSN) == "" {
			return nil, errors.New("config: database dsn required for postgres catalog")
		}
	case catalog.DriverRedis:
		if strings.TrimSpace(cfg.Redis.Addr) == "" {
			return nil, errors.New("config: redis addr required for redis catalog")
		}
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// VendorTimeout bounds a single vendor call.
func (c *Config) VendorTimeout() time.Duration {
	return seconds(c.Vendor.TimeoutSeconds, 15)
}

// CatalogTimeout bounds a single catalog write.
func (c *Config) CatalogTimeout() time.Duration {
	return seconds(c.Catalog.TimeoutSeconds, 10)
}

// RedisTTL is the expiry of station keys written by the redis catalog.
func (c *Config) RedisTTL() time.Duration {
	if c.Redis.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(c.Redis.TTLMinutes) * time.Minute
}

// MQTTEnabled reports whether the MQTT subscriber should run.
func (c *Config) MQTTEnabled() bool {
	return strings.TrimSpace(c.MQTT.Broker) != ""
}

func seconds(n, fallback int) time.Duration {
	if n <= 0 {
		n = fallback
	}
	return time.Duration(n) * time.Second
}
