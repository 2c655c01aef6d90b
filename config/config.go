package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"storefront-pricing/pricing"
)

// EnvPrefix prefixes environment overrides, nested keys use "__"
// e.g. STOREFRONT_STORE__DRIVER=redis, STOREFRONT_PRICING__MAX_DISCOUNT_RATE=0.4
const EnvPrefix = "STOREFRONT_"

// Store drivers
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
	StoreRedis    = "redis"
)

type Config struct {
	App struct {
		Name        string `koanf:"name"`
		Env         string `koanf:"env"`
		HTTPAddr    string `koanf:"http_addr"`
		LogFile     string `koanf:"log_file"`
		AdminAPIKey string `koanf:"admin_api_key"`
		PriceFormat string `koanf:"price_format"`
	} `koanf:"app"`

	HTTP struct {
		ReadTimeout  time.Duration `koanf:"read_timeout"`
		WriteTimeout time.Duration `koanf:"write_timeout"`
		IdleTimeout  time.Duration `koanf:"idle_timeout"`
	} `koanf:"http"`

	Store struct {
		Driver string `koanf:"driver"`
		DSN    string `koanf:"dsn"`
	} `koanf:"store"`

	Redis struct {
		Addr     string `koanf:"addr"`
		Password string `koanf:"password"`
		DB       int    `koanf:"db"`
		Prefix   string `koanf:"prefix"`
	} `koanf:"redis"`

	Pricing pricing.Policy `koanf:"pricing"`

	Catalog struct {
		Title      string `koanf:"title"`
		ChromePath string `koanf:"chrome_path"`
	} `koanf:"catalog"`
}

// Default returns the configuration used for keys that are not set anywhere
func Default() Config {
	var cfg Config
	cfg.App.Name = "storefront-pricing"
	cfg.App.Env = "development"
	cfg.App.HTTPAddr = ":8080"
	cfg.App.LogFile = "logs/storefront.log"
	cfg.App.PriceFormat = "kr"
	cfg.HTTP.ReadTimeout = 15 * time.Second
	cfg.HTTP.WriteTimeout = 60 * time.Second
	cfg.HTTP.IdleTimeout = 60 * time.Second
	cfg.Store.Driver = StoreSQLite
	cfg.Redis.Addr = "localhost:6379"
	cfg.Redis.Prefix = "storefront:"
	cfg.Pricing = pricing.DefaultPolicy()
	return cfg
}

// Load layers the optional YAML file at path and STOREFRONT_ environment variables over Default
func Load(path string) (Config, error) {
	k := koanf.New(".")

	// the file is optional for local runs
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("load %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("stat %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, EnvPrefix)
		s = strings.ReplaceAll(s, "__", ".")
		return strings.ToLower(s)
	}), nil); err != nil {
		return Config{}, fmt.Errorf("env overlay: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.App.HTTPAddr == "" {
		return fmt.Errorf("app.http_addr required")
	}
	switch c.Store.Driver {
	case StoreMemory, StoreSQLite, StorePostgres:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr required for the redis store")
		}
	default:
		return fmt.Errorf("unknown store.driver %q", c.Store.Driver)
	}
	if err := c.Pricing.Validate(); err != nil {
		return fmt.Errorf("pricing: %w", err)
	}
	return nil
}

// IsProduction reports whether app.env is "production"
func (c Config) IsProduction() bool {
	return c.App.Env == "production"
}
