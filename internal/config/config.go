package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rpggio/seatmap/internal/domain/geometry"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config defines server configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Transport TransportConfig `yaml:"transport"`
	Auth      AuthConfig      `yaml:"auth"`
	Store     StoreConfig     `yaml:"store"`
	DB        DBConfig        `yaml:"db"`
	Redis     RedisConfig     `yaml:"redis"`
	Mongo     MongoConfig     `yaml:"mongo"`
	Grid      GridConfig      `yaml:"grid"`
	Layout    LayoutConfig    `yaml:"layout"`
	Log       LogConfig       `yaml:"log"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// TransportConfig selects how the MCP server is exposed: "stdio" or "http".
type TransportConfig struct {
	Mode string `yaml:"mode"`
}

// AuthConfig guards the HTTP transport with a static bearer token.
type AuthConfig struct {
	Enabled bool   `yaml:"enabled"`
	Token   string `yaml:"token"`
}

// StoreConfig selects the layout backend: "sqlite", "redis" or "mongo".
type StoreConfig struct {
	Backend string `yaml:"backend"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

type MongoConfig struct {
	URI        string `yaml:"uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

type GridConfig struct {
	UnitX float64 `yaml:"unit_x"`
	UnitY float64 `yaml:"unit_y"`
}

// Grid returns the snapping grid.
func (g GridConfig) Grid() geometry.Grid {
	return geometry.Grid{UnitX: g.UnitX, UnitY: g.UnitY}
}

type LayoutConfig struct {
	DefaultFloor string `yaml:"default_floor"`
	ViewRotation int    `yaml:"view_rotation"`
	StartMode    string `yaml:"start_mode"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Transport: TransportConfig{
			Mode: "http",
		},
		Store: StoreConfig{
			Backend: "sqlite",
		},
		DB: DBConfig{
			Path: "seatmap.db",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "seatmap:",
		},
		Mongo: MongoConfig{
			URI:        "mongodb://localhost:27017",
			Database:   "seatmap",
			Collection: "tables",
		},
		Grid: GridConfig{
			UnitX: geometry.DefaultGrid.UnitX,
			UnitY: geometry.DefaultGrid.UnitY,
		},
		Layout: LayoutConfig{
			DefaultFloor: "1F",
			StartMode:    "business",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from an optional YAML file and environment
// variables. An empty path falls back to SEATMAP_CONFIG_PATH.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("SEATMAP_CONFIG_PATH")
	}
	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(name string, dst *string) {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}
	setInt := func(name string, dst *int) error {
		v := os.Getenv(name)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = n
		return nil
	}
	setFloat := func(name string, dst *float64) error {
		v := os.Getenv(name)
		if v == "" {
			return nil
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		*dst = n
		return nil
	}

	setString("SEATMAP_SERVER_HOST", &cfg.Server.Host)
	if err := setInt("SEATMAP_SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	setString("SEATMAP_TRANSPORT_MODE", &cfg.Transport.Mode)
	if v := os.Getenv("SEATMAP_AUTH_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid SEATMAP_AUTH_ENABLED: %w", err)
		}
		cfg.Auth.Enabled = enabled
	}
	setString("SEATMAP_AUTH_TOKEN", &cfg.Auth.Token)
	setString("SEATMAP_STORE_BACKEND", &cfg.Store.Backend)
	setString("SEATMAP_DB_PATH", &cfg.DB.Path)
	setString("SEATMAP_REDIS_ADDR", &cfg.Redis.Addr)
	setString("SEATMAP_REDIS_PASSWORD", &cfg.Redis.Password)
	if err := setInt("SEATMAP_REDIS_DB", &cfg.Redis.DB); err != nil {
		return err
	}
	setString("SEATMAP_REDIS_PREFIX", &cfg.Redis.Prefix)
	setString("SEATMAP_MONGO_URI", &cfg.Mongo.URI)
	setString("SEATMAP_MONGO_DATABASE", &cfg.Mongo.Database)
	setString("SEATMAP_MONGO_COLLECTION", &cfg.Mongo.Collection)
	if err := setFloat("SEATMAP_GRID_UNIT_X", &cfg.Grid.UnitX); err != nil {
		return err
	}
	if err := setFloat("SEATMAP_GRID_UNIT_Y", &cfg.Grid.UnitY); err != nil {
		return err
	}
	setString("SEATMAP_DEFAULT_FLOOR", &cfg.Layout.DefaultFloor)
	if err := setInt("SEATMAP_VIEW_ROTATION", &cfg.Layout.ViewRotation); err != nil {
		return err
	}
	setString("SEATMAP_START_MODE", &cfg.Layout.StartMode)
	setString("SEATMAP_LOG_LEVEL", &cfg.Log.Level)
	setString("SEATMAP_LOG_PATH", &cfg.Log.Path)
	return nil
}

// Validate checks enumerations and ranges.
func (c Config) Validate() error {
	switch c.Transport.Mode {
	case "stdio", "http":
	default:
		return fmt.Errorf("%w: transport.mode %q", ErrInvalidConfig, c.Transport.Mode)
	}
	switch c.Store.Backend {
	case "sqlite", "redis", "mongo":
	default:
		return fmt.Errorf("%w: store.backend %q", ErrInvalidConfig, c.Store.Backend)
	}
	switch c.Layout.StartMode {
	case "business", "edit", "view":
	default:
		return fmt.Errorf("%w: layout.start_mode %q", ErrInvalidConfig, c.Layout.StartMode)
	}
	if err := c.Grid.Grid().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Layout.ViewRotation < 0 || c.Layout.ViewRotation > 3 {
		return fmt.Errorf("%w: layout.view_rotation must be 0..3", ErrInvalidConfig)
	}
	if strings.TrimSpace(c.Layout.DefaultFloor) == "" {
		return fmt.Errorf("%w: layout.default_floor is empty", ErrInvalidConfig)
	}
	if c.Auth.Enabled && c.Auth.Token == "" {
		return fmt.Errorf("%w: auth.token is required when auth is enabled", ErrInvalidConfig)
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server.port %d", ErrInvalidConfig, c.Server.Port)
	}
	return nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
