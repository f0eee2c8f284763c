package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	Database    DatabaseConfig    `mapstructure:"database"`
	NATS        NATSConfig        `mapstructure:"nats"`
	Valkey      ValkeyConfig      `mapstructure:"valkey"`
	Telemetry   TelemetryConfig   `mapstructure:"telemetry"`
	Sentry      SentryConfig      `mapstructure:"sentry"`
	Maps        MapsConfig        `mapstructure:"maps"`
	Routing     RoutingConfig     `mapstructure:"routing"`
	Geolocation GeolocationConfig `mapstructure:"geolocation"`
	Directory   DirectoryConfig   `mapstructure:"directory"`
	Chat        ChatConfig        `mapstructure:"chat"`
	Intake      IntakeConfig      `mapstructure:"intake"`
	Temporal    TemporalConfig    `mapstructure:"temporal"`
}

type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	ReadTimeout  int      `mapstructure:"read_timeout"`
	WriteTimeout int      `mapstructure:"write_timeout"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

type ValkeyConfig struct {
	Addr      string `mapstructure:"addr"`
	Namespace string `mapstructure:"namespace"`
	Enabled   bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type SentryConfig struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

// MapsConfig configures the third-party mapping SDK. APIKey has no default.
// LoadTimeout and SessionIdleTTL are in seconds.
type MapsConfig struct {
	SDKURL         string  `mapstructure:"sdk_url"`
	APIKey         string  `mapstructure:"api_key"`
	CenterLat      float64 `mapstructure:"center_lat"`
	CenterLon      float64 `mapstructure:"center_lon"`
	LoadTimeout    int     `mapstructure:"load_timeout"`
	SessionIdleTTL int     `mapstructure:"session_idle_ttl"`
}

// RoutingConfig configures the OSRM route provider. Timeout and CacheTTL are in seconds.
type RoutingConfig struct {
	OSRMURL    string `mapstructure:"osrm_url"`
	Timeout    int    `mapstructure:"timeout"`
	CacheSize  int    `mapstructure:"cache_size"`
	CacheTTL   int    `mapstructure:"cache_ttl"`
	UnitSystem string `mapstructure:"unit_system"`
}

// GeolocationConfig bounds origin acquisition. Timeout and MaxAge are in milliseconds.
type GeolocationConfig struct {
	Timeout  int    `mapstructure:"timeout"`
	MaxAge   int    `mapstructure:"max_age"`
	IPLookup bool   `mapstructure:"ip_lookup"`
	IPAPIURL string `mapstructure:"ipapi_url"`
}

type DirectoryConfig struct {
	Source string `mapstructure:"source"` // builtin | yaml | postgres
	File   string `mapstructure:"file"`
}

type ChatConfig struct {
	Phone string `mapstructure:"phone"`
}

type IntakeConfig struct {
	Sink      string `mapstructure:"sink"` // log | nats
	NotifyURL string `mapstructure:"notify_url"`
}

type TemporalConfig struct {
	HostPort  string `mapstructure:"host_port"`
	Namespace string `mapstructure:"namespace"`
	TaskQueue string `mapstructure:"task_queue"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: CRESTFIELD_MAPS_API_KEY → maps.api_key
	v.SetEnvPrefix("CRESTFIELD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.allow_origins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "crestfield")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "crestfield")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.namespace", "crestfield")
	v.SetDefault("valkey.enabled", false)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("maps.sdk_url", "https://maps.googleapis.com/maps/api/js")
	v.SetDefault("maps.api_key", "")
	v.SetDefault("maps.center_lat", 9.0820)
	v.SetDefault("maps.center_lon", 8.6753)
	v.SetDefault("maps.load_timeout", 15)
	v.SetDefault("maps.session_idle_ttl", 1800)
	v.SetDefault("routing.osrm_url", "https://router.project-osrm.org")
	v.SetDefault("routing.timeout", 10)
	v.SetDefault("routing.cache_size", 512)
	v.SetDefault("routing.cache_ttl", 600)
	v.SetDefault("routing.unit_system", "metric")
	v.SetDefault("geolocation.timeout", 10000)
	v.SetDefault("geolocation.max_age", 300000)
	v.SetDefault("geolocation.ip_lookup", false)
	v.SetDefault("geolocation.ipapi_url", "http://ip-api.com/json")
	v.SetDefault("directory.source", "builtin")
	v.SetDefault("directory.file", "")
	v.SetDefault("chat.phone", "+2349051600569")
	v.SetDefault("intake.sink", "log")
	v.SetDefault("intake.notify_url", "logger://")
	v.SetDefault("temporal.host_port", "localhost:7233")
	v.SetDefault("temporal.namespace", "default")
	v.SetDefault("temporal.task_queue", "inquiry-followup")
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Maps.SDKURL == "" {
		errs = append(errs, "maps.sdk_url is required")
	}
	if c.Maps.CenterLat < -90 || c.Maps.CenterLat > 90 {
		errs = append(errs, fmt.Sprintf("maps.center_lat must be within [-90, 90], got %v", c.Maps.CenterLat))
	}
	if c.Maps.CenterLon < -180 || c.Maps.CenterLon > 180 {
		errs = append(errs, fmt.Sprintf("maps.center_lon must be within [-180, 180], got %v", c.Maps.CenterLon))
	}
	if c.Maps.LoadTimeout <= 0 {
		errs = append(errs, "maps.load_timeout must be positive")
	}
	if c.Geolocation.Timeout <= 0 {
		errs = append(errs, "geolocation.timeout must be positive")
	}
	if c.Routing.OSRMURL == "" {
		errs = append(errs, "routing.osrm_url is required")
	}
	if c.Chat.Phone == "" {
		errs = append(errs, "chat.phone is required")
	}

	switch c.Directory.Source {
	case "builtin":
	case "yaml":
		if c.Directory.File == "" {
			errs = append(errs, "directory.file is required when directory.source is yaml")
		}
	case "postgres":
		errs = append(errs, c.Database.problems()...)
	default:
		errs = append(errs, fmt.Sprintf("directory.source must be builtin, yaml or postgres, got %q", c.Directory.Source))
	}

	switch c.Intake.Sink {
	case "log":
	case "nats":
		if c.NATS.URL == "" {
			errs = append(errs, "nats.url is required when intake.sink is nats")
		}
	default:
		errs = append(errs, fmt.Sprintf("intake.sink must be log or nats, got %q", c.Intake.Sink))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (d DatabaseConfig) problems() []string {
	var errs []string
	if d.Host == "" {
		errs = append(errs, "database.host is required")
	}
	if d.Port <= 0 || d.Port > 65535 {
		errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", d.Port))
	}
	if d.User == "" {
		errs = append(errs, "database.user is required")
	}
	if d.DBName == "" {
		errs = append(errs, "database.dbname is required")
	}
	return errs
}

// MapsReady reports whether the mapping SDK can be loaded at all.
func (c *Config) MapsReady() bool {
	return c.Maps.APIKey != ""
}
