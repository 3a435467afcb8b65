package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for the delete archive.
// Archiving is disabled when Endpoint is empty.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an archive endpoint is configured.
func (c MinIOConfig) Enabled() bool {
	return c.Endpoint != ""
}

// PaginationConfig bounds the page size accepted by paginated listings.
type PaginationConfig struct {
	DefaultSize int `validate:"gt=0"`
	MaxSize     int `validate:"gtefield=DefaultSize"`
}

// TracingConfig selects the OTLP trace exporter. Endpoints and headers are read by the
// exporters themselves from the standard OTEL_EXPORTER_OTLP_* variables.
type TracingConfig struct {
	Disabled    bool
	ServiceName string  `validate:"required"`
	Protocol    string  `validate:"oneof=grpc http/protobuf"`
	Sampler     string  `validate:"oneof=always_on always_off traceidratio parentbased_always_on parentbased_always_off parentbased_traceidratio"`
	SamplerArg  float64 `validate:"gte=0,lte=1"`
}

// AppConfig is the centralized configuration struct for the application.
// It is read once at startup and never mutated afterwards.
type AppConfig struct {
	// ApplicationName is used verbatim in the X-<name>-alert advisory headers.
	ApplicationName   string `validate:"required"`
	EnableTranslation bool
	AppHost           string
	Port              string `validate:"required,numeric"`
	LogLevel          string `validate:"oneof=debug info warn error"`
	Timezone          string `validate:"required"`
	ShutdownTimeout   time.Duration
	Database          DatabaseConfig
	MinIO             MinIOConfig
	Pagination        PaginationConfig
	Tracing           TracingConfig
}

// Location resolves the configured time zone used for log timestamps.
func (c *AppConfig) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// envBindings maps configuration keys to the environment variables that may set them.
// The first variable found wins.
var envBindings = map[string][]string{
	"jhipster.clientapp.name":               {"APP_NAME", "JHIPSTER_CLIENTAPP_NAME"},
	"jhipster.clientapp.enable_translation": {"APP_ENABLE_TRANSLATION"},
	"app.host":                              {"APP_HOST"},
	"app.timezone":                          {"APP_TIMEZONE"},
	"server.port":                           {"PORT"},
	"server.shutdown_timeout":               {"SHUTDOWN_TIMEOUT"},
	"log.level":                             {"LOG_LEVEL"},
	"database.host":                         {"DB_HOST"},
	"database.port":                         {"DB_PORT"},
	"database.user":                         {"DB_USER"},
	"database.password":                     {"DB_PASSWORD"},
	"database.name":                         {"DB_NAME"},
	"database.sslmode":                      {"DB_SSLMODE"},
	"database.max_open_conns":               {"DB_MAX_OPEN_CONNS"},
	"database.max_idle_conns":               {"DB_MAX_IDLE_CONNS"},
	"database.conn_max_lifetime_sec":        {"DB_CONN_MAX_LIFETIME_SEC"},
	"minio.endpoint":                        {"MINIO_ENDPOINT"},
	"minio.access_key":                      {"MINIO_ACCESS_KEY"},
	"minio.secret_key":                      {"MINIO_SECRET_KEY"},
	"minio.bucket":                          {"MINIO_BUCKET"},
	"minio.use_ssl":                         {"MINIO_USE_SSL"},
	"pagination.default_size":               {"PAGINATION_DEFAULT_SIZE"},
	"pagination.max_size":                   {"PAGINATION_MAX_SIZE"},
	"otel.disabled":                         {"OTEL_SDK_DISABLED"},
	"otel.service_name":                     {"OTEL_SERVICE_NAME"},
	"otel.protocol":                         {"OTEL_EXPORTER_OTLP_PROTOCOL"},
	"otel.sampler":                          {"OTEL_TRACES_SAMPLER"},
	"otel.sampler_arg":                      {"OTEL_TRACES_SAMPLER_ARG"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("jhipster.clientapp.enable_translation", true)
	v.SetDefault("app.host", "localhost:8080")
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime_sec", 300)
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("pagination.default_size", 20)
	v.SetDefault("pagination.max_size", 2000)
	v.SetDefault("otel.disabled", false)
	v.SetDefault("otel.service_name", "rateanalysis")
	v.SetDefault("otel.protocol", "grpc")
	v.SetDefault("otel.sampler", "parentbased_traceidratio")
	v.SetDefault("otel.sampler_arg", 1.0)
}

// Load reads configuration from defaults, an optional YAML file and environment
// variables, in increasing order of precedence. A .env file can be auto-loaded by
// importing _ "github.com/joho/godotenv/autoload" in main.
func Load(configFile string) (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	cfg := &AppConfig{
		ApplicationName:   v.GetString("jhipster.clientapp.name"),
		EnableTranslation: v.GetBool("jhipster.clientapp.enable_translation"),
		AppHost:           v.GetString("app.host"),
		Port:              v.GetString("server.port"),
		LogLevel:          v.GetString("log.level"),
		Timezone:          v.GetString("app.timezone"),
		ShutdownTimeout:   v.GetDuration("server.shutdown_timeout"),
		Database: DatabaseConfig{
			Host:               v.GetString("database.host"),
			Port:               v.GetString("database.port"),
			User:               v.GetString("database.user"),
			Password:           v.GetString("database.password"),
			Name:               v.GetString("database.name"),
			SSLMode:            v.GetString("database.sslmode"),
			MaxOpenConns:       v.GetInt("database.max_open_conns"),
			MaxIdleConns:       v.GetInt("database.max_idle_conns"),
			ConnMaxLifetimeSec: v.GetInt("database.conn_max_lifetime_sec"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("minio.endpoint"),
			AccessKey: v.GetString("minio.access_key"),
			SecretKey: v.GetString("minio.secret_key"),
			Bucket:    v.GetString("minio.bucket"),
			UseSSL:    v.GetBool("minio.use_ssl"),
		},
		Pagination: PaginationConfig{
			DefaultSize: v.GetInt("pagination.default_size"),
			MaxSize:     v.GetInt("pagination.max_size"),
		},
		Tracing: TracingConfig{
			Disabled:    v.GetBool("otel.disabled"),
			ServiceName: v.GetString("otel.service_name"),
			Protocol:    v.GetString("otel.protocol"),
			Sampler:     v.GetString("otel.sampler"),
			SamplerArg:  v.GetFloat64("otel.sampler_arg"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("invalid configuration: timezone: %w", err)
	}
	return cfg, nil
}
