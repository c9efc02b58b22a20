package config

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const DefaultSecret = "default-secret"

var (
	ErrDatabaseURLRequired = errors.New("database url is required")
	ErrInvalidPort         = errors.New("port must be a number between 1 and 65535")
	ErrAdminDomainRequired = errors.New("admin domain is required")
)

type Config struct {
	Debug             bool          `yaml:"debug"              envconfig:"DEBUG"`
	Host              string        `yaml:"host"               envconfig:"HOST"`
	Port              string        `yaml:"port"               envconfig:"PORT"`
	BaseURL           string        `yaml:"base_url"           envconfig:"BASE_URL"`
	Secret            string        `yaml:"secret"             envconfig:"SECRET"`
	DatabaseURL       string        `yaml:"database_url"       envconfig:"DATABASE_URL"`
	MigrationSource   string        `yaml:"migration_source"   envconfig:"MIGRATION_SOURCE"`
	OtelCollectorUrl  string        `yaml:"otel_collector_url" envconfig:"OTEL_COLLECTOR_URL"`
	AllowOrigins      []string      `yaml:"allow_origins"      envconfig:"ALLOW_ORIGINS"`
	AdminDomain       string        `yaml:"admin_domain"       envconfig:"ADMIN_DOMAIN"`
	TokenExpiration   time.Duration `yaml:"token_expiration"   envconfig:"TOKEN_EXPIRATION"`
	SessionExpiration time.Duration `yaml:"session_expiration" envconfig:"SESSION_EXPIRATION"`
}

func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrDatabaseURLRequired
	}
	if c.AdminDomain == "" {
		return ErrAdminDomainRequired
	}
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return ErrInvalidPort
	}
	return nil
}

// Log buffers configuration loading messages emitted before the zap logger
// exists, so they can be replayed once logging is available.
type Log struct {
	entries []entry
}

type entry struct {
	level   string
	message string
}

func (l *Log) info(message string) {
	l.entries = append(l.entries, entry{level: "info", message: message})
}

func (l *Log) warn(message string) {
	l.entries = append(l.entries, entry{level: "warn", message: message})
}

func (l *Log) FlushToZap(logger *zap.Logger) {
	for _, e := range l.entries {
		switch e.level {
		case "warn":
			logger.Warn(e.message)
		default:
			logger.Info(e.message)
		}
	}
	l.entries = nil
}

func defaultConfig() Config {
	return Config{
		Debug:             false,
		Host:              "localhost",
		Port:              "8080",
		BaseURL:           "http://localhost:8080",
		Secret:            DefaultSecret,
		DatabaseURL:       "",
		MigrationSource:   "file://migrations",
		OtelCollectorUrl:  "",
		AllowOrigins:      []string{"http://localhost:5173"},
		AdminDomain:       "admin.local",
		TokenExpiration:   10 * time.Minute,
		SessionExpiration: 24 * time.Hour,
	}
}

func Load() (Config, *Log) {
	cfgLog := &Log{}

	config := defaultConfig()
	config = loadYamlConfig(config, "config.yaml", cfgLog)
	config = loadEnvConfig(config, cfgLog)
	config = loadFlagConfig(config)

	return config, cfgLog
}

func loadYamlConfig(base Config, path string, cfgLog *Log) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			cfgLog.warn("Failed to read config file: " + err.Error())
		}
		return base
	}

	fileConfig := base
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		cfgLog.warn("Failed to parse config file, ignoring it: " + err.Error())
		return base
	}

	cfgLog.info("Loaded configuration from " + path)
	return fileConfig
}

func loadEnvConfig(base Config, cfgLog *Log) Config {
	if err := godotenv.Load(); err == nil {
		cfgLog.info("Loaded environment variables from .env file")
	}

	get := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	base.Host = get("HOST", base.Host)
	base.Port = get("PORT", base.Port)
	base.BaseURL = get("BASE_URL", base.BaseURL)
	base.Secret = get("SECRET", base.Secret)
	base.DatabaseURL = get("DATABASE_URL", base.DatabaseURL)
	base.MigrationSource = get("MIGRATION_SOURCE", base.MigrationSource)
	base.OtelCollectorUrl = get("OTEL_COLLECTOR_URL", base.OtelCollectorUrl)
	base.AdminDomain = get("ADMIN_DOMAIN", base.AdminDomain)

	if value, ok := os.LookupEnv("DEBUG"); ok {
		debug, err := strconv.ParseBool(value)
		if err != nil {
			cfgLog.warn("Failed to parse DEBUG as bool, keeping previous value")
		} else {
			base.Debug = debug
		}
	}

	if value, ok := os.LookupEnv("ALLOW_ORIGINS"); ok && value != "" {
		origins := strings.Split(value, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		base.AllowOrigins = origins
	}

	if value, ok := os.LookupEnv("TOKEN_EXPIRATION"); ok && value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			cfgLog.warn("Failed to parse TOKEN_EXPIRATION as duration, keeping previous value")
		} else {
			base.TokenExpiration = duration
		}
	}

	if value, ok := os.LookupEnv("SESSION_EXPIRATION"); ok && value != "" {
		duration, err := time.ParseDuration(value)
		if err != nil {
			cfgLog.warn("Failed to parse SESSION_EXPIRATION as duration, keeping previous value")
		} else {
			base.SessionExpiration = duration
		}
	}

	return base
}

func loadFlagConfig(base Config) Config {
	debug := flag.Bool("debug", base.Debug, "enable debug mode")
	host := flag.String("host", base.Host, "server host")
	port := flag.String("port", base.Port, "server port")
	baseURL := flag.String("base-url", base.BaseURL, "public base url")
	secret := flag.String("secret", base.Secret, "signing secret")
	databaseURL := flag.String("database-url", base.DatabaseURL, "postgres connection url")
	migrationSource := flag.String("migration-source", base.MigrationSource, "database migration source")
	otelCollectorUrl := flag.String("otel-collector-url", base.OtelCollectorUrl, "opentelemetry collector url")
	adminDomain := flag.String("admin-domain", base.AdminDomain, "email domain that grants the admin role")
	flag.Parse()

	base.Debug = *debug
	base.Host = *host
	base.Port = *port
	base.BaseURL = *baseURL
	base.Secret = *secret
	base.DatabaseURL = *databaseURL
	base.MigrationSource = *migrationSource
	base.OtelCollectorUrl = *otelCollectorUrl
	base.AdminDomain = *adminDomain

	return base
}
