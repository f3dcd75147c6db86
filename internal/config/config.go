package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds the runtime settings of the service.
type Config struct {
	Env            string
	Port           int
	LogLevel       string
	LogFormat      string
	CORSOrigin     string
	PostgresURL    string
	SQLitePath     string
	MigrateOnStart bool
	RabbitMQURL    string
	BodyLimit      int
}

// Load reads configuration from defaults, an optional env file and the environment,
// in increasing order of precedence.
func Load() (Config, error) {
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("SQLITE_PATH", "data/app.db")
	v.SetDefault("MIGRATE_ON_START", true)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("BODY_LIMIT", 1024*1024)
	v.AutomaticEnv()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = ".env"
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	}

	cfg := Config{
		Env:            v.GetString("APP_ENV"),
		Port:           v.GetInt("PORT"),
		LogLevel:       strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat:      strings.ToLower(v.GetString("LOG_FORMAT")),
		CORSOrigin:     v.GetString("CORS_ORIGIN"),
		PostgresURL:    v.GetString("POSTGRES_URL"),
		SQLitePath:     v.GetString("SQLITE_PATH"),
		MigrateOnStart: v.GetBool("MIGRATE_ON_START"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		BodyLimit:      v.GetInt("BODY_LIMIT"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c Config) Validate() error {
	switch c.Env {
	case "development", "test", "production":
	default:
		return fmt.Errorf("invalid APP_ENV %q", c.Env)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid PORT %d", c.Port)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("invalid BODY_LIMIT %d", c.BodyLimit)
	}
	if !c.UsePostgres() && c.SQLitePath == "" {
		return errors.New("SQLITE_PATH is required when POSTGRES_URL is not set")
	}
	return nil
}

// Addr is the listen address.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// UsePostgres reports whether a Postgres connection string was provided.
func (c Config) UsePostgres() bool {
	return strings.TrimSpace(c.PostgresURL) != ""
}

// CORSOrigins returns "*" or the configured origins as a comma separated list.
func (c Config) CORSOrigins() string {
	origin := strings.TrimSpace(c.CORSOrigin)
	if origin == "" || origin == "*" {
		return "*"
	}
	var origins []string
	for _, o := range strings.Split(origin, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return "*"
	}
	return strings.Join(origins, ",")
}
