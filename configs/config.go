package configs

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	"github.com/rs/zerolog/log"
)

// ConfigPathEnvVar overrides the YAML config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultConfigPaths are searched in order when CONFIG_PATH is unset.
var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// envSections are the environment variable prefixes mapped into the config.
var envSections = []string{"DB", "SERVER", "LOG"}

// Config holds the application configuration.
type Config struct {
	DbConfig     DbConfig     `koanf:"db"`
	ServerConfig ServerConfig `koanf:"server"`
	LogConfig    LogConfig    `koanf:"log"`
}

// DbConfig holds database-related configuration.
type DbConfig struct {
	Dialect         string        `koanf:"dialect" validate:"oneof=postgres postgresql mssql sqlserver hana"`
	Host            string        `koanf:"host" validate:"required"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	User            string        `koanf:"user"`
	Password        string        `koanf:"password"`
	Name            string        `koanf:"name" validate:"required"`
	SSLMode         string        `koanf:"sslmode"`
	MaxOpenConns    int           `koanf:"max_open_conns" validate:"min=0"`
	MaxIdleConns    int           `koanf:"max_idle_conns" validate:"min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	CorsOrigins     string        `koanf:"cors_origins"`
	RateLimit       int           `koanf:"rate_limit" validate:"min=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

func defaultConfig() *Config {
	return &Config{
		DbConfig: DbConfig{
			Dialect:         "postgres",
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "videogames_dw",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    10,
			ConnMaxLifetime: 5 * time.Minute,
		},
		ServerConfig: ServerConfig{
			Port:            2222,
			CorsOrigins:     "*",
			RateLimit:       600,
			ShutdownTimeout: 15 * time.Second,
		},
		LogConfig: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file,
// a .env file and the environment, in increasing priority.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file loaded, using environment only")
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps DB_MAX_OPEN_CONNS to db.max_open_conns. Variables outside the
// known sections are ignored.
func envKey(key string) string {
	section, rest, ok := strings.Cut(key, "_")
	if !ok || rest == "" {
		return ""
	}
	for _, s := range envSections {
		if section == s {
			return strings.ToLower(section) + "." + strings.ToLower(rest)
		}
	}
	return ""
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

var validate = validator.New()

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// AllowedOrigins splits the comma separated CORS origin list.
func (s ServerConfig) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(s.CorsOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// DSN renders the driver connection string for the configured dialect.
func (d DbConfig) DSN() string {
	switch strings.ToLower(d.Dialect) {
	case "mssql", "sqlserver":
		q := url.Values{}
		q.Set("database", d.Name)
		q.Set("encrypt", "disable")
		u := &url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(d.User, d.Password),
			Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
			RawQuery: q.Encode(),
		}
		return u.String()
	case "hana":
		q := url.Values{}
		q.Set("databaseName", d.Name)
		u := &url.URL{
			Scheme:   "hdb",
			User:     url.UserPassword(d.User, d.Password),
			Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
			RawQuery: q.Encode(),
		}
		return u.String()
	default:
		return d.postgresURL()
	}
}

// MigrateURL renders a postgres URL for golang-migrate.
func (d DbConfig) MigrateURL() string {
	return d.postgresURL()
}

// postgresURL escapes every component, so empty or spaced credentials cannot
// shift the other connection parameters.
func (d DbConfig) postgresURL() string {
	user := url.User(d.User)
	if d.Password != "" {
		user = url.UserPassword(d.User, d.Password)
	}
	q := url.Values{}
	q.Set("sslmode", d.SSLMode)
	u := &url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:     "/" + d.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}
