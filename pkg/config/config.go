package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Search   SearchConfig   `mapstructure:"search"`
	Views    ViewsConfig    `mapstructure:"views"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // postgres | memory
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN renders the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	JWTSecret      string        `mapstructure:"jwt_secret"`
	Issuer         string        `mapstructure:"issuer"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`
}

type SearchConfig struct {
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

type ViewsConfig struct {
	Sink      string        `mapstructure:"sink"` // postgres | redis
	Workers   int           `mapstructure:"workers"`
	QueueSize int           `mapstructure:"queue_size"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RedisKey  string        `mapstructure:"redis_key"`
	FlushSpec string        `mapstructure:"flush_spec"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console | json
}

// environment variable names used by the deployment manifests
var envBindings = map[string]string{
	"server.port":          "PORT",
	"database.driver":      "STORE_DRIVER",
	"database.host":        "DB_HOST",
	"database.port":        "DB_PORT",
	"database.user":        "DB_USER",
	"database.password":    "DB_PASS",
	"database.name":        "DB_NAME",
	"database.sslmode":     "DB_SSLMODE",
	"redis.addr":           "REDIS_ADDR",
	"redis.password":       "REDIS_PASS",
	"auth.jwt_secret":      "JWT_SECRET",
	"search.query_timeout": "SEARCH_QUERY_TIMEOUT",
	"views.sink":           "VIEWS_SINK",
	"views.workers":        "VIEWS_WORKERS",
	"views.queue_size":     "VIEWS_QUEUE_SIZE",
	"views.flush_spec":     "VIEWS_FLUSH_SPEC",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "jobboard")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.issuer", "jobboard")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)

	v.SetDefault("search.query_timeout", 5*time.Second)

	v.SetDefault("views.sink", "postgres")
	v.SetDefault("views.workers", 4)
	v.SetDefault("views.queue_size", 1024)
	v.SetDefault("views.timeout", 2*time.Second)
	v.SetDefault("views.redis_key", "jobs:views:pending")
	v.SetDefault("views.flush_spec", "@every 30s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// Load reads defaults, then the optional file at path, then the environment
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Database.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("database.driver must be postgres or memory, got %q", c.Database.Driver)
	}
	switch c.Views.Sink {
	case "postgres", "redis":
	default:
		return fmt.Errorf("views.sink must be postgres or redis, got %q", c.Views.Sink)
	}
	if c.Views.Workers < 1 {
		return fmt.Errorf("views.workers must be positive")
	}
	if c.Views.QueueSize < 1 {
		return fmt.Errorf("views.queue_size must be positive")
	}
	if c.Search.QueryTimeout <= 0 {
		return fmt.Errorf("search.query_timeout must be positive")
	}
	return nil
}
