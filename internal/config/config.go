package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverOracle   = "oracle"
)

type Config struct {
	Server  ServerConfig
	DB      DBConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Auth    AuthConfig
	Cache   CacheConfig
	Session SessionConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	AllowOrigins string
}

type DBConfig struct {
	Driver       string
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	AutoMigrate  bool
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

// LoggerConfig is passed to logger.Initialize on its own so commands that
// don't need the rest of the config can still log.
type LoggerConfig struct {
	Env   string
	Level string
}

type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
}

type CacheConfig struct {
	CatalogTTL time.Duration
	SessionTTL time.Duration
	CursorTTL  time.Duration
}

type SessionConfig struct {
	DefaultSize int
	MaxSize     int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", "20s")
	v.SetDefault("server.write_timeout", "20s")
	v.SetDefault("server.idle_timeout", "20s")
	v.SetDefault("server.allow_origins", "*")

	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.auto_migrate", false)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")

	v.SetDefault("cache.catalog_ttl", "10m")
	v.SetDefault("cache.session_ttl", "1h")
	v.SetDefault("cache.cursor_ttl", "24h")

	v.SetDefault("session.default_size", 20)
	v.SetDefault("session.max_size", 100)
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  v.GetDuration("server.read_timeout"),
			WriteTimeout: v.GetDuration("server.write_timeout"),
			IdleTimeout:  v.GetDuration("server.idle_timeout"),
			AllowOrigins: v.GetString("server.allow_origins"),
		},
		DB: DBConfig{
			Driver:       strings.ToLower(v.GetString("db.driver")),
			Host:         v.GetString("db.host"),
			Port:         v.GetInt("db.port"),
			User:         v.GetString("db.user"),
			Password:     v.GetString("db.password"),
			DBName:       v.GetString("db.name"),
			SSLMode:      v.GetString("db.sslmode"),
			MaxOpenConns: v.GetInt("db.max_open_conns"),
			MaxIdleConns: v.GetInt("db.max_idle_conns"),
			AutoMigrate:  v.GetBool("db.auto_migrate"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:   v.GetString("logger.env"),
			Level: v.GetString("logger.level"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			Issuer:    v.GetString("auth.issuer"),
			Audience:  v.GetString("auth.audience"),
		},
		Cache: CacheConfig{
			CatalogTTL: v.GetDuration("cache.catalog_ttl"),
			SessionTTL: v.GetDuration("cache.session_ttl"),
			CursorTTL:  v.GetDuration("cache.cursor_ttl"),
		},
		Session: SessionConfig{
			DefaultSize: v.GetInt("session.default_size"),
			MaxSize:     v.GetInt("session.max_size"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that would otherwise fail late at runtime.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverOracle:
	default:
		return fmt.Errorf("unsupported db.driver %q (expected %s or %s)", c.DB.Driver, DriverPostgres, DriverOracle)
	}
	if c.Session.DefaultSize <= 0 || c.Session.MaxSize < c.Session.DefaultSize {
		return fmt.Errorf("invalid session sizes: default=%d max=%d", c.Session.DefaultSize, c.Session.MaxSize)
	}
	return nil
}

// GetDSN builds the connection string for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == DriverOracle {
		return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
			c.DB.User,
			c.DB.Password,
			c.DB.Host,
			c.DB.Port,
			c.DB.DBName,
		)
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
		c.DB.SSLMode,
	)
}
