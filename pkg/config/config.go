package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"
	"gorm.io/gorm/logger"
)

// Supported store drivers
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DBConfig holds PostgreSQL configuration
type DBConfig struct {
	Host            string          `yaml:"host"`
	Port            string          `yaml:"port"`
	User            string          `yaml:"user"`
	Password        string          `yaml:"password"`
	DBName          string          `yaml:"name"`
	SSLMode         string          `yaml:"ssl_mode"`
	MaxIdleConns    int             `yaml:"max_idle_conns"`
	MaxOpenConns    int             `yaml:"max_open_conns"`
	ConnMaxLifetime time.Duration   `yaml:"conn_max_lifetime"`
	LogLevel        logger.LogLevel `yaml:"-"`
}

// GetDSN returns the PostgreSQL connection string
func (c *DBConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// MongoConfig holds MongoDB configuration
type MongoConfig struct {
	URI                  string        `yaml:"uri"`
	Database             string        `yaml:"database"`
	PropertiesCollection string        `yaml:"properties_collection"`
	UsersCollection      string        `yaml:"users_collection"`
	MaxPoolSize          uint64        `yaml:"max_pool_size"`
	ConnectTimeout       time.Duration `yaml:"connect_timeout"`
}

// StoreConfig selects the listing store backend
type StoreConfig struct {
	Driver string `yaml:"driver"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string        `yaml:"port"`
	Env             string        `yaml:"env"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	SigningKey      string `yaml:"signing_key"`
	ExpirationHours int    `yaml:"expiration_hours"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `yaml:"level"`
}

// MetricsConfig holds metrics configuration
type MetricsConfig struct {
	Prefix string `yaml:"prefix"`
}

// Config holds all configuration
type Config struct {
	ServiceName string        `yaml:"service_name"`
	Server      ServerConfig  `yaml:"server"`
	Store       StoreConfig   `yaml:"store"`
	Mongo       MongoConfig   `yaml:"mongo"`
	DB          DBConfig      `yaml:"database"`
	JWT         JWTConfig     `yaml:"jwt"`
	Log         LogConfig     `yaml:"log"`
	Metrics     MetricsConfig `yaml:"metrics"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		ServiceName: "property-service",
		Server: ServerConfig{
			Port:            "5000",
			Env:             "development",
			ShutdownTimeout: 10 * time.Second,
		},
		Store: StoreConfig{
			Driver: DriverMongo,
		},
		Mongo: MongoConfig{
			URI:                  "mongodb://localhost:27017",
			Database:             "brocker",
			PropertiesCollection: "properties",
			UsersCollection:      "users",
			MaxPoolSize:          100,
			ConnectTimeout:       10 * time.Second,
		},
		DB: DBConfig{
			Host:            "localhost",
			Port:            "5432",
			User:            "postgres",
			Password:        "password",
			DBName:          "brocker",
			SSLMode:         "disable",
			MaxIdleConns:    10,
			MaxOpenConns:    100,
			ConnMaxLifetime: 1 * time.Hour,
			LogLevel:        logger.Error,
		},
		JWT: JWTConfig{
			SigningKey:      "propertyservicesecretkey",
			ExpirationHours: 24,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Prefix: "property",
		},
	}
}

// Load loads configuration from an optional YAML file and environment variables.
// Environment variables win over the file, the file wins over defaults.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// Not returning error as .env file is optional
		fmt.Printf("Warning: .env file not found, using environment variables\n")
	}

	config := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, config); err != nil {
			return nil, err
		}
	}

	applyEnv(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func loadFile(path string, config *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config file: %w", err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(config); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(c *Config) {
	c.ServiceName = getEnv("SERVICE_NAME", c.ServiceName)

	c.Server.Port = getEnv("SERVER_PORT", c.Server.Port)
	c.Server.Env = getEnv("APP_ENV", c.Server.Env)
	c.Server.ShutdownTimeout = getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)

	c.Store.Driver = getEnv("STORE_DRIVER", c.Store.Driver)

	c.Mongo.URI = getEnv("MONGODB_URI", c.Mongo.URI)
	c.Mongo.Database = getEnv("MONGODB_DATABASE", c.Mongo.Database)
	c.Mongo.PropertiesCollection = getEnv("MONGODB_COLLECTION_PROPERTIES", c.Mongo.PropertiesCollection)
	c.Mongo.UsersCollection = getEnv("MONGODB_COLLECTION_USERS", c.Mongo.UsersCollection)
	c.Mongo.MaxPoolSize = uint64(getEnvAsInt("MONGODB_MAX_POOL_SIZE", int(c.Mongo.MaxPoolSize)))
	c.Mongo.ConnectTimeout = getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", c.Mongo.ConnectTimeout)

	c.DB.Host = getEnv("DB_HOST", c.DB.Host)
	c.DB.Port = getEnv("DB_PORT", c.DB.Port)
	c.DB.User = getEnv("DB_USER", c.DB.User)
	c.DB.Password = getEnv("DB_PASSWORD", c.DB.Password)
	c.DB.DBName = getEnv("DB_NAME", c.DB.DBName)
	c.DB.SSLMode = getEnv("DB_SSL_MODE", c.DB.SSLMode)
	c.DB.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", c.DB.MaxIdleConns)
	c.DB.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", c.DB.MaxOpenConns)
	c.DB.ConnMaxLifetime = getEnvAsDuration("DB_CONN_MAX_LIFETIME", c.DB.ConnMaxLifetime)
	c.DB.LogLevel = getEnvAsLogLevel("DB_LOG_LEVEL", c.DB.LogLevel)

	c.JWT.SigningKey = getEnv("JWT_SIGNING_KEY", c.JWT.SigningKey)
	c.JWT.ExpirationHours = getEnvAsInt("JWT_EXPIRATION_HOURS", c.JWT.ExpirationHours)

	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Metrics.Prefix = getEnv("METRICS_PREFIX", c.Metrics.Prefix)
}

// Validate checks values that cannot be defaulted away
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	return nil
}

// LogConfig returns the configuration as a zap logger-friendly format
func (c *Config) LogConfig() []zap.Field {
	return []zap.Field{
		zap.String("service", c.ServiceName),
		zap.String("environment", c.Server.Env),
		zap.String("store_driver", c.Store.Driver),
		zap.String("server_port", c.Server.Port),
	}
}

// Helper function to get environment variables with defaults
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as integers
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as durations
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variables as log levels
func getEnvAsLogLevel(key string, defaultValue logger.LogLevel) logger.LogLevel {
	valueStr := getEnv(key, "")
	switch valueStr {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return defaultValue
	}
}
