package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Ramsey-B/sprout/pkg/database"
	"github.com/Ramsey-B/sprout/pkg/logging"
	"github.com/Ramsey-B/sprout/pkg/tracing/exporters"
)

type Config struct {
	AppName            string `mapstructure:"app_name"`
	LogLevel           string `mapstructure:"log_level"`
	PrettyLogs         bool   `mapstructure:"pretty_logs"`
	StartupMaxAttempts int    `mapstructure:"startup_max_attempts"`

	// Directory holding one <slug>.json file per topic
	DataDir string `mapstructure:"data_dir"`
	// Glob selecting document files inside DataDir
	DataPattern string `mapstructure:"data_pattern"`
	// Optional YAML file replacing the built-in slug to topics table
	TopicsFile string `mapstructure:"topics_file"`

	// Database driver
	DatabaseDriver string `mapstructure:"db_driver"`
	// Full connection URL, used instead of the discrete settings below when set
	DatabaseURL string `mapstructure:"database_url"`
	// Database host
	DatabaseHost string `mapstructure:"db_host"`
	// Database port
	DatabasePort string `mapstructure:"db_port"`
	// Database user
	DatabaseUserName string `mapstructure:"db_user_name"`
	// Database user password
	DatabasePassword string `mapstructure:"db_password"`
	// Database name
	DatabaseName string `mapstructure:"db_name"`
	// Database SSL mode
	DatabaseSSLMode string `mapstructure:"db_ssl_mode"`
	// Max Open Conns
	DatabaseMaxOpenConns int `mapstructure:"db_max_open_conns"`
	// Max Idle Conns
	DatabaseMaxIdleConns int `mapstructure:"db_max_idle_conns"`
	// Conn Max Lifetime
	DatabaseConnMaxLifetime time.Duration `mapstructure:"db_conn_max_lifetime"`
	// Migration Folder Path, empty uses the migrations built into the binary
	DatabaseMigrationFolderPath string `mapstructure:"db_migration_folder_path"`
	// Database Migration Version
	DatabaseMigrationVersion uint `mapstructure:"db_migration_version"`
	// Database Migration Force
	DatabaseMigrationForce int `mapstructure:"db_migration_force"`
	// Database Migration Auto Rollback
	DatabaseMigrationAutoRollback bool `mapstructure:"db_migration_auto_rollback"`
	// Apply migrations before seeding
	DatabaseMigrateOnSeed bool `mapstructure:"db_migrate_on_seed"`

	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	OTLPEndpoint   string `mapstructure:"otlp_endpoint"`
	OTLPProtocol   string `mapstructure:"otlp_protocol"`
	OTLPInsecure   bool   `mapstructure:"otlp_insecure"`
}

var defaults = map[string]any{
	"app_name":             "sprout",
	"log_level":            "info",
	"pretty_logs":          false,
	"startup_max_attempts": 5,

	"data_dir":     "data/georgia",
	"data_pattern": "*.json",
	"topics_file":  "",

	"db_driver":                  "postgres",
	"database_url":               "",
	"db_host":                    "localhost",
	"db_port":                    "5432",
	"db_user_name":               "",
	"db_password":                "",
	"db_name":                    "sprout",
	"db_ssl_mode":                "disable",
	"db_max_open_conns":          5,
	"db_max_idle_conns":          2,
	"db_conn_max_lifetime":       "5m",
	"db_migration_folder_path":   "",
	"db_migration_version":       0,
	"db_migration_force":         0,
	"db_migration_auto_rollback": true,
	"db_migrate_on_seed":         false,

	"tracing_enabled": false,
	"otlp_endpoint":   "localhost:4317",
	"otlp_protocol":   "grpc",
	"otlp_insecure":   true,
}

// Load reads the configuration from the environment, after loading a .env
// file from the working directory when one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromViper(viper.New())
}

// FromViper applies the defaults to v, binds every key to its upper-cased
// environment variable and decodes the result.
func FromViper(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *Config) Logging() logging.Config {
	return logging.Config{
		AppName: c.AppName,
		Level:   c.LogLevel,
		Pretty:  c.PrettyLogs,
	}
}

func (c *Config) Connection() database.ConnectionConfig {
	return database.ConnectionConfig{
		Driver:          c.DatabaseDriver,
		URL:             c.DatabaseURL,
		Host:            c.DatabaseHost,
		Port:            c.DatabasePort,
		UserName:        c.DatabaseUserName,
		Password:        c.DatabasePassword,
		Name:            c.DatabaseName,
		SSLMode:         c.DatabaseSSLMode,
		MaxOpenConns:    c.DatabaseMaxOpenConns,
		MaxIdleConns:    c.DatabaseMaxIdleConns,
		ConnMaxLifetime: c.DatabaseConnMaxLifetime,
	}
}

func (c *Config) Migration() *database.MigrationConfig {
	return &database.MigrationConfig{
		MigrationFolderPath: c.DatabaseMigrationFolderPath,
		Version:             c.DatabaseMigrationVersion,
		Force:               c.DatabaseMigrationForce,
		AutoRollback:        c.DatabaseMigrationAutoRollback,
	}
}

func (c *Config) OTLP() exporters.OTLPConfig {
	return exporters.OTLPConfig{
		Endpoint: c.OTLPEndpoint,
		Protocol: c.OTLPProtocol,
		Insecure: c.OTLPInsecure,
		Timeout:  10 * time.Second,
	}
}
