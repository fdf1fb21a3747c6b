package postgres

import (
	"fmt"
	"time"
)

// Config defines the connection parameters shared by every source in this package.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection identifies the server. ConnectionString, when set, is used
// verbatim and the individual fields are ignored.
type Connection struct {
	ConnectionString string `yaml:"connection_string" envconfig:"PGDOC_CONN_STR"`

	Host     string `yaml:"host" envconfig:"POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"POSTGRES_PORT"`
	User     string `yaml:"user" envconfig:"POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"POSTGRES_DB"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"POSTGRES_SSLMODE"`
}

// ConnectionDetails tunes the pool. Zero values select the package defaults.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`

	// HealthCheckInterval is how often the gorm source pings the server.
	HealthCheckInterval time.Duration `yaml:"health_check_interval"`
}

const (
	defaultMaxOpenConns        = 50
	defaultMaxIdleConns        = 25
	defaultConnMaxLifetime     = time.Minute
	defaultHealthCheckInterval = 10 * time.Second
)

// DSN returns the connection string understood by pgx, lib/pq and gorm.
func (c Config) DSN() string {
	if c.Connection.ConnectionString != "" {
		return c.Connection.ConnectionString
	}
	sslMode := c.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Connection.Host,
		c.Connection.Port,
		c.Connection.User,
		c.Connection.Password,
		c.Connection.DbName,
		sslMode)
}

func (d ConnectionDetails) maxOpen() int {
	if d.MaxOpenConns == 0 {
		return defaultMaxOpenConns
	}
	return d.MaxOpenConns
}

func (d ConnectionDetails) maxIdle() int {
	if d.MaxIdleConns == 0 {
		return defaultMaxIdleConns
	}
	return d.MaxIdleConns
}

func (d ConnectionDetails) maxLifetime() time.Duration {
	if d.ConnMaxLifetime == 0 {
		return defaultConnMaxLifetime
	}
	return d.ConnMaxLifetime
}

func (d ConnectionDetails) healthCheckInterval() time.Duration {
	if d.HealthCheckInterval == 0 {
		return defaultHealthCheckInterval
	}
	return d.HealthCheckInterval
}
