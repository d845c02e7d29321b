package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-HotelBookingService/internal/availability"
)

// ErrInvalidConfig возвращается, когда значения конфигурации не проходят проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса бронирования
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Notifier NotifierConfig `toml:"notifier"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// NotifierConfig настройки клиента почтового релея
type NotifierConfig struct {
	Enabled bool   `toml:"enabled"`
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig настройки бронирования
type BookingConfig struct {
	CheckoutPolicy      string `toml:"checkout_policy"` // inclusive | exclusive
	FlowTTLMinutes      int    `toml:"flow_ttl_minutes"`
	StoreTimeoutSeconds int    `toml:"store_timeout_seconds"`
}

// Policy возвращает политику учета даты выезда
func (b BookingConfig) Policy() availability.CheckoutPolicy {
	policy, err := availability.ParseCheckoutPolicy(b.CheckoutPolicy)
	if err != nil {
		return availability.DefaultCheckoutPolicy
	}
	return policy
}

// FlowTTL время жизни сценария бронирования
func (b BookingConfig) FlowTTL() time.Duration {
	return time.Duration(b.FlowTTLMinutes) * time.Minute
}

// StoreTimeout таймаут одной операции с хранилищем бронирований
func (b BookingConfig) StoreTimeout() time.Duration {
	return time.Duration(b.StoreTimeoutSeconds) * time.Second
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию
// и переопределения из окружения (DB_PASSWORD)
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Database.Password = password
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "hotel_booking",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			File:  "logs/booking.log",
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "hotel_booking",
		},
		Notifier: NotifierConfig{
			Enabled: true,
			URL:     "http://localhost:5000",
			Timeout: 5,
		},
		Booking: BookingConfig{
			CheckoutPolicy:      string(availability.DefaultCheckoutPolicy),
			FlowTTLMinutes:      30,
			StoreTimeoutSeconds: 5,
		},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535, got %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if _, err := availability.ParseCheckoutPolicy(c.Booking.CheckoutPolicy); err != nil {
		return fmt.Errorf("%w: booking.checkout_policy: %v", ErrInvalidConfig, err)
	}
	if c.Booking.FlowTTLMinutes <= 0 {
		return fmt.Errorf("%w: booking.flow_ttl_minutes must be positive", ErrInvalidConfig)
	}
	if c.Booking.StoreTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: booking.store_timeout_seconds must be positive", ErrInvalidConfig)
	}
	if c.Notifier.Enabled && c.Notifier.URL == "" {
		return fmt.Errorf("%w: notifier.url is required when notifier is enabled", ErrInvalidConfig)
	}
	return nil
}
