package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// MailRelayConfig конфигурация почтового релея
type MailRelayConfig struct {
	Server ServerConfig `toml:"server"`
	Logs   LogsConfig   `toml:"logs"`
	SMTP   SMTPConfig   `toml:"smtp"`
}

// SMTPConfig настройки SMTP сервера
type SMTPConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	From     string `toml:"from"`
	FromName string `toml:"from_name"`
}

// LoadMailRelay читает конфигурацию релея, пароль SMTP можно передать через SMTP_PASSWORD
func LoadMailRelay(path string) (*MailRelayConfig, error) {
	cfg := &MailRelayConfig{
		Server: ServerConfig{
			HTTPPort:        5000,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			File:  "logs/mailrelay.log",
			Level: "info",
		},
		SMTP: SMTPConfig{
			Host:     "smtp.gmail.com",
			Port:     587,
			FromName: "Hotel Reservations",
		},
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if password := os.Getenv("SMTP_PASSWORD"); password != "" {
		cfg.SMTP.Password = password
	}

	if cfg.SMTP.Host == "" || cfg.SMTP.Port <= 0 {
		return nil, fmt.Errorf("%w: smtp.host and smtp.port are required", ErrInvalidConfig)
	}
	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}
	if cfg.SMTP.From == "" {
		return nil, fmt.Errorf("%w: smtp.from or smtp.user is required", ErrInvalidConfig)
	}

	return cfg, nil
}
