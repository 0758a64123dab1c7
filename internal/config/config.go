package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/apaddicto/APD-BookingService/internal/domain"
)

// Config is the full service configuration, loaded from config.toml.
// Misconfiguration is a startup error, never a silently-disabled feature.
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Calendar      CalendarConfig      `toml:"calendar"`
	Booking       BookingConfig       `toml:"booking"`
	Sync          SyncConfig          `toml:"sync"`
	Notifications NotificationsConfig `toml:"notifications"`
	Auth          AuthConfig          `toml:"auth"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // seconds
	WriteTimeout    int `toml:"write_timeout"`    // seconds
	IdleTimeout     int `toml:"idle_timeout"`     // seconds
	ShutdownTimeout int `toml:"shutdown_timeout"` // seconds
}

// DatabaseConfig configures the Postgres connection pool.
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // seconds
}

// DSN builds the lib/pq connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig configures the logger.
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig configures Prometheus exposure.
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// CalendarConfig configures the Google Calendar integration.
type CalendarConfig struct {
	CalendarID      string `toml:"calendar_id"`
	CredentialsFile string `toml:"credentials_file"` // service-account JSON key
	TimeZone        string `toml:"timezone"`
	RequestTimeout  int    `toml:"request_timeout"` // seconds
}

// BookingConfig carries the booking rules.
type BookingConfig struct {
	SlotDurationMinutes int `toml:"slot_duration_minutes"`
	MinNoticeMinutes    int `toml:"min_notice_minutes"`
	MaxAdvanceDays      int `toml:"max_advance_days"`
}

// SyncConfig configures the calendar reconciliation sweep.
type SyncConfig struct {
	AutoPollingEnabled     bool `toml:"auto_polling_enabled"`
	PollingIntervalSeconds int  `toml:"polling_interval_seconds"`
	CacheDurationSeconds   int  `toml:"cache_duration_seconds"`
	WindowDays             int  `toml:"window_days"`
}

// NotificationsConfig configures email/SMS dispatch.
type NotificationsConfig struct {
	Enabled      bool   `toml:"enabled"`
	ResendAPIKey string `toml:"resend_api_key"`
	FromAddress  string `toml:"from_address"`
	PracticeName string `toml:"practice_name"`
}

// AuthConfig carries the static admin token.
type AuthConfig struct {
	AdminToken string `toml:"admin_token"`
}

// Load reads and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "apd-booking-service",
		},
		Calendar: CalendarConfig{
			TimeZone:       "Europe/Paris",
			RequestTimeout: 10,
		},
		Booking: BookingConfig{
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			MinNoticeMinutes:    domain.DefaultMinNoticeMinutes,
			MaxAdvanceDays:      domain.DefaultMaxAdvanceDays,
		},
		Sync: SyncConfig{
			PollingIntervalSeconds: 120,
			CacheDurationSeconds:   30,
			WindowDays:             30,
		},
	}
}

func (c *Config) validate() error {
	if c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("config: [database] user and dbname are required")
	}
	if c.Calendar.CalendarID == "" {
		return errors.New("config: [calendar] calendar_id is required")
	}
	if c.Calendar.CredentialsFile == "" {
		return errors.New("config: [calendar] credentials_file is required")
	}
	if c.Booking.SlotDurationMinutes < domain.MinSlotDurationMinutes ||
		c.Booking.SlotDurationMinutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("config: [booking] slot_duration_minutes must be between %d and %d",
			domain.MinSlotDurationMinutes, domain.MaxSlotDurationMinutes)
	}
	if c.Booking.MinNoticeMinutes < 0 || c.Booking.MaxAdvanceDays < 0 {
		return errors.New("config: [booking] notice and advance limits must not be negative")
	}
	if c.Auth.AdminToken == "" {
		return errors.New("config: [auth] admin_token is required")
	}
	if c.Notifications.Enabled && c.Notifications.ResendAPIKey == "" {
		return errors.New("config: [notifications] resend_api_key is required when notifications are enabled")
	}
	return nil
}
