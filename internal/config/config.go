package config

import (
	"errors"
	"fmt"
	"regexp"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

const (
	LaneModeAppointments = "appointments"
	LaneModeLocation     = "location"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config корневая конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	CRM          UpstreamConfig     `toml:"crm"`
	SMS          SMSConfig          `toml:"sms"`
	Pool         PoolConfig         `toml:"pool"`
	Verification VerificationConfig `toml:"verification"`
	Redis        RedisConfig        `toml:"redis"`
	Database     DatabaseConfig     `toml:"database"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// UpstreamConfig адрес прокси CRM (/api/slots, /api/confirm_phone, ...)
type UpstreamConfig struct {
	URL       string `toml:"url"`
	Timeout   int    `toml:"timeout"` // секунды, 0 = таймаут http-клиента по умолчанию
	ServiceID string `toml:"service_id"`
}

type SMSConfig struct {
	URL                  string `toml:"url"`
	Timeout              int    `toml:"timeout"`
	SenderID             string `toml:"sender_id"`
	UseRecipientTimeZone string `toml:"use_recipient_time_zone"`
}

// PoolConfig параметры бассейна
type PoolConfig struct {
	Timezone      string `toml:"timezone"`
	TotalLanes    int    `toml:"total_lanes"`
	LaneCapacity  int    `toml:"lane_capacity"`
	OpenHour      int    `toml:"open_hour"`
	CloseHour     int    `toml:"close_hour"` // последний час, включительно
	BreakHour     int    `toml:"break_hour"`
	BreakWeekdays []int  `toml:"break_weekdays"` // 0 = воскресенье ... 6 = суббота
	MaxRangeDays  int    `toml:"max_range_days"`
	LaneMode      string `toml:"lane_mode"`
	LanePattern   string `toml:"lane_pattern"`
}

type VerificationConfig struct {
	Backend    string `toml:"backend"`     // memory | redis
	SessionTTL int    `toml:"session_ttl"` // секунды
	LockTTL    int    `toml:"lock_ttl"`    // секунды
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location возвращает часовой пояс бассейна
func (p PoolConfig) Location() (*time.Location, error) {
	return time.LoadLocation(p.Timezone)
}

// Load читает конфигурацию из TOML файла и применяет значения по умолчанию
func Load(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "pool-booking",
		},
		SMS: SMSConfig{
			UseRecipientTimeZone: "1",
		},
		Pool: PoolConfig{
			Timezone:      "Europe/Moscow",
			TotalLanes:    10,
			LaneCapacity:  12,
			OpenHour:      7,
			CloseHour:     21,
			BreakHour:     12,
			BreakWeekdays: []int{1, 2, 3, 4, 5},
			MaxRangeDays:  31,
			LaneMode:      LaneModeAppointments,
			LanePattern:   `(?i)(?:дорожка|lane)\s*№?\s*(\d+)`,
		},
		Verification: VerificationConfig{
			Backend:    SessionBackendMemory,
			SessionTTL: 900,
			LockTTL:    30,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Database: DatabaseConfig{
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
	}
}

// applyDefaults восстанавливает значения, явно обнуленные в файле
func (c *Config) applyDefaults() {
	def := Default()

	if c.Metrics.Path == "" {
		c.Metrics.Path = def.Metrics.Path
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = def.Metrics.ServiceName
	}
	if c.Pool.Timezone == "" {
		c.Pool.Timezone = def.Pool.Timezone
	}
	if c.Pool.LaneMode == "" {
		c.Pool.LaneMode = def.Pool.LaneMode
	}
	if c.Pool.LanePattern == "" {
		c.Pool.LanePattern = def.Pool.LanePattern
	}
	if c.Pool.MaxRangeDays == 0 {
		c.Pool.MaxRangeDays = def.Pool.MaxRangeDays
	}
	if c.Verification.Backend == "" {
		c.Verification.Backend = def.Verification.Backend
	}
	if c.Verification.SessionTTL == 0 {
		c.Verification.SessionTTL = def.Verification.SessionTTL
	}
	if c.Verification.LockTTL == 0 {
		c.Verification.LockTTL = def.Verification.LockTTL
	}
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.CRM.URL == "" {
		return fmt.Errorf("%w: crm.url is required", ErrInvalidConfig)
	}
	if c.CRM.ServiceID == "" {
		return fmt.Errorf("%w: crm.service_id is required", ErrInvalidConfig)
	}

	p := c.Pool
	if p.TotalLanes <= 0 {
		return fmt.Errorf("%w: pool.total_lanes must be positive", ErrInvalidConfig)
	}
	if p.LaneCapacity <= 0 {
		return fmt.Errorf("%w: pool.lane_capacity must be positive", ErrInvalidConfig)
	}
	if p.OpenHour < 0 || p.CloseHour > 23 || p.CloseHour < p.OpenHour {
		return fmt.Errorf("%w: pool hours %d..%d are invalid", ErrInvalidConfig, p.OpenHour, p.CloseHour)
	}
	for _, wd := range p.BreakWeekdays {
		if wd < 0 || wd > 6 {
			return fmt.Errorf("%w: pool.break_weekdays contains %d", ErrInvalidConfig, wd)
		}
	}
	if p.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: pool.max_range_days must be positive", ErrInvalidConfig)
	}
	if _, err := p.Location(); err != nil {
		return fmt.Errorf("%w: pool.timezone: %v", ErrInvalidConfig, err)
	}

	switch p.LaneMode {
	case LaneModeAppointments:
	case LaneModeLocation:
		if _, err := regexp.Compile(p.LanePattern); err != nil {
			return fmt.Errorf("%w: pool.lane_pattern: %v", ErrInvalidConfig, err)
		}
	default:
		return fmt.Errorf("%w: unknown pool.lane_mode %q", ErrInvalidConfig, p.LaneMode)
	}

	switch c.Verification.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("%w: unknown verification.backend %q", ErrInvalidConfig, c.Verification.Backend)
	}

	return nil
}
