package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Поддерживаемые бэкенды хранилища бронирований
const (
	StorageBackendPostgres = "postgres"
	StorageBackendNotion   = "notion"
)

var (
	// ErrReadConfig возвращается при ошибке чтения файла конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Storage       StorageConfig       `toml:"storage"`
	Notion        NotionConfig        `toml:"notion"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Schedule      ScheduleConfig      `toml:"schedule"`
	Holidays      HolidaysConfig      `toml:"holidays"`
	Notifications NotificationsConfig `toml:"notifications"`
	Business      BusinessConfig      `toml:"business"`
}

// ServerConfig настройки HTTP сервера
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// StorageConfig выбор бэкенда хранилища бронирований
type StorageConfig struct {
	Backend string `toml:"backend"` // postgres | notion
}

// NotionConfig настройки интеграции с Notion (используется при backend = "notion")
type NotionConfig struct {
	Token      string `toml:"token"`
	DatabaseID string `toml:"database_id"`
	BaseURL    string `toml:"base_url"`
	Timeout    int    `toml:"timeout"`
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

// WindowConfig окно работы в пределах дня, границы в формате "HH:MM"
type WindowConfig struct {
	Open  string `toml:"open"`
	Close string `toml:"close"`
}

// ScheduleConfig расписание работы и правила генерации слотов
// Окна weekdays применяются ко всем будним дням (Пн-Пт), для которых
// не задано отдельное расписание
type ScheduleConfig struct {
	HorizonMonths  int  `toml:"horizon_months"`
	SaturdayOnline bool `toml:"saturday_online"`

	Weekdays  []WindowConfig `toml:"weekdays"`
	Monday    []WindowConfig `toml:"monday"`
	Tuesday   []WindowConfig `toml:"tuesday"`
	Wednesday []WindowConfig `toml:"wednesday"`
	Thursday  []WindowConfig `toml:"thursday"`
	Friday    []WindowConfig `toml:"friday"`
	Saturday  []WindowConfig `toml:"saturday"`
}

// HolidaysConfig настройки провайдера праздничных дней (Nager.Date)
type HolidaysConfig struct {
	Enabled     bool   `toml:"enabled"`
	BaseURL     string `toml:"base_url"`
	CountryCode string `toml:"country_code"`
	Timeout     int    `toml:"timeout"`
}

// NotificationsConfig настройки отправки email-уведомлений
type NotificationsConfig struct {
	Enabled    bool   `toml:"enabled"`
	SMTPHost   string `toml:"smtp_host"`
	SMTPPort   string `toml:"smtp_port"`
	From       string `toml:"from"`
	OwnerEmail string `toml:"owner_email"`
}

// BusinessConfig данные заведения для писем и календарных файлов
type BusinessConfig struct {
	Name           string `toml:"name"`
	Address        string `toml:"address"`
	Timezone       string `toml:"timezone"`
	CalendarDomain string `toml:"calendar_domain"`
}

// Location возвращает временную зону заведения
func (c BusinessConfig) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = StorageBackendPostgres
	}
	if cfg.Notion.BaseURL == "" {
		cfg.Notion.BaseURL = "https://api.notion.com/v1"
	}
	if cfg.Notion.Timeout == 0 {
		cfg.Notion.Timeout = 10
	}
	if cfg.Schedule.HorizonMonths == 0 {
		cfg.Schedule.HorizonMonths = 2
	}
	if cfg.Holidays.BaseURL == "" {
		cfg.Holidays.BaseURL = "https://date.nager.at"
	}
	if cfg.Holidays.CountryCode == "" {
		cfg.Holidays.CountryCode = "ES"
	}
	if cfg.Holidays.Timeout == 0 {
		cfg.Holidays.Timeout = 5
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "hs-booking-service"
	}
	if cfg.Business.Timezone == "" {
		cfg.Business.Timezone = "Europe/Madrid"
	}
}

func validate(cfg *Config) error {
	switch cfg.Storage.Backend {
	case StorageBackendPostgres, StorageBackendNotion:
	default:
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidConfig, cfg.Storage.Backend)
	}

	if cfg.Storage.Backend == StorageBackendNotion {
		if cfg.Notion.Token == "" || cfg.Notion.DatabaseID == "" {
			return fmt.Errorf("%w: notion backend requires token and database_id", ErrInvalidConfig)
		}
	}

	if cfg.Schedule.HorizonMonths < 0 {
		return fmt.Errorf("%w: horizon_months must not be negative", ErrInvalidConfig)
	}

	return nil
}
