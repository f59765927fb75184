package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"finance-tracker-go/pkg/logger"
	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort       string
	Env            string
	CORSOrigins    []string
	MigrateOnStart bool
	DB             DBConfig
	Auth           AuthConfig
	CashFlow       CashFlowConfig
	AMQP           AMQPConfig
}

type DBConfig struct {
	DSN             string
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CashFlowConfig holds the knobs of the query layer. Location is resolved
// from Timezone by Load so callers never parse it themselves.
type CashFlowConfig struct {
	Timezone        string
	Location        *time.Location
	Locale          string
	AmountCap       decimal.Decimal
	DefaultPageSize int
	MaxPageSize     int
	ExportMaxRows   int
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

func Load(log logger.Logger) (Config, error) {
	err := loadDotEnv(log)
	if err != nil {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		Env:            getEnv("ENV", "development"),
		CORSOrigins:    getEnvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true),
		DB: DBConfig{
			DSN:             getEnv("DB_DSN", ""),
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", "postgres"),
			Name:            getEnv("DB_NAME", "finance_tracker"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			TimeZone:        getEnv("DB_TIMEZONE", "UTC"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET_KEY", ""),
			TokenTTL:  getEnvDuration("JWT_TTL", 10*time.Hour),
		},
		CashFlow: CashFlowConfig{
			Timezone:        getEnv("APP_TIMEZONE", "America/Sao_Paulo"),
			Locale:          getEnv("APP_LOCALE", "pt-BR"),
			AmountCap:       getEnvDecimal("CASHFLOW_AMOUNT_CAP", decimal.NewFromInt(200000)),
			DefaultPageSize: getEnvInt("PAGE_SIZE_DEFAULT", 10),
			MaxPageSize:     getEnvInt("PAGE_SIZE_MAX", 2000),
			ExportMaxRows:   getEnvInt("EXPORT_MAX_ROWS", 10000),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "finance-tracker"),
		},
	}

	location, err := time.LoadLocation(cfg.CashFlow.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("load timezone %q: %w", cfg.CashFlow.Timezone, err)
	}
	cfg.CashFlow.Location = location

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error

	if port, err := strconv.Atoi(c.HTTPPort); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Errorf("invalid HTTP_PORT %q", c.HTTPPort))
	}
	if c.Auth.JWTSecret == "" && c.Env != "development" {
		errs = append(errs, errors.New("JWT_SECRET_KEY is required outside development"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if !c.CashFlow.AmountCap.IsPositive() {
		errs = append(errs, errors.New("CASHFLOW_AMOUNT_CAP must be positive"))
	}
	if c.CashFlow.DefaultPageSize <= 0 || c.CashFlow.MaxPageSize < c.CashFlow.DefaultPageSize {
		errs = append(errs, errors.New("PAGE_SIZE_DEFAULT must be positive and not above PAGE_SIZE_MAX"))
	}
	if c.CashFlow.ExportMaxRows <= 0 {
		errs = append(errs, errors.New("EXPORT_MAX_ROWS must be positive"))
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	return items
}

func (c DBConfig) GetDSN() string {
	if c.DSN != "" {
		return c.DSN
	}
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.TimeZone
}
