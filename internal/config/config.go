package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Sekine53629/household-finance/internal/models"
)

// Config holds application configuration
type Config struct {
	Port     string
	DBConn   string
	LogLevel string

	// Single-user login for the web UI.
	JWTSecret    string
	PasswordHash string

	// Risk alert mail.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	AlertEmail   string

	// Classification limits, overridable per deployment.
	SchedulePaymentWarning int64
	SchedulePaymentDanger  int64
	LowBalanceWarning      int64
	ExpenseRatioWarning    int64
	DebtRatioWarning       int64
	DebtRatioDanger        int64
	LiquidityRatioWarn     int64
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	defaults := models.DefaultThresholds()
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		DBConn:   getEnv("DB_CONN", "host=localhost port=5432 user=finance password=finance dbname=finance sslmode=disable"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		JWTSecret: getEnv("JWT_SECRET", "secret"),
		// bcrypt hash of "finance"; override in any real deployment.
		PasswordHash: getEnv("PASSWORD_HASH", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		AlertEmail:   getEnv("ALERT_EMAIL", ""),

		SchedulePaymentWarning: getEnvInt64("SCHEDULE_PAYMENT_WARNING", defaults.SchedulePaymentWarning),
		SchedulePaymentDanger:  getEnvInt64("SCHEDULE_PAYMENT_DANGER", defaults.SchedulePaymentDanger),
		LowBalanceWarning:      getEnvInt64("LOW_BALANCE_WARNING", defaults.LowBalanceWarning),
		ExpenseRatioWarning:    getEnvInt64("EXPENSE_RATIO_WARNING", defaults.ExpenseRatioWarning),
		DebtRatioWarning:       getEnvInt64("DEBT_RATIO_WARNING", defaults.DebtRatioWarning),
		DebtRatioDanger:        getEnvInt64("DEBT_RATIO_DANGER", defaults.DebtRatioDanger),
		LiquidityRatioWarn:     getEnvInt64("LIQUIDITY_RATIO_WARNING", defaults.LiquidityRatioWarn),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.SchedulePaymentWarning > cfg.SchedulePaymentDanger {
		return nil, fmt.Errorf("SCHEDULE_PAYMENT_WARNING must not exceed SCHEDULE_PAYMENT_DANGER")
	}
	if cfg.DebtRatioWarning > cfg.DebtRatioDanger {
		return nil, fmt.Errorf("DEBT_RATIO_WARNING must not exceed DEBT_RATIO_DANGER")
	}

	return cfg, nil
}

// Thresholds returns the classification limits as a value the
// aggregators consume.
func (c *Config) Thresholds() models.Thresholds {
	return models.Thresholds{
		SchedulePaymentWarning: c.SchedulePaymentWarning,
		SchedulePaymentDanger:  c.SchedulePaymentDanger,
		LowBalanceWarning:      c.LowBalanceWarning,
		ExpenseRatioWarning:    c.ExpenseRatioWarning,
		DebtRatioWarning:       c.DebtRatioWarning,
		DebtRatioDanger:        c.DebtRatioDanger,
		LiquidityRatioWarn:     c.LiquidityRatioWarn,
	}
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultVal
	}
	return parsed
}
