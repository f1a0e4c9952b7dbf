package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	JWT      JWTConfig
	Face     FaceConfig
	Work     WorkRulesConfig
	Payroll  PayrollConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// JWTConfig holds token verification configuration. Token issuance lives in
// the identity service; this backend only verifies access tokens.
type JWTConfig struct {
	Secret string
}

// FaceConfig points at the external face recognition service.
type FaceConfig struct {
	BaseURL string
	Timeout int // seconds
}

// WorkRulesConfig describes the working day. The attendance state machine and
// the working-day aggregator must be built from the same value, otherwise
// late/half-day classification and the tally disagree.
type WorkRulesConfig struct {
	StartHour            int
	EndHour              int
	LateThresholdMinutes int
	Timezone             string
}

// PayrollConfig holds the salary derivation constants.
type PayrollConfig struct {
	WorkDaysPerMonth     int
	WorkHoursPerDay      int
	OvertimeRate         decimal.Decimal
	LatePenaltyPerMinute decimal.Decimal
	AbsencePenaltyPerDay decimal.Decimal
	BonusWhenNoLeave     decimal.Decimal
	MaxConcurrent        int
}

func Load() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	maxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	minConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "facetrack-hrm"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: int32(maxConns),
		MinConns: int32(minConns),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	faceTimeout, err := strconv.Atoi(getEnv("FACE_SERVICE_TIMEOUT", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid FACE_SERVICE_TIMEOUT: %w", err)
	}

	config.Face = FaceConfig{
		BaseURL: getEnv("FACE_SERVICE_URL", "http://localhost:5001"),
		Timeout: faceTimeout,
	}

	config.Work, err = loadWorkRules()
	if err != nil {
		return nil, err
	}

	config.Payroll, err = loadPayroll()
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadWorkRules() (WorkRulesConfig, error) {
	startHour, err := strconv.Atoi(getEnv("WORK_START_HOUR", "9"))
	if err != nil {
		return WorkRulesConfig{}, fmt.Errorf("invalid WORK_START_HOUR: %w", err)
	}
	endHour, err := strconv.Atoi(getEnv("WORK_END_HOUR", "17"))
	if err != nil {
		return WorkRulesConfig{}, fmt.Errorf("invalid WORK_END_HOUR: %w", err)
	}
	lateThreshold, err := strconv.Atoi(getEnv("LATE_THRESHOLD_MINUTES", "15"))
	if err != nil {
		return WorkRulesConfig{}, fmt.Errorf("invalid LATE_THRESHOLD_MINUTES: %w", err)
	}

	return WorkRulesConfig{
		StartHour:            startHour,
		EndHour:              endHour,
		LateThresholdMinutes: lateThreshold,
		Timezone:             getEnv("TIME_ZONE", "Asia/Ho_Chi_Minh"),
	}, nil
}

func loadPayroll() (PayrollConfig, error) {
	workDays, err := strconv.Atoi(getEnv("WORK_DAYS_PER_MONTH", "26"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid WORK_DAYS_PER_MONTH: %w", err)
	}
	workHours, err := strconv.Atoi(getEnv("WORK_HOURS_PER_DAY", "8"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid WORK_HOURS_PER_DAY: %w", err)
	}
	maxConcurrent, err := strconv.Atoi(getEnv("MAX_GENERATE_QUEUE", "10"))
	if err != nil {
		return PayrollConfig{}, fmt.Errorf("invalid MAX_GENERATE_QUEUE: %w", err)
	}

	overtimeRate, err := getEnvDecimal("OVERTIME_RATE", "1.5")
	if err != nil {
		return PayrollConfig{}, err
	}
	latePenalty, err := getEnvDecimal("LATE_PENALTY_PER_MINUTE", "2000")
	if err != nil {
		return PayrollConfig{}, err
	}
	absencePenalty, err := getEnvDecimal("ABSENCE_PENALTY_PER_DAY", "300000")
	if err != nil {
		return PayrollConfig{}, err
	}
	noLeaveBonus, err := getEnvDecimal("BONUS_WHEN_NO_LEAVE", "500000")
	if err != nil {
		return PayrollConfig{}, err
	}

	return PayrollConfig{
		WorkDaysPerMonth:     workDays,
		WorkHoursPerDay:      workHours,
		OvertimeRate:         overtimeRate,
		LatePenaltyPerMinute: latePenalty,
		AbsencePenaltyPerDay: absencePenalty,
		BonusWhenNoLeave:     noLeaveBonus,
		MaxConcurrent:        maxConcurrent,
	}, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Database.MaxConns <= 0 || c.Database.MinConns < 0 || c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("DB_MIN_CONNS must be between 0 and DB_MAX_CONNS")
	}
	if c.Work.EndHour <= c.Work.StartHour {
		return fmt.Errorf("WORK_END_HOUR must be after WORK_START_HOUR")
	}
	if c.Payroll.WorkDaysPerMonth <= 0 || c.Payroll.WorkHoursPerDay <= 0 {
		return fmt.Errorf("WORK_DAYS_PER_MONTH and WORK_HOURS_PER_DAY must be positive")
	}
	if c.Payroll.MaxConcurrent <= 0 {
		return fmt.Errorf("MAX_GENERATE_QUEUE must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvDecimal(key, fallback string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(getEnv(key, fallback))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
