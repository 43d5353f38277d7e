package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
	OCR      OCRConfig
	Audit    AuditConfig
	Holiday  HolidayConfig
}

type AppConfig struct {
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

func (c AppConfig) IsProduction() bool {
	return c.Env == "production"
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	AutoMigrate bool
	MaxRetries  int
}

type RedisConfig struct {
	Addr     string
	Password string
}

type KafkaConfig struct {
	Broker        string
	ConsumerGroup string
	PollInterval  time.Duration
}

type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// OCRConfig configures the holiday image extractor.
type OCRConfig struct {
	APIKey    string
	Model     string
	UploadDir string
	MaxBytes  int64
}

type AuditConfig struct {
	TrackedTables []string
}

type HolidayConfig struct {
	CacheTTL       time.Duration
	RecurringYears int
}

// Load reads .env when present, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{}
	var err error

	cfg.App = AppConfig{
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("APP_ENV", "development"),
	}
	if cfg.App.ReadTimeout, err = getDuration("HTTP_READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.App.WriteTimeout, err = getDuration("HTTP_WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.App.IdleTimeout, err = getDuration("HTTP_IDLE_TIMEOUT", 60*time.Second); err != nil {
		return nil, err
	}

	cfg.Database = DatabaseConfig{
		Host:        getEnv("DB_HOST", "localhost"),
		Port:        getEnv("DB_PORT", "5432"),
		User:        getEnv("DB_USER", "postgres"),
		Password:    getEnv("DB_PASSWORD", ""),
		Name:        getEnv("DB_NAME", "hrms"),
		SSLMode:     getEnv("DB_SSLMODE", "disable"),
		AutoMigrate: getBool("DB_AUTO_MIGRATE", true),
	}
	if cfg.Database.MaxRetries, err = getInt("DB_MAX_RETRIES", 10); err != nil {
		return nil, err
	}

	cfg.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
	}

	cfg.Kafka = KafkaConfig{
		Broker:        getEnv("KAFKA_BROKER", "localhost:9092"),
		ConsumerGroup: getEnv("KAFKA_CONSUMER_GROUP", "hrms-ledger-seeder"),
	}
	if cfg.Kafka.PollInterval, err = getDuration("OUTBOX_POLL_INTERVAL", 2*time.Second); err != nil {
		return nil, err
	}

	cfg.JWT = JWTConfig{Secret: getEnv("JWT_SECRET", "")}
	if cfg.JWT.Secret == "" && cfg.App.IsProduction() {
		return nil, errors.New("JWT_SECRET is required in production")
	}
	if cfg.JWT.AccessTTL, err = getDuration("JWT_ACCESS_TTL", 15*time.Minute); err != nil {
		return nil, err
	}
	if cfg.JWT.RefreshTTL, err = getDuration("JWT_REFRESH_TTL", 7*24*time.Hour); err != nil {
		return nil, err
	}

	cfg.OCR = OCRConfig{
		APIKey:    getEnv("GEMINI_API_KEY", ""),
		Model:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		UploadDir: getEnv("UPLOAD_DIR", "./uploads/holidays"),
	}
	maxMB, err := getInt("UPLOAD_MAX_MB", 5)
	if err != nil {
		return nil, err
	}
	cfg.OCR.MaxBytes = int64(maxMB) << 20

	cfg.Audit = AuditConfig{
		TrackedTables: getEnvSlice("AUDIT_TRACKED_TABLES", []string{
			"employees", "departments", "users", "leave_requests", "leave_balances", "holidays", "holiday_uploads",
		}),
	}

	cfg.Holiday = HolidayConfig{}
	if cfg.Holiday.CacheTTL, err = getDuration("HOLIDAY_CACHE_TTL", time.Hour); err != nil {
		return nil, err
	}
	if cfg.Holiday.RecurringYears, err = getInt("HOLIDAY_RECURRING_YEARS", 5); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, defaultValue []string) []string {
	v := getEnv(key, "")
	if v == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
