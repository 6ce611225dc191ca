package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Auth modes
const (
	AuthModeHeader = "header"
	AuthModeJWT    = "jwt"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Storage     StorageConfig     `toml:"storage"`
	Mongo       MongoConfig       `toml:"mongo"`
	Redis       RedisConfig       `toml:"redis"`
	Kafka       KafkaConfig       `toml:"kafka"`
	Schedule    ScheduleConfig    `toml:"schedule"`
	Auth        AuthConfig        `toml:"auth"`
	RateLimit   RateLimitConfig   `toml:"rate_limit"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	UserService UserServiceConfig `toml:"user_service"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

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

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type StorageConfig struct {
	Driver string `toml:"driver"`
}

type MongoConfig struct {
	URI            string `toml:"uri"`
	Database       string `toml:"database"`
	ConnectTimeout int    `toml:"connect_timeout"`
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

type KafkaConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

type ScheduleConfig struct {
	OpenTime       string `toml:"open_time"`
	CloseTime      string `toml:"close_time"`
	StepMinutes    int    `toml:"step_minutes"`
	OverflowPolicy string `toml:"overflow_policy"`
}

// OperatingHours переводит секцию [schedule] в доменную политику
func (s ScheduleConfig) OperatingHours() (domain.OperatingHours, error) {
	open, err := types.NewTimeStringFromString(s.OpenTime)
	if err != nil {
		return domain.OperatingHours{}, fmt.Errorf("open_time: %w", err)
	}
	closing, err := types.NewTimeStringFromString(s.CloseTime)
	if err != nil {
		return domain.OperatingHours{}, fmt.Errorf("close_time: %w", err)
	}

	hours := domain.OperatingHours{
		Open:        open,
		Close:       closing,
		StepMinutes: s.StepMinutes,
		Overflow:    domain.OverflowPolicy(s.OverflowPolicy),
	}
	if err := hours.Validate(); err != nil {
		return domain.OperatingHours{}, err
	}
	return hours, nil
}

type AuthConfig struct {
	Mode      string `toml:"mode"`
	JWTSecret string `toml:"jwt_secret"`
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
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

type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load читает .env (если есть), затем TOML-файл, применяет значения по умолчанию
// и переопределения из окружения
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse как Load, но из строки. Окружение не читается.
func Parse(data string) (*Config, error) {
	cfg := &Config{}
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}

	if c.Storage.Driver == "" {
		c.Storage.Driver = DriverPostgres
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}

	if c.Mongo.Database == "" {
		c.Mongo.Database = "salon"
	}
	if c.Mongo.ConnectTimeout == 0 {
		c.Mongo.ConnectTimeout = 10
	}

	if c.Redis.TTL == 0 {
		c.Redis.TTL = 300
	}

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "salon.bookings"
	}
	if c.Kafka.WriteTimeout == 0 {
		c.Kafka.WriteTimeout = 5
	}

	if c.Schedule.OpenTime == "" {
		c.Schedule.OpenTime = domain.DefaultOpenTime.String()
	}
	if c.Schedule.CloseTime == "" {
		c.Schedule.CloseTime = domain.DefaultCloseTime.String()
	}
	if c.Schedule.StepMinutes == 0 {
		c.Schedule.StepMinutes = domain.DefaultStepMinutes
	}
	if c.Schedule.OverflowPolicy == "" {
		c.Schedule.OverflowPolicy = string(domain.OverflowAllow)
	}

	if c.Auth.Mode == "" {
		c.Auth.Mode = AuthModeHeader
	}

	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 5
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 10
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon_booking"
	}

	if c.UserService.Timeout == 0 {
		c.UserService.Timeout = 5
	}
}

// applyEnv секреты из окружения имеют приоритет над файлом
func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv("MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
}

// Validate проверяет согласованность секций
func (c *Config) Validate() error {
	var problems []string

	switch c.Storage.Driver {
	case DriverPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			problems = append(problems, "database.host and database.dbname are required for postgres storage")
		}
	case DriverMongo:
		if c.Mongo.URI == "" {
			problems = append(problems, "mongo.uri is required for mongo storage")
		}
	case DriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("unknown storage.driver %q", c.Storage.Driver))
	}

	if _, err := c.Schedule.OperatingHours(); err != nil {
		problems = append(problems, fmt.Sprintf("schedule: %v", err))
	}

	switch c.Auth.Mode {
	case AuthModeHeader:
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			problems = append(problems, "auth.jwt_secret is required in jwt mode")
		}
	default:
		problems = append(problems, fmt.Sprintf("unknown auth.mode %q", c.Auth.Mode))
	}

	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		problems = append(problems, "rate_limit.requests_per_second must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}
