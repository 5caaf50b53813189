// Package config loads the service configuration from the environment.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session      SessionConfig
	Account      AccountConfig
	Demo         DemoConfig
	Mixer        MixerConfig
	GenAI        GenAIConfig
	Notification NotificationConfig
	Gate         GateConfig

	GenerationWorkers int `env:"GENERATION_WORKERS, default=8"`

	Mongo MongoConfig
	Redis RedisConfig
}

type SessionConfig struct {
	Secret        string        `env:"SESSION_SECRET"`
	TokenTTL      time.Duration `env:"SESSION_TOKEN_TTL,      default=24h"`
	IdleTTL       time.Duration `env:"SESSION_IDLE_TTL,       default=30m"`
	SweepSchedule string        `env:"SESSION_SWEEP_SCHEDULE, default=@every 1m"`
}

// AccountConfig seeds the mock account of every new session.
type AccountConfig struct {
	Name         string `env:"ACCOUNT_NAME,          default=Jame"`
	PhoneNumber  string `env:"ACCOUNT_PHONE,         default=01412345678"`
	Coins        int64  `env:"ACCOUNT_COINS,         default=598240"`
	Cash         int64  `env:"ACCOUNT_CASH,          default=1500"`
	DataGB       int64  `env:"ACCOUNT_DATA_GB,       default=40"`
	UploadReward int64  `env:"ACCOUNT_UPLOAD_REWARD, default=80"`
}

type DemoConfig struct {
	Phone    string `env:"DEMO_PHONE,    default=01412345678"`
	Password string `env:"DEMO_PASSWORD, default=12345"`
}

type MixerConfig struct {
	PerGB              float64 `env:"MIXER_PER_GB,              default=5"`
	PerMinute          float64 `env:"MIXER_PER_MINUTE,          default=0.6"`
	PerDay             float64 `env:"MIXER_PER_DAY,             default=2.5"`
	Base               float64 `env:"MIXER_BASE,                default=20"`
	CoinsPerTaka       int64   `env:"MIXER_COINS_PER_TAKA,      default=80"`
	HoichoiThresholdGB int64   `env:"MIXER_HOICHOI_THRESHOLD_GB, default=20"`
}

func (m MixerConfig) validate() error {
	rates := map[string]float64{
		"MIXER_PER_GB":               m.PerGB,
		"MIXER_PER_MINUTE":           m.PerMinute,
		"MIXER_PER_DAY":              m.PerDay,
		"MIXER_BASE":                 m.Base,
		"MIXER_COINS_PER_TAKA":       float64(m.CoinsPerTaka),
		"MIXER_HOICHOI_THRESHOLD_GB": float64(m.HoichoiThresholdGB),
	}
	for name, v := range rates {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("config: %s must be a non-negative number, got %v", name, v)
		}
	}
	return nil
}

type GenAIConfig struct {
	APIKey        string        `env:"GENAI_API_KEY"`
	Model         string        `env:"GENAI_MODEL,   default=gemini-3-flash-preview"`
	Timeout       time.Duration `env:"GENAI_TIMEOUT, default=30s"`
	RatePerSecond float64       `env:"GENAI_RATE,    default=2"`
	Burst         int           `env:"GENAI_BURST,   default=4"`
}

type NotificationConfig struct {
	TTL time.Duration `env:"NOTIFICATION_TTL, default=3s"`
}

type GateConfig struct {
	KeepOpenOnFailure bool `env:"GATE_KEEP_OPEN_ON_FAILURE, default=false"`
}

// MongoConfig enables the purchase audit trail when URI is set.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"`
	Database string `env:"MONGO_DB, default=ryze"`
}

// RedisConfig enables the overview cache when Addr is set.
type RedisConfig struct {
	Addr        string        `env:"REDIS_ADDR"`
	Password    string        `env:"REDIS_PASSWORD"`
	DB          int           `env:"REDIS_DB,           default=0"`
	OverviewTTL time.Duration `env:"REDIS_OVERVIEW_TTL, default=24h"`
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Env == "development"
}

// Load reads an optional .env file, then the environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.Mixer.validate(); err != nil {
		return nil, err
	}
	if cfg.Session.Secret == "" {
		if !cfg.Development() {
			return nil, errors.New("config: SESSION_SECRET is required outside development")
		}
		cfg.Session.Secret = "development-only-secret"
	}
	return &cfg, nil
}
