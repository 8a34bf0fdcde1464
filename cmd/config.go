package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	StoreJSON     = "json"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"

	SessionsMemory = "memory"
	SessionsRedis  = "redis"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	AdminID     int64   `env:"ADMIN_ID,required"`
	ExecutorIDs []int64 `env:"EXECUTOR_IDS" envSeparator:","`

	StoreDriver   string `env:"STORE_DRIVER" envDefault:"json"`
	OrdersFile    string `env:"ORDERS_FILE" envDefault:"orders.json"`
	ExecutorsFile string `env:"EXECUTORS_FILE" envDefault:"executors.json"`
	SQLitePath    string `env:"SQLITE_PATH" envDefault:"studydesk.db"`
	DBHost        string `env:"DB_HOST" envDefault:"localhost"`
	DBPort        string `env:"DB_PORT" envDefault:"5432"`
	DBUser        string `env:"DB_USER"`
	DBPassword    string `env:"DB_PASSWORD"`
	DBName        string `env:"DB_NAME"`
	DBSslMode     string `env:"DB_SSLMODE" envDefault:"disable"`

	SessionDriver string        `env:"SESSION_DRIVER" envDefault:"memory"`
	RedisAddr     string        `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`

	BotToken      string  `env:"BOT_TOKEN"`
	BotAPIURL     string  `env:"BOT_API_URL" envDefault:"https://api.telegram.org"`
	NotifyRate    float64 `env:"NOTIFY_RATE" envDefault:"25"`
	WebhookSecret string  `env:"WEBHOOK_SECRET"`

	PaymentSessionTTL time.Duration `env:"PAYMENT_SESSION_TTL" envDefault:"15m"`
	PaymentLinkBase   string        `env:"PAYMENT_LINK_BASE" envDefault:"https://qr.nspk.ru"`
	PaymentSweepSpec  string        `env:"PAYMENT_SWEEP_SPEC" envDefault:"0 * * * * *"`

	ExportFile string `env:"EXPORT_FILE" envDefault:"orders.csv"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	config, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, err
	}
	if err = config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	var problems []error

	if c.AdminID <= 0 {
		problems = append(problems, errors.New("ADMIN_ID must be a positive chat id"))
	}
	switch c.StoreDriver {
	case StoreJSON, StoreSQLite:
	case StorePostgres:
		if c.DBName == "" || c.DBUser == "" {
			problems = append(problems, errors.New("DB_NAME and DB_USER are required for the postgres store"))
		}
	default:
		problems = append(problems, fmt.Errorf("STORE_DRIVER %q is not one of json, sqlite, postgres", c.StoreDriver))
	}
	switch c.SessionDriver {
	case SessionsMemory, SessionsRedis:
	default:
		problems = append(problems, fmt.Errorf("SESSION_DRIVER %q is not one of memory, redis", c.SessionDriver))
	}
	if c.PaymentSessionTTL <= 0 {
		problems = append(problems, errors.New("PAYMENT_SESSION_TTL must be positive"))
	}

	return errors.Join(problems...)
}

// PostgresDSN builds the connection string for the postgres store.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%v port=%v user=%v password=%v dbname=%v sslmode=%v",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
