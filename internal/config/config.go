package config

import (
	"errors"
	"flag"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DevAuthSecret подставляется, если AUTH_SECRET не задан. Только для локальной разработки.
	DevAuthSecret = "dev-secret-key"

	DefaultTokenTTL   = 24 * time.Hour
	DefaultBcryptCost = 12
	DefaultBaseURL    = "localhost:8081"
	DefaultDSN        = "file:vault.db?_pragma=foreign_keys(1)"

	minSecretLen = 32
)

var (
	// ErrWeakSecret возвращается Validate, если секрет подписи слишком короткий.
	ErrWeakSecret = errors.New("auth secret must be at least 32 bytes")
	// ErrDevSecret — AUTH_SECRET не задан, а режим разработки не включён.
	ErrDevSecret = errors.New("AUTH_SECRET is not set (use -dev or DEV_MODE=true for local development)")
)

type Config struct {
	DatabaseDSN string        `env:"DATABASE_URI"`
	AuthSecret  string        `env:"AUTH_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL"`
	BcryptCost  int           `env:"BCRYPT_COST"`

	BaseURL     string `env:"BASE_URL"`
	EnableHTTPS bool   `env:"ENABLE_HTTPS"`
	ServerURL   string `env:"-"`

	// Учётка администратора, создаваемая при старте, если её ещё нет
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	LogFormat string `env:"LOG_FORMAT"` // "json" для production-логгера
	DevMode   bool   `env:"DEV_MODE"`   // разрешает публичный dev-секрет

	Version bool `env:"-"` // только для CLI: напечатать версию и выйти
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (postgres://... или путь к SQLite)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.DurationVar(&cfg.TokenTTL, "token-ttl", cfg.TokenTTL, "время жизни токена сессии")
	flag.IntVar(&cfg.BcryptCost, "bcrypt-cost", cfg.BcryptCost, "work factor bcrypt")
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "адрес сервера в формате host:port")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS (Secure cookie)")
	flag.StringVar(&cfg.AdminEmail, "admin-email", cfg.AdminEmail, "email администратора для первичной инициализации")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "формат логов: console | json")
	flag.BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "режим разработки: разрешить dev-секрет подписи")
	flag.BoolVar(&cfg.Version, "version", false, "показать версию и выйти")

	flag.Parse()

	cfg.applyDefaults()

	return cfg
}

// applyDefaults заполняет незаданные поля значениями по умолчанию.
func (c *Config) applyDefaults() {
	if c.AuthSecret == "" {
		c.AuthSecret = DevAuthSecret
	}
	if c.DatabaseDSN == "" {
		c.DatabaseDSN = DefaultDSN
	}
	if c.TokenTTL <= 0 {
		c.TokenTTL = DefaultTokenTTL
	}
	switch {
	case c.BcryptCost == 0:
		c.BcryptCost = DefaultBcryptCost
	case c.BcryptCost < bcrypt.MinCost:
		c.BcryptCost = bcrypt.MinCost
	case c.BcryptCost > bcrypt.MaxCost:
		c.BcryptCost = bcrypt.MaxCost
	}

	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = DefaultBaseURL
	}

	if c.EnableHTTPS {
		c.ServerURL = "https://" + c.BaseURL
	} else {
		c.ServerURL = "http://" + c.BaseURL
	}
}

// UsesDevSecret сообщает, что сервер подписывает токены секретом по умолчанию.
func (c *Config) UsesDevSecret() bool {
	return c.AuthSecret == DevAuthSecret
}

// Validate проверяет настройки безопасности. Dev-секрет допускается только в DevMode.
func (c *Config) Validate() error {
	if c.UsesDevSecret() {
		if !c.DevMode {
			return ErrDevSecret
		}
		return nil
	}
	if len(c.AuthSecret) < minSecretLen {
		return ErrWeakSecret
	}
	return nil
}
