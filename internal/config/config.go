package config

import (
	"flag"
	"net"
	"net/url"
	"regexp"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL         = "localhost:8080"
	defaultDBName          = "Pereval"
	defaultDBPort          = "5432"
	defaultShutdownTimeout = 10 * time.Second
	defaultBodyMaxSizeMB   = 50
)

type Config struct {
	// Подключение к БД: либо готовая строка, либо набор FSTR_DB_*
	DatabaseDSN string `env:"DATABASE_URI"`
	DBHost      string `env:"FSTR_DB_HOST"`
	DBPort      string `env:"FSTR_DB_PORT"`
	DBLogin     string `env:"FSTR_DB_LOGIN"`
	DBPass      string `env:"FSTR_DB_PASS"`
	DBName      string `env:"FSTR_DB_NAME"`

	// HTTP
	BaseURL         string        `env:"BASE_URL"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
	BodyMaxSizeMB   int           `env:"BODY_MAX_MB"` // лимит тела запроса, изображения идут внутри JSON

	Debug bool `env:"DEBUG"`
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД")
	flag.StringVar(&cfg.BaseURL, "a", cfg.BaseURL, "адрес сервера host:port")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "время на корректное завершение")
	flag.IntVar(&cfg.BodyMaxSizeMB, "body-max-mb", cfg.BodyMaxSizeMB, "максимальный размер тела запроса, МБ")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "режим разработки (подробные логи)")

	flag.Parse()

	cfg.applyDefaults()

	return cfg
}

func (c *Config) applyDefaults() {
	// BaseURL: только "address:port" без схемы и пути, иначе значение по умолчанию
	hostPortRe := regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)
	if !hostPortRe.MatchString(c.BaseURL) {
		c.BaseURL = defaultBaseURL
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaultShutdownTimeout
	}
	if c.BodyMaxSizeMB <= 0 {
		c.BodyMaxSizeMB = defaultBodyMaxSizeMB
	}
	if c.DBName == "" {
		c.DBName = defaultDBName
	}
	if c.DBPort == "" {
		c.DBPort = defaultDBPort
	}
	if c.DatabaseDSN == "" && c.DBHost != "" {
		c.DatabaseDSN = c.composeDSN()
	}
}

// composeDSN собирает URL подключения к PostgreSQL из FSTR_DB_*.
func (c *Config) composeDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(c.DBHost, c.DBPort),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=disable",
	}
	if c.DBLogin != "" {
		u.User = url.UserPassword(c.DBLogin, c.DBPass)
	}
	return u.String()
}
