package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host         string `yaml:"host"`
		Port         int    `yaml:"port"`
		Env          string `yaml:"env"`
		BaseURL      string `yaml:"base_url"`
		TemplatesDir string `yaml:"templates_dir"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`

	Session struct {
		CookieName  string `yaml:"cookie_name"`
		IdleMinutes int    `yaml:"idle_minutes"` // idle expiry window, default 15
		Secure      bool   `yaml:"secure"`       // set the Secure cookie flag
	} `yaml:"session"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	Turnstile struct {
		Enabled bool   `yaml:"enabled"`
		SiteKey string `yaml:"site_key"`
		Secret  string `yaml:"secret"`
	} `yaml:"turnstile"`

	FirstAdminEmail    string `yaml:"first_admin_email"`
	FirstAdminPassword string `yaml:"first_admin_password"`
}

// IsProduction reports whether the server runs in production mode. Error
// responses hide internal detail when it does.
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// SessionIdleTimeout returns the configured idle window, defaulting to 15m.
func (c *Config) SessionIdleTimeout() time.Duration {
	if c.Session.IdleMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(c.Session.IdleMinutes) * time.Minute
}

func (c *Config) SessionCookieName() string {
	if c.Session.CookieName == "" {
		return "hellostore_session"
	}
	return c.Session.CookieName
}

var AppConfig *Config

func LoadConfig() {
	var cfg Config

	dbURL := os.Getenv("DATABASE_URL")

	if dbURL == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	// Environment-driven configuration (tests, containers)
	cfg.Database.DSN = dbURL
	cfg.Server.Env = os.Getenv("SERVER_ENV")
	cfg.Server.Port, _ = strconv.Atoi(os.Getenv("SERVER_PORT"))
	cfg.Server.BaseURL = os.Getenv("BASE_URL")
	cfg.Redis.Addr = os.Getenv("REDIS_ADDR")
	cfg.Turnstile.SiteKey = os.Getenv("TURNSTILE_SITE_KEY")
	cfg.Turnstile.Secret = os.Getenv("TURNSTILE_SECRET")
	cfg.Turnstile.Enabled = cfg.Turnstile.Secret != ""
	cfg.FirstAdminEmail = os.Getenv("FIRST_ADMIN_EMAIL")
	cfg.FirstAdminPassword = os.Getenv("FIRST_ADMIN_PASSWORD")

	cfg.Email.SMTPHost = os.Getenv("SMTP_HOST")
	cfg.Email.SMTPPort, _ = strconv.Atoi(os.Getenv("SMTP_PORT"))
	cfg.Email.SMTPUsername = os.Getenv("SMTP_USER")
	cfg.Email.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.Email.FromEmail = os.Getenv("SMTP_FROM")

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 3000
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:3000"
	}
	if cfg.Server.TemplatesDir == "" {
		cfg.Server.TemplatesDir = "web/templates"
	}
	if cfg.Session.IdleMinutes == 0 {
		cfg.Session.IdleMinutes = 15
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "HelloStore"
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
