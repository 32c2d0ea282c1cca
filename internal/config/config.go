package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

const (
	defaultConfigPath = "config/config.yaml"
	minBcryptCost     = 10
	minSecretLength   = 32
)

type Config struct {
	Server struct {
		Host        string `yaml:"host"`
		Port        int    `yaml:"port"`
		Env         string `yaml:"env"`
		FrontendURL string `yaml:"frontend_url"`
		BodyLimit   int64  `yaml:"body_limit"`
		// Пустой список - разрешены все origin
		AllowedOrigins []string `yaml:"allowed_origins"`
		EnableDocs     bool     `yaml:"enable_docs"`
	} `yaml:"server"`

	Database struct {
		Driver       string `yaml:"driver"` // postgres, mysql, sqlite
		DSN          string `yaml:"url"`
		MaxOpenConns int    `yaml:"max_open_conns"`
		MaxIdleConns int    `yaml:"max_idle_conns"`
	} `yaml:"database"`

	Session struct {
		Secret       string        `yaml:"secret"`
		TTL          time.Duration `yaml:"ttl"`
		CookieName   string        `yaml:"cookie_name"`
		CookieDomain string        `yaml:"cookie_domain"`
		CookieSecure bool          `yaml:"cookie_secure"`
		SameSite     string        `yaml:"same_site"` // none, lax, strict
		Issuer       string        `yaml:"issuer"`
	} `yaml:"session"`

	Auth struct {
		BcryptCost           int           `yaml:"bcrypt_cost"`
		VerificationTokenTTL time.Duration `yaml:"verification_token_ttl"`
		ResetTokenTTL        time.Duration `yaml:"reset_token_ttl"`
		PhoneRegion          string        `yaml:"phone_region"`
		TokenCleanupInterval time.Duration `yaml:"token_cleanup_interval"`
	} `yaml:"auth"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		UseTLS       bool   `yaml:"use_tls"`
	} `yaml:"email"`

	Storage struct {
		Type      string `yaml:"type"`      // local, s3
		BasePath  string `yaml:"base_path"` // For local storage
		BaseURL   string `yaml:"base_url"`  // Public URL base
		Bucket    string `yaml:"bucket"`
		Region    string `yaml:"region"`
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"` // S3-compatible endpoint (MinIO, R2)
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`
		AllowedTypes []string `yaml:"allowed_types"`
		MaxImageSide int      `yaml:"max_image_side"` // фото профиля, px
	} `yaml:"upload"`

	Redis struct {
		Addr        string        `yaml:"addr"`
		Password    string        `yaml:"password"`
		DB          int           `yaml:"db"`
		LoginLimit  int           `yaml:"login_limit"`
		ForgotLimit int           `yaml:"forgot_limit"`
		Window      time.Duration `yaml:"window"`
	} `yaml:"redis"`

	Seed struct {
		FirstAdminEmail    string             `yaml:"first_admin_email"`
		FirstAdminPassword string             `yaml:"first_admin_password"`
		DefaultLeavePolicy *LeavePolicyConfig `yaml:"default_leave_policy"`
	} `yaml:"seed"`
}

// LeavePolicyConfig - политика отпусков, которая создается при первом старте
type LeavePolicyConfig struct {
	Casual            int  `yaml:"casual"`
	Sick              int  `yaml:"sick"`
	Earned            int  `yaml:"earned"`
	Bereavement       int  `yaml:"bereavement"`
	ExamLeave         int  `yaml:"exam_leave"`
	MarriageLeave     int  `yaml:"marriage_leave"`
	UnpaidLeave       int  `yaml:"unpaid_leave"`
	CarryForward      bool `yaml:"carry_forward"`
	MaxCarryForward   int  `yaml:"max_carry_forward"`
	EncashmentAllowed bool `yaml:"encashment_allowed"`
}

var AppConfig *Config

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 4000
	cfg.Server.Env = "development"
	cfg.Server.FrontendURL = "http://localhost:5173"
	cfg.Server.BodyLimit = 10 * 1024 * 1024 // 10MB
	cfg.Server.EnableDocs = true

	cfg.Database.Driver = "postgres"
	cfg.Database.MaxOpenConns = 25
	cfg.Database.MaxIdleConns = 5

	cfg.Session.TTL = 7 * 24 * time.Hour
	cfg.Session.CookieName = "token"
	cfg.Session.CookieSecure = true
	cfg.Session.SameSite = "none"
	cfg.Session.Issuer = "hrportal"

	cfg.Auth.BcryptCost = 10
	cfg.Auth.VerificationTokenTTL = 24 * time.Hour
	cfg.Auth.ResetTokenTTL = time.Hour
	cfg.Auth.PhoneRegion = "IN"
	cfg.Auth.TokenCleanupInterval = time.Hour

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "HR Portal"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/files"

	cfg.Upload.MaxSize = 5 * 1024 * 1024 // 5MB
	cfg.Upload.MaxImageSide = 1024
	cfg.Upload.AllowedTypes = []string{
		"image/jpeg", "image/png", "image/webp", "image/gif", "application/pdf",
	}

	cfg.Redis.LoginLimit = 10
	cfg.Redis.ForgotLimit = 5
	cfg.Redis.Window = 15 * time.Minute

	return &cfg
}

// LoadConfig загружает конфигурацию в AppConfig.
// Ошибка конфигурации - фатальная, сервер без нее не стартует.
func LoadConfig() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	AppConfig = cfg
}

// Load читает YAML-файл (если он есть), накладывает переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("config file %s not found, using defaults and environment", path)
	default:
		return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v, ok := os.LookupEnv(key); ok {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("SERVER_ENV", &cfg.Server.Env)
	setInt("SERVER_PORT", &cfg.Server.Port)
	setString("FRONTEND_URL", &cfg.Server.FrontendURL)
	if v, ok := os.LookupEnv("CORS_ORIGINS"); ok {
		cfg.Server.AllowedOrigins = splitList(v)
	}

	setString("DATABASE_URL", &cfg.Database.DSN)
	setString("DATABASE_DRIVER", &cfg.Database.Driver)

	setString("SESSION_SECRET", &cfg.Session.Secret)

	setString("SMTP_HOST", &cfg.Email.SMTPHost)
	setInt("SMTP_PORT", &cfg.Email.SMTPPort)
	setString("SMTP_USER", &cfg.Email.SMTPUsername)
	setString("SMTP_PASSWORD", &cfg.Email.SMTPPassword)

	setString("REDIS_ADDR", &cfg.Redis.Addr)

	setString("FIRST_ADMIN_EMAIL", &cfg.Seed.FirstAdminEmail)
	setString("FIRST_ADMIN_PASSWORD", &cfg.Seed.FirstAdminPassword)
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string

	if c.Database.DSN == "" {
		problems = append(problems, "database.url is required")
	}
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("unsupported database.driver %q", c.Database.Driver))
	}

	if c.Session.Secret == "" {
		problems = append(problems, "session.secret is required")
	} else if len(c.Session.Secret) < minSecretLength && !c.IsDevelopment() {
		problems = append(problems, fmt.Sprintf("session.secret must be at least %d bytes", minSecretLength))
	}
	if c.Session.TTL <= 0 {
		problems = append(problems, "session.ttl must be positive")
	}

	if c.Auth.BcryptCost < minBcryptCost {
		problems = append(problems, fmt.Sprintf("auth.bcrypt_cost must be at least %d", minBcryptCost))
	}
	if c.Auth.VerificationTokenTTL <= 0 || c.Auth.ResetTokenTTL <= 0 {
		problems = append(problems, "auth token ttl values must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// IsDevelopment - dev и test окружения
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "test"
}

// SMTPConfigured - false означает, что письма только логируются
func (c *Config) SMTPConfigured() bool {
	return c.Email.SMTPHost != ""
}

// GetConfig возвращает загруженную конфигурацию, при первом вызове загружает ее
func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
