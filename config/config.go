package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar menunjuk file YAML opsional.
const ConfigPathEnvVar = "CONFIG_PATH"

const devJWTSecret = "dev_secret_key_change_me"

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Port    string `koanf:"port"`
	AppEnv  string `koanf:"app_env"`
	BaseURL string `koanf:"base_url"`

	MongoURI          string `koanf:"mongo_uri"`
	DBName            string `koanf:"db_name"`
	MongoTransactions bool   `koanf:"mongo_transactions"`

	JWTSecret       string        `koanf:"jwt_secret"`
	JWTTTL          time.Duration `koanf:"jwt_ttl"`
	DefaultPassword string        `koanf:"default_password"`
	LoginRateLimit  int           `koanf:"login_rate_limit"`

	UploadDir   string   `koanf:"upload_dir"`
	CORSOrigins []string `koanf:"cors_origins"`

	ReconcileInterval time.Duration `koanf:"reconcile_interval"`
	PendingTimeout    time.Duration `koanf:"pending_timeout"`
	StatusPingURL     string        `koanf:"status_ping_url"`
	PushWebhookURL    string        `koanf:"push_webhook_url"`
	PushRatePerSecond float64       `koanf:"push_rate_per_second"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

func defaultConfig() Config {
	return Config{
		Port:              "5000",
		AppEnv:            "development",
		MongoURI:          "mongodb://localhost:27017",
		DBName:            "inventara",
		JWTTTL:            24 * time.Hour,
		DefaultPassword:   "admin12345",
		LoginRateLimit:    10,
		UploadDir:         "public/assets",
		CORSOrigins:       []string{"http://localhost:5173", "http://localhost:5000"},
		ReconcileInterval: 3 * time.Hour,
		PendingTimeout:    48 * time.Hour,
		PushRatePerSecond: 20,
		LogLevel:          "info",
		LogFormat:         "json",
	}
}

var knownKeys = func() map[string]bool {
	keys := map[string]bool{}
	for _, k := range []string{
		"port", "app_env", "base_url", "mongo_uri", "db_name", "mongo_transactions",
		"jwt_secret", "jwt_ttl", "default_password", "login_rate_limit",
		"upload_dir", "cors_origins", "reconcile_interval", "pending_timeout",
		"status_ping_url", "push_webhook_url", "push_rate_per_second",
		"log_level", "log_format",
	} {
		keys[k] = true
	}
	return keys
}()

// envTransform meneruskan hanya variabel yang dikenal, PATH dan kawan-kawan diabaikan.
func envTransform(key string) string {
	key = strings.ToLower(key)
	if knownKeys[key] {
		return key
	}
	return ""
}

// Load membaca .env (tidak fatal jika tidak ada), lalu defaults -> YAML -> env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("gagal memuat default config: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("gagal membaca %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("gagal membaca environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("gagal unmarshal config: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func (c *Config) finalize() error {
	// JWT_SECRET wajib di production; development boleh memakai default.
	if c.JWTSecret == "" {
		if c.IsProduction() {
			return errors.New("JWT_SECRET harus diset di environment production")
		}
		c.JWTSecret = devJWTSecret
	}
	if c.JWTTTL <= 0 {
		c.JWTTTL = 24 * time.Hour
	}
	if c.ReconcileInterval <= 0 {
		return fmt.Errorf("reconcile_interval harus > 0, didapat %s", c.ReconcileInterval)
	}
	if c.PendingTimeout <= 0 {
		c.PendingTimeout = 48 * time.Hour
	}
	cleaned := c.CORSOrigins[:0]
	for _, o := range c.CORSOrigins {
		if o = strings.TrimSpace(o); o != "" {
			cleaned = append(cleaned, o)
		}
	}
	c.CORSOrigins = cleaned
	return nil
}
