package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type SessionConfig struct {
	WarnAfter   string `yaml:"warn_after"`
	ExpireAfter string `yaml:"expire_after"`
	StoragePath string `yaml:"storage_path"`
	StorageKey  string `yaml:"storage_key"`
}

type TransferConfig struct {
	Pin            string  `yaml:"pin"`
	PinMaxAttempts int     `yaml:"pin_max_attempts"`
	PinLockout     string  `yaml:"pin_lockout"`
	FallbackFee    float64 `yaml:"fallback_fee"`
	MaxAmount      float64 `yaml:"max_amount"`
}

type CasbinConfig struct {
	ModelPath string `yaml:"model_path"`
}

type ConfigFile struct {
	App      AppConfig      `yaml:"app"`
	API      APIConfig      `yaml:"api"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	Session  SessionConfig  `yaml:"session"`
	Transfer TransferConfig `yaml:"transfer"`
	Casbin   CasbinConfig   `yaml:"casbin"`
}

type Config struct {
	Port    string
	GinMode string

	APIBaseURL string
	APITimeout time.Duration

	DBDriver string
	DSN      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTIssuer string
	AccessTTL time.Duration

	// Inactivity policy. WarnAfter must be shorter than ExpireAfter.
	WarnAfter   time.Duration
	ExpireAfter time.Duration
	StoragePath string
	StorageKey  string

	Pin            string
	PinMaxAttempts int
	PinLockout     time.Duration
	FallbackFee    float64
	MaxAmount      float64

	CasbinModelPath string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides. A missing
// config file is not an error; every setting has a usable default so the
// client can run against a local user store out of the box.
func Load() (*Config, error) {
	// Optional .env bootstrap, same convention as the original server
	_ = godotenv.Load()

	configFile, err := loadConfigFile(env("SWED_CONFIG", "config/config.yml"))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		configFile = &ConfigFile{}
	}

	cfg := &Config{
		Port:            defaultStr(strconv.Itoa(configFile.App.Port), "0", "8080"),
		GinMode:         defaultStr(configFile.App.GinMode, "", "release"),
		APIBaseURL:      env("SWED_API_URL", defaultStr(configFile.API.BaseURL, "", "http://localhost:8080")),
		DBDriver:        defaultStr(configFile.Database.Driver, "", "sqlite"),
		DSN:             env("SWED_DSN", defaultStr(configFile.Database.DSN, "", "swed.db")),
		RedisAddr:       env("SWED_REDIS_ADDR", configFile.Redis.Addr),
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("SWED_JWT_SECRET", defaultStr(configFile.JWT.Secret, "", "dev-secret-change-me")),
		JWTIssuer:       defaultStr(configFile.JWT.Issuer, "", "swed-userstore"),
		StoragePath:     env("SWED_STORAGE_PATH", defaultStr(configFile.Session.StoragePath, "", ".swed")),
		StorageKey:      defaultStr(configFile.Session.StorageKey, "", "auth_state_v1"),
		Pin:             defaultStr(configFile.Transfer.Pin, "", "0034"),
		PinMaxAttempts:  defaultInt(configFile.Transfer.PinMaxAttempts, 3),
		FallbackFee:     defaultFloat(configFile.Transfer.FallbackFee, 3000),
		MaxAmount:       defaultFloat(configFile.Transfer.MaxAmount, 100000),
		CasbinModelPath: defaultStr(configFile.Casbin.ModelPath, "", "config/casbin_model.conf"),
	}

	cfg.APITimeout, err = parseDuration(configFile.API.Timeout, 10*time.Second)
	if err != nil {
		return nil, fmt.Errorf("invalid api timeout: %w", err)
	}
	cfg.AccessTTL, err = parseDuration(configFile.JWT.AccessTTL, 15*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}
	cfg.WarnAfter, err = parseDuration(configFile.Session.WarnAfter, 9*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid session warn_after: %w", err)
	}
	cfg.ExpireAfter, err = parseDuration(configFile.Session.ExpireAfter, 10*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid session expire_after: %w", err)
	}
	cfg.PinLockout, err = parseDuration(configFile.Transfer.PinLockout, 5*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("invalid transfer pin_lockout: %w", err)
	}

	if cfg.WarnAfter >= cfg.ExpireAfter {
		return nil, fmt.Errorf("session warn_after (%s) must be shorter than expire_after (%s)", cfg.WarnAfter, cfg.ExpireAfter)
	}

	return cfg, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}

func defaultStr(v, zero, def string) string {
	if v == zero {
		return def
	}
	return v
}

func defaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}

func defaultFloat(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}
