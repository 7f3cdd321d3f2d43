package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret           string        `yaml:"secret"`
		AccessTTL        time.Duration `yaml:"access_ttl"`
		RefreshTTL       time.Duration `yaml:"refresh_ttl"`
		StrictRevocation bool          `yaml:"strict_revocation"`
	} `yaml:"jwt"`

	Identity struct {
		ProjectID string        `yaml:"project_id"`
		CertsURL  string        `yaml:"certs_url"`
		Timeout   time.Duration `yaml:"timeout"`
		// Dev only: replaces the external provider with the in-memory
		// static verifier, so only pre-registered tokens are accepted.
		InsecureSkipVerify bool `yaml:"insecure_skip_verify"`
	} `yaml:"identity"`

	Storage struct {
		Type      string `yaml:"type"`       // local, s3
		BasePath  string `yaml:"base_path"`  // for local storage
		BaseURL   string `yaml:"base_url"`   // public URL base
		Bucket    string `yaml:"bucket"`     // for S3
		Region    string `yaml:"region"`     // for S3
		AccessKey string `yaml:"access_key"` // for S3
		SecretKey string `yaml:"secret_key"` // for S3
		Endpoint  string `yaml:"endpoint"`   // for S3-compatible stores
	} `yaml:"storage"`

	Upload struct {
		MaxSize         int64    `yaml:"max_size"` // bytes
		ImageExtensions []string `yaml:"image_extensions"`
		AudioExtensions []string `yaml:"audio_extensions"`
	} `yaml:"upload"`

	RateLimit struct {
		GeneralPerMinute int `yaml:"general_per_minute"`
		UploadsPerHour   int `yaml:"uploads_per_hour"`
	} `yaml:"ratelimit"`
}

var AppConfig *Config

// Load reads configuration from config.yaml, or entirely from environment
// variables when DATABASE_URL is set (CI and test mode). The JWT signing
// secret is mandatory either way: the session issuer cannot run without it.
func Load() (*Config, error) {
	var cfg Config

	if os.Getenv("DATABASE_URL") == "" {
		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			return nil, fmt.Errorf("open config file %s: %w", configPath, err)
		}
		defer f.Close()

		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", configPath, err)
		}
	} else {
		cfg.Database.DSN = os.Getenv("DATABASE_URL")
		cfg.Server.Env = getEnv("SERVER_ENV", "development")
		cfg.Server.Port = getEnvInt("SERVER_PORT", 8080)
		cfg.JWT.Secret = os.Getenv("JWT_SECRET")
		cfg.Identity.ProjectID = os.Getenv("IDENTITY_PROJECT_ID")
		cfg.Identity.InsecureSkipVerify = os.Getenv("IDENTITY_INSECURE") == "1"
		cfg.Storage.Type = getEnv("STORAGE_TYPE", "local")
		cfg.Storage.BasePath = getEnv("STORAGE_BASE_PATH", "./uploads")
		cfg.Storage.BaseURL = getEnv("STORAGE_BASE_URL", "/uploads")
	}

	applyDefaults(&cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (config jwt.secret or JWT_SECRET)")
	}

	AppConfig = &cfg
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.JWT.AccessTTL == 0 {
		cfg.JWT.AccessTTL = time.Hour
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 7 * 24 * time.Hour
	}
	if cfg.Identity.CertsURL == "" {
		cfg.Identity.CertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	}
	if cfg.Identity.Timeout == 0 {
		cfg.Identity.Timeout = 10 * time.Second
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 16 * 1024 * 1024 // 16MB
	}
	if len(cfg.Upload.ImageExtensions) == 0 {
		cfg.Upload.ImageExtensions = []string{"png", "jpg", "jpeg"}
	}
	if len(cfg.Upload.AudioExtensions) == 0 {
		cfg.Upload.AudioExtensions = []string{"mp3", "wav", "m4a"}
	}
	if cfg.RateLimit.GeneralPerMinute == 0 {
		cfg.RateLimit.GeneralPerMinute = 120
	}
	if cfg.RateLimit.UploadsPerHour == 0 {
		cfg.RateLimit.UploadsPerHour = 10
	}
}

// GetConfig returns the loaded configuration, loading on first use.
func GetConfig() *Config {
	if AppConfig == nil {
		cfg, err := Load()
		if err != nil {
			panic(err)
		}
		AppConfig = cfg
	}
	return AppConfig
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
