package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port string

	// Storage
	StoreBackend string
	DataDir      string
	SQLiteDBPath string

	// AMQP notification bridge
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Reminder worker
	ScanInterval time.Duration

	// Ads
	AdsEnabled        bool
	AdsTestMode       bool
	AdsBannerID       string
	AdsInterstitialID string
	AdsRewardedID     string

	// Media
	MediaBackend   string
	MediaDir       string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool
}

func Load() *Config {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		StoreBackend: getEnv("STORE_BACKEND", "file"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/autocare.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "autocare"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "notifications"),

		ScanInterval: getEnvDuration("SCAN_INTERVAL", 1*time.Hour),

		AdsEnabled:        getEnvBool("ADS_ENABLED", false),
		AdsTestMode:       getEnvBool("ADS_TEST_MODE", false),
		AdsBannerID:       getEnv("ADS_BANNER_ID", ""),
		AdsInterstitialID: getEnv("ADS_INTERSTITIAL_ID", ""),
		AdsRewardedID:     getEnv("ADS_REWARDED_ID", ""),

		MediaBackend:   getEnv("MEDIA_BACKEND", "file"),
		MediaDir:       getEnv("MEDIA_DIR", "./data/media"),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getEnv("MINIO_BUCKET", "autocare-photos"),
		MinioRegion:    getEnv("MINIO_REGION", ""),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}

	return cfg
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"file", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.StoreBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of %v", c.StoreBackend, validBackends))
	}

	if c.StoreBackend == "file" && c.DataDir == "" {
		errors = append(errors, "data dir cannot be empty when using file backend")
	}

	if c.StoreBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.ScanInterval < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid scan interval %v: must be at least 1 minute", c.ScanInterval))
	} else if c.ScanInterval > 24*time.Hour {
		errors = append(errors, fmt.Sprintf("invalid scan interval %v: must be at most 24 hours", c.ScanInterval))
	}

	if c.AdsEnabled && !c.AdsTestMode && c.AdsBannerID == "" && c.AdsInterstitialID == "" {
		errors = append(errors, "ads enabled but no unit ids configured and test mode is off")
	}

	if c.MediaBackend != "file" && c.MediaBackend != "minio" {
		errors = append(errors, fmt.Sprintf("invalid media backend '%s': must be 'file' or 'minio'", c.MediaBackend))
	}
	if c.MediaBackend == "minio" {
		if c.MinioEndpoint == "" {
			errors = append(errors, "MinIO endpoint is required when using minio media backend")
		}
		if c.MinioAccessKey == "" || c.MinioSecretKey == "" {
			errors = append(errors, "MinIO credentials are required when using minio media backend")
		}
		if c.MinioBucket == "" {
			errors = append(errors, "MinIO bucket cannot be empty when using minio media backend")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
