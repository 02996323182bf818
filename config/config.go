package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Firebase  FirebaseConfig
	Generator GeneratorConfig
	Session   SessionConfig
	App       AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	// DSN is optional; without it the user registry is disabled.
	DSN      string
	MaxConns int
	MinConns int
}

type RedisConfig struct {
	// Addr is optional; without it sessions and events stay in process.
	Addr     string
	Password string
	DB       int
}

type FirebaseConfig struct {
	CredentialsPath string
	// Web SDK settings rendered into the login view.
	APIKey     string
	AuthDomain string
	ProjectID  string
}

type GeneratorConfig struct {
	// Provider is "http" or "genai".
	Provider     string
	BaseURL      string
	Timeout      time.Duration
	ClientID     string
	ClientSecret string
	TokenURL     string
	GenAIAPIKey  string
	GenAIModel   string
}

type SessionConfig struct {
	CookieName   string
	TTL          time.Duration
	SecureCookie bool
	SweepSpec    string
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
	ServiceName string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:8080"}),
		},
		Database: DatabaseConfig{
			DSN:      getEnv("DB_DSN", ""),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 2),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			APIKey:          getEnv("FIREBASE_API_KEY", ""),
			AuthDomain:      getEnv("FIREBASE_AUTH_DOMAIN", ""),
			ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		},
		Generator: GeneratorConfig{
			Provider:     getEnv("GENERATOR_PROVIDER", "http"),
			BaseURL:      getEnv("GENERATOR_BASE_URL", "http://localhost:8088"),
			Timeout:      getEnvAsDuration("GENERATOR_TIMEOUT", 0),
			ClientID:     getEnv("GENERATOR_CLIENT_ID", ""),
			ClientSecret: getEnv("GENERATOR_CLIENT_SECRET", ""),
			TokenURL:     getEnv("GENERATOR_TOKEN_URL", ""),
			GenAIAPIKey:  getEnv("GEMINI_API_KEY", ""),
			GenAIModel:   getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Session: SessionConfig{
			CookieName:   getEnv("SESSION_COOKIE_NAME", "ps_sid"),
			TTL:          getEnvAsDuration("SESSION_TTL", 5*24*time.Hour),
			SecureCookie: getEnvAsBool("SESSION_SECURE_COOKIE", env == "production"),
			SweepSpec:    getEnv("SESSION_SWEEP_SPEC", "@every 1m"),
		},
		App: AppConfig{
			Environment: env,
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			ServiceName: getEnv("SERVICE_NAME", "project-starter"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.App.Environment == "production" && c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required in production")
	}

	switch c.Generator.Provider {
	case "http":
		if c.Generator.BaseURL == "" {
			return fmt.Errorf("GENERATOR_BASE_URL is required")
		}
		if c.Generator.ClientID != "" && c.Generator.TokenURL == "" {
			return fmt.Errorf("GENERATOR_TOKEN_URL is required when GENERATOR_CLIENT_ID is set")
		}
	case "genai":
		if c.Generator.GenAIAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the genai provider")
		}
	default:
		return fmt.Errorf("unknown GENERATOR_PROVIDER %q", c.Generator.Provider)
	}

	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	return nil
}

// DevAuth reports whether the development identity provider may stand in for Firebase.
func (c *Config) DevAuth() bool {
	return c.Firebase.CredentialsPath == "" && c.App.Environment != "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(valueStr, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
