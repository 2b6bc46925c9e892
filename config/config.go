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
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	LLM      LLMConfig
	Editor   EditorConfig
	App      AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	// DSN overrides the individual fields when set (used by the pgx pool).
	DSN string
}

type RedisConfig struct {
	URL           string
	CredentialTTL time.Duration
}

// AuthConfig selects how bearer tokens are turned into identities.
// Provider is one of "firebase", "supabase" or "header".
type AuthConfig struct {
	Provider            string
	FirebaseCredentials string
	SupabaseURL         string
	SupabaseKey         string
}

type LLMConfig struct {
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

type EditorConfig struct {
	RenderDebounce time.Duration
	IdleTTL        time.Duration
	// GenerateRate is the sustained number of generations per minute per session.
	GenerateRate  int
	GenerateBurst int
}

type AppConfig struct {
	Environment     string
	LogLevel        string
	Version         string
	StorageBackend  string
	// CredentialStore is "redis" or "memory".
	CredentialStore string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "mermaidgen"),
			DSN:      getEnv("DB_DSN", ""),
		},
		Redis: RedisConfig{
			URL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			CredentialTTL: getEnvAsDuration("CREDENTIAL_TTL", 30*24*time.Hour),
		},
		Auth: AuthConfig{
			Provider:            getEnv("AUTH_PROVIDER", "header"),
			FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			SupabaseURL:         getEnv("SUPABASE_URL", ""),
			SupabaseKey:         getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
		},
		LLM: LLMConfig{
			BaseURL:     getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
			Model:       getEnv("LLM_MODEL", "gpt-4o-mini"),
			Temperature: getEnvAsFloat("LLM_TEMPERATURE", 0.2),
			MaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 2048),
			Timeout:     getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Editor: EditorConfig{
			RenderDebounce: getEnvAsDuration("EDITOR_RENDER_DEBOUNCE", 300*time.Millisecond),
			IdleTTL:        getEnvAsDuration("EDITOR_IDLE_TTL", 2*time.Hour),
			GenerateRate:   getEnvAsInt("EDITOR_GENERATE_PER_MINUTE", 10),
			GenerateBurst:  getEnvAsInt("EDITOR_GENERATE_BURST", 3),
		},
		App: AppConfig{
			Environment:     getEnv("APP_ENV", "development"),
			LogLevel:        getEnv("LOG_LEVEL", "info"),
			Version:         getEnv("APP_VERSION", "1.0.0"),
			StorageBackend:  getEnv("STORAGE_BACKEND", "postgres"),
			CredentialStore: getEnv("CREDENTIAL_STORE", "redis"),
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

	switch c.App.StorageBackend {
	case "postgres":
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_HOST or DB_DSN is required")
		}
	case "supabase":
		if c.Auth.SupabaseURL == "" || c.Auth.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required for the supabase storage backend")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.App.StorageBackend)
	}

	switch c.Auth.Provider {
	case "firebase":
		if c.Auth.FirebaseCredentials == "" {
			return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
		}
	case "supabase":
		if c.Auth.SupabaseURL == "" || c.Auth.SupabaseKey == "" {
			return fmt.Errorf("SUPABASE_URL and SUPABASE_SERVICE_ROLE_KEY are required")
		}
	case "header":
		if c.App.Environment == "production" {
			return fmt.Errorf("AUTH_PROVIDER=header is not allowed in production")
		}
	default:
		return fmt.Errorf("unknown AUTH_PROVIDER %q", c.Auth.Provider)
	}

	switch c.App.CredentialStore {
	case "redis":
		if c.Redis.URL == "" {
			return fmt.Errorf("REDIS_URL is required for the redis credential store")
		}
	case "memory":
	default:
		return fmt.Errorf("unknown CREDENTIAL_STORE %q", c.App.CredentialStore)
	}

	if c.Editor.RenderDebounce <= 0 {
		return fmt.Errorf("EDITOR_RENDER_DEBOUNCE must be positive")
	}

	return nil
}

// PostgresDSN returns the lib/pq style DSN, preferring DB_DSN when provided.
func (d DatabaseConfig) PostgresDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		d.Host, d.Port, d.User, d.Password, d.Name,
	)
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %v", key, defaultValue)
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

	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
