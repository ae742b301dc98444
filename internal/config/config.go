package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// App holds the runtime configuration loaded from environment variables.
type App struct {
	Env             string
	HTTPPort        string
	DatabaseURL     string
	RedisAddr       string
	JWTIssuer       string
	JWTSigningKey   string
	AccessTTL       time.Duration
	RefreshTTL      time.Duration
	AuthBaseURL     string
	AuthAPIKey      string
	AuthSkip        bool
	QueueBackend    string
	MirrorColl      string
	SimulatedDelay  time.Duration
	RateLimitPerMin int
}

// Load returns application config populated from environment variables with
// sensible defaults. A .env file in the working directory is read first when
// present.
func Load() App {
	_ = godotenv.Load()

	return App{
		Env:             getEnv("APP_ENV", "dev"),
		HTTPPort:        getEnv("HTTP_PORT", "8081"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		JWTIssuer:       getEnv("JWT_ISSUER", "campus-portal"),
		JWTSigningKey:   getEnv("JWT_SIGNING_KEY", "dev-signing-secret-change"),
		AccessTTL:       durationEnv("ACCESS_TTL", 15*time.Minute),
		RefreshTTL:      durationEnv("REFRESH_TTL", 24*time.Hour),
		AuthBaseURL:     getEnv("AUTH_BASE_URL", ""),
		AuthAPIKey:      getEnv("AUTH_API_KEY", ""),
		AuthSkip:        boolEnv("AUTH_SKIP", false),
		QueueBackend:    getEnv("QUEUE_BACKEND", "memory"),
		MirrorColl:      getEnv("MIRROR_COLLECTION", "students"),
		SimulatedDelay:  durationEnv("SIMULATED_DELAY", 800*time.Millisecond),
		RateLimitPerMin: intEnv("RATE_LIMIT_PER_MIN", 120),
	}
}

// Validate fails fast when the authentication backend is not configured.
// Running without it is only allowed with AUTH_SKIP=true (dev mode).
func (a App) Validate() error {
	if a.AuthSkip {
		return nil
	}
	var missing []string
	if a.AuthBaseURL == "" {
		missing = append(missing, "AUTH_BASE_URL")
	}
	if a.AuthAPIKey == "" {
		missing = append(missing, "AUTH_API_KEY")
	}
	if len(missing) > 0 {
		return fmt.Errorf("auth backend not configured: set %s (or AUTH_SKIP=true for development)",
			strings.Join(missing, ", "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using fallback %s", key, err, fallback)
			return fallback
		}
		return d
	}
	return fallback
}

func boolEnv(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if val == "1" || val == "true" || val == "TRUE" {
			return true
		}
		if val == "0" || val == "false" || val == "FALSE" {
			return false
		}
		log.Printf("invalid bool for %s, using fallback %v", key, fallback)
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var parsed int
		if _, err := fmt.Sscanf(val, "%d", &parsed); err == nil {
			return parsed
		}
		log.Printf("invalid int for %s, using fallback %d", key, fallback)
	}
	return fallback
}
