package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	MongoDB  MongoDBConfig
	Auth     AuthConfig
	Push     PushConfig
	Contacts ContactsConfig
}

type ServerConfig struct {
	Port               string
	GinMode            string
	AllowedOrigins     []string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	RateLimitPerMinute int
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

type PushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	Subscriber      string
}

type ContactsConfig struct {
	InvitationTTL time.Duration
}

const devJWTSecret = "wizspeek-dev-secret-change-me"

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[config] could not read .env: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:    getEnv("PORT", "8080"),
			GinMode: getEnv("GIN_MODE", "debug"),
			AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{
				"http://localhost:3000", "http://localhost:5500", "http://127.0.0.1:5500", "http://localhost:8080",
			}),
			ReadTimeout:        getEnvAsDuration("READ_TIMEOUT", 15*time.Second),
			WriteTimeout:       getEnvAsDuration("WRITE_TIMEOUT", 15*time.Second),
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 60),
		},
		MongoDB: MongoDBConfig{
			URI:      getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
			Database: getEnv("MONGODB_DATABASE", "wizspeek"),
			Timeout:  getEnvAsDuration("MONGODB_TIMEOUT", 15*time.Second),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			TokenTTL:  getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		},
		Push: PushConfig{
			VAPIDPublicKey:  getEnv("VAPID_PUBLIC_KEY", ""),
			VAPIDPrivateKey: getEnv("VAPID_PRIVATE_KEY", ""),
			Subscriber:      getEnv("VAPID_EMAIL", "mailto:admin@wizspeek.app"),
		},
		Contacts: ContactsConfig{
			InvitationTTL: getEnvAsDuration("INVITATION_TTL", 72*time.Hour),
		},
	}
}

func (c *Config) IsRelease() bool {
	return c.Server.GinMode == "release"
}

// Validate rejects settings that are unsafe to run with. In debug mode a
// missing JWT secret is replaced with a development value.
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		if c.IsRelease() {
			return errors.New("JWT_SECRET must be set in release mode")
		}
		log.Println("⚠️ JWT_SECRET not set, using development secret")
		c.Auth.JWTSecret = devJWTSecret
	}
	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI must not be empty")
	}
	if c.Server.RateLimitPerMinute <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func (c *Config) PushEnabled() bool {
	return c.Push.VAPIDPublicKey != "" && c.Push.VAPIDPrivateKey != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intVal, err := strconv.Atoi(value)
		if err != nil {
			log.Printf("[config] invalid int for %s: %v", key, err)
			return defaultValue
		}
		return intVal
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("[config] invalid duration for %s: %v", key, err)
			return defaultValue
		}
		return d
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists || strings.TrimSpace(value) == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
