package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	MongoURI    string
	MongoDBName string

	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	CORSOrigins   []string
	StatsCacheTTL time.Duration

	AllowAdminSignup bool
	AdminEmail       string
	AdminPassword    string
}

func Load() Config {
	return Config{
		Port:             getenv("PORT", "8080"),
		DBHost:           getenv("DB_HOST", "localhost"),
		DBUser:           getenv("DB_USER", "postgres"),
		DBPassword:       getenv("DB_PASSWORD", "postgres"),
		DBName:           getenv("DB_NAME", "shacademy"),
		DBPort:           getenv("DB_PORT", "5432"),
		DBSSLMode:        getenv("DB_SSLMODE", "disable"),
		MongoURI:         getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:      getenv("MONGO_DB_NAME", "shacademy"),
		RedisAddr:        getenv("REDIS_ADDR", ""),
		RedisPassword:    getenv("REDIS_PASSWORD", ""),
		JWTSecret:        getenv("JWT_SECRET", "dev-secret"),
		JWTAccessTTL:     getenvDuration("JWT_ACCESS_TTL", 24*time.Hour),
		JWTRefreshTTL:    getenvDuration("JWT_REFRESH_TTL", 30*24*time.Hour),
		CORSOrigins:      getenvList("CORS_ORIGINS", []string{"http://localhost:3000"}),
		StatsCacheTTL:    getenvDuration("STATS_CACHE_TTL", 60*time.Second),
		AllowAdminSignup: getenvBool("ALLOW_ADMIN_SIGNUP", false),
		AdminEmail:       getenv("ADMIN_EMAIL", ""),
		AdminPassword:    getenv("ADMIN_PASSWORD", ""),
	}
}

func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}

func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			return parsed
		}
	}
	return fallback
}

// getenvList splits a comma separated value, dropping empty entries.
func getenvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
