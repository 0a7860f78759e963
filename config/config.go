package config

import (
	"os"
	"strings"
)

const (
	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"
)

type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Admin    AdminConfig
	Log      LogConfig
}

type ServerConfig struct {
	Port           string
	StaticDir      string
	AllowedOrigins []string
}

// StoreConfig selects where the camera collection is persisted.
// Backend is one of "file", "badger" or "postgres".
type StoreConfig struct {
	Backend   string
	FilePath  string
	BadgerDir string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
	Expiry string
}

// AdminConfig is the single privileged identity. PasswordHash, when set, is a
// bcrypt hash and takes precedence over Password.
type AdminConfig struct {
	Username     string
	Password     string
	PasswordHash string
}

// UsesDefaultCredentials reports whether the shipped demo credentials are active.
func (a AdminConfig) UsesDefaultCredentials() bool {
	return a.Username == DefaultAdminUsername && a.PasswordHash == "" && a.Password == DefaultAdminPassword
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "3000"),
			StaticDir:      getEnv("STATIC_DIR", ""),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "*")),
		},
		Store: StoreConfig{
			Backend:   getEnv("STORE_BACKEND", "file"),
			FilePath:  getEnv("CAMERAS_DB_FILE", "cameras_database.json"),
			BadgerDir: getEnv("BADGER_DIR", "./data/badger"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "camera_registry"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "default-secret-change-in-production"),
			Expiry: getEnv("JWT_EXPIRY", "24h"),
		},
		Admin: AdminConfig{
			Username:     getEnv("GOD_ACCOUNT_USERNAME", DefaultAdminUsername),
			Password:     getEnv("GOD_ACCOUNT_PASSWORD", DefaultAdminPassword),
			PasswordHash: getEnv("GOD_ACCOUNT_PASSWORD_HASH", ""),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
