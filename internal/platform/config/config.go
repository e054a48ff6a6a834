// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Store backends.
const (
	BackendMemory    = "memory"
	BackendFirestore = "firestore"
	BackendPostgres  = "postgres"
)

// Auth modes.
const (
	AuthFirebase = "firebase"
	AuthJWT      = "jwt"
)

// Config holds server configuration.
type Config struct {
	Port            string
	LogLevel        string
	StoreBackend    string
	DatabaseURL     string
	ProjectID       string
	CredentialsFile string
	AuthMode        string
	JWTSecret       string
	JWTIssuer       string
	CORSOrigins     []string
	ShutdownTimeout time.Duration
}

// Load reads .env files (missing files are ignored; variables already set in
// the environment win) and then the environment itself.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_BACKEND", BackendMemory)
	v.SetDefault("AUTH_MODE", AuthFirebase)
	v.SetDefault("JWT_ISSUER", "huma-feed")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	cfg := &Config{
		Port:            v.GetString("PORT"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		StoreBackend:    strings.ToLower(v.GetString("STORE_BACKEND")),
		DatabaseURL:     v.GetString("DATABASE_URL"),
		ProjectID:       firstNonEmpty(v, "FIREBASE_PROJECT_ID", "GOOGLE_CLOUD_PROJECT", "GCLOUD_PROJECT"),
		CredentialsFile: v.GetString("GOOGLE_APPLICATION_CREDENTIALS"),
		AuthMode:        strings.ToLower(v.GetString("AUTH_MODE")),
		JWTSecret:       v.GetString("JWT_SECRET"),
		JWTIssuer:       v.GetString("JWT_ISSUER"),
		CORSOrigins:     splitList(v.GetString("CORS_ORIGINS")),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the selected backends have what they need.
func (c *Config) Validate() error {
	var errs []error
	switch c.StoreBackend {
	case BackendMemory:
	case BackendFirestore:
		if c.ProjectID == "" {
			errs = append(errs, errors.New("STORE_BACKEND=firestore requires FIREBASE_PROJECT_ID"))
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("STORE_BACKEND=postgres requires DATABASE_URL"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend))
	}
	switch c.AuthMode {
	case AuthFirebase:
		if c.ProjectID == "" {
			errs = append(errs, errors.New("AUTH_MODE=firebase requires FIREBASE_PROJECT_ID"))
		}
	case AuthJWT:
		if len(c.JWTSecret) < 32 {
			errs = append(errs, errors.New("AUTH_MODE=jwt requires JWT_SECRET of at least 32 bytes"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown AUTH_MODE %q", c.AuthMode))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("SHUTDOWN_TIMEOUT must be positive"))
	}
	return errors.Join(errs...)
}

// NeedsFirebase reports whether a Firebase app must be initialized.
func (c *Config) NeedsFirebase() bool {
	return c.StoreBackend == BackendFirestore || c.AuthMode == AuthFirebase
}

func firstNonEmpty(v *viper.Viper, keys ...string) string {
	for _, k := range keys {
		if s := v.GetString(k); s != "" {
			return s
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
