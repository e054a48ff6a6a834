package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, AuthJWT, cfg.AuthMode)
	assert.Equal(t, "huma-feed", cfg.JWTIssuer)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.NeedsFirebase())
}

func TestLoadReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "STORE_BACKEND=postgres\nDATABASE_URL=postgres://feed@localhost/feed\nAUTH_MODE=jwt\nJWT_SECRET=" + testSecret + "\nPORT=9090\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	for _, k := range []string{"STORE_BACKEND", "DATABASE_URL", "AUTH_MODE", "JWT_SECRET", "PORT"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendPostgres, cfg.StoreBackend)
	assert.Equal(t, "postgres://feed@localhost/feed", cfg.DatabaseURL)
	assert.Equal(t, "9090", cfg.Port)
}

func TestEnvironmentWinsOverEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=9090\n"), 0o600))
	t.Setenv("PORT", "7070")
	t.Setenv("AUTH_MODE", "jwt")
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"firestore without project", Config{StoreBackend: BackendFirestore, AuthMode: AuthJWT, JWTSecret: testSecret, ShutdownTimeout: time.Second}, "FIREBASE_PROJECT_ID"},
		{"postgres without url", Config{StoreBackend: BackendPostgres, AuthMode: AuthJWT, JWTSecret: testSecret, ShutdownTimeout: time.Second}, "DATABASE_URL"},
		{"unknown backend", Config{StoreBackend: "redis", AuthMode: AuthJWT, JWTSecret: testSecret, ShutdownTimeout: time.Second}, "unknown STORE_BACKEND"},
		{"short secret", Config{StoreBackend: BackendMemory, AuthMode: AuthJWT, JWTSecret: "short", ShutdownTimeout: time.Second}, "JWT_SECRET"},
		{"firebase without project", Config{StoreBackend: BackendMemory, AuthMode: AuthFirebase, ShutdownTimeout: time.Second}, "FIREBASE_PROJECT_ID"},
		{"zero timeout", Config{StoreBackend: BackendMemory, AuthMode: AuthJWT, JWTSecret: testSecret}, "SHUTDOWN_TIMEOUT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNeedsFirebase(t *testing.T) {
	assert.True(t, (&Config{StoreBackend: BackendFirestore, AuthMode: AuthJWT}).NeedsFirebase())
	assert.True(t, (&Config{StoreBackend: BackendMemory, AuthMode: AuthFirebase}).NeedsFirebase())
	assert.False(t, (&Config{StoreBackend: BackendPostgres, AuthMode: AuthJWT}).NeedsFirebase())
}
