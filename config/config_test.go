package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("IDENTITY_BACKEND", "")
	t.Setenv("CACHE_TTL", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, IdentitySupabase, cfg.IdentityBackend)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "authenticated", cfg.JWTAudience)
}

func TestLoad_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("IDENTITY_BACKEND=memory\nCACHE_TTL=30s\n"), 0o600))

	// godotenv never overrides a variable that exists, even when empty
	t.Setenv("IDENTITY_BACKEND", "")
	os.Unsetenv("IDENTITY_BACKEND")
	t.Setenv("CACHE_TTL", "")
	os.Unsetenv("CACHE_TTL")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, IdentityMemory, cfg.IdentityBackend)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("IDENTITY_BACKEND", "ldap")
	_, err := Load("")
	assert.ErrorContains(t, err, "IDENTITY_BACKEND")
}

func TestRequireIdentity(t *testing.T) {
	cfg := &Config{IdentityBackend: IdentitySupabase}
	err := cfg.RequireIdentity()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPABASE_URL")
	assert.Contains(t, err.Error(), "SUPABASE_SERVICE_ROLE_KEY")

	cfg.SupabaseURL = "https://x.supabase.co"
	cfg.SupabaseServiceRoleKey = "service"
	assert.NoError(t, cfg.RequireIdentity())

	assert.NoError(t, (&Config{IdentityBackend: IdentityMemory}).RequireIdentity())
}

func TestRequireServer(t *testing.T) {
	cfg := &Config{IdentityBackend: IdentityMemory}
	assert.ErrorContains(t, cfg.RequireServer(), "POSTGRES_URI")

	cfg.PostgresURI = "postgres://localhost/school"
	assert.ErrorContains(t, cfg.RequireServer(), "SUPABASE_JWT_SECRET")

	cfg.JWTSecret = "secret"
	assert.NoError(t, cfg.RequireServer())
}
