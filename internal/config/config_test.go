package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageDriverMemory, cfg.StorageDriver)
	assert.Equal(t, SyncModeTimer, cfg.SyncMode)
	assert.Equal(t, 3*time.Second, cfg.SyncDelay)
	assert.Equal(t, "123456", cfg.AuthPassword)
	assert.Equal(t, 3, cfg.LockoutMaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.LockoutDuration)
	assert.Equal(t, LockoutScopeGlobal, cfg.LockoutScope)
	assert.False(t, cfg.UsesRedis())
}

func TestLoadConfig_PostgresRequiresDatabaseURL(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "secret")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestValidate_UnknownValues(t *testing.T) {
	base := Config{
		StorageDriver:      StorageDriverMemory,
		SyncMode:           SyncModeTimer,
		AuthRoleResolver:   RoleResolverHeuristic,
		JWTSecret:          "secret",
		AuthPassword:       "123456",
		LockoutMaxAttempts: 3,
		LockoutScope:       LockoutScopeGlobal,
		SyncMaxRetries:     3,
	}
	require.NoError(t, base.Validate())

	cfg := base
	cfg.StorageDriver = "sqlite"
	assert.ErrorContains(t, cfg.Validate(), "STORAGE_DRIVER")

	cfg = base
	cfg.SyncMode = "kafka"
	assert.ErrorContains(t, cfg.Validate(), "SYNC_MODE")

	cfg = base
	cfg.AuthRoleResolver = "ldap"
	assert.ErrorContains(t, cfg.Validate(), "AUTH_ROLE_RESOLVER")

	cfg = base
	cfg.LockoutScope = "ip"
	assert.ErrorContains(t, cfg.Validate(), "LOCKOUT_SCOPE")

	cfg = base
	cfg.JWTSecret = ""
	assert.ErrorContains(t, cfg.Validate(), "JWT_SECRET")
}

func TestUsesRedis(t *testing.T) {
	cfg := Config{StorageDriver: StorageDriverMemory, SyncMode: SyncModeRedis}
	assert.True(t, cfg.UsesRedis())

	cfg = Config{StorageDriver: StorageDriverRedis, SyncMode: SyncModeTimer}
	assert.True(t, cfg.UsesRedis())
}
