package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/DropZone-api/pkg/config"
)

func TestNewPoolConfig_Limites(t *testing.T) {
	cfg := config.DBConfig{
		Host: "db", Port: 5432, User: "dz", Password: "x", DBName: "dropzone", SSLMode: "disable",
		MaxConns:    10,
		LockTimeout: 3 * time.Second,
	}
	pc, err := newPoolConfig(cfg)
	require.NoError(t, err)

	assert.EqualValues(t, 10, pc.MaxConns)
	assert.EqualValues(t, minConns, pc.MinConns)
	assert.Equal(t, "3000", pc.ConnConfig.RuntimeParams["lock_timeout"])
	assert.Equal(t, "dropzone-api", pc.ConnConfig.RuntimeParams["application_name"])
	assert.NotNil(t, pc.AfterConnect)
}

func TestNewPoolConfig_Defaults(t *testing.T) {
	pc, err := newPoolConfig(config.DBConfig{
		DatabaseURL: "postgres://dz:x@127.0.0.1:6543/dropzone?sslmode=disable",
		MaxConns:    1,
	})
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", pc.ConnConfig.Host)
	assert.EqualValues(t, 6543, pc.ConnConfig.Port)
	assert.EqualValues(t, 1, pc.MinConns, "MinConns no supera MaxConns")
	_, ok := pc.ConnConfig.RuntimeParams["lock_timeout"]
	assert.False(t, ok, "sin LockTimeout no se fija lock_timeout")
}

func TestNewPoolConfig_DSNInvalido(t *testing.T) {
	_, err := newPoolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}
