package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)
	require.Equal(t, "8080", c.Port)
	require.Equal(t, ModeDebug, c.Mode)
	require.Equal(t, DriverSqlite, c.Database.Driver)
	require.Equal(t, "coucou.db", c.Database.DSN)
	require.Equal(t, int64(7*24*3600), c.JWT.AccessExpire)
	require.Equal(t, 60, c.Health.IntervalSeconds)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("port: \"9000\"\nmode: release\ndatabase:\n  driver: mysql\n  host: db\n  db_name: coucou\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("COUCOU_DATABASE_HOST", "db.internal")
	t.Setenv("COUCOU_JWT_ACCESS_SECRET", "s3cret")

	c, err := Load(dir)
	require.NoError(t, err)
	require.Equal(t, "9000", c.Port)
	require.Equal(t, ModeRelease, c.Mode)
	require.Equal(t, DriverMysql, c.Database.Driver)
	require.Equal(t, "db.internal", c.Database.Host)
	require.Equal(t, "coucou", c.Database.DBName)
	require.Equal(t, "s3cret", c.JWT.AccessSecret)
	require.Empty(t, c.Database.DSN)
}
