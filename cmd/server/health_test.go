package server

import (
	"bytes"
	"context"
	"coucou-server/internal/global/database"
	"coucou-server/internal/storage/storagetest"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthCheckLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	database.DB = storagetest.NewDB(t)
	check := newHealthCheck(log)

	check(context.Background())
	assert.Empty(t, buf.String())

	sqlDB, err := database.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	check(context.Background())
	assert.Contains(t, buf.String(), "依赖服务不可用")

	buf.Reset()
	check(context.Background())
	assert.Empty(t, buf.String(), "持续不可用时不重复记录")
}
