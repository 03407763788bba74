package database

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-assistant/internal/common/config"
	apperrors "hr-assistant/internal/common/errors"
	"hr-assistant/internal/common/logger"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, InitialDelay: time.Millisecond}
}

func requireConnectionFailed(t *testing.T, err error, details string) {
	t.Helper()
	var stdErr *apperrors.StandardError
	require.True(t, errors.As(err, &stdErr), "got %v", err)
	assert.Equal(t, apperrors.ErrCodeDatabaseConnectionFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
	assert.Contains(t, stdErr.Details, details)
}

// ==========================
// Retry
// ==========================

func TestRetryWithBackoff(t *testing.T) {
	tests := []struct {
		name      string
		failures  int
		attempts  int
		wantCalls int
		wantErr   bool
	}{
		{name: "first attempt succeeds", failures: 0, attempts: 3, wantCalls: 1},
		{name: "succeeds after retries", failures: 2, attempts: 3, wantCalls: 3},
		{name: "gives up", failures: 5, attempts: 3, wantCalls: 3, wantErr: true},
		{name: "zero attempts still tries once", failures: 0, attempts: 0, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			boom := errors.New("connection refused")

			err := RetryWithBackoff(context.Background(), fastPolicy(tt.attempts), logger.NewTestLogger(t), "op",
				func(context.Context) error {
					calls++
					if calls <= tt.failures {
						return boom
					}
					return nil
				})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, boom)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRetryWithBackoff_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := RetryPolicy{MaxAttempts: 5, InitialDelay: time.Hour}

	calls := 0
	err := RetryWithBackoff(ctx, policy, logger.NewNoOpLogger(), "op", func(context.Context) error {
		calls++
		cancel()
		return errors.New("unavailable")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

// ==========================
// Postgres
// ==========================

func TestNewPostgres_AppliesPoolSettings(t *testing.T) {
	client, err := NewPostgres(config.PostgresConfig{
		Host: "localhost", Port: 5432, Database: "orangehrm", User: "hr",
		SSLMode: "disable", MaxConnections: 7, MaxIdle: 2,
	})
	require.NoError(t, err)
	defer client.Close()

	assert.Equal(t, 7, client.DB.Stats().MaxOpenConnections)
}

func TestPostgresClient_Ping(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	mock.ExpectPing()
	mock.ExpectPing().WillReturnError(errors.New("server closed the connection"))
	mock.ExpectClose()

	client := &PostgresClient{DB: db}
	assert.NoError(t, client.Ping(context.Background()))
	assert.ErrorContains(t, client.Ping(context.Background()), "postgres ping failed")
	assert.NoError(t, client.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectPostgres_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	_, err = ConnectPostgres(context.Background(), config.PostgresConfig{
		Host: "127.0.0.1", Port: port, Database: "orangehrm", User: "hr", SSLMode: "disable",
	}, fastPolicy(2), logger.NewTestLogger(t))
	require.Error(t, err)
	requireConnectionFailed(t, err, "postgres connect failed after 2 attempts")
}

func TestConnectPostgres_CancelledKeepsCause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ConnectPostgres(ctx, config.PostgresConfig{
		Host: "127.0.0.1", Port: 1, Database: "orangehrm", User: "hr", SSLMode: "disable",
	}, fastPolicy(3), logger.NewTestLogger(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPostgresClient_CloseNil(t *testing.T) {
	assert.NoError(t, (&PostgresClient{}).Close())
}

// ==========================
// Redis
// ==========================

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), config.RedisConfig{Address: mr.Addr()}, fastPolicy(2), logger.NewTestLogger(t))
	require.NoError(t, err)
	defer client.Close()

	ctx := context.Background()
	require.NoError(t, client.Set(ctx, "assistant:intents", "leave_balance:\n  - leave balance\n", 0))

	got, err := client.Client.Get(ctx, "assistant:intents").Result()
	require.NoError(t, err)
	assert.Contains(t, got, "leave balance")

	_, err = client.Client.Get(ctx, "missing").Result()
	assert.ErrorIs(t, err, redis.Nil)
}

func TestConnectRedis_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := ConnectRedis(context.Background(), config.RedisConfig{Address: addr}, fastPolicy(2), logger.NewTestLogger(t))
	require.Error(t, err)
	requireConnectionFailed(t, err, "redis connect failed after 2 attempts")
}
