package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltv-advisor/config"
)

func TestRedisCounter_Increment(t *testing.T) {
	ctx := context.Background()

	t.Run("first hit opens the window", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectIncr("ratelimit:1.2.3.4").SetVal(1)
		mock.ExpectExpire("ratelimit:1.2.3.4", time.Minute).SetVal(true)

		count, err := NewRedisCounter(db).Increment(ctx, "ratelimit:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("later hits keep the existing expiry", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectIncr("ratelimit:1.2.3.4").SetVal(4)

		count, err := NewRedisCounter(db).Increment(ctx, "ratelimit:1.2.3.4", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("incr failure is wrapped", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		redisErr := errors.New("connection reset")
		mock.ExpectIncr("k").SetErr(redisErr)

		_, err := NewRedisCounter(db).Increment(ctx, "k", time.Minute)
		require.Error(t, err)
		assert.ErrorIs(t, err, redisErr)
		assert.Contains(t, err.Error(), "incrementing k")
	})

	t.Run("expire failure is reported", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		redisErr := errors.New("read only replica")
		mock.ExpectIncr("k").SetVal(1)
		mock.ExpectExpire("k", time.Minute).SetErr(redisErr)

		_, err := NewRedisCounter(db).Increment(ctx, "k", time.Minute)
		assert.ErrorIs(t, err, redisErr)
	})
}

// Exercises real expiry using an in-memory Redis server.
func TestRedisCounter_WindowExpires(t *testing.T) {
	s, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	counter := NewRedisCounter(client)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Increment(ctx, "ratelimit:client", 30*time.Second)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 30*time.Second, s.TTL("ratelimit:client"))

	s.FastForward(31 * time.Second)

	got, err := counter.Increment(ctx, "ratelimit:client", 30*time.Second)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestConnectRedis(t *testing.T) {
	ctx := context.Background()
	cfg := config.RedisConfig{Addr: "localhost:6379", DB: 2, ConnectTimeoutSeconds: 1}

	t.Run("should connect when ping succeeds", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mockNewClient := func(opt *redis.Options) *redis.Client {
			assert.Equal(t, "localhost:6379", opt.Addr)
			assert.Equal(t, 2, opt.DB)
			return db
		}
		mock.ExpectPing().SetVal("PONG")

		client, err := ConnectRedis(ctx, cfg, mockNewClient)
		require.NoError(t, err)
		assert.NotNil(t, client)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("should fail if ping fails", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mockNewClient := func(opt *redis.Options) *redis.Client { return db }

		expectedErr := errors.New("redis is down")
		mock.ExpectPing().SetErr(expectedErr)

		_, err := ConnectRedis(ctx, cfg, mockNewClient)
		require.Error(t, err)
		assert.ErrorIs(t, err, expectedErr)
	})

	t.Run("should reach a real server with the default constructor", func(t *testing.T) {
		s := miniredis.RunT(t)

		client, err := ConnectRedis(ctx, config.RedisConfig{Addr: s.Addr(), ConnectTimeoutSeconds: 1}, nil)
		require.NoError(t, err)
		assert.NoError(t, client.Close())
	})
}

func TestMockCounter(t *testing.T) {
	m := NewMockCounter()
	ctx := context.Background()

	n, _ := m.Increment(ctx, "a", time.Second)
	assert.Equal(t, int64(1), n)
	n, _ = m.Increment(ctx, "a", time.Second)
	assert.Equal(t, int64(2), n)

	m.Err = errors.New("boom")
	_, err := m.Increment(ctx, "a", time.Second)
	assert.Error(t, err)
}
