package kv_test

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/scmmishra/subly/internal/kv"
)

func backends(t *testing.T) map[string]kv.Store {
	t.Helper()

	sqliteStore, err := kv.OpenSQLite(":memory:")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	redisStore := kv.NewRedis(rdb)

	t.Cleanup(func() {
		sqliteStore.Close()
		redisStore.Close()
	})

	return map[string]kv.Store{
		"sqlite": sqliteStore,
		"redis":  redisStore,
	}
}

func TestStore_GetMissing(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "link:none")
			require.True(t, errors.Is(err, kv.ErrNotFound), "err = %v", err)
		})
	}
}

func TestStore_PutGetOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "link:a", []byte("one")))
			require.NoError(t, s.Put(ctx, "link:a", []byte("two")))

			got, err := s.Get(ctx, "link:a")
			require.NoError(t, err)
			require.Equal(t, "two", string(got))
		})
	}
}

func TestStore_PutIfAbsent(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ok, err := s.PutIfAbsent(ctx, "link:x", []byte("first"))
			require.NoError(t, err)
			require.True(t, ok)

			ok, err = s.PutIfAbsent(ctx, "link:x", []byte("second"))
			require.NoError(t, err)
			require.False(t, ok)

			got, err := s.Get(ctx, "link:x")
			require.NoError(t, err)
			require.Equal(t, "first", string(got))
		})
	}
}

func TestStore_DeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "link:d", []byte("v")))
			require.NoError(t, s.Delete(ctx, "link:d"))
			require.NoError(t, s.Delete(ctx, "link:d"))

			_, err := s.Get(ctx, "link:d")
			require.ErrorIs(t, err, kv.ErrNotFound)
		})
	}
}

func TestStore_KeysByPrefix(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Put(ctx, "link:b", []byte("1")))
			require.NoError(t, s.Put(ctx, "clicks:b", []byte("2")))
			require.NoError(t, s.Put(ctx, "link:a", []byte("3")))
			require.NoError(t, s.Put(ctx, "link*odd", []byte("4")))

			keys, err := s.Keys(ctx, "link:")
			require.NoError(t, err)
			require.ElementsMatch(t, []string{"link:a", "link:b"}, keys)
		})
	}
}

func TestSQLiteStore_KeysInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s, err := kv.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer s.Close()

	for _, k := range []string{"link:c", "link:a", "link:b"} {
		require.NoError(t, s.Put(ctx, k, []byte("v")))
	}
	// overwriting keeps the original position
	require.NoError(t, s.Put(ctx, "link:c", []byte("v2")))

	keys, err := s.Keys(ctx, "link:")
	require.NoError(t, err)
	require.Equal(t, []string{"link:c", "link:a", "link:b"}, keys)
}

func TestOpen_Schemes(t *testing.T) {
	ctx := context.Background()

	s, err := kv.Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	require.IsType(t, &kv.SQLiteStore{}, s)
	s.Close()

	mr := miniredis.RunT(t)
	r, err := kv.Open(ctx, "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	require.IsType(t, &kv.RedisStore{}, r)
	r.Close()
}

func TestOpen_RedisUnreachable(t *testing.T) {
	_, err := kv.Open(context.Background(), "redis://127.0.0.1:1/0")
	require.Error(t, err)
}
