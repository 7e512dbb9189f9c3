package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/zconv/pkg/adapters/redis"
	"github.com/aretw0/zconv/pkg/domain"
	"github.com/aretw0/zconv/pkg/ports"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *backend.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	return mr, backend.NewClient(&backend.Options{Addr: mr.Addr()})
}

func TestRedisStore_Contract(t *testing.T) {
	_, client := newClient(t)
	ports.RunHistoryStoreContract(t, redis.NewFromClient(client))
}

func TestRedisStore_Prefix(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithPrefix("test:"))
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, domain.Record{Input: "abc", Output: []int{2}}))
	assert.True(t, mr.Exists("test:history"))
	assert.False(t, mr.Exists(redis.DefaultPrefix+"history"))

	items, err := mr.List("test:history")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.JSONEq(t, `{"input":"abc","output":[2]}`, items[0])
}

func TestRedisStore_Limit(t *testing.T) {
	_, client := newClient(t)
	store := redis.NewFromClient(client, redis.WithLimit(2))
	ctx := context.Background()

	for _, in := range []string{"a", "b", "c"} {
		require.NoError(t, store.Append(ctx, domain.Record{Input: in, Output: []int{1}}))
	}

	recs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].Input)
	assert.Equal(t, "c", recs[1].Input)
}

func TestRedisStore_ServerDown(t *testing.T) {
	mr, client := newClient(t)
	store := redis.NewFromClient(client)
	require.NoError(t, store.Ping(context.Background()))
	mr.Close()

	_, err := store.List(context.Background())
	assert.Error(t, err)
	assert.Error(t, store.Append(context.Background(), domain.Record{Input: "a"}))
}
