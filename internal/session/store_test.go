package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"universal-scraper/internal/config"
	"universal-scraper/pkg/models"
)

func result(titles ...string) *models.ExtractionResult {
	res := &models.ExtractionResult{CreatedAt: time.Now()}
	for _, title := range titles {
		res.Records = append(res.Records, models.RecordOf("title", title))
	}
	return res
}

func TestMemoryStoreMissingSession(t *testing.T) {
	_, err := NewMemoryStore(time.Hour).Get(context.Background(), "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)

	require.NoError(t, store.Put(ctx, "s1", result("first", "second")))
	require.NoError(t, store.Put(ctx, "s1", result("third")))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	assert.Equal(t, "third", got.Records[0].Text("title"))
	assert.Equal(t, 1, store.Len())
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	require.NoError(t, store.Put(ctx, "a", result("for a")))
	require.NoError(t, store.Put(ctx, "b", result("for b")))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "for b", got.Records[0].Text("title"))
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }
	require.NoError(t, store.Put(ctx, "s1", result("x")))

	current = current.Add(2 * time.Minute)
	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 0, store.Len())
}

func TestNewStoreSelectsBackend(t *testing.T) {
	cfg := config.Default()

	store, err := NewStore(cfg)
	require.NoError(t, err)
	assert.Equal(t, "memory", store.Name())
	assert.NoError(t, store.Health(context.Background()))

	cfg.Session.Store = "redis"
	store, err = NewStore(cfg)
	require.NoError(t, err)
	assert.Equal(t, "redis", store.Name())
	require.NoError(t, store.Close())

	cfg.Session.Store = "carrier-pigeon"
	_, err = NewStore(cfg)
	assert.Error(t, err)
}

func TestRedisOptionsFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Redis.URL = "redis://cache.internal:6380/2"
	cfg.Redis.Password = "hunter2"
	cfg.Redis.Timeout = 2 * time.Second

	opts, err := redisOptions(cfg)
	require.NoError(t, err)
	assert.Equal(t, "cache.internal:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "hunter2", opts.Password)
	assert.Equal(t, 2*time.Second, opts.ReadTimeout)

	cfg.Redis.URL = "not a url"
	_, err = redisOptions(cfg)
	assert.Error(t, err)
}

func TestRedisKey(t *testing.T) {
	assert.Equal(t, "scraper:session:abc", redisKey("abc"))
}
