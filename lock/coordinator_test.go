package lock

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/lithammer/shortuuid/v3"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rdb *redis.Client
var getRedisOnce sync.Once

func getRedis(t *testing.T) *redis.Client {
	t.Helper()

	if os.Getenv("REDIS_ADDR") == "" {
		t.Skip("REDIS_ADDR not set")
	}

	getRedisOnce.Do(func() {
		rdb = redis.NewClient(&redis.Options{
			Addr: os.Getenv("REDIS_ADDR"),
		})
	})
	return rdb
}

func testKey() string {
	return fmt.Sprintf("test_lock_%s", shortuuid.New())
}

func TestAcquireIsExclusivePerResource(t *testing.T) {
	coordinator := NewCoordinator(getRedis(t))
	ctx := context.Background()
	key := testKey()

	granted, err := coordinator.Acquire(ctx, key, "holder-a", time.Minute)
	require.NoError(t, err)
	require.True(t, granted)

	granted, err = coordinator.Acquire(ctx, key, "holder-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, granted, "a held lease must not be granted to another holder")

	otherKey := testKey()
	granted, err = coordinator.Acquire(ctx, otherKey, "holder-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, granted, "distinct resources are independent")
}

func TestReleaseIsIdempotentAndHolderScoped(t *testing.T) {
	coordinator := NewCoordinator(getRedis(t))
	ctx := context.Background()
	key := testKey()

	granted, err := coordinator.Acquire(ctx, key, "holder-a", time.Minute)
	require.NoError(t, err)
	require.True(t, granted)

	// a holder that never had the lease cannot release it
	require.NoError(t, coordinator.Release(ctx, key, "holder-b"))

	granted, err = coordinator.Acquire(ctx, key, "holder-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, granted, "foreign release must not free the lease")

	require.NoError(t, coordinator.Release(ctx, key, "holder-a"))

	granted, err = coordinator.Acquire(ctx, key, "holder-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, granted)

	// releasing an unheld resource is a no-op
	require.NoError(t, coordinator.Release(ctx, testKey(), "holder-a"))
}

func TestLeaseExpiresOnItsOwn(t *testing.T) {
	coordinator := NewCoordinator(getRedis(t))
	ctx := context.Background()
	key := testKey()

	granted, err := coordinator.Acquire(ctx, key, "holder-a", 100*time.Millisecond)
	require.NoError(t, err)
	require.True(t, granted)

	assert.EventuallyWithT(t, func(t *assert.CollectT) {
		granted, err := coordinator.Acquire(ctx, key, "holder-b", time.Minute)
		if !assert.NoError(t, err) {
			return
		}
		assert.True(t, granted, "lease should expire without an explicit release")
	}, time.Second, 50*time.Millisecond)
}

func TestConcurrentAcquireGrantsExactlyOne(t *testing.T) {
	coordinator := NewCoordinator(getRedis(t))
	ctx := context.Background()
	key := testKey()

	const holders = 10

	var wg sync.WaitGroup
	grants := make(chan string, holders)

	for i := 0; i < holders; i++ {
		holderToken := fmt.Sprintf("holder-%d", i)
		wg.Add(1)
		go func() {
			defer wg.Done()

			granted, err := coordinator.Acquire(ctx, key, holderToken, time.Minute)
			assert.NoError(t, err)
			if granted {
				grants <- holderToken
			}
		}()
	}

	wg.Wait()
	close(grants)

	var winners []string
	for holderToken := range grants {
		winners = append(winners, holderToken)
	}
	require.Len(t, winners, 1, "exactly one concurrent holder may win the lease")

	require.NoError(t, coordinator.Release(ctx, key, winners[0]))
}
