package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only when it is still held by the
// caller, so an expired lease re-acquired by someone else is never
// released by the old holder.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Coordinator hands out short-lived, per-resource leases backed by
// Redis. Leases expire on their own after the TTL, so a holder that
// crashes mid-checkout cannot wedge a product forever.
type Coordinator struct {
	rdb *redis.Client
}

func NewCoordinator(rdb *redis.Client) *Coordinator {
	if rdb == nil {
		panic("redis client is nil")
	}
	return &Coordinator{
		rdb: rdb,
	}
}

// Acquire attempts to take the lease for resourceKey. It never blocks
// waiting for another holder: a held lease means a false return.
func (c *Coordinator) Acquire(ctx context.Context, resourceKey, holderToken string, ttl time.Duration) (bool, error) {
	granted, err := c.rdb.SetNX(ctx, resourceKey, holderToken, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("could not acquire lease for %s: %w", resourceKey, err)
	}

	return granted, nil
}

// Release gives the lease back. Releasing a lease that expired or was
// never held is a no-op.
func (c *Coordinator) Release(ctx context.Context, resourceKey, holderToken string) error {
	err := releaseScript.Run(ctx, c.rdb, []string{resourceKey}, holderToken).Err()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("could not release lease for %s: %w", resourceKey, err)
	}

	return nil
}
