package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records revoked token ids in Redis.
// Key format: revoked:<jti>
type Denylist struct {
	client *redis.Client
	now    func() time.Time
}

func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client, now: time.Now}
}

// Revoke marks tokenID revoked until the given time. A zero until keeps the
// entry forever; an until already in the past is a no-op since the token can
// no longer be verified anyway.
func (d *Denylist) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl, ok := d.ttl(until)
	if !ok {
		return nil
	}
	if err := d.client.Set(ctx, key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether tokenID has been revoked.
func (d *Denylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := d.client.Exists(ctx, key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("revocation check: %w", err)
	}
	return n > 0, nil
}

// ttl converts an expiry instant into a Redis expiration. Zero means no
// expiration to go-redis.
func (d *Denylist) ttl(until time.Time) (time.Duration, bool) {
	if until.IsZero() {
		return 0, true
	}
	remaining := until.Sub(d.now())
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

func key(tokenID string) string {
	return "revoked:" + tokenID
}
