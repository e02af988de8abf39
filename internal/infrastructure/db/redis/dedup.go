package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker guards against an account registering for the same event
// twice in quick succession, before the registration ever reaches the store.
// Key format: dedup:<account_id>:<event_id>
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether this account already registered for the event.
func (d *DedupChecker) IsDuplicate(ctx context.Context, accountID, eventID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(accountID, eventID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the registration (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, accountID, eventID string) error {
	return d.client.Set(ctx, d.key(accountID, eventID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(accountID, eventID string) string {
	return fmt.Sprintf("dedup:%s:%s", accountID, eventID)
}
