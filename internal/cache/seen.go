// Package cache keeps a best-effort redis set of already-persisted job
// fingerprints so re-scrapes of unchanged pages skip the DB probe. It is
// never authoritative — the unique index on jobs is — so every failure path
// degrades to "not seen" and lets the store decide.
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const seenTTL = 30 * 24 * time.Hour

// SeenCache wraps a redis client. A nil *SeenCache (or one built from an
// empty URL) is valid and answers "not seen" to everything.
type SeenCache struct {
	rdb *redis.Client
}

// New parses redisURL and verifies connectivity. An empty URL returns a nil
// cache without error so the caller can wire it unconditionally.
func New(ctx context.Context, redisURL string) (*SeenCache, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL(%q): %w", redisURL, err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return &SeenCache{rdb: client}, nil
}

// Key builds the fingerprint for one (company, title, url) identity. Title is
// case-folded to mirror the extractor's dedup semantics.
func Key(companyID uint, title, url string) string {
	sum := sha1.Sum([]byte(strings.ToLower(title) + "\x00" + url))
	return fmt.Sprintf("seen:%d:%s", companyID, hex.EncodeToString(sum[:]))
}

// IsSeen reports whether the fingerprint is cached. Errors count as not seen.
func (c *SeenCache) IsSeen(ctx context.Context, key string) bool {
	if c == nil || c.rdb == nil {
		return false
	}
	n, err := c.rdb.Exists(ctx, key).Result()
	return err == nil && n > 0
}

// Mark records a fingerprint after a successful insert. Errors are ignored;
// the worst case is one redundant DB probe next run.
func (c *SeenCache) Mark(ctx context.Context, key string) {
	if c == nil || c.rdb == nil {
		return
	}
	c.rdb.Set(ctx, key, "1", seenTTL)
}

// Close releases the underlying client.
func (c *SeenCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
