// Package pagecache is a small injectable response cache with a fixed TTL.
// The public feed route is cached for a few seconds so repeated anonymous
// hits on the front page don't reach the database.
package pagecache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultTTL matches the original page cache expiry.
const DefaultTTL = 20 * time.Second

// Cache stores rendered response bodies keyed by request identity.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte)
}

// Key derives the cache key from the route path and the raw query string,
// so differently paginated or filtered requests never share an entry.
func Key(path, rawQuery string) string {
	if rawQuery == "" {
		return path
	}
	return path + "?" + rawQuery
}

// TTLCache is the go-cache backed implementation.
type TTLCache struct {
	store *gocache.Cache
}

func NewTTL(ttl time.Duration) *TTLCache {
	return &TTLCache{store: gocache.New(ttl, 2*ttl)}
}

func (c *TTLCache) Get(key string) ([]byte, bool) {
	v, ok := c.store.Get(key)
	if !ok {
		return nil, false
	}
	body, ok := v.([]byte)
	return body, ok
}

func (c *TTLCache) Set(key string, body []byte) {
	c.store.Set(key, body, gocache.DefaultExpiration)
}
