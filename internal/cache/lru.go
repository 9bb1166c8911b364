package cache

import (
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/scmmishra/subly/internal/models"
)

// LinkCache holds recently resolved records by subdomain. Entries expire after
// ttl so counters and deletions made by other processes show up eventually.
type LinkCache struct {
	c *expirable.LRU[string, *models.Link]
}

func New(size int, ttl time.Duration) *LinkCache {
	return &LinkCache{c: expirable.NewLRU[string, *models.Link](size, nil, ttl)}
}

func key(sub string) string {
	return strings.ToLower(sub)
}

func (lc *LinkCache) Get(sub string) (*models.Link, bool) {
	return lc.c.Get(key(sub))
}

func (lc *LinkCache) Set(link *models.Link) {
	lc.c.Add(key(link.Subdomain), link)
}

func (lc *LinkCache) Invalidate(sub string) {
	lc.c.Remove(key(sub))
}

func (lc *LinkCache) Len() int {
	return lc.c.Len()
}
