package schema

import (
	"sync"
)

// Cache is an explicit in-memory schema cache with a defined lifecycle:
// populated on each fresh fetch, read on a not-modified response and on
// network failure, never auto-expired. It is passed around explicitly,
// there is no module-level singleton.
type Cache struct {
	lock sync.RWMutex
	last *Info
}

func NewCache() *Cache {
	return &Cache{}
}

// Store remembers the last successfully fetched schema.
func (c *Cache) Store(info *Info) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.last = info
}

// Last returns the last stored schema, or (nil, false) when empty.
func (c *Cache) Last() (*Info, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.last == nil {
		return nil, false
	}
	return c.last, true
}

// ETag returns the ETag to send as the conditional fetch header,
// empty when the cache is cold.
func (c *Cache) ETag() string {
	c.lock.RLock()
	defer c.lock.RUnlock()
	if c.last == nil {
		return ""
	}
	return c.last.ETag
}
