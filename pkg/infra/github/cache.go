package github

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// lruCache is a bounded httpcache.Cache
type lruCache struct {
	entries *lru.Cache[string, []byte]
}

func newLRUCache(size int) *lruCache {
	if size <= 0 {
		size = DefaultCacheEntries
	}
	// lru.New only fails for a non-positive size
	entries, _ := lru.New[string, []byte](size)
	return &lruCache{entries: entries}
}

func (c *lruCache) Get(key string) ([]byte, bool) {
	return c.entries.Get(key)
}

func (c *lruCache) Set(key string, resp []byte) {
	c.entries.Add(key, resp)
}

func (c *lruCache) Delete(key string) {
	c.entries.Remove(key)
}
