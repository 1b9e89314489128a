package testkit

import (
	"context"
	"sync"
	"time"
)

type cacheEntry struct {
	value    []byte
	expireAt time.Time
}

// Cache 内存版 redis.Cache，Now 可替换以模拟过期
type Cache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	Now     func() time.Time
	faults
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry), Now: time.Now}
}

func (c *Cache) Get(_ context.Context, key string) ([]byte, bool, error) {
	if err := c.hit("Get"); err != nil {
		return nil, false, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !e.expireAt.IsZero() && !c.Now().Before(e.expireAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *Cache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if err := c.hit("Set"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e := cacheEntry{value: value}
	if ttl > 0 {
		e.expireAt = c.Now().Add(ttl)
	}
	c.entries[key] = e
	return nil
}

func (c *Cache) Delete(_ context.Context, key string) error {
	if err := c.hit("Delete"); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

// Has 不计入调用次数
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && (e.expireAt.IsZero() || c.Now().Before(e.expireAt))
}
