// Package memcache is the in-process Cache used when Redis is not configured.
package memcache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"hotel_merge/internal/adapters/observability"
)

type Cache struct{ c *gocache.Cache }

func New(defaultTTL time.Duration) *Cache {
	return &Cache{c: gocache.New(defaultTTL, 2*defaultTTL)}
}

// Values are stored JSON-encoded so callers never share memory with the cache.
func (m *Cache) Get(_ context.Context, key string, dst any) (bool, error) {
	v, ok := m.c.Get(key)
	if !ok {
		observability.ObserveCache("memory", "miss")
		return false, nil
	}
	observability.ObserveCache("memory", "hit")
	return true, json.Unmarshal(v.([]byte), dst)
}

func (m *Cache) Set(_ context.Context, key string, v any, ttlSec int) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	observability.ObserveCache("memory", "set")
	m.c.Set(key, b, time.Duration(ttlSec)*time.Second)
	return nil
}

func (m *Cache) Del(_ context.Context, key string) error {
	observability.ObserveCache("memory", "del")
	m.c.Delete(key)
	return nil
}

func (m *Cache) DelPrefix(_ context.Context, prefix string) error {
	observability.ObserveCache("memory", "purge")
	for k := range m.c.Items() {
		if strings.HasPrefix(k, prefix) {
			m.c.Delete(k)
		}
	}
	return nil
}
