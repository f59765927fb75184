package inmemory

import (
	"sync"
	"time"
)

// CategoryNamesCache is a per-owner TTL cache of category id to name maps.
type CategoryNamesCache struct {
	mu    sync.RWMutex
	items map[string]categoryNamesItem
	now   func() time.Time
}

type categoryNamesItem struct {
	value     map[string]string
	expiresAt time.Time
}

func NewCategoryNamesCache() *CategoryNamesCache {
	return &CategoryNamesCache{
		items: make(map[string]categoryNamesItem),
		now:   time.Now,
	}
}

func (c *CategoryNamesCache) GetByOwnerID(ownerID string) (map[string]string, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[ownerID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[ownerID]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, ownerID)
		}
		c.mu.Unlock()
		return nil, false
	}

	return cloneNames(item.value), true
}

func (c *CategoryNamesCache) SetByOwnerID(ownerID string, names map[string]string, ttl time.Duration) {
	if ttl <= 0 {
		c.DeleteByOwnerID(ownerID)
		return
	}

	c.mu.Lock()
	c.items[ownerID] = categoryNamesItem{
		value:     cloneNames(names),
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *CategoryNamesCache) DeleteByOwnerID(ownerID string) {
	c.mu.Lock()
	delete(c.items, ownerID)
	c.mu.Unlock()
}

func cloneNames(names map[string]string) map[string]string {
	if names == nil {
		return nil
	}
	cloned := make(map[string]string, len(names))
	for id, name := range names {
		cloned[id] = name
	}
	return cloned
}
