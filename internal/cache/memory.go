package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/carelinkhq/carebundle/internal/domain/profile"
)

// MemoryCache is an in-process ProfileCache for single-node deployments and
// tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*profile.NeedsProfile
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]*profile.NeedsProfile)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*profile.NeedsProfile, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	p, ok := c.entries[key]
	return p, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, p *profile.NeedsProfile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = p
	return nil
}

func (c *MemoryCache) Invalidate(_ context.Context, patientID uuid.UUID) error {
	prefix := patientKeyPrefix(patientID)
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
	return nil
}
