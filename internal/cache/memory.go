package cache

import (
	"context"
	"sync"

	"github.com/dharmasatrya/flightinsights/internal/models"
)

// MemoryCache keeps entries in process memory.
type MemoryCache struct {
	mu        sync.RWMutex
	searchIDs []string
	hasIDs    bool
	records   map[string][]models.SearchRecord
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{records: make(map[string][]models.SearchRecord)}
}

func (c *MemoryCache) GetSearchIDs(ctx context.Context) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.hasIDs {
		return nil, false
	}
	return append([]string(nil), c.searchIDs...), true
}

func (c *MemoryCache) SetSearchIDs(ctx context.Context, ids []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchIDs = append([]string(nil), ids...)
	c.hasIDs = true
	return nil
}

func (c *MemoryCache) GetRecords(ctx context.Context, searchID string) ([]models.SearchRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	records, ok := c.records[searchID]
	if !ok {
		return nil, false
	}
	return append([]models.SearchRecord(nil), records...), true
}

func (c *MemoryCache) SetRecords(ctx context.Context, searchID string, records []models.SearchRecord) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records[searchID] = append([]models.SearchRecord(nil), records...)
	return nil
}

func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.searchIDs = nil
	c.hasIDs = false
	c.records = make(map[string][]models.SearchRecord)
	return nil
}

func (c *MemoryCache) Close() error {
	return nil
}
