// Package cache memoizes store reads keyed by their arguments. Entries are
// only ever dropped all at once by Clear.
package cache

import (
	"context"

	"github.com/dharmasatrya/flightinsights/internal/models"
)

type Cache interface {
	GetSearchIDs(ctx context.Context) ([]string, bool)
	SetSearchIDs(ctx context.Context, ids []string) error
	GetRecords(ctx context.Context, searchID string) ([]models.SearchRecord, bool)
	SetRecords(ctx context.Context, searchID string, records []models.SearchRecord) error
	Clear(ctx context.Context) error
	Close() error
}

type NoOpCache struct{}

func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

func (c *NoOpCache) GetSearchIDs(ctx context.Context) ([]string, bool) {
	return nil, false
}

func (c *NoOpCache) SetSearchIDs(ctx context.Context, ids []string) error {
	return nil
}

func (c *NoOpCache) GetRecords(ctx context.Context, searchID string) ([]models.SearchRecord, bool) {
	return nil, false
}

func (c *NoOpCache) SetRecords(ctx context.Context, searchID string, records []models.SearchRecord) error {
	return nil
}

func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

func (c *NoOpCache) Close() error {
	return nil
}
