// Package catalog serves memoized reads of search documents and assembles
// the dashboard views built on them.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dharmasatrya/flightinsights/internal/aggregator"
	"github.com/dharmasatrya/flightinsights/internal/cache"
	"github.com/dharmasatrya/flightinsights/internal/itinerary"
	"github.com/dharmasatrya/flightinsights/internal/models"
	"github.com/dharmasatrya/flightinsights/internal/ranking"
	"github.com/dharmasatrya/flightinsights/internal/store"
)

// Catalog reads through a cache in front of the repository.
//
// Every read holds mu for reading for its whole duration and Refresh holds
// it for writing, so a single read never sees a mix of data from before
// and after a refresh.
type Catalog struct {
	repo       store.Repository
	cache      cache.Cache
	summarizer *itinerary.Summarizer
	logger     *slog.Logger

	mu sync.RWMutex
}

func New(repo store.Repository, c cache.Cache, summarizer *itinerary.Summarizer, logger *slog.Logger) *Catalog {
	if c == nil {
		c = cache.NewNoOpCache()
	}
	if summarizer == nil {
		summarizer = itinerary.NewSummarizer("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Catalog{repo: repo, cache: c, summarizer: summarizer, logger: logger}
}

// SearchIDs returns every stored search id, or models.ErrNoSearches when
// the store holds none.
func (c *Catalog) SearchIDs(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.searchIDs(ctx)
}

func (c *Catalog) searchIDs(ctx context.Context) ([]string, error) {
	ids, ok := c.cache.GetSearchIDs(ctx)
	if !ok {
		var err error
		ids, err = c.repo.ListSearchIDs(ctx)
		if err != nil {
			return nil, fmt.Errorf("catalog.Catalog.SearchIDs: %w", err)
		}
		if err := c.cache.SetSearchIDs(ctx, ids); err != nil {
			c.logger.Warn("cache write failed", "key", "search_ids", "error", err)
		}
	}

	if len(ids) == 0 {
		return []string{}, models.ErrNoSearches
	}
	return ids, nil
}

// Records returns all documents stored under id, possibly none.
func (c *Catalog) Records(ctx context.Context, id string) ([]models.SearchRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.records(ctx, id)
}

func (c *Catalog) records(ctx context.Context, id string) ([]models.SearchRecord, error) {
	if records, ok := c.cache.GetRecords(ctx, id); ok {
		return records, nil
	}

	records, err := c.repo.FetchBySearchID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("catalog.Catalog.Records: %w", err)
	}
	if err := c.cache.SetRecords(ctx, id, records); err != nil {
		c.logger.Warn("cache write failed", "key", "records", "search_id", id, "error", err)
	}
	return records, nil
}

// Record returns the first document stored under id. Which one is first is
// up to the store when ids are duplicated.
func (c *Catalog) Record(ctx context.Context, id string) (models.SearchRecord, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.record(ctx, id)
}

func (c *Catalog) record(ctx context.Context, id string) (models.SearchRecord, error) {
	records, err := c.records(ctx, id)
	if err != nil {
		return models.SearchRecord{}, err
	}
	if len(records) == 0 {
		return models.SearchRecord{}, fmt.Errorf("catalog.Catalog.Record: %s: %w", id, models.ErrNoRecords)
	}
	if len(records) > 1 {
		c.logger.Warn("duplicate search id, using first document", "search_id", id, "documents", len(records))
	}
	return records[0], nil
}

// DumpAll bypasses the cache: the raw passthrough always reflects the store.
func (c *Catalog) DumpAll(ctx context.Context) ([]json.RawMessage, error) {
	docs, err := c.repo.DumpAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("catalog.Catalog.DumpAll: %w", err)
	}
	if docs == nil {
		docs = []json.RawMessage{}
	}
	return docs, nil
}

// Refresh drops every cached entry; the next reads go to the repository.
func (c *Catalog) Refresh(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.cache.Clear(ctx); err != nil {
		return fmt.Errorf("catalog.Catalog.Refresh: %w", err)
	}
	c.logger.Info("cache cleared")
	return nil
}

// Itineraries summarizes the record stored under id.
func (c *Catalog) Itineraries(ctx context.Context, id string) ([]models.ItinerarySummary, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, err := c.record(ctx, id)
	if err != nil {
		return nil, err
	}
	return c.summarizer.Summarize(rec), nil
}

// Flights flattens the record stored under id.
func (c *Catalog) Flights(ctx context.Context, id string) ([]models.FlightDetail, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, err := c.record(ctx, id)
	if err != nil {
		return nil, err
	}
	return itinerary.Flatten(rec), nil
}

// Overview returns the search-level KPIs of the record stored under id.
func (c *Catalog) Overview(ctx context.Context, id string) (models.SearchOverview, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, err := c.record(ctx, id)
	if err != nil {
		return models.SearchOverview{}, err
	}
	return itinerary.Overview(rec), nil
}

// Stats computes global and per-airline statistics. Overall is nil when the
// record has no recommendations.
func (c *Catalog) Stats(ctx context.Context, id string, m aggregator.Measure) (models.StatsResponse, error) {
	summaries, err := c.Itineraries(ctx, id)
	if err != nil {
		return models.StatsResponse{}, err
	}

	resp := models.StatsResponse{
		SearchID: id,
		Measure:  string(m),
		ByGroup:  aggregator.ByAirlines(summaries, m),
	}
	overall, err := aggregator.Overall(summaries, m)
	switch {
	case errors.Is(err, models.ErrNoData):
		resp.Message = "no price data for this search"
	case err != nil:
		return models.StatsResponse{}, err
	default:
		resp.Overall = &overall
	}
	return resp, nil
}

// Dashboard assembles every view of one search from a single read.
func (c *Catalog) Dashboard(ctx context.Context, id string, m aggregator.Measure, bins int) (models.Dashboard, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, err := c.record(ctx, id)
	if err != nil {
		return models.Dashboard{}, err
	}

	summaries := ranking.CalculateScores(c.summarizer.Summarize(rec))

	dash := models.Dashboard{
		Overview:       itinerary.Overview(rec),
		ByAirlines:     aggregator.ByAirlines(summaries, m),
		ByMainAirline:  aggregator.ByMainAirline(rec),
		PriceHistogram: aggregator.Histogram(aggregator.Prices(summaries, m), bins),
		Itineraries:    summaries,
		Flights:        itinerary.Flatten(rec),
	}
	if overall, err := aggregator.Overall(summaries, m); err == nil {
		dash.Overall = &overall
	}
	if best, ok := ranking.Best(summaries); ok {
		dash.BestValue = &best
	}

	return dash, nil
}
