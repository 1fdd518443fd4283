package catalog_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/flightinsights/internal/aggregator"
	"github.com/dharmasatrya/flightinsights/internal/cache"
	"github.com/dharmasatrya/flightinsights/internal/catalog"
	"github.com/dharmasatrya/flightinsights/internal/itinerary"
	"github.com/dharmasatrya/flightinsights/internal/models"
)

type fakeRepo struct {
	mu         sync.Mutex
	listCalls  int
	fetchCalls int

	listFn  func() ([]string, error)
	fetchFn func(id string) ([]models.SearchRecord, error)
	dumpFn  func() ([]json.RawMessage, error)
}

func (f *fakeRepo) ListSearchIDs(context.Context) ([]string, error) {
	f.mu.Lock()
	f.listCalls++
	f.mu.Unlock()
	return f.listFn()
}

func (f *fakeRepo) FetchBySearchID(_ context.Context, id string) ([]models.SearchRecord, error) {
	f.mu.Lock()
	f.fetchCalls++
	f.mu.Unlock()
	return f.fetchFn(id)
}

func (f *fakeRepo) DumpAll(context.Context) ([]json.RawMessage, error) {
	return f.dumpFn()
}

func (f *fakeRepo) Ping(context.Context) error { return nil }

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seg(airline, depTime, arrTime string) models.FlightSegment {
	return models.FlightSegment{
		MarketingAirline: models.Text(airline),
		DepAirport:       "CDG",
		DepDate:          "2024-01-01",
		DepTime:          models.Text(depTime),
		ArrAirport:       "JFK",
		ArrDate:          "2024-01-01",
		ArrTime:          models.Text(arrTime),
	}
}

func sampleRecord() models.SearchRecord {
	return models.SearchRecord{
		SearchID:          "s-1",
		SearchDate:        "2023-12-20",
		RequestDepDate:    "2024-01-01",
		RequestReturnDate: "2024-01-08",
		OriginCity:        "PAR",
		DestinationCity:   "NYC",
		Recos: []models.Recommendation{
			{
				Price: 500, Fees: 20, MainMarketingAirline: "AB",
				Flights: []models.FlightSegment{seg("AB", "10:00", "13:45")},
			},
			{
				Price: 300, MainMarketingAirline: "CD",
				Flights: []models.FlightSegment{seg("CD", "08:00", "10:00"), seg("CD", "12:00", "15:30")},
			},
		},
	}
}

func newRepo() *fakeRepo {
	return &fakeRepo{
		listFn: func() ([]string, error) { return []string{"s-1"}, nil },
		fetchFn: func(id string) ([]models.SearchRecord, error) {
			if id != "s-1" {
				return nil, nil
			}
			return []models.SearchRecord{sampleRecord()}, nil
		},
		dumpFn: func() ([]json.RawMessage, error) {
			return []json.RawMessage{json.RawMessage(`{"search_id":"s-1"}`)}, nil
		},
	}
}

func newCatalog(repo *fakeRepo) *catalog.Catalog {
	return catalog.New(repo, cache.NewMemoryCache(), itinerary.NewSummarizer("EUR"), discard())
}

// ── memoization ──

func TestCatalog_SearchIDsMemoized(t *testing.T) {
	repo := newRepo()
	c := newCatalog(repo)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ids, err := c.SearchIDs(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"s-1"}, ids)
	}
	assert.Equal(t, 1, repo.listCalls)
}

func TestCatalog_RecordsMemoizedPerID(t *testing.T) {
	repo := newRepo()
	c := newCatalog(repo)
	ctx := context.Background()

	_, err := c.Records(ctx, "s-1")
	require.NoError(t, err)
	_, err = c.Records(ctx, "s-1")
	require.NoError(t, err)
	_, err = c.Records(ctx, "other")
	require.NoError(t, err)

	assert.Equal(t, 2, repo.fetchCalls)
}

func TestCatalog_RefreshInvalidates(t *testing.T) {
	repo := newRepo()
	c := newCatalog(repo)
	ctx := context.Background()

	_, err := c.SearchIDs(ctx)
	require.NoError(t, err)
	_, err = c.Records(ctx, "s-1")
	require.NoError(t, err)

	require.NoError(t, c.Refresh(ctx))

	_, err = c.SearchIDs(ctx)
	require.NoError(t, err)
	_, err = c.Records(ctx, "s-1")
	require.NoError(t, err)

	assert.Equal(t, 2, repo.listCalls)
	assert.Equal(t, 2, repo.fetchCalls)
}

func TestCatalog_RefreshPicksUpNewData(t *testing.T) {
	repo := newRepo()
	c := newCatalog(repo)
	ctx := context.Background()

	_, err := c.SearchIDs(ctx)
	require.NoError(t, err)

	repo.listFn = func() ([]string, error) { return []string{"s-1", "s-2"}, nil }

	ids, err := c.SearchIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1"}, ids, "stale until refreshed")

	require.NoError(t, c.Refresh(ctx))
	ids, err = c.SearchIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1", "s-2"}, ids)
}

func TestCatalog_ErrorsAreNotCached(t *testing.T) {
	repo := newRepo()
	fail := true
	repo.fetchFn = func(string) ([]models.SearchRecord, error) {
		if fail {
			return nil, models.ErrStoreUnavailable
		}
		return []models.SearchRecord{sampleRecord()}, nil
	}
	c := newCatalog(repo)
	ctx := context.Background()

	_, err := c.Records(ctx, "s-1")
	require.ErrorIs(t, err, models.ErrStoreUnavailable)

	fail = false
	recs, err := c.Records(ctx, "s-1")
	require.NoError(t, err)
	assert.Len(t, recs, 1)
	assert.Equal(t, 2, repo.fetchCalls)
}

// ── empty states ──

func TestCatalog_NoSearches(t *testing.T) {
	repo := newRepo()
	repo.listFn = func() ([]string, error) { return nil, nil }
	c := newCatalog(repo)

	ids, err := c.SearchIDs(context.Background())
	require.ErrorIs(t, err, models.ErrNoSearches)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)
}

func TestCatalog_RecordMissing(t *testing.T) {
	c := newCatalog(newRepo())

	_, err := c.Record(context.Background(), "missing")
	require.ErrorIs(t, err, models.ErrNoRecords)

	_, err = c.Dashboard(context.Background(), "missing", aggregator.MeasurePrice, 5)
	require.ErrorIs(t, err, models.ErrNoRecords)
}

func TestCatalog_DuplicateIDsUseFirst(t *testing.T) {
	repo := newRepo()
	repo.fetchFn = func(string) ([]models.SearchRecord, error) {
		second := sampleRecord()
		second.OriginCity = "LON"
		return []models.SearchRecord{sampleRecord(), second}, nil
	}
	c := newCatalog(repo)

	rec, err := c.Record(context.Background(), "s-1")
	require.NoError(t, err)
	assert.Equal(t, models.Text("PAR"), rec.OriginCity)
}

func TestCatalog_StatsWithoutRecommendations(t *testing.T) {
	repo := newRepo()
	repo.fetchFn = func(string) ([]models.SearchRecord, error) {
		return []models.SearchRecord{{SearchID: "s-1"}}, nil
	}
	c := newCatalog(repo)

	stats, err := c.Stats(context.Background(), "s-1", aggregator.MeasurePrice)
	require.NoError(t, err)
	assert.Nil(t, stats.Overall)
	assert.NotEmpty(t, stats.Message)
	assert.Empty(t, stats.ByGroup)
}

// ── derived views ──

func TestCatalog_Stats(t *testing.T) {
	c := newCatalog(newRepo())

	stats, err := c.Stats(context.Background(), "s-1", aggregator.MeasureTotalPrice)
	require.NoError(t, err)
	require.NotNil(t, stats.Overall)
	assert.Equal(t, "total_price", stats.Measure)
	assert.Equal(t, 2, stats.Overall.Count)
	assert.InDelta(t, 300, stats.Overall.Min, 1e-9)
	assert.InDelta(t, 520, stats.Overall.Max, 1e-9)

	require.Len(t, stats.ByGroup, 2)
	assert.Equal(t, "CD", stats.ByGroup[0].Airlines)
	assert.Equal(t, "AB", stats.ByGroup[1].Airlines)
}

func TestCatalog_Dashboard(t *testing.T) {
	c := newCatalog(newRepo())

	dash, err := c.Dashboard(context.Background(), "s-1", aggregator.MeasurePrice, 4)
	require.NoError(t, err)

	assert.Equal(t, "s-1", dash.Overview.SearchID)
	require.NotNil(t, dash.Overview.LeadTimeDays)
	assert.Equal(t, 12, *dash.Overview.LeadTimeDays)
	require.NotNil(t, dash.Overview.StayDays)
	assert.Equal(t, 7, *dash.Overview.StayDays)

	require.NotNil(t, dash.Overall)
	assert.InDelta(t, 400, dash.Overall.Mean, 1e-9)

	assert.Len(t, dash.Itineraries, 2)
	assert.Len(t, dash.Flights, 3)
	assert.Len(t, dash.PriceHistogram, 4)
	assert.Len(t, dash.ByMainAirline, 2)

	total := 0
	for _, b := range dash.PriceHistogram {
		total += b.Count
	}
	assert.Equal(t, 2, total)

	require.NotNil(t, dash.BestValue)
	assert.Equal(t, 2, dash.BestValue.ItineraryID, "cheaper itinerary wins despite the stop")
}

func TestCatalog_DumpAllBypassesCache(t *testing.T) {
	repo := newRepo()
	calls := 0
	repo.dumpFn = func() ([]json.RawMessage, error) {
		calls++
		return nil, nil
	}
	c := newCatalog(repo)

	docs, err := c.DumpAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)

	_, err = c.DumpAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestCatalog_DumpAllWrapsError(t *testing.T) {
	repo := newRepo()
	boom := errors.New("boom")
	repo.dumpFn = func() ([]json.RawMessage, error) { return nil, boom }
	c := newCatalog(repo)

	_, err := c.DumpAll(context.Background())
	require.ErrorIs(t, err, boom)
}

func TestCatalog_ConcurrentReadsAndRefresh(t *testing.T) {
	c := newCatalog(newRepo())
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = c.Dashboard(ctx, "s-1", aggregator.MeasurePrice, 3)
		}()
		go func() {
			defer wg.Done()
			_ = c.Refresh(ctx)
		}()
	}
	wg.Wait()

	ids, err := c.SearchIDs(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"s-1"}, ids)
}
