package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dharmasatrya/flightinsights/internal/models"
	"github.com/dharmasatrya/flightinsights/internal/ratelimit"
)

const (
	OpListSearchIDs   = "list_search_ids"
	OpFetchBySearchID = "fetch_by_search_id"
	OpDumpAll         = "dump_all"
)

// Throttled rate-limits each Repository operation independently. Ping is
// never throttled.
type Throttled struct {
	next    Repository
	limiter *ratelimit.OperationLimiter
}

func NewThrottled(next Repository, limiter *ratelimit.OperationLimiter) *Throttled {
	return &Throttled{next: next, limiter: limiter}
}

func (t *Throttled) Ping(ctx context.Context) error {
	return t.next.Ping(ctx)
}

func (t *Throttled) ListSearchIDs(ctx context.Context) ([]string, error) {
	if err := t.limiter.Wait(ctx, OpListSearchIDs); err != nil {
		return nil, fmt.Errorf("store.Throttled.ListSearchIDs: %w", err)
	}
	return t.next.ListSearchIDs(ctx)
}

func (t *Throttled) FetchBySearchID(ctx context.Context, id string) ([]models.SearchRecord, error) {
	if err := t.limiter.Wait(ctx, OpFetchBySearchID); err != nil {
		return nil, fmt.Errorf("store.Throttled.FetchBySearchID: %w", err)
	}
	return t.next.FetchBySearchID(ctx, id)
}

func (t *Throttled) DumpAll(ctx context.Context) ([]json.RawMessage, error) {
	if err := t.limiter.Wait(ctx, OpDumpAll); err != nil {
		return nil, fmt.Errorf("store.Throttled.DumpAll: %w", err)
	}
	return t.next.DumpAll(ctx)
}
