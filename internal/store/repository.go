// Package store reads search documents from the document store.
package store

import (
	"context"
	"encoding/json"

	"github.com/dharmasatrya/flightinsights/internal/models"
)

// Repository is the read-only view of the search container.
type Repository interface {
	// ListSearchIDs returns every distinct search id, sorted.
	ListSearchIDs(ctx context.Context) ([]string, error)

	// FetchBySearchID returns all documents stored under id. Ids are
	// expected to be unique; callers use the first result.
	FetchBySearchID(ctx context.Context, id string) ([]models.SearchRecord, error)

	// DumpAll returns every document of the container untouched.
	DumpAll(ctx context.Context) ([]json.RawMessage, error)

	// Ping verifies the container is reachable with the configured
	// credentials.
	Ping(ctx context.Context) error
}
