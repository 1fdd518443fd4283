package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/dharmasatrya/flightinsights/internal/models"
)

const (
	querySearchIDs = `SELECT VALUE c.search_id FROM c`
	queryBySearch  = `SELECT * FROM c WHERE c.search_id = @search_id`
	queryAll       = `SELECT * FROM c`
)

type CosmosConfig struct {
	Endpoint  string
	Key       string
	Database  string
	Container string
}

// itemSource runs SQL queries against one container and returns the raw
// items of every page.
type itemSource interface {
	Query(ctx context.Context, query string, params ...azcosmos.QueryParameter) ([][]byte, error)
	Ping(ctx context.Context) error
}

type CosmosRepository struct {
	source itemSource
	logger *slog.Logger
}

// NewCosmosRepository builds a key-authenticated client for the configured
// container. The SDK's own retries are disabled: a failed call is terminal.
func NewCosmosRepository(cfg CosmosConfig, logger *slog.Logger) (*CosmosRepository, error) {
	cred, err := azcosmos.NewKeyCredential(cfg.Key)
	if err != nil {
		return nil, fmt.Errorf("store.NewCosmosRepository: credential: %w: %w", models.ErrStoreUnavailable, err)
	}

	client, err := azcosmos.NewClientWithKey(cfg.Endpoint, cred, &azcosmos.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{MaxRetries: -1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("store.NewCosmosRepository: client: %w: %w", models.ErrStoreUnavailable, err)
	}

	container, err := client.NewContainer(cfg.Database, cfg.Container)
	if err != nil {
		return nil, fmt.Errorf("store.NewCosmosRepository: container %s/%s: %w: %w", cfg.Database, cfg.Container, models.ErrStoreUnavailable, err)
	}

	return newCosmosRepository(&containerSource{container: container}, logger), nil
}

func newCosmosRepository(source itemSource, logger *slog.Logger) *CosmosRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &CosmosRepository{source: source, logger: logger}
}

func (r *CosmosRepository) Ping(ctx context.Context) error {
	if err := r.source.Ping(ctx); err != nil {
		return fmt.Errorf("store.CosmosRepository.Ping: %w: %w", models.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *CosmosRepository) ListSearchIDs(ctx context.Context) ([]string, error) {
	items, err := r.source.Query(ctx, querySearchIDs)
	if err != nil {
		return nil, fmt.Errorf("store.CosmosRepository.ListSearchIDs: %w: %w", models.ErrStoreUnavailable, err)
	}

	seen := make(map[string]bool, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		var id models.Text
		if err := json.Unmarshal(item, &id); err != nil {
			continue
		}
		key := strings.TrimSpace(id.String())
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		ids = append(ids, key)
	}
	sort.Strings(ids)

	return ids, nil
}

func (r *CosmosRepository) FetchBySearchID(ctx context.Context, id string) ([]models.SearchRecord, error) {
	items, err := r.source.Query(ctx, queryBySearch, azcosmos.QueryParameter{Name: "@search_id", Value: id})
	if err != nil {
		return nil, fmt.Errorf("store.CosmosRepository.FetchBySearchID: %w: %w", models.ErrStoreUnavailable, err)
	}

	records := make([]models.SearchRecord, 0, len(items))
	for _, item := range items {
		var rec models.SearchRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			// Only a structurally broken document (recos not a list, say)
			// gets here; field-level problems are absorbed by models.
			r.logger.Warn("skipping undecodable search document", "search_id", id, "error", err)
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *CosmosRepository) DumpAll(ctx context.Context) ([]json.RawMessage, error) {
	items, err := r.source.Query(ctx, queryAll)
	if err != nil {
		return nil, fmt.Errorf("store.CosmosRepository.DumpAll: %w: %w", models.ErrStoreUnavailable, err)
	}

	docs := make([]json.RawMessage, len(items))
	for i, item := range items {
		docs[i] = json.RawMessage(item)
	}
	return docs, nil
}

type containerSource struct {
	container *azcosmos.ContainerClient
}

// Query runs a cross-partition query and drains every page.
func (s *containerSource) Query(ctx context.Context, query string, params ...azcosmos.QueryParameter) ([][]byte, error) {
	opts := &azcosmos.QueryOptions{QueryParameters: params}
	pager := s.container.NewQueryItemsPager(query, azcosmos.NewPartitionKey(), opts)

	var items [][]byte
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Items...)
	}
	return items, nil
}

func (s *containerSource) Ping(ctx context.Context) error {
	_, err := s.container.Read(ctx, nil)
	return err
}
