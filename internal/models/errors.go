package models

import "errors"

var (
	// ErrNoData is returned by aggregations over an empty input. It is a
	// signal, never a zero value.
	ErrNoData = errors.New("no data")

	// ErrNoRecords means the store holds no document for a search id.
	ErrNoRecords = errors.New("no records for search")

	// ErrNoSearches means the store holds no search ids at all.
	ErrNoSearches = errors.New("no searches stored")

	// ErrStoreUnavailable wraps connectivity and authorization failures of
	// the document store. Callers treat it as terminal.
	ErrStoreUnavailable = errors.New("store unavailable")
)
