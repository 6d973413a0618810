// Package repositories defines the outbound ports of the core: the
// persistence gateway and the document renderer.
package repositories

import (
	"context"

	"github.com/ordenate/backend/internal/core/domain"
)

// Gateway is the persistence port the domain store writes through. The
// store remains the source of truth for the session; the gateway is only a
// durable mirror. Implementations must serialize writes per key
// (last-write-wins) and must offer the tolerant read the store depends on
// for first-run and corruption scenarios: a missing key or unparseable
// payload yields found=false rather than an error.
type Gateway interface {
	// Save marshals v and durably stores it under key.
	Save(ctx context.Context, key domain.CollectionKey, v any) error
	// Load unmarshals the payload stored under key into dst. It returns
	// found=false when the key is absent or the payload is corrupt; err is
	// reserved for I/O failures.
	Load(ctx context.Context, key domain.CollectionKey, dst any) (found bool, err error)
	// WriteBackup stores a timestamped, free-form backup document.
	WriteBackup(ctx context.Context, name string, v any) (filename string, err error)
}

// DocumentRenderer turns an assembled report into a paginated document and
// a flat record set into a tabular export. Renderers display Aggregator
// outputs verbatim; they never compute figures of their own.
type DocumentRenderer interface {
	RenderDocument(ctx context.Context, report domain.Report) ([]byte, error)
	RenderTable(ctx context.Context, headers []string, rows [][]string) ([]byte, error)
}
