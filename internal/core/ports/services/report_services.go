package services

import (
	"context"
	"time"

	"github.com/ordenate/backend/internal/core/domain"
)

// ReportSvcFacade assembles aggregate outputs and narrative templates into
// ordered report documents for a document renderer.
type ReportSvcFacade interface {
	// Assemble builds the weekly or monthly report over a snapshot.
	Assemble(ctx context.Context, kind domain.ReportKind, snap domain.Snapshot, now time.Time) (*domain.Report, error)
	// Persona builds the single-client persona document. It returns
	// apperrors.ErrNotFound when the client id does not resolve; no
	// partial document is emitted.
	Persona(ctx context.Context, snap domain.Snapshot, clientID string, now time.Time) (*domain.Persona, error)
}
