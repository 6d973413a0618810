package services

import (
	"context"

	"github.com/ordenate/backend/internal/core/domain"
	"github.com/ordenate/backend/internal/dto"
)

// SnapshotProvider is the narrow read port the aggregation and reporting
// layers depend on.
type SnapshotProvider interface {
	Snapshot() domain.Snapshot
}

// StoreSvcFacade is the domain store: the in-memory authoritative owner of
// the four collections plus the practitioner profile, with an enumerated
// set of mutation methods and a change-notification mechanism. Every
// mutation validates its input, persists the touched collection through
// the gateway and then notifies subscribers.
type StoreSvcFacade interface {
	SnapshotProvider

	// Load hydrates all collections via the gateway's tolerant read.
	Load(ctx context.Context) error

	// Subscribe registers a synchronous change listener. The returned
	// function unsubscribes it.
	Subscribe(fn func(domain.Change)) (unsubscribe func())

	CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error)
	UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error)
	DeleteClient(ctx context.Context, clientID string) error
	GetClient(ctx context.Context, clientID string) (*domain.Client, error)

	CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*domain.Note, error)
	DeleteNote(ctx context.Context, noteID string) error

	CreateEvent(ctx context.Context, req dto.SaveEventRequest) (*domain.Event, error)
	UpdateEvent(ctx context.Context, eventID string, req dto.SaveEventRequest) (*domain.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error

	CreateTransaction(ctx context.Context, req dto.SaveTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, txnID string, req dto.SaveTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, txnID string) error

	Profile(ctx context.Context) (*domain.Profile, error)
	SaveProfile(ctx context.Context, profile domain.Profile) error
}
