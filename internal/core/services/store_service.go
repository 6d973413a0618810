package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ordenate/backend/internal/apperrors"
	"github.com/ordenate/backend/internal/core/domain"
	portsrepo "github.com/ordenate/backend/internal/core/ports/repositories"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/dto"
)

// storeService is the in-memory authoritative owner of all collections.
// Every mutation runs under the write lock: it validates, persists the
// touched collections through the gateway and only then commits to memory,
// so a failed write never leaves memory and disk disagreeing. Subscribers
// are notified after the lock is released.
type storeService struct {
	BaseService
	gateway portsrepo.Gateway
	now     func() time.Time

	mu           sync.RWMutex
	clients      []domain.Client
	notes        []domain.Note
	events       []domain.Event
	transactions []domain.Transaction
	profile      domain.Profile

	subMu       sync.Mutex
	subscribers map[int]func(domain.Change)
	nextSubID   int
}

// StoreOption is a functional option for configuring the store service
type StoreOption func(*storeService)

// WithClock overrides the time source, mainly for tests.
func WithClock(now func() time.Time) StoreOption {
	return func(s *storeService) {
		s.now = now
	}
}

// NewStoreService creates the domain store backed by the given gateway.
func NewStoreService(gateway portsrepo.Gateway, options ...StoreOption) portssvc.StoreSvcFacade {
	svc := &storeService{
		gateway:     gateway,
		now:         time.Now,
		subscribers: make(map[int]func(domain.Change)),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure storeService implements the StoreSvcFacade interface
var _ portssvc.StoreSvcFacade = (*storeService)(nil)

// Load hydrates all collections through the gateway's tolerant read. A
// missing or unreadable collection hydrates as empty rather than failing
// startup.
func (s *storeService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var clients []domain.Client
	if _, err := s.gateway.Load(ctx, domain.CollectionClients, &clients); err != nil {
		return fmt.Errorf("failed to load clients: %w", err)
	}
	var notes []domain.Note
	if _, err := s.gateway.Load(ctx, domain.CollectionNotes, &notes); err != nil {
		return fmt.Errorf("failed to load notes: %w", err)
	}
	var events []domain.Event
	if _, err := s.gateway.Load(ctx, domain.CollectionEvents, &events); err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}
	var transactions []domain.Transaction
	if _, err := s.gateway.Load(ctx, domain.CollectionTransactions, &transactions); err != nil {
		return fmt.Errorf("failed to load transactions: %w", err)
	}
	var profile domain.Profile
	if _, err := s.gateway.Load(ctx, domain.CollectionProfile, &profile); err != nil {
		return fmt.Errorf("failed to load profile: %w", err)
	}

	s.clients = clients
	s.notes = notes
	s.events = events
	s.transactions = transactions
	s.profile = profile

	s.LogInfo(ctx, "Store loaded",
		slog.Int("clients", len(clients)),
		slog.Int("notes", len(notes)),
		slog.Int("events", len(events)),
		slog.Int("transactions", len(transactions)))
	return nil
}

// Snapshot returns a point-in-time copy of all collections.
func (s *storeService) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		Clients:      slices.Clone(s.clients),
		Notes:        slices.Clone(s.notes),
		Events:       slices.Clone(s.events),
		Transactions: slices.Clone(s.transactions),
	}
}

// Subscribe registers a change listener. Listeners are invoked
// synchronously after a mutation commits, outside the store lock, so a
// listener may safely call Snapshot.
func (s *storeService) Subscribe(fn func(domain.Change)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subscribers, id)
	}
}

func (s *storeService) notify(changes ...domain.Change) {
	s.subMu.Lock()
	listeners := make([]func(domain.Change), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()
	for _, change := range changes {
		for _, fn := range listeners {
			fn(change)
		}
	}
}

func (s *storeService) CreateClient(ctx context.Context, req dto.CreateClientRequest) (*domain.Client, error) {
	now := s.now()
	client := domain.Client{
		ID:               uuid.NewString(),
		Name:             req.Name,
		Email:            req.Email,
		Phone:            req.Phone,
		Mobile:           req.Mobile,
		Status:           req.Status,
		Notes:            req.Notes,
		Group:            req.Group,
		NationalID:       req.NationalID,
		SecondaryID:      req.SecondaryID,
		BirthDate:        req.BirthDate,
		Gender:           req.Gender,
		UsesSocialName:   req.UsesSocialName,
		FinancialPlan:    req.FinancialPlan,
		SessionPrice:     req.SessionPrice,
		Remarks:          req.Remarks,
		Address:          req.Address,
		AdditionalData:   req.AdditionalData,
		ResponsibleParty: req.ResponsibleParty,
		PhotoURL:         req.PhotoURL,
		ExternalProfile:  req.ExternalProfile,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if client.Status == "" {
		client.Status = domain.StatusActive
	}
	if err := client.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	next := append(slices.Clone(s.clients), client)
	if err := s.gateway.Save(ctx, domain.CollectionClients, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist clients")
		return nil, fmt.Errorf("failed to persist clients: %w", err)
	}
	s.clients = next
	s.mu.Unlock()

	s.LogInfo(ctx, "Client created", slog.String("client_id", client.ID))
	s.notify(domain.Change{Collection: domain.CollectionClients, Op: domain.OpCreate, ID: client.ID})
	return &client, nil
}

func (s *storeService) UpdateClient(ctx context.Context, clientID string, req dto.UpdateClientRequest) (*domain.Client, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.clients, func(c domain.Client) bool { return c.ID == clientID })
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
	}

	updated := s.clients[idx]
	updated.Name = req.Name
	updated.Email = req.Email
	updated.Phone = req.Phone
	updated.Mobile = req.Mobile
	updated.Status = req.Status
	updated.Notes = req.Notes
	updated.Group = req.Group
	updated.NationalID = req.NationalID
	updated.SecondaryID = req.SecondaryID
	updated.BirthDate = req.BirthDate
	updated.Gender = req.Gender
	updated.UsesSocialName = req.UsesSocialName
	updated.FinancialPlan = req.FinancialPlan
	updated.SessionPrice = req.SessionPrice
	updated.Remarks = req.Remarks
	updated.Address = req.Address
	updated.AdditionalData = req.AdditionalData
	updated.ResponsibleParty = req.ResponsibleParty
	updated.PhotoURL = req.PhotoURL
	updated.ExternalProfile = req.ExternalProfile
	updated.UpdatedAt = s.now()
	if err := updated.Validate(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	next := slices.Clone(s.clients)
	next[idx] = updated
	if err := s.gateway.Save(ctx, domain.CollectionClients, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist clients")
		return nil, fmt.Errorf("failed to persist clients: %w", err)
	}
	s.clients = next
	s.mu.Unlock()

	s.notify(domain.Change{Collection: domain.CollectionClients, Op: domain.OpUpdate, ID: clientID})
	return &updated, nil
}

// DeleteClient removes the client record only. Notes, events and
// transactions referencing it stay behind with a dangling id; readers
// already tolerate that.
func (s *storeService) DeleteClient(ctx context.Context, clientID string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.clients, func(c domain.Client) bool { return c.ID == clientID })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
	}
	next := slices.Delete(slices.Clone(s.clients), idx, idx+1)
	if err := s.gateway.Save(ctx, domain.CollectionClients, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist clients")
		return fmt.Errorf("failed to persist clients: %w", err)
	}
	s.clients = next
	s.mu.Unlock()

	s.LogInfo(ctx, "Client deleted", slog.String("client_id", clientID))
	s.notify(domain.Change{Collection: domain.CollectionClients, Op: domain.OpDelete, ID: clientID})
	return nil
}

func (s *storeService) GetClient(ctx context.Context, clientID string) (*domain.Client, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.clients {
		if c.ID == clientID {
			client := c
			return &client, nil
		}
	}
	return nil, fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
}

func (s *storeService) CreateNote(ctx context.Context, req dto.CreateNoteRequest) (*domain.Note, error) {
	now := s.now()
	note := domain.Note{
		ID:             uuid.NewString(),
		ClientID:       req.ClientID,
		Text:           req.Text,
		Date:           req.Date,
		CreatedAt:      now,
		EmotionalState: req.EmotionalState,
		Trend:          req.Trend,
		Urgency:        req.Urgency,
		EngagementType: req.EngagementType,
	}
	if note.Date == "" {
		note.Date = now.Format("2006-01-02")
	}
	if err := note.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	// Notes can only be created against an existing client. The reference
	// may dangle later if the client is deleted, but never at creation.
	if !slices.ContainsFunc(s.clients, func(c domain.Client) bool { return c.ID == note.ClientID }) {
		s.mu.Unlock()
		return nil, fmt.Errorf("client %s: %w", note.ClientID, apperrors.ErrNotFound)
	}
	next := append(slices.Clone(s.notes), note)
	if err := s.gateway.Save(ctx, domain.CollectionNotes, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist notes")
		return nil, fmt.Errorf("failed to persist notes: %w", err)
	}
	s.notes = next
	s.mu.Unlock()

	s.notify(domain.Change{Collection: domain.CollectionNotes, Op: domain.OpCreate, ID: note.ID})
	return &note, nil
}

func (s *storeService) DeleteNote(ctx context.Context, noteID string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.notes, func(n domain.Note) bool { return n.ID == noteID })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("note %s: %w", noteID, apperrors.ErrNotFound)
	}
	next := slices.Delete(slices.Clone(s.notes), idx, idx+1)
	if err := s.gateway.Save(ctx, domain.CollectionNotes, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist notes")
		return fmt.Errorf("failed to persist notes: %w", err)
	}
	s.notes = next
	s.mu.Unlock()

	s.notify(domain.Change{Collection: domain.CollectionNotes, Op: domain.OpDelete, ID: noteID})
	return nil
}

func (s *storeService) CreateEvent(ctx context.Context, req dto.SaveEventRequest) (*domain.Event, error) {
	now := s.now()
	event := domain.Event{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		ClientID:    req.ClientID,
		Location:    req.Location,
		Category:    req.Category,
		Value:       req.Value,
		Completed:   req.Completed,
		CreatedAt:   now,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	txn := s.materializeRevenue(&event, now)

	s.mu.Lock()
	nextEvents := append(slices.Clone(s.events), event)
	if err := s.persistMaterialization(ctx, nextEvents, txn); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	changes := []domain.Change{{Collection: domain.CollectionEvents, Op: domain.OpCreate, ID: event.ID}}
	if txn != nil {
		s.transactions = append(slices.Clone(s.transactions), *txn)
		changes = append(changes, domain.Change{Collection: domain.CollectionTransactions, Op: domain.OpCreate, ID: txn.ID})
	}
	s.events = nextEvents
	s.mu.Unlock()

	if txn != nil {
		s.LogInfo(ctx, "Revenue materialized from event",
			slog.String("event_id", event.ID),
			slog.String("transaction_id", txn.ID),
			slog.String("amount", txn.Amount.String()))
	}
	s.notify(changes...)
	return &event, nil
}

func (s *storeService) UpdateEvent(ctx context.Context, eventID string, req dto.SaveEventRequest) (*domain.Event, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.events, func(e domain.Event) bool { return e.ID == eventID })
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
	}

	// Identity, creation time and the revenue flag survive the edit. The
	// flag is terminal: once revenue has been generated, re-editing the
	// event never produces a second transaction.
	updated := s.events[idx]
	updated.Title = req.Title
	updated.Description = req.Description
	updated.StartsAt = req.StartsAt
	updated.EndsAt = req.EndsAt
	updated.ClientID = req.ClientID
	updated.Location = req.Location
	updated.Category = req.Category
	updated.Value = req.Value
	updated.Completed = req.Completed
	if err := updated.Validate(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	txn := s.materializeRevenue(&updated, s.now())

	nextEvents := slices.Clone(s.events)
	nextEvents[idx] = updated
	if err := s.persistMaterialization(ctx, nextEvents, txn); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	changes := []domain.Change{{Collection: domain.CollectionEvents, Op: domain.OpUpdate, ID: eventID}}
	if txn != nil {
		s.transactions = append(slices.Clone(s.transactions), *txn)
		changes = append(changes, domain.Change{Collection: domain.CollectionTransactions, Op: domain.OpCreate, ID: txn.ID})
	}
	s.events = nextEvents
	s.mu.Unlock()

	if txn != nil {
		s.LogInfo(ctx, "Revenue materialized from event",
			slog.String("event_id", eventID),
			slog.String("transaction_id", txn.ID),
			slog.String("amount", txn.Amount.String()))
	}
	s.notify(changes...)
	return &updated, nil
}

// DeleteEvent removes the event. A revenue transaction it materialized
// earlier stays: the money was recorded, deleting the appointment does not
// un-receive it.
func (s *storeService) DeleteEvent(ctx context.Context, eventID string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.events, func(e domain.Event) bool { return e.ID == eventID })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("event %s: %w", eventID, apperrors.ErrNotFound)
	}
	next := slices.Delete(slices.Clone(s.events), idx, idx+1)
	if err := s.gateway.Save(ctx, domain.CollectionEvents, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist events")
		return fmt.Errorf("failed to persist events: %w", err)
	}
	s.events = next
	s.mu.Unlock()

	s.notify(domain.Change{Collection: domain.CollectionEvents, Op: domain.OpDelete, ID: eventID})
	return nil
}

/// materializeRevenue applies the single state transition of the store: a
// completed event with a positive parseable value that has not yet
// generated revenue produces exactly one settled revenue transaction and
// flips the event's flag. Any other combination is a no-op.
func (s *storeService) materializeRevenue(event *domain.Event, now time.Time) *domain.Transaction {
	if !event.Completed || event.RevenueGenerated {
		return nil
	}
	amount, ok := event.ParsedValue()
	if !ok {
		return nil
	}
	event.RevenueGenerated = true
	return &domain.Transaction{
		ID:            uuid.NewString(),
		Kind:          domain.Revenue,
		Amount:        amount,
		Description:   fmt.Sprintf("%s - %s", event.Title, event.Category),
		Date:          event.StartsAt.Format("2006-01-02"),
		PaymentMethod: "Dinheiro",
		ClientID:      event.ClientID,
		Remarks:       fmt.Sprintf("Receita gerada automaticamente do evento: %s", event.Title),
		Settled:       true,
		CreatedAt:     now,
	}
}

// persistMaterialization writes both sides of a materialization before
// either lands in memory, transactions first. The flipped revenue flag
// must never reach disk without the transaction that justifies it: the
// flag is terminal, so an event persisted with it set and no matching
// transaction would suppress the revenue forever. When the events write
// fails afterwards, the previous transactions are restored so a retry
// starts from a clean slate. Callers hold s.mu.
func (s *storeService) persistMaterialization(ctx context.Context, nextEvents []domain.Event, txn *domain.Transaction) error {
	if txn != nil {
		nextTxns := append(slices.Clone(s.transactions), *txn)
		if err := s.gateway.Save(ctx, domain.CollectionTransactions, nextTxns); err != nil {
			s.LogError(ctx, err, "Failed to persist transactions")
			return fmt.Errorf("failed to persist transactions: %w", err)
		}
	}
	if err := s.gateway.Save(ctx, domain.CollectionEvents, nextEvents); err != nil {
		s.LogError(ctx, err, "Failed to persist events")
		if txn != nil {
			if restoreErr := s.gateway.Save(ctx, domain.CollectionTransactions, s.transactions); restoreErr != nil {
				s.LogError(ctx, restoreErr, "Failed to restore transactions after events write failure")
			}
		}
		return fmt.Errorf("failed to persist events: %w", err)
	}
	return nil
}

func (s *storeService) CreateTransaction(ctx context.Context, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	txn := domain.Transaction{
		ID:            uuid.NewString(),
		Kind:          domain.TransactionKind(req.Kind),
		Amount:        req.Amount,
		Description:   req.Description,
		Date:          req.Date,
		PaymentMethod: req.PaymentMethod,
		ClientID:      req.ClientID,
		Category:      req.Category,
		Remarks:       req.Remarks,
		Settled:       req.Settled,
		CreatedAt:     s.now(),
	}
	if err := txn.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	next := append(slices.Clone(s.transactions), txn)
	if err := s.gateway.Save(ctx, domain.CollectionTransactions, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist transactions")
		return nil, fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.transactions = next
	s.mu.Unlock()

	s.notify(domain.Change{Collection: domain.CollectionTransactions, Op: domain.OpCreate, ID: txn.ID})
	return &txn, nil
}

func (s *storeService) UpdateTransaction(ctx context.Context, txnID string, req dto.SaveTransactionRequest) (*domain.Transaction, error) {
	s.mu.Lock()
	idx := slices.IndexFunc(s.transactions, func(t domain.Transaction) bool { return t.ID == txnID })
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("transaction %s: %w", txnID, apperrors.ErrNotFound)
	}

	updated := s.transactions[idx]
	updated.Kind = domain.TransactionKind(req.Kind)
	updated.Amount = req.Amount
	updated.Description = req.Description
	updated.Date = req.Date
	updated.PaymentMethod = req.PaymentMethod
	updated.ClientID = req.ClientID
	updated.Category = req.Category
	updated.Remarks = req.Remarks
	updated.Settled = req.Settled
	if err := updated.Validate(); err != nil {
		s.mu.Unlock()
		return nil, err
	}

	next := slices.Clone(s.transactions)
	next[idx] = updated
	if err := s.gateway.Save(ctx, domain.CollectionTransactions, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist transactions")
		return nil, fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.transactions = next
	s.mu.Unlock()

	s.notify(domain.Change{Collection: domain.CollectionTransactions, Op: domain.OpUpdate, ID: txnID})
	return &updated, nil
}

func (s *storeService) DeleteTransaction(ctx context.Context, txnID string) error {
	s.mu.Lock()
	idx := slices.IndexFunc(s.transactions, func(t domain.Transaction) bool { return t.ID == txnID })
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("transaction %s: %w", txnID, apperrors.ErrNotFound)
	}
	next := slices.Delete(slices.Clone(s.transactions), idx, idx+1)
	if err := s.gateway.Save(ctx, domain.CollectionTransactions, next); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist transactions")
		return fmt.Errorf("failed to persist transactions: %w", err)
	}
	s.transactions = next
	s.mu.Unlock()

	s.notify(domain.Change{Collection: domain.CollectionTransactions, Op: domain.OpDelete, ID: txnID})
	return nil
}

func (s *storeService) Profile(ctx context.Context) (*domain.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile := s.profile
	return &profile, nil
}

func (s *storeService) SaveProfile(ctx context.Context, profile domain.Profile) error {
	s.mu.Lock()
	if err := s.gateway.Save(ctx, domain.CollectionProfile, profile); err != nil {
		s.mu.Unlock()
		s.LogError(ctx, err, "Failed to persist profile")
		return fmt.Errorf("failed to persist profile: %w", err)
	}
	s.profile = profile
	s.mu.Unlock()

	s.notify(domain.Change{Collection: domain.CollectionProfile, Op: domain.OpUpdate})
	return nil
}
