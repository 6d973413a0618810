package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/ordenate/backend/internal/apperrors"
	"github.com/ordenate/backend/internal/core/analytics"
	"github.com/ordenate/backend/internal/core/domain"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/core/services"
	"github.com/ordenate/backend/internal/dto"
)

// --- Mock Gateway ---
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Save(ctx context.Context, key domain.CollectionKey, v any) error {
	args := m.Called(ctx, key, v)
	return args.Error(0)
}

func (m *MockGateway) Load(ctx context.Context, key domain.CollectionKey, dst any) (bool, error) {
	args := m.Called(ctx, key, dst)
	return args.Bool(0), args.Error(1)
}

func (m *MockGateway) WriteBackup(ctx context.Context, name string, v any) (string, error) {
	args := m.Called(ctx, name, v)
	return args.String(0), args.Error(1)
}

// --- Test Suite ---
type StoreServiceTestSuite struct {
	suite.Suite
	mockGateway *MockGateway
	now         time.Time
	store       portssvc.StoreSvcFacade
}

func (suite *StoreServiceTestSuite) SetupTest() {
	suite.mockGateway = new(MockGateway)
	suite.now = time.Date(2026, 8, 27, 10, 0, 0, 0, time.Local)
	suite.store = services.NewStoreService(suite.mockGateway,
		services.WithClock(func() time.Time { return suite.now }))
}

func (suite *StoreServiceTestSuite) allowSaves() {
	suite.mockGateway.On("Save", mock.Anything, mock.Anything, mock.Anything).Return(nil)
}

// --- Test Cases ---

func (suite *StoreServiceTestSuite) TestLoad_EmptyStore() {
	ctx := context.Background()
	suite.mockGateway.On("Load", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	err := suite.store.Load(ctx)

	suite.Require().NoError(err)
	snap := suite.store.Snapshot()
	suite.Empty(snap.Clients)
	suite.Empty(snap.Notes)
	suite.Empty(snap.Events)
	suite.Empty(snap.Transactions)
	suite.mockGateway.AssertNumberOfCalls(suite.T(), "Load", 5)
}

func (suite *StoreServiceTestSuite) TestCreateClient_Success() {
	ctx := context.Background()
	suite.allowSaves()

	var changes []domain.Change
	unsubscribe := suite.store.Subscribe(func(c domain.Change) { changes = append(changes, c) })
	defer unsubscribe()

	client, err := suite.store.CreateClient(ctx, dto.CreateClientRequest{Name: "Mariana Costa"})

	suite.Require().NoError(err)
	suite.Require().NotNil(client)
	suite.NotEmpty(client.ID)
	suite.Equal(domain.StatusActive, client.Status)
	suite.Equal(suite.now, client.CreatedAt)
	suite.Equal(suite.now, client.UpdatedAt)

	suite.Require().Len(changes, 1)
	suite.Equal(domain.CollectionClients, changes[0].Collection)
	suite.Equal(domain.OpCreate, changes[0].Op)
	suite.Equal(client.ID, changes[0].ID)
}

func (suite *StoreServiceTestSuite) TestCreateClient_ValidationError() {
	ctx := context.Background()

	client, err := suite.store.CreateClient(ctx, dto.CreateClientRequest{Name: "   "})

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockGateway.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *StoreServiceTestSuite) TestCreateClient_SaveErrorLeavesMemoryUntouched() {
	ctx := context.Background()
	suite.mockGateway.On("Save", mock.Anything, domain.CollectionClients, mock.Anything).
		Return(assert.AnError).Once()

	client, err := suite.store.CreateClient(ctx, dto.CreateClientRequest{Name: "Rafael Oliveira"})

	suite.Require().Error(err)
	suite.Nil(client)
	suite.ErrorIs(err, assert.AnError)
	suite.Empty(suite.store.Snapshot().Clients)
}

func (suite *StoreServiceTestSuite) TestUpdateClient_PreservesIdentity() {
	ctx := context.Background()
	suite.allowSaves()

	created, err := suite.store.CreateClient(ctx, dto.CreateClientRequest{Name: "Beatriz Santos"})
	suite.Require().NoError(err)

	suite.now = suite.now.Add(time.Hour)
	updated, err := suite.store.UpdateClient(ctx, created.ID, dto.UpdateClientRequest{
		Name:   "Beatriz Santos",
		Status: domain.StatusInactive,
	})

	suite.Require().NoError(err)
	suite.Equal(created.ID, updated.ID)
	suite.Equal(created.CreatedAt, updated.CreatedAt)
	suite.Equal(suite.now, updated.UpdatedAt)
	suite.Equal(domain.StatusInactive, updated.Status)
}

func (suite *StoreServiceTestSuite) TestUpdateClient_NotFound() {
	ctx := context.Background()

	updated, err := suite.store.UpdateClient(ctx, "nope", dto.UpdateClientRequest{Name: "X"})

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreServiceTestSuite) TestDeleteClient_KeepsDependents() {
	ctx := context.Background()
	suite.allowSaves()

	client, err := suite.store.CreateClient(ctx, dto.CreateClientRequest{Name: "Mariana Costa"})
	suite.Require().NoError(err)
	_, err = suite.store.CreateNote(ctx, dto.CreateNoteRequest{ClientID: client.ID, Text: "Sessão inicial"})
	suite.Require().NoError(err)
	_, err = suite.store.CreateEvent(ctx, dto.SaveEventRequest{
		Title:    "Consulta",
		StartsAt: suite.now.Add(24 * time.Hour),
		ClientID: client.ID,
	})
	suite.Require().NoError(err)

	err = suite.store.DeleteClient(ctx, client.ID)

	suite.Require().NoError(err)
	snap := suite.store.Snapshot()
	suite.Empty(snap.Clients)
	suite.Len(snap.Notes, 1)
	suite.Len(snap.Events, 1)
	suite.Equal(client.ID, snap.Notes[0].ClientID)
}

func (suite *StoreServiceTestSuite) TestCreateNote_UnknownClient() {
	ctx := context.Background()

	note, err := suite.store.CreateNote(ctx, dto.CreateNoteRequest{ClientID: "missing", Text: "texto"})

	suite.Require().Error(err)
	suite.Nil(note)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreServiceTestSuite) TestCreateNote_DefaultsDateToToday() {
	ctx := context.Background()
	suite.allowSaves()

	client, err := suite.store.CreateClient(ctx, dto.CreateClientRequest{Name: "Mariana Costa"})
	suite.Require().NoError(err)

	note, err := suite.store.CreateNote(ctx, dto.CreateNoteRequest{ClientID: client.ID, Text: "texto"})

	suite.Require().NoError(err)
	suite.Equal("2026-08-27", note.Date)
}

func (suite *StoreServiceTestSuite) TestCreateEvent_IncompleteGeneratesNothing() {
	ctx := context.Background()
	suite.allowSaves()

	event, err := suite.store.CreateEvent(ctx, dto.SaveEventRequest{
		Title:    "Consulta",
		StartsAt: suite.now.Add(24 * time.Hour),
		Value:    "200",
	})

	suite.Require().NoError(err)
	suite.False(event.RevenueGenerated)
	suite.Empty(suite.store.Snapshot().Transactions)
}

func (suite *StoreServiceTestSuite) TestCreateEvent_InvalidValueGeneratesNothing() {
	ctx := context.Background()
	suite.allowSaves()

	for _, value := range []string{"", "abc", "0", "-10"} {
		event, err := suite.store.CreateEvent(ctx, dto.SaveEventRequest{
			Title:     "Consulta",
			StartsAt:  suite.now,
			Completed: true,
			Value:     value,
		})
		suite.Require().NoError(err, "value %q", value)
		suite.False(event.RevenueGenerated, "value %q", value)
	}
	suite.Empty(suite.store.Snapshot().Transactions)
}

func (suite *StoreServiceTestSuite) TestDeleteEvent_KeepsMaterializedTransaction() {
	ctx := context.Background()
	suite.allowSaves()

	event, err := suite.store.CreateEvent(ctx, dto.SaveEventRequest{
		Title:     "Consulta",
		StartsAt:  suite.now,
		Completed: true,
		Value:     "150,00",
	})
	suite.Require().NoError(err)
	suite.True(event.RevenueGenerated)

	err = suite.store.DeleteEvent(ctx, event.ID)

	suite.Require().NoError(err)
	snap := suite.store.Snapshot()
	suite.Empty(snap.Events)
	suite.Len(snap.Transactions, 1)
}

// The revenue flag is terminal, so an event must never reach disk flagged
// without the transaction that justifies it. The transactions write goes
// first; when it fails the events write never happens.
func (suite *StoreServiceTestSuite) TestCreateEvent_TransactionSaveErrorStopsEventWrite() {
	ctx := context.Background()
	suite.mockGateway.On("Save", mock.Anything, domain.CollectionTransactions, mock.Anything).
		Return(assert.AnError).Once()

	_, err := suite.store.CreateEvent(ctx, dto.SaveEventRequest{
		Title:     "Consulta",
		StartsAt:  suite.now,
		Completed: true,
		Value:     "150,00",
	})

	suite.Require().ErrorIs(err, assert.AnError)
	suite.mockGateway.AssertNotCalled(suite.T(), "Save", mock.Anything, domain.CollectionEvents, mock.Anything)
	snap := suite.store.Snapshot()
	suite.Empty(snap.Events)
	suite.Empty(snap.Transactions)
}

func (suite *StoreServiceTestSuite) TestCreateEvent_EventsSaveErrorRestoresTransactions() {
	ctx := context.Background()
	var txnWrites [][]domain.Transaction
	suite.mockGateway.On("Save", mock.Anything, domain.CollectionTransactions, mock.Anything).
		Run(func(args mock.Arguments) {
			txnWrites = append(txnWrites, args.Get(2).([]domain.Transaction))
		}).
		Return(nil)
	suite.mockGateway.On("Save", mock.Anything, domain.CollectionEvents, mock.Anything).
		Return(assert.AnError).Once()

	_, err := suite.store.CreateEvent(ctx, dto.SaveEventRequest{
		Title:     "Consulta",
		StartsAt:  suite.now,
		Completed: true,
		Value:     "150,00",
	})

	suite.Require().ErrorIs(err, assert.AnError)
	// The materialized transaction was written, then taken back when the
	// events write failed, leaving both files as they were.
	suite.Require().Len(txnWrites, 2)
	suite.Len(txnWrites[0], 1)
	suite.Empty(txnWrites[1])
	snap := suite.store.Snapshot()
	suite.Empty(snap.Events)
	suite.Empty(snap.Transactions)

	// A retry with a working gateway materializes from scratch.
	suite.mockGateway.On("Save", mock.Anything, domain.CollectionEvents, mock.Anything).Return(nil)
	event, err := suite.store.CreateEvent(ctx, dto.SaveEventRequest{
		Title:     "Consulta",
		StartsAt:  suite.now,
		Completed: true,
		Value:     "150,00",
	})
	suite.Require().NoError(err)
	suite.True(event.RevenueGenerated)
	suite.Len(suite.store.Snapshot().Transactions, 1)
}

// TestCompletedEventLifecycle walks an appointment from scheduling through
// completion and re-editing, checking that revenue materializes exactly once
// and that the aggregates see the result.
func (suite *StoreServiceTestSuite) TestCompletedEventLifecycle() {
	ctx := context.Background()
	suite.allowSaves()

	client, err := suite.store.CreateClient(ctx, dto.CreateClientRequest{
		Name:   "Mariana Costa",
		Status: domain.StatusActive,
		Gender: "Feminino",
	})
	suite.Require().NoError(err)

	_, err = suite.store.CreateNote(ctx, dto.CreateNoteRequest{
		ClientID:       client.ID,
		Text:           "Sessão inicial produtiva",
		EmotionalState: "Motivado",
	})
	suite.Require().NoError(err)

	req := dto.SaveEventRequest{
		Title:    "Sessão de acompanhamento",
		StartsAt: time.Date(2026, 8, 27, 14, 0, 0, 0, time.Local),
		EndsAt:   time.Date(2026, 8, 27, 15, 0, 0, 0, time.Local),
		ClientID: client.ID,
		Category: "Acompanhamento",
		Value:    "200",
	}
	event, err := suite.store.CreateEvent(ctx, req)
	suite.Require().NoError(err)
	suite.False(event.RevenueGenerated)
	suite.Empty(suite.store.Snapshot().Transactions)

	// Marking the event completed fires the one and only transition.
	req.Completed = true
	event, err = suite.store.UpdateEvent(ctx, event.ID, req)
	suite.Require().NoError(err)
	suite.True(event.RevenueGenerated)

	snap := suite.store.Snapshot()
	suite.Require().Len(snap.Transactions, 1)
	txn := snap.Transactions[0]
	suite.Equal(domain.Revenue, txn.Kind)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(200)))
	suite.Equal(client.ID, txn.ClientID)
	suite.True(txn.Settled)
	suite.Equal("2026-08-27", txn.Date)
	suite.Equal("Sessão de acompanhamento - Acompanhamento", txn.Description)

	// Re-saving the completed event must not produce a second transaction.
	_, err = suite.store.UpdateEvent(ctx, event.ID, req)
	suite.Require().NoError(err)
	suite.Len(suite.store.Snapshot().Transactions, 1)

	snap = suite.store.Snapshot()
	hist := analytics.StatusHistogram(snap.Clients)
	suite.Equal(analytics.Histogram{
		{Label: domain.StatusActive, Count: 1},
		{Label: domain.StatusUnderReview, Count: 0},
		{Label: domain.StatusInactive, Count: 0},
	}, hist)

	rollup := analytics.RollupForClient(client.ID, snap.Notes, snap.Events, snap.Transactions)
	suite.Equal(1, rollup.NoteCount)
	suite.Equal(1, rollup.Events)
	suite.True(rollup.Revenue.Equal(decimal.NewFromInt(200)))
}

func (suite *StoreServiceTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	suite.allowSaves()

	txn, err := suite.store.CreateTransaction(ctx, dto.SaveTransactionRequest{
		Kind:        string(domain.Expense),
		Amount:      decimal.NewFromInt(650),
		Description: "Aluguel da sala",
		Date:        "2026-08-05",
		Category:    "Aluguel",
		Settled:     true,
	})
	suite.Require().NoError(err)

	updated, err := suite.store.UpdateTransaction(ctx, txn.ID, dto.SaveTransactionRequest{
		Kind:        string(domain.Expense),
		Amount:      decimal.NewFromInt(700),
		Description: "Aluguel da sala",
		Date:        "2026-08-05",
		Category:    "Aluguel",
		Settled:     true,
	})
	suite.Require().NoError(err)
	suite.Equal(txn.ID, updated.ID)
	suite.True(updated.Amount.Equal(decimal.NewFromInt(700)))

	err = suite.store.DeleteTransaction(ctx, txn.ID)
	suite.Require().NoError(err)
	suite.Empty(suite.store.Snapshot().Transactions)
}

func (suite *StoreServiceTestSuite) TestSaveProfile_RoundTrip() {
	ctx := context.Background()
	suite.allowSaves()

	err := suite.store.SaveProfile(ctx, domain.Profile{Name: "Dra. Helena", Pronouns: "ela/dela"})
	suite.Require().NoError(err)

	profile, err := suite.store.Profile(ctx)
	suite.Require().NoError(err)
	suite.Equal("Dra. Helena", profile.Name)
	suite.Equal("ela/dela", profile.Pronouns)
}

func (suite *StoreServiceTestSuite) TestSubscribe_UnsubscribeStopsDelivery() {
	ctx := context.Background()
	suite.allowSaves()

	count := 0
	unsubscribe := suite.store.Subscribe(func(domain.Change) { count++ })

	_, err := suite.store.CreateClient(ctx, dto.CreateClientRequest{Name: "A"})
	suite.Require().NoError(err)
	suite.Equal(1, count)

	unsubscribe()
	_, err = suite.store.CreateClient(ctx, dto.CreateClientRequest{Name: "B"})
	suite.Require().NoError(err)
	suite.Equal(1, count)
}

func TestStoreServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StoreServiceTestSuite))
}
