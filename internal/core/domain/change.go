package domain

// CollectionKey names a persisted collection. These are the keys the
// persistence gateway stores under and the companion service serves.
type CollectionKey string

const (
	CollectionClients      CollectionKey = "clients"
	CollectionNotes        CollectionKey = "notes"
	CollectionEvents       CollectionKey = "events"
	CollectionTransactions CollectionKey = "transactions"
	CollectionProfile      CollectionKey = "profile"
)

// ChangeOp is the kind of mutation a change notification describes.
type ChangeOp string

const (
	OpCreate ChangeOp = "create"
	OpUpdate ChangeOp = "update"
	OpDelete ChangeOp = "delete"
)

// Change is a store mutation notification delivered to subscribers. It is a
// best-effort reactivity signal, not a consistency mechanism.
type Change struct {
	Collection CollectionKey `json:"collection"`
	Op         ChangeOp      `json:"op"`
	ID         string        `json:"id"`
}
