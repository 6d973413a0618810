package analytics

import (
	"sort"
	"time"

	"github.com/ordenate/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ClientRollup is the per-client aggregate: note count, event count and the
// sum of revenue transactions tied to the client. Revenue here includes
// unsettled amounts on purpose: the rollup describes work attributable to
// the client, while the financial totals describe cash actually received.
type ClientRollup struct {
	ClientID  string          `json:"clienteId"`
	NoteCount int             `json:"anotacoes"`
	Events    int             `json:"eventos"`
	Revenue   decimal.Decimal `json:"receitas"`
}

// RollupForClient computes the rollup for one client id over the given
// collections. A dangling or unknown id simply yields zero counts.
func RollupForClient(clientID string, notes []domain.Note, events []domain.Event, txns []domain.Transaction) ClientRollup {
	rollup := ClientRollup{ClientID: clientID, Revenue: decimal.Zero}
	for _, n := range notes {
		if n.ClientID == clientID {
			rollup.NoteCount++
		}
	}
	for _, e := range events {
		if e.ClientID == clientID {
			rollup.Events++
		}
	}
	for _, t := range txns {
		if t.ClientID == clientID && t.Kind == domain.Revenue {
			rollup.Revenue = rollup.Revenue.Add(t.Amount)
		}
	}
	return rollup
}

// NotesForClient returns the client's notes ordered most recent first.
func NotesForClient(clientID string, notes []domain.Note) []domain.Note {
	out := make([]domain.Note, 0)
	for _, n := range notes {
		if n.ClientID == clientID {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// NewThisMonth counts clients whose CreatedAt falls within the calendar
// month containing now. Clients without a creation timestamp never count.
func NewThisMonth(clients []domain.Client, now time.Time) int {
	count := 0
	for _, c := range clients {
		if c.CreatedAt.IsZero() {
			continue
		}
		created := c.CreatedAt.In(time.Local)
		if created.Year() == now.Year() && created.Month() == now.Month() {
			count++
		}
	}
	return count
}

// AgeYears computes a whole-year age from a YYYY-MM-DD birth date, or -1
// when the date is absent or malformed.
func AgeYears(birthDate string, now time.Time) int {
	born := domain.ParseDay(birthDate)
	if born.IsZero() {
		return -1
	}
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	if age < 0 {
		return -1
	}
	return age
}
