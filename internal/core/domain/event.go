package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ordenate/backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// EventCategories are the session categories offered by the scheduler UI.
// The field itself is an open string.
var EventCategories = []string{
	"Consulta", "Avaliação", "Retorno", "Reunião", "Acompanhamento", "Outros",
}

// Event is a calendar/session entry. RevenueGenerated only ever transitions
// false -> true, exactly once, via the store's revenue materialization rule;
// it is terminal and survives later edits of the event.
type Event struct {
	ID               string    `json:"id"`
	Title            string    `json:"titulo"`
	Description      string    `json:"descricao"`
	StartsAt         time.Time `json:"dataInicio"`
	EndsAt           time.Time `json:"dataFim"`
	ClientID         string    `json:"clienteId,omitempty"` // weak reference
	Location         string    `json:"local"`
	Category         string    `json:"tipo"`
	Value            string    `json:"valor,omitempty"` // unparsed monetary value, comma or dot decimals
	Completed        bool      `json:"realizado"`
	RevenueGenerated bool      `json:"receitaGerada"`
	CreatedAt        time.Time `json:"criadoEm"`
}

// Validate checks the invariants enforced before an event enters the store.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("event title is required: %w", apperrors.ErrValidation)
	}
	if e.StartsAt.IsZero() {
		return fmt.Errorf("event start is required: %w", apperrors.ErrValidation)
	}
	if !e.EndsAt.IsZero() && e.EndsAt.Before(e.StartsAt) {
		return fmt.Errorf("event end precedes start: %w", apperrors.ErrValidation)
	}
	return nil
}

// ParsedValue parses the event's monetary value, accepting both "150,00" and
// "150.00". The boolean reports whether the value is syntactically valid and
// strictly positive, which is the precondition for revenue materialization.
func (e Event) ParsedValue() (decimal.Decimal, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(e.Value, ",", "."))
	if raw == "" {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, false
	}
	return amount, true
}
