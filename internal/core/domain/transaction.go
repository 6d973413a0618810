package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ordenate/backend/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a transaction is revenue or an expense.
type TransactionKind string

const (
	Revenue TransactionKind = "receita"
	Expense TransactionKind = "despesa"
)

// PaymentMethods enumerates the accepted payment methods.
var PaymentMethods = []string{
	"Dinheiro", "PIX", "Cartão de Crédito", "Cartão de Débito", "Boleto", "Transferência", "Outro",
}

// ExpenseCategories enumerates the expense categories. Expenses stored
// without a category fall into the "Outros" bucket during aggregation.
var ExpenseCategories = []string{
	"Aluguel", "Equipamentos", "Materiais", "Marketing", "Transporte",
	"Alimentação", "Outros", "Impostos", "Salários", "Serviços",
}

// ExpenseCategoryOther is the fallback bucket for uncategorized expenses.
const ExpenseCategoryOther = "Outros"

// Transaction is a single financial record. Settled distinguishes cash
// actually received/paid from merely recorded amounts; period and global
// totals are settled-only, while per-client rollups are not.
type Transaction struct {
	ID            string          `json:"id"`
	Kind          TransactionKind `json:"tipo"`
	Amount        decimal.Decimal `json:"valor"` // strictly positive
	Description   string          `json:"descricao"`
	Date          string          `json:"data"` // YYYY-MM-DD
	PaymentMethod string          `json:"formaPagamento"`
	ClientID      string          `json:"clienteId,omitempty"` // weak reference, meaningful for revenue
	Category      string          `json:"categoria,omitempty"` // meaningful for expenses
	Remarks       string          `json:"observacoes,omitempty"`
	Settled       bool            `json:"pago"`
	CreatedAt     time.Time       `json:"dataCriacao"`
}

// Validate checks the invariants enforced before a transaction enters the
// store. Non-positive amounts are rejected at input, never stored.
func (t Transaction) Validate() error {
	if t.Kind != Revenue && t.Kind != Expense {
		return fmt.Errorf("transaction kind must be %q or %q: %w", Revenue, Expense, apperrors.ErrValidation)
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("transaction description is required: %w", apperrors.ErrValidation)
	}
	if strings.TrimSpace(t.Date) == "" {
		return fmt.Errorf("transaction date is required: %w", apperrors.ErrValidation)
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be positive: %w", apperrors.ErrValidation)
	}
	return nil
}

// ParseDay parses a stored day value at local midnight. Both plain days
// ("2026-08-28") and full RFC 3339 instants are accepted; malformed values
// return the zero time so aggregation degrades instead of failing.
func ParseDay(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}
	if t, err := time.ParseInLocation("2006-01-02", raw, time.Local); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.Local()
	}
	return time.Time{}
}
