package dto

import (
	"time"

	"github.com/ordenate/backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaveTransactionRequest defines the data for creating or replacing a
// financial transaction.
type SaveTransactionRequest struct {
	Kind          string          `json:"tipo" binding:"required"`
	Amount        decimal.Decimal `json:"valor" binding:"required"`
	Description   string          `json:"descricao" binding:"required"`
	Date          string          `json:"data" binding:"required"` // YYYY-MM-DD
	PaymentMethod string          `json:"formaPagamento"`
	ClientID      string          `json:"clienteId"`
	Category      string          `json:"categoria"`
	Remarks       string          `json:"observacoes"`
	Settled       bool            `json:"pago"`
}

// TransactionResponse mirrors domain.Transaction for API output.
type TransactionResponse struct {
	ID            string          `json:"id"`
	Kind          string          `json:"tipo"`
	Amount        decimal.Decimal `json:"valor"`
	Description   string          `json:"descricao"`
	Date          string          `json:"data"`
	PaymentMethod string          `json:"formaPagamento"`
	ClientID      string          `json:"clienteId,omitempty"`
	Category      string          `json:"categoria,omitempty"`
	Remarks       string          `json:"observacoes,omitempty"`
	Settled       bool            `json:"pago"`
	CreatedAt     time.Time       `json:"dataCriacao"`
}

// ToTransactionResponse converts a domain.Transaction to its API
// representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Kind:          string(t.Kind),
		Amount:        t.Amount,
		Description:   t.Description,
		Date:          t.Date,
		PaymentMethod: t.PaymentMethod,
		ClientID:      t.ClientID,
		Category:      t.Category,
		Remarks:       t.Remarks,
		Settled:       t.Settled,
		CreatedAt:     t.CreatedAt,
	}
}
