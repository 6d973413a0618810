package dto

import (
	"time"

	"github.com/ordenate/backend/internal/core/domain"
)

// CreateNoteRequest defines the data needed to record a clinical note.
type CreateNoteRequest struct {
	ClientID       string `json:"clienteId" binding:"required"`
	Text           string `json:"texto" binding:"required"`
	Date           string `json:"data"` // YYYY-MM-DD, defaults to today
	EmotionalState string `json:"estadoEmocional"`
	Trend          string `json:"tendencia"`
	Urgency        string `json:"urgencia"`
	EngagementType string `json:"tipoAcompanhamento"`
}

// NoteResponse mirrors domain.Note for API output.
type NoteResponse struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clienteId"`
	Text           string    `json:"texto"`
	Date           string    `json:"data"`
	CreatedAt      time.Time `json:"dataCriacao"`
	EmotionalState string    `json:"estadoEmocional,omitempty"`
	Trend          string    `json:"tendencia,omitempty"`
	Urgency        string    `json:"urgencia,omitempty"`
	EngagementType string    `json:"tipoAcompanhamento,omitempty"`
}

// ToNoteResponse converts a domain.Note to its API representation.
func ToNoteResponse(n *domain.Note) NoteResponse {
	return NoteResponse{
		ID:             n.ID,
		ClientID:       n.ClientID,
		Text:           n.Text,
		Date:           n.Date,
		CreatedAt:      n.CreatedAt,
		EmotionalState: n.EmotionalState,
		Trend:          n.Trend,
		Urgency:        n.Urgency,
		EngagementType: n.EngagementType,
	}
}
