package dto

import (
	"time"

	"github.com/ordenate/backend/internal/core/domain"
)

// SaveEventRequest defines the data for creating or replacing a calendar
// event. RevenueGenerated is intentionally absent: that flag is owned by the
// store and cannot be set or cleared from the outside.
type SaveEventRequest struct {
	Title       string    `json:"titulo" binding:"required"`
	Description string    `json:"descricao"`
	StartsAt    time.Time `json:"dataInicio" binding:"required"`
	EndsAt      time.Time `json:"dataFim"`
	ClientID    string    `json:"clienteId"`
	Location    string    `json:"local"`
	Category    string    `json:"tipo"`
	Value       string    `json:"valor"`
	Completed   bool      `json:"realizado"`
}

// EventResponse mirrors domain.Event for API output.
type EventResponse struct {
	ID               string    `json:"id"`
	Title            string    `json:"titulo"`
	Description      string    `json:"descricao"`
	StartsAt         time.Time `json:"dataInicio"`
	EndsAt           time.Time `json:"dataFim"`
	ClientID         string    `json:"clienteId,omitempty"`
	Location         string    `json:"local"`
	Category         string    `json:"tipo"`
	Value            string    `json:"valor,omitempty"`
	Completed        bool      `json:"realizado"`
	RevenueGenerated bool      `json:"receitaGerada"`
	CreatedAt        time.Time `json:"criadoEm"`
}

// CalendarCell is one slot of the 6-week month grid. Filler cells outside
// the month carry a null date and no events.
type CalendarCell struct {
	Date   *string         `json:"data"`
	Events []EventResponse `json:"eventos"`
}

// CalendarResponse is the month grid served to the calendar view.
type CalendarResponse struct {
	Month string         `json:"mes"`
	Cells []CalendarCell `json:"celulas"`
}

// ToEventResponse converts a domain.Event to its API representation.
func ToEventResponse(e *domain.Event) EventResponse {
	return EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		StartsAt:         e.StartsAt,
		EndsAt:           e.EndsAt,
		ClientID:         e.ClientID,
		Location:         e.Location,
		Category:         e.Category,
		Value:            e.Value,
		Completed:        e.Completed,
		RevenueGenerated: e.RevenueGenerated,
		CreatedAt:        e.CreatedAt,
	}
}
