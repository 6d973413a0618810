package domain

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ordenate/backend/internal/apperrors"
)

// MaxNoteLength bounds the free text of a clinical note.
const MaxNoteLength = 1000

// EmotionalState tags the client's observed emotional state on a note.
type EmotionalState = string

const (
	StateCollaborative EmotionalState = "Colaborativo"
	StateMotivated     EmotionalState = "Motivado"
	StateNeutral       EmotionalState = "Neutro"
	StateAnxious       EmotionalState = "Ansioso"
	StateStressed      EmotionalState = "Estressado"
	StateUnmotivated   EmotionalState = "Desmotivado"
)

// BehavioralTrend tags the observed behavioral trend.
type BehavioralTrend = string

const (
	TrendProactive BehavioralTrend = "Proativo"
	TrendEngaged   BehavioralTrend = "Engajado"
	TrendStable    BehavioralTrend = "Estável"
	TrendAdapting  BehavioralTrend = "Em adaptação"
	TrendReactive  BehavioralTrend = "Reativo"
	TrendResistant BehavioralTrend = "Resistente"
)

// UrgencyLevel tags how urgently a note needs follow-up, ordered
// Baixa < Média < Alta < Crítica.
type UrgencyLevel = string

const (
	UrgencyLow      UrgencyLevel = "Baixa"
	UrgencyMedium   UrgencyLevel = "Média"
	UrgencyHigh     UrgencyLevel = "Alta"
	UrgencyCritical UrgencyLevel = "Crítica"
)

// UrgencyOrder is the fixed ascending order for urgency histograms.
var UrgencyOrder = []string{UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical}

// EngagementType tags the kind of engagement the note records.
type EngagementType = string

const (
	EngagementRoutine     EngagementType = "Rotina"
	EngagementDevelopment EngagementType = "Desenvolvimento"
	EngagementGuidance    EngagementType = "Orientação"
	EngagementFeedback    EngagementType = "Feedback"
	EngagementAssessment  EngagementType = "Avaliação"
	EngagementConflict    EngagementType = "Conflito"
	EngagementCrisis      EngagementType = "Crise"
)

// Note is a clinical annotation tied to a client. Notes are immutable once
// created, except for deletion. ClientID is a weak reference: deleting the
// client leaves the note behind, and readers must tolerate the dangling id.
type Note struct {
	ID             string    `json:"id"`
	ClientID       string    `json:"clienteId"`
	Text           string    `json:"texto"`
	Date           string    `json:"data"` // YYYY-MM-DD
	CreatedAt      time.Time `json:"dataCriacao"`
	EmotionalState string    `json:"estadoEmocional,omitempty"`
	Trend          string    `json:"tendencia,omitempty"`
	Urgency        string    `json:"urgencia,omitempty"`
	EngagementType string    `json:"tipoAcompanhamento,omitempty"`
}

// Validate checks the invariants enforced before a note enters the store.
func (n Note) Validate() error {
	if n.ClientID == "" {
		return fmt.Errorf("note requires a client: %w", apperrors.ErrValidation)
	}
	if strings.TrimSpace(n.Text) == "" {
		return fmt.Errorf("note text is required: %w", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(n.Text) > MaxNoteLength {
		return fmt.Errorf("note text exceeds %d characters: %w", MaxNoteLength, apperrors.ErrValidation)
	}
	return nil
}
