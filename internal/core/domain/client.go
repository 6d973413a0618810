package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ordenate/backend/internal/apperrors"
)

// ClientStatus is the lifecycle status of a client. The field is an open
// string in the stored data, but exactly these three values drive the
// dashboard and report aggregations.
type ClientStatus = string

const (
	StatusActive      ClientStatus = "Ativo"
	StatusUnderReview ClientStatus = "Em avaliação"
	StatusInactive    ClientStatus = "Inativo"
)

// StatusOrder is the fixed category order used for status histograms so
// chart rendering stays stable across refreshes.
var StatusOrder = []string{StatusActive, StatusUnderReview, StatusInactive}

// Client is a consulting client record. JSON tags follow the stored wire
// format so the jsonfile gateway round-trips data files produced by earlier
// versions of the system.
type Client struct {
	ID               string    `json:"id"` // Primary Key (UUID, client-generated)
	Name             string    `json:"nome"`
	Email            string    `json:"email"`
	Phone            string    `json:"telefone"`
	Mobile           string    `json:"celular"`
	Status           string    `json:"status"`
	Notes            string    `json:"anotacoes"` // free text, distinct from the Note entity
	Group            string    `json:"grupo"`
	NationalID       string    `json:"cpf"`
	SecondaryID      string    `json:"rg"`
	BirthDate        string    `json:"dataNascimento"` // YYYY-MM-DD
	Gender           string    `json:"genero"`
	UsesSocialName   bool      `json:"nomeSocial"`
	FinancialPlan    string    `json:"planoFinanceiro"`
	SessionPrice     string    `json:"valorSessao"`
	Remarks          string    `json:"observacoes"`
	Address          string    `json:"endereco"`
	AdditionalData   string    `json:"adicionais"`
	ResponsibleParty string    `json:"responsavel"`
	PhotoURL         string    `json:"fotoUrl,omitempty"`
	ExternalProfile  string    `json:"linkedin,omitempty"`
	CreatedAt        time.Time `json:"dataCriacao"`    // set once at creation
	UpdatedAt        time.Time `json:"dataAtualizacao"` // advances on every mutation
}

// Validate checks the invariants enforced before a client enters the store.
func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("client name is required: %w", apperrors.ErrValidation)
	}
	return nil
}

// Profile is the practitioner's own profile, persisted under its own
// collection key. It is not aggregated; the store only round-trips it.
type Profile struct {
	Name     string `json:"nome"`
	Age      string `json:"idade"`
	Gender   string `json:"genero"`
	Pronouns string `json:"pronomes"`
	Photo    string `json:"foto,omitempty"`
}
