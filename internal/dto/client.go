package dto

import (
	"time"

	"github.com/ordenate/backend/internal/core/domain"
)

// CreateClientRequest defines the data needed to register a new client.
// Field names bind to the wire format used by the stored collections.
type CreateClientRequest struct {
	Name             string `json:"nome" binding:"required"`
	Email            string `json:"email"`
	Phone            string `json:"telefone"`
	Mobile           string `json:"celular"`
	Status           string `json:"status"`
	Notes            string `json:"anotacoes"`
	Group            string `json:"grupo"`
	NationalID       string `json:"cpf"`
	SecondaryID      string `json:"rg"`
	BirthDate        string `json:"dataNascimento"`
	Gender           string `json:"genero"`
	UsesSocialName   bool   `json:"nomeSocial"`
	FinancialPlan    string `json:"planoFinanceiro"`
	SessionPrice     string `json:"valorSessao"`
	Remarks          string `json:"observacoes"`
	Address          string `json:"endereco"`
	AdditionalData   string `json:"adicionais"`
	ResponsibleParty string `json:"responsavel"`
	PhotoURL         string `json:"fotoUrl"`
	ExternalProfile  string `json:"linkedin"`
}

// UpdateClientRequest carries a full replacement of the mutable client
// fields; identity and creation timestamp are immutable.
type UpdateClientRequest = CreateClientRequest

// ClientResponse mirrors domain.Client for API output.
type ClientResponse struct {
	ID               string    `json:"id"`
	Name             string    `json:"nome"`
	Email            string    `json:"email"`
	Phone            string    `json:"telefone"`
	Mobile           string    `json:"celular"`
	Status           string    `json:"status"`
	Notes            string    `json:"anotacoes"`
	Group            string    `json:"grupo"`
	NationalID       string    `json:"cpf"`
	SecondaryID      string    `json:"rg"`
	BirthDate        string    `json:"dataNascimento"`
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
	CreatedAt        time.Time `json:"dataCriacao"`
	UpdatedAt        time.Time `json:"dataAtualizacao"`
}

// ToClientResponse converts a domain.Client to its API representation.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Mobile:           c.Mobile,
		Status:           c.Status,
		Notes:            c.Notes,
		Group:            c.Group,
		NationalID:       c.NationalID,
		SecondaryID:      c.SecondaryID,
		BirthDate:        c.BirthDate,
		Gender:           c.Gender,
		UsesSocialName:   c.UsesSocialName,
		FinancialPlan:    c.FinancialPlan,
		SessionPrice:     c.SessionPrice,
		Remarks:          c.Remarks,
		Address:          c.Address,
		AdditionalData:   c.AdditionalData,
		ResponsibleParty: c.ResponsibleParty,
		PhotoURL:         c.PhotoURL,
		ExternalProfile:  c.ExternalProfile,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ListClientsResponse wraps a client listing.
type ListClientsResponse struct {
	Clients []ClientResponse `json:"clientes"`
	Total   int              `json:"total"`
}
