package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/dto"
)

// SeedDemoData populates an empty store with a small demonstration data
// set. A store that already holds any record is left untouched, so the
// seed is safe to run on every startup.
func SeedDemoData(ctx context.Context, store portssvc.StoreSvcFacade) error {
	snap := store.Snapshot()
	if len(snap.Clients) > 0 || len(snap.Notes) > 0 || len(snap.Events) > 0 || len(snap.Transactions) > 0 {
		return nil
	}

	clients := []dto.CreateClientRequest{
		{
			Name:          "Mariana Costa",
			Email:         "mariana.costa@example.com",
			Mobile:        "(11) 98765-4321",
			Status:        "Ativo",
			Group:         "Tech Solutions LTDA",
			Gender:        "Feminino",
			BirthDate:     "1990-04-12",
			FinancialPlan: "Mensal",
			SessionPrice:  "180,00",
		},
		{
			Name:      "Rafael Oliveira",
			Email:     "rafael.oliveira@example.com",
			Status:    "Em avaliação",
			Group:     "Construtora Horizonte",
			Gender:    "Masculino",
			BirthDate: "1985-11-03",
		},
		{
			Name:   "Beatriz Santos",
			Status: "Inativo",
			Group:  "Consultoria Aurora",
			Gender: "Feminino",
		},
	}

	ids := make([]string, 0, len(clients))
	for _, req := range clients {
		client, err := store.CreateClient(ctx, req)
		if err != nil {
			return fmt.Errorf("failed to seed client: %w", err)
		}
		ids = append(ids, client.ID)
	}

	notes := []dto.CreateNoteRequest{
		{
			ClientID:       ids[0],
			Text:           "Sessão inicial de alinhamento. Cliente demonstrou abertura para o processo de acompanhamento organizacional.",
			EmotionalState: "Motivado",
			Trend:          "Proativo",
			Urgency:        "Baixa",
			EngagementType: "Rotina",
		},
		{
			ClientID:       ids[1],
			Text:           "Relatou conflitos recorrentes com a liderança direta. Agendada avaliação de clima para a próxima semana.",
			EmotionalState: "Ansioso",
			Trend:          "Em adaptação",
			Urgency:        "Alta",
			EngagementType: "Conflito",
		},
	}
	for _, req := range notes {
		if _, err := store.CreateNote(ctx, req); err != nil {
			return fmt.Errorf("failed to seed note: %w", err)
		}
	}

	txn := dto.SaveTransactionRequest{
		Kind:          "despesa",
		Amount:        decimal.NewFromInt(650),
		Description:   "Aluguel da sala de atendimento",
		Date:          "2026-08-05",
		PaymentMethod: "PIX",
		Category:      "Aluguel",
		Settled:       true,
	}
	if _, err := store.CreateTransaction(ctx, txn); err != nil {
		return fmt.Errorf("failed to seed transaction: %w", err)
	}

	return nil
}
