package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ordenate/backend/internal/apperrors"
	"github.com/ordenate/backend/internal/core/analytics"
	"github.com/ordenate/backend/internal/core/domain"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/utils"
)

// personaNoteLimit and personaTextBudget bound the note history on a
// persona document.
const (
	personaNoteLimit  = 8
	personaTextBudget = 150
)

var longMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var longWeekdays = [...]string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

// reportService assembles aggregate figures and narrative templates into
// ordered report documents. It is stateless; all inputs arrive as a
// snapshot so the assembled document is a pure function of its arguments.
type reportService struct {
	BaseService
}

// NewReportService creates the report assembler.
func NewReportService() portssvc.ReportSvcFacade {
	return &reportService{}
}

// Ensure reportService implements the ReportSvcFacade interface
var _ portssvc.ReportSvcFacade = (*reportService)(nil)

func (s *reportService) Assemble(ctx context.Context, kind domain.ReportKind, snap domain.Snapshot, now time.Time) (*domain.Report, error) {
	switch kind {
	case domain.ReportWeekly:
		return s.weekly(snap, now), nil
	case domain.ReportMonthly:
		return s.monthly(snap, now), nil
	default:
		return nil, fmt.Errorf("unknown report kind %q: %w", kind, apperrors.ErrValidation)
	}
}

func (s *reportService) weekly(snap domain.Snapshot, now time.Time) *domain.Report {
	total := len(snap.Clients)
	active := analytics.CountStatus(snap.Clients, domain.StatusActive)
	underReview := analytics.CountStatus(snap.Clients, domain.StatusUnderReview)
	inactive := analytics.CountStatus(snap.Clients, domain.StatusInactive)
	percentActive := analytics.Percent(active, total)

	summary := []string{
		"Este relatório apresenta um panorama completo das atividades de atendimento da semana.",
		fmt.Sprintf("Durante o período analisado, foram registrados %d %s no sistema.",
			total, pluralize(total, "cliente", "clientes")),
		fmt.Sprintf("Em relação ao status, %d %s, %d %s e %d %s.",
			active, pluralize(active, "cliente está ativo", "clientes estão ativos"),
			underReview, pluralize(underReview, "está em avaliação", "estão em avaliação"),
			inactive, pluralize(inactive, "está inativo", "estão inativos")),
	}

	analysis := []string{
		"Com base nos dados apresentados, a distribuição de clientes demonstra o nível de atividade do serviço de psicologia organizacional.",
		fmt.Sprintf("A proporção de clientes ativos (%d%%) indica um bom nível de engajamento e acompanhamento contínuo.", percentActive),
	}
	if underReview > 0 {
		analysis = append(analysis, fmt.Sprintf(
			"É importante dar atenção especial aos %d %s, garantindo que recebam o suporte necessário.",
			underReview, pluralize(underReview, "cliente em avaliação", "clientes em avaliação")))
	} else {
		analysis = append(analysis,
			"Todos os clientes estão com status definido, o que facilita o acompanhamento e gestão.")
	}

	return &domain.Report{
		Title:    "ORDENATE",
		Subtitle: "Relatório Semanal de Atendimentos",
		Period:   fmt.Sprintf("Gerado em: %s", formatLongDate(now)),
		Sections: []domain.ReportSection{
			{Heading: "Resumo Executivo", Paragraphs: summary},
			{Heading: "Estatísticas Principais", Table: &domain.ReportTable{
				Headers: []string{"Indicador", "Valor", "Detalhe"},
				Rows: [][]string{
					{"Total de Clientes", fmt.Sprintf("%d", total), "registros"},
					{"Clientes Ativos", fmt.Sprintf("%d", active), fmt.Sprintf("%d%% do total", percentActive)},
					{"Em Avaliação", fmt.Sprintf("%d", underReview), "Requerem atenção"},
				},
			}},
			{Heading: "Distribuição por Status", Chart: analytics.StatusHistogram(snap.Clients).ChartSeries()},
			{Heading: "Análise e Observações", Paragraphs: analysis},
		},
	}
}

func (s *reportService) monthly(snap domain.Snapshot, now time.Time) *domain.Report {
	total := len(snap.Clients)
	active := analytics.CountStatus(snap.Clients, domain.StatusActive)
	underReview := analytics.CountStatus(snap.Clients, domain.StatusUnderReview)
	inactive := analytics.CountStatus(snap.Clients, domain.StatusInactive)
	newThisMonth := analytics.NewThisMonth(snap.Clients, now)
	percentActive := analytics.Percent(active, total)
	percentNew := analytics.Percent(newThisMonth, total)
	currentMonth := fmt.Sprintf("%s de %d", longMonths[now.Month()-1], now.Year())

	summary := []string{
		fmt.Sprintf("Este relatório mensal apresenta uma análise completa e detalhada das atividades de atendimento realizadas durante o mês de %s.", currentMonth),
		fmt.Sprintf("Durante o período, foram gerenciados %d %s no sistema, sendo %d %s neste mês.",
			total, pluralize(total, "registro", "registros"),
			newThisMonth, pluralize(newThisMonth, "novo registro adicionado", "novos registros adicionados")),
		fmt.Sprintf("A taxa de ativos no mês foi de %d%%, com %d %s, %d em avaliação e %d %s.",
			percentActive,
			active, pluralize(active, "cliente ativo", "clientes ativos"),
			underReview,
			inactive, pluralize(inactive, "inativo", "inativos")),
	}

	baseAnalysis := []string{
		fmt.Sprintf("A base atual possui %d %s cadastrados no sistema de psicologia organizacional.",
			total, pluralize(total, "cliente", "clientes")),
		fmt.Sprintf("A taxa de clientes ativos é de %d%%, indicando o nível de engajamento e acompanhamento contínuo.", percentActive),
	}

	var recommendations []string
	if newThisMonth > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"• Crescimento observado: %d %s %s no mês. Mantenha o foco em qualidade de atendimento.",
			newThisMonth,
			pluralize(newThisMonth, "novo registro", "novos registros"),
			pluralize(newThisMonth, "adicionado", "adicionados")))
	} else {
		recommendations = append(recommendations,
			"• Estabilidade na base: Nenhum novo registro no mês. Considere estratégias de captação se necessário.")
	}
	switch {
	case percentActive >= 70:
		recommendations = append(recommendations, fmt.Sprintf(
			"• Excelente taxa de ativos (%d%%): A maioria dos clientes está ativa, indicando boa retenção e engajamento.", percentActive))
	case percentActive >= 50:
		recommendations = append(recommendations, fmt.Sprintf(
			"• Taxa de ativos moderada (%d%%): Há espaço para melhorar a retenção e engajamento dos clientes.", percentActive))
	default:
		recommendations = append(recommendations, fmt.Sprintf(
			"• Atenção necessária: Taxa de ativos abaixo de 50%% (%d%%). Considere revisar estratégias de acompanhamento.", percentActive))
	}
	if underReview > 0 {
		recommendations = append(recommendations, fmt.Sprintf(
			"• %d %s em avaliação. Priorize o acompanhamento para definição de status.",
			underReview, pluralize(underReview, "cliente está", "clientes estão")))
	} else {
		recommendations = append(recommendations,
			"• Todos os clientes têm status definido. Continue mantendo o acompanhamento regular.")
	}
	recommendations = append(recommendations,
		"• Mantenha o foco no acompanhamento contínuo e desenvolvimento organizacional dos clientes.")

	focus := "melhorar o engajamento dos clientes"
	if float64(active) >= float64(total)*0.7 {
		focus = "manter a alta taxa de ativos"
	}
	followUp := "clientes ativos"
	if underReview > 0 {
		followUp = fmt.Sprintf("%d clientes em avaliação", underReview)
	}
	nextMonth := "explorar estratégias de captação"
	if newThisMonth > 0 {
		nextMonth = "manter o ritmo de crescimento observado"
	}
	conclusion := []string{
		fmt.Sprintf("O mês de %s apresentou uma base total de %d %s, com foco em %s.",
			currentMonth, total, pluralize(total, "registro", "registros"), focus),
		"O serviço de psicologia organizacional mantém uma estrutura sólida para atender às necessidades de desenvolvimento e acompanhamento dos clientes.",
		fmt.Sprintf("Recomenda-se manter o acompanhamento regular, especialmente dos %s, garantindo qualidade e continuidade do atendimento.", followUp),
		fmt.Sprintf("Para o próximo mês, sugere-se %s, sempre priorizando a qualidade do atendimento e a satisfação dos clientes.", nextMonth),
	}

	sections := []domain.ReportSection{
		{Heading: "Resumo Executivo", Paragraphs: summary},
		{Heading: "Dashboard de Métricas Mensais", Table: &domain.ReportTable{
			Headers: []string{"Indicador", "Valor", "Detalhe"},
			Rows: [][]string{
				{"Total Registros", fmt.Sprintf("%d", total), "Base total"},
				{"Novos no Mês", fmt.Sprintf("%d", newThisMonth), fmt.Sprintf("%d%% do total", percentNew)},
				{"Clientes Ativos", fmt.Sprintf("%d", active), fmt.Sprintf("%d%% de ativos", percentActive)},
				{"Em Avaliação", fmt.Sprintf("%d", underReview), "Requer atenção"},
			},
		}},
		{Heading: "Análise da Base de Clientes", Paragraphs: baseAnalysis},
		{Heading: "Distribuição por Status (Com Percentuais)", Chart: analytics.StatusHistogram(snap.Clients).ChartSeries()},
	}
	if gender := analytics.GenderHistogram(snap.Clients); len(gender) > 0 {
		sections = append(sections, domain.ReportSection{
			Heading: "Distribuição por Gênero",
			Chart:   gender.ChartSeries(),
		})
	}
	sections = append(sections,
		domain.ReportSection{Heading: "Recomendações e Insights Estratégicos", Paragraphs: recommendations},
		domain.ReportSection{Heading: "Conclusão Mensal", Paragraphs: conclusion},
	)

	return &domain.Report{
		Title:    "ORDENATE",
		Subtitle: "Relatório Mensal de Atendimentos",
		Period:   fmt.Sprintf("Período: %s", currentMonth),
		Sections: sections,
	}
}

// Persona builds the single-client document. An unknown client id yields
// ErrNotFound and no partial document.
func (s *reportService) Persona(ctx context.Context, snap domain.Snapshot, clientID string, now time.Time) (*domain.Persona, error) {
	var client *domain.Client
	for i := range snap.Clients {
		if snap.Clients[i].ID == clientID {
			client = &snap.Clients[i]
			break
		}
	}
	if client == nil {
		return nil, fmt.Errorf("client %s: %w", clientID, apperrors.ErrNotFound)
	}

	notes := analytics.NotesForClient(clientID, snap.Notes)
	rollup := analytics.RollupForClient(clientID, snap.Notes, snap.Events, snap.Transactions)

	persona := &domain.Persona{
		ClientID:   clientID,
		Name:       client.Name,
		Status:     orDefault(client.Status, "Não definido"),
		Group:      orDefault(client.Group, "-"),
		Gender:     orDefault(client.Gender, "-"),
		AgeYears:   analytics.AgeYears(client.BirthDate, now),
		Since:      sinceLabel(client.CreatedAt),
		Contact:    contactLabel(client),
		Plan:       client.FinancialPlan,
		NoteCount:  rollup.NoteCount,
		EventCount: rollup.Events,
		Revenue:    utils.FormatBRL(rollup.Revenue),
		Indicators: []domain.PersonaIndicator{
			{Label: "Estado Emocional", Value: analytics.EmotionalStateHistogram(notes).MostFrequent()},
			{Label: "Tendência", Value: analytics.TrendHistogram(notes).MostFrequent()},
			{Label: "Nível de Urgência", Value: analytics.UrgencyHistogram(notes).MostFrequent()},
			{Label: "Tipo Acompanhamento", Value: analytics.EngagementHistogram(notes).MostFrequent()},
		},
	}

	for i, note := range notes {
		if i == personaNoteLimit {
			break
		}
		persona.RecentNotes = append(persona.RecentNotes, domain.PersonaNote{
			Date:           note.CreatedAt.Format("02/01/2006"),
			Text:           truncate(note.Text, personaTextBudget),
			EmotionalState: note.EmotionalState,
			Trend:          note.Trend,
		})
	}
	return persona, nil
}

// pluralize picks the singular form exactly when the count is one.
func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// truncate cuts text beyond the rune budget and appends an ellipsis marker.
func truncate(text string, budget int) string {
	runes := []rune(text)
	if len(runes) <= budget {
		return text
	}
	return string(runes[:budget]) + "..."
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func sinceLabel(createdAt time.Time) string {
	if createdAt.IsZero() {
		return "-"
	}
	return createdAt.Format("02/01/2006")
}

func contactLabel(c *domain.Client) string {
	switch {
	case c.Email != "":
		return c.Email
	case c.Mobile != "":
		return c.Mobile
	case c.Phone != "":
		return c.Phone
	default:
		return "Não informado"
	}
}

// formatLongDate renders a pt-BR long date, e.g.
// "sexta-feira, 28 de agosto de 2026".
func formatLongDate(t time.Time) string {
	return fmt.Sprintf("%s, %d de %s de %d",
		longWeekdays[t.Weekday()], t.Day(), longMonths[t.Month()-1], t.Year())
}
