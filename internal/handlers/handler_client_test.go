package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordenate/backend/internal/adapters/render/textdoc"
	"github.com/ordenate/backend/internal/adapters/storage/jsonfile"
	"github.com/ordenate/backend/internal/core/services"
	"github.com/ordenate/backend/internal/handlers"
	"github.com/ordenate/backend/internal/platform/config"
)

// setupRouter wires a full router against a real store on a throwaway data
// directory, so the tests exercise the same path production requests take.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gateway, err := jsonfile.NewGateway(t.TempDir())
	require.NoError(t, err)

	container := services.NewServiceContainer(gateway)
	cfg := &config.Config{RateLimitRPS: 1000}

	r := gin.New()
	handlers.RegisterRoutes(r, cfg, container, gateway, textdoc.NewRenderer())
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestClientLifecycle(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/clients", gin.H{
		"nome":   "Mariana Costa",
		"email":  "mariana@empresa.com.br",
		"genero": "Feminino",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var created map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Ativo", created["status"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/clients/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPut, "/api/v1/clients/"+id, gin.H{
		"nome":   "Mariana Costa",
		"status": "Inativo",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var listed map[string]any
	w = doJSON(t, r, http.MethodGet, "/api/v1/clients?status=Inativo", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, float64(1), listed["total"])

	w = doJSON(t, r, http.MethodDelete, "/api/v1/clients/"+id, nil)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/clients/"+id, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateClientValidation(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/clients", gin.H{"email": "sem-nome@x.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompletedEventFeedsFinancialSummary(t *testing.T) {
	r := setupRouter(t)

	start := time.Now().Add(-time.Hour).Format(time.RFC3339)
	w := doJSON(t, r, http.MethodPost, "/api/v1/events", gin.H{
		"titulo":     "Sessão de acompanhamento",
		"dataInicio": start,
		"tipo":       "Acompanhamento",
		"valor":      "200",
		"realizado":  true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var event map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, true, event["receitaGerada"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/financial/summary?periodo=todos", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	transactions, _ := summary["transacoes"].([]any)
	require.Len(t, transactions, 1)
	txn := transactions[0].(map[string]any)
	assert.Equal(t, "receita", txn["tipo"])
	assert.Equal(t, "200", fmt.Sprintf("%v", txn["valor"]))
	assert.Equal(t, true, txn["pago"])
}

func TestMonthCalendarGrid(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/events", gin.H{
		"titulo":     "Workshop de liderança",
		"dataInicio": time.Date(2026, 8, 15, 14, 0, 0, 0, time.Local).Format(time.RFC3339),
		"tipo":       "Workshop",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/events/calendar?mes=2026-08", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var calendar map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &calendar))
	assert.Equal(t, "2026-08", calendar["mes"])

	cells, _ := calendar["celulas"].([]any)
	require.Len(t, cells, 42)

	// August 2026 starts on a Saturday, so the first six cells are filler.
	for i := 0; i < 6; i++ {
		cell := cells[i].(map[string]any)
		assert.Nil(t, cell["data"], "cell %d", i)
		assert.Empty(t, cell["eventos"], "cell %d", i)
	}

	// Saturday the 15th lands on cell index 6+14.
	day := cells[20].(map[string]any)
	require.Equal(t, "2026-08-15", day["data"])
	events, _ := day["eventos"].([]any)
	require.Len(t, events, 1)
	assert.Equal(t, "Workshop de liderança", events[0].(map[string]any)["titulo"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/events/calendar?mes=agosto", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFinancialSummaryChartsFollowPeriod(t *testing.T) {
	r := setupRouter(t)

	lastYear := time.Now().AddDate(-1, 0, 0).Format("2006-01-02")
	w := doJSON(t, r, http.MethodPost, "/api/v1/transactions", gin.H{
		"tipo":      "despesa",
		"valor":     500,
		"descricao": "Aluguel da sala",
		"data":      lastYear,
		"categoria": "Aluguel",
		"pago":      true,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The month window excludes last year's transaction from the list and
	// from both charts alike.
	w = doJSON(t, r, http.MethodGet, "/api/v1/financial/summary?periodo=mes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var summary map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Empty(t, summary["transacoes"])
	assert.Empty(t, summary["fluxoMensal"])
	assert.Empty(t, summary["despesasPorCategoria"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/financial/summary?periodo=todos", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
	assert.Len(t, summary["transacoes"], 1)
	assert.Len(t, summary["fluxoMensal"], 1)
	assert.Len(t, summary["despesasPorCategoria"], 1)
}

func TestDashboardCounters(t *testing.T) {
	r := setupRouter(t)

	for _, body := range []gin.H{
		{"nome": "Mariana Costa", "status": "Ativo", "genero": "Feminino"},
		{"nome": "Rafael Oliveira", "status": "Em avaliação", "genero": "Masculino"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/v1/clients", body)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var dashboard map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, float64(2), dashboard["totalClientes"])
	assert.Equal(t, float64(1), dashboard["clientesAtivos"])
	assert.Equal(t, float64(1), dashboard["emAvaliacao"])
	assert.Equal(t, float64(2), dashboard["novosNoMes"])

	// A cross-filter narrows every counter consistently.
	w = doJSON(t, r, http.MethodGet, "/api/v1/dashboard?genero=Feminino", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dashboard))
	assert.Equal(t, float64(1), dashboard["totalClientes"])
	assert.Equal(t, float64(0), dashboard["emAvaliacao"])
}

func TestReportEndpoint(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/reports/semanal", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var report map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, "ORDENATE", report["title"])

	w = doJSON(t, r, http.MethodGet, "/api/v1/reports/semanal?formato=texto", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "Relatório Semanal de Atendimentos")

	w = doJSON(t, r, http.MethodGet, "/api/v1/reports/anual", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportClientsCSV(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/clients", gin.H{"nome": "Beatriz Santos"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/export/clients.csv", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "clientes.csv")
	assert.Contains(t, w.Body.String(), "Nome,Email,Telefone")
	assert.Contains(t, w.Body.String(), "Beatriz Santos")
}
