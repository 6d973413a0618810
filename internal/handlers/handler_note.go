package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/ordenate/backend/internal/core/analytics"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/dto"
	"github.com/ordenate/backend/internal/middleware"
)

// noteHandler handles HTTP requests related to clinical notes.
type noteHandler struct {
	store portssvc.StoreSvcFacade
}

func newNoteHandler(store portssvc.StoreSvcFacade) *noteHandler {
	return &noteHandler{store: store}
}

// registerNoteRoutes registers routes related to notes.
func registerNoteRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade) {
	h := newNoteHandler(store)

	notes := rg.Group("/notes")
	{
		notes.POST("", h.createNote)
		notes.GET("", h.listNotes)
		notes.DELETE("/:id", h.deleteNote)
	}
}

func (h *noteHandler) createNote(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateNote", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	note, err := h.store.CreateNote(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create note")
		return
	}
	c.JSON(http.StatusCreated, dto.ToNoteResponse(note))
}

// listNotes returns notes most recent first, optionally narrowed to one
// client via ?clienteId=.
func (h *noteHandler) listNotes(c *gin.Context) {
	snap := h.store.Snapshot()

	notes := snap.Notes
	if clientID := c.Query("clienteId"); clientID != "" {
		notes = analytics.NotesForClient(clientID, snap.Notes)
	} else {
		sort.SliceStable(notes, func(i, j int) bool {
			return notes[i].CreatedAt.After(notes[j].CreatedAt)
		})
	}

	out := make([]dto.NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, dto.ToNoteResponse(&notes[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *noteHandler) deleteNote(c *gin.Context) {
	if err := h.store.DeleteNote(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete note")
		return
	}
	c.Status(http.StatusNoContent)
}
