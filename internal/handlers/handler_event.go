package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ordenate/backend/internal/core/analytics"
	portssvc "github.com/ordenate/backend/internal/core/ports/services"
	"github.com/ordenate/backend/internal/dto"
	"github.com/ordenate/backend/internal/middleware"
)

// eventHandler handles HTTP requests related to calendar events.
type eventHandler struct {
	store portssvc.StoreSvcFacade
}

func newEventHandler(store portssvc.StoreSvcFacade) *eventHandler {
	return &eventHandler{store: store}
}

// registerEventRoutes registers routes related to events.
func registerEventRoutes(rg *gin.RouterGroup, store portssvc.StoreSvcFacade) {
	h := newEventHandler(store)

	events := rg.Group("/events")
	{
		events.POST("", h.createEvent)
		events.GET("", h.listEvents)
		events.GET("/upcoming", h.upcomingEvents)
		events.GET("/calendar", h.monthCalendar)
		events.PUT("/:id", h.updateEvent)
		events.DELETE("/:id", h.deleteEvent)
	}
}

func (h *eventHandler) createEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.SaveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	event, err := h.store.CreateEvent(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to create event")
		return
	}
	c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

// listEvents returns all events, or only the ones on a given day when
// ?dia=YYYY-MM-DD is present.
func (h *eventHandler) listEvents(c *gin.Context) {
	snap := h.store.Snapshot()
	events := snap.Events

	if rawDay := c.Query("dia"); rawDay != "" {
		day, err := time.ParseInLocation("2006-01-02", rawDay, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dia, expected YYYY-MM-DD"})
			return
		}
		events = analytics.EventsOnDay(events, day)
	}

	out := make([]dto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, dto.ToEventResponse(&events[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *eventHandler) upcomingEvents(c *gin.Context) {
	limit := 5
	if raw := c.Query("limite"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limite, expected a positive integer"})
			return
		}
		limit = parsed
	}

	snap := h.store.Snapshot()
	upcoming := analytics.UpcomingEvents(snap.Events, time.Now(), limit)

	out := make([]dto.EventResponse, 0, len(upcoming))
	for i := range upcoming {
		out = append(out, dto.ToEventResponse(&upcoming[i]))
	}
	c.JSON(http.StatusOK, out)
}

// monthCalendar serves the 6-week day grid for one month, defaulting to the
// current one. ?mes=YYYY-MM picks another month.
func (h *eventHandler) monthCalendar(c *gin.Context) {
	anchor := time.Now()
	if rawMonth := c.Query("mes"); rawMonth != "" {
		parsed, err := time.ParseInLocation("2006-01", rawMonth, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid mes, expected YYYY-MM"})
			return
		}
		anchor = parsed
	}

	snap := h.store.Snapshot()
	grid := analytics.MonthGrid(anchor)

	cells := make([]dto.CalendarCell, 0, len(grid))
	for _, day := range grid {
		if day == nil {
			cells = append(cells, dto.CalendarCell{Events: []dto.EventResponse{}})
			continue
		}
		onDay := analytics.EventsOnDay(snap.Events, *day)
		cell := dto.CalendarCell{Events: make([]dto.EventResponse, 0, len(onDay))}
		date := day.Format("2006-01-02")
		cell.Date = &date
		for i := range onDay {
			cell.Events = append(cell.Events, dto.ToEventResponse(&onDay[i]))
		}
		cells = append(cells, cell)
	}

	c.JSON(http.StatusOK, dto.CalendarResponse{
		Month: anchor.Format("2006-01"),
		Cells: cells,
	})
}

func (h *eventHandler) updateEvent(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)
	var req dto.SaveEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEvent", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": bindErrorMessage(err)})
		return
	}

	event, err := h.store.UpdateEvent(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err, "Failed to update event")
		return
	}
	c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *eventHandler) deleteEvent(c *gin.Context) {
	if err := h.store.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Failed to delete event")
		return
	}
	c.Status(http.StatusNoContent)
}
