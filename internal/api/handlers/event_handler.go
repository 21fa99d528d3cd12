package handlers

import (
	"net/http"
	"strconv"

	"github.com/scribehq/scribe-be/internal/request"
	"github.com/scribehq/scribe-be/internal/services"
)

// EventHandler serves the audit trail.
type EventHandler struct {
	events services.EventServiceProvider
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(events services.EventServiceProvider) *EventHandler {
	return &EventHandler{events: events}
}

// GetRecent returns the most recent audit events, newest first.
func (h *EventHandler) GetRecent(c *request.Context) (*request.Result, error) {
	limit := 50
	if v := c.Request.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	events, err := h.events.Recent(c.Request.Context(), c.Querier(), limit)
	if err != nil {
		return nil, err
	}
	return &request.Result{Status: http.StatusOK, Body: events}, nil
}
