package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// EventHandler exposes the agent's event journal
type EventHandler struct {
	common *CommonServices
}

// NewEventHandler creates a new EventHandler instance
func NewEventHandler(common *CommonServices) *EventHandler {
	return &EventHandler{common: common}
}

// ListEvents godoc
// @Summary List emitted events
// @Description List journaled events, newest first, optionally filtered by type
// @Tags events
// @Produce json
// @Param type query string false "Event type filter"
// @Param limit query integer false "Maximum number of events to return"
// @Param offset query integer false "Number of events to skip"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid limit format", err)
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid offset format", err)
		return
	}

	events, err := h.common.journal.List(c.Request.Context(), c.Query("type"), limit, offset)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	sendList(c, events)
}
