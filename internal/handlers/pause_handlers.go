package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
)

// PauseHandler handles the agent's pause state
type PauseHandler struct {
	common *CommonServices
}

// NewPauseHandler creates a new PauseHandler instance
func NewPauseHandler(common *CommonServices) *PauseHandler {
	return &PauseHandler{common: common}
}

// PauseStateResponse reports the agent's pause state
type PauseStateResponse struct {
	State string `json:"state"`
}

func pauseStateResponse(paused bool) PauseStateResponse {
	if paused {
		return PauseStateResponse{State: domain.PauseStatePaused}
	}
	return PauseStateResponse{State: domain.PauseStateActive}
}

// PauseAgent godoc
// @Summary Pause the agent
// @Description Stop accepting registrations and enable emergency recovery. Pausing an already paused agent is a no-op.
// @Tags pause
// @Produce json
// @Success 200 {object} PauseStateResponse
// @Failure 403 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /pause [post]
func (h *PauseHandler) PauseAgent(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	if err := h.common.agent.Pause(c.Request.Context(), caller); err != nil {
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, pauseStateResponse(true))
}

// ResumeAgent godoc
// @Summary Resume the agent
// @Description Resume accepting registrations. Resuming an active agent is a no-op.
// @Tags pause
// @Produce json
// @Success 200 {object} PauseStateResponse
// @Failure 403 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /pause [delete]
func (h *PauseHandler) ResumeAgent(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	if err := h.common.agent.Unpause(c.Request.Context(), caller); err != nil {
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, pauseStateResponse(false))
}

// GetPauseState godoc
// @Summary Get the agent's pause state
// @Tags pause
// @Produce json
// @Success 200 {object} PauseStateResponse
// @Security ApiKeyAuth
// @Router /pause [get]
func (h *PauseHandler) GetPauseState(c *gin.Context) {
	sendSuccess(c, http.StatusOK, pauseStateResponse(h.common.agent.Paused()))
}
