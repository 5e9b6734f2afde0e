package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AgentHandler exposes the agent's configuration
type AgentHandler struct {
	common *CommonServices
}

// NewAgentHandler creates a new AgentHandler instance
func NewAgentHandler(common *CommonServices) *AgentHandler {
	return &AgentHandler{common: common}
}

// AgentInfoResponse describes the agent's principals and module bindings
type AgentInfoResponse struct {
	Owner           string `json:"owner"`
	Operator        string `json:"operator"`
	LicensingModule string `json:"licensing_module"`
	RoyaltyModule   string `json:"royalty_module"`
	Paused          bool   `json:"paused"`
}

// GetAgentInfo godoc
// @Summary Get agent configuration
// @Description Report the agent's owner, operator account, bound protocol modules, and pause state
// @Tags agent
// @Produce json
// @Success 200 {object} AgentInfoResponse
// @Security ApiKeyAuth
// @Router /agent [get]
func (h *AgentHandler) GetAgentInfo(c *gin.Context) {
	info := h.common.agent.Info()

	sendSuccess(c, http.StatusOK, AgentInfoResponse{
		Owner:           info.Owner.Hex(),
		Operator:        info.Operator.Hex(),
		LicensingModule: info.LicensingModule.Hex(),
		RoyaltyModule:   info.RoyaltyModule.Hex(),
		Paused:          info.Paused,
	})
}
