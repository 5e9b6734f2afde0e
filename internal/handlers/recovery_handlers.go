package handlers

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// RecoveryHandler handles emergency fund recovery
type RecoveryHandler struct {
	common *CommonServices
}

// NewRecoveryHandler creates a new RecoveryHandler instance
func NewRecoveryHandler(common *CommonServices) *RecoveryHandler {
	return &RecoveryHandler{common: common}
}

// EmergencyWithdrawRequest represents the request body for an emergency
// withdrawal. An empty token selects the native balance.
type EmergencyWithdrawRequest struct {
	Token       string `json:"token"`
	Destination string `json:"destination" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

// WithdrawResponse represents a completed emergency withdrawal
type WithdrawResponse struct {
	TxHash      string `json:"tx_hash"`
	Token       string `json:"token"`
	Destination string `json:"destination"`
	Amount      string `json:"amount"`
}

// BalancesResponse reports the agent account's recoverable balances
type BalancesResponse struct {
	Native string            `json:"native"`
	Tokens map[string]string `json:"tokens"`
}

// EmergencyWithdraw godoc
// @Summary Withdraw funds from the agent account
// @Description Sweep native or token funds to a destination address. Only available while the agent is paused.
// @Tags recovery
// @Accept json
// @Produce json
// @Param request body EmergencyWithdrawRequest true "Withdrawal request"
// @Success 200 {object} WithdrawResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /recovery/withdraw [post]
func (h *RecoveryHandler) EmergencyWithdraw(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	var req EmergencyWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	token, ok := parseOptionalAddressField(c, req.Token, "token")
	if !ok {
		return
	}
	destination, ok := parseAddressField(c, req.Destination, "destination")
	if !ok {
		return
	}
	amount, ok := parseAmountField(c, req.Amount, "withdrawal")
	if !ok {
		return
	}

	result, err := h.common.agent.EmergencyWithdraw(c.Request.Context(), caller, token, destination, amount)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, WithdrawResponse{
		TxHash:      result.TxHash.Hex(),
		Token:       token.Hex(),
		Destination: destination.Hex(),
		Amount:      amount.String(),
	})
}

// GetBalances godoc
// @Summary Report recoverable balances
// @Description Report the agent account's native balance and the balance of each requested token
// @Tags recovery
// @Produce json
// @Param tokens query string false "Comma-separated token addresses"
// @Success 200 {object} BalancesResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /recovery/balances [get]
func (h *RecoveryHandler) GetBalances(c *gin.Context) {
	var tokens []common.Address
	if raw := c.Query("tokens"); raw != "" {
		for _, value := range strings.Split(raw, ",") {
			token, ok := parseAddressField(c, strings.TrimSpace(value), "token")
			if !ok {
				return
			}
			tokens = append(tokens, token)
		}
	}

	report, err := h.common.agent.Balances(c.Request.Context(), tokens)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	balances := BalancesResponse{
		Native: report.Native.String(),
		Tokens: make(map[string]string, len(report.Tokens)),
	}
	for token, balance := range report.Tokens {
		balances.Tokens[token.Hex()] = balance.String()
	}

	sendSuccess(c, http.StatusOK, balances)
}
