package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gregsantos/ip-derivative-agent/internal/constants"
	"github.com/gregsantos/ip-derivative-agent/internal/services"
)

// RegistrationHandler handles delegated derivative registrations
type RegistrationHandler struct {
	common *CommonServices
}

// NewRegistrationHandler creates a new RegistrationHandler instance
func NewRegistrationHandler(common *CommonServices) *RegistrationHandler {
	return &RegistrationHandler{common: common}
}

// RegisterDerivativeRequest represents the request body for registering a
// derivative. MaxFee is a base-10 token amount; empty or "0" means no cap.
type RegisterDerivativeRequest struct {
	ChildIPID       string `json:"child_ip_id" binding:"required"`
	ParentIPID      string `json:"parent_ip_id" binding:"required"`
	LicenseTermsID  uint64 `json:"license_terms_id"`
	LicenseTemplate string `json:"license_template" binding:"required"`
	MaxFee          string `json:"max_fee"`
}

// RegistrationResponse represents a completed derivative registration
type RegistrationResponse struct {
	TxHash     string `json:"tx_hash"`
	Caller     string `json:"caller"`
	ChildIPID  string `json:"child_ip_id"`
	ParentIPID string `json:"parent_ip_id"`
	FeeToken   string `json:"fee_token"`
	FeeAmount  string `json:"fee_amount"`
}

// RegisterDerivative godoc
// @Summary Register a derivative
// @Description Register a derivative on behalf of the authenticated caller, forwarding the quoted minting fee from the caller's balance
// @Tags registrations
// @Accept json
// @Produce json
// @Param request body RegisterDerivativeRequest true "Registration request"
// @Success 200 {object} RegistrationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /registrations [post]
func (h *RegistrationHandler) RegisterDerivative(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	var req RegisterDerivativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	child, ok := parseAddressField(c, req.ChildIPID, "child IP")
	if !ok {
		return
	}
	parent, ok := parseAddressField(c, req.ParentIPID, "parent IP")
	if !ok {
		return
	}
	template, ok := parseAddressField(c, req.LicenseTemplate, "license template")
	if !ok {
		return
	}
	maxFee, ok := parseAmountField(c, req.MaxFee, "max fee")
	if !ok {
		return
	}

	result, err := h.common.agent.RegisterDerivative(c.Request.Context(), caller, services.RegistrationRequest{
		ChildIPID:       child,
		ParentIPID:      parent,
		LicenseTermsID:  req.LicenseTermsID,
		LicenseTemplate: template,
		MaxFee:          maxFee,
	})
	if err != nil {
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, RegistrationResponse{
		TxHash:     result.TxHash.Hex(),
		Caller:     caller.Hex(),
		ChildIPID:  child.Hex(),
		ParentIPID: parent.Hex(),
		FeeToken:   result.FeeToken.Hex(),
		FeeAmount:  result.FeeAmount.String(),
	})
}

// ListRegistrations godoc
// @Summary List completed registrations
// @Description List derivative registration events, newest first
// @Tags registrations
// @Produce json
// @Param limit query integer false "Maximum number of events to return"
// @Param offset query integer false "Number of events to skip"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /registrations [get]
func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
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

	events, err := h.common.journal.List(c.Request.Context(), constants.EventDerivativeRegistered, limit, offset)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	sendList(c, events)
}
