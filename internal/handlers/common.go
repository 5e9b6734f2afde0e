package handlers

import (
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gregsantos/ip-derivative-agent/internal/auth"
	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/interfaces"
	"github.com/gregsantos/ip-derivative-agent/internal/logger"
	"github.com/gregsantos/ip-derivative-agent/internal/services"
)

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	agent   *services.AgentService
	journal interfaces.EventJournal
}

// NewCommonServices creates a new instance of CommonServices
func NewCommonServices(agent *services.AgentService, journal interfaces.EventJournal) *CommonServices {
	return &CommonServices{
		agent:   agent,
		journal: journal,
	}
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError is a helper function that combines logging and error response
// It logs the error with the given message and sends a JSON error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
	)
	c.JSON(statusCode, ErrorResponse{Error: message})
}

// handleDomainError maps service errors to HTTP status codes. Handlers that
// need a different status for a specific error type check it before
// delegating here.
func handleDomainError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var (
		invalidParams *domain.InvalidParamsError
		mismatch      *domain.BatchLengthMismatchError
		already       *domain.AlreadyWhitelistedError
		missing       *domain.NotWhitelistedError
		tooHigh       *domain.FeeTooHighError
		unauthorized  *domain.UnauthorizedError
		pauseState    *domain.InvalidPauseStateError
		withdrawFail  *domain.EmergencyWithdrawFailedError
	)

	switch {
	case errors.Is(err, domain.ErrReentrancy):
		sendError(c, http.StatusConflict, "Another mutating operation is in progress", err)
	case errors.As(err, &invalidParams):
		sendError(c, http.StatusBadRequest, err.Error(), err)
	case errors.As(err, &mismatch):
		sendError(c, http.StatusBadRequest, err.Error(), err)
	case errors.As(err, &already):
		sendError(c, http.StatusConflict, err.Error(), err)
	case errors.As(err, &missing):
		sendError(c, http.StatusForbidden, err.Error(), err)
	case errors.As(err, &tooHigh):
		sendError(c, http.StatusPaymentRequired, err.Error(), err)
	case errors.As(err, &unauthorized):
		sendError(c, http.StatusForbidden, err.Error(), err)
	case errors.As(err, &pauseState):
		sendError(c, http.StatusConflict, err.Error(), err)
	case errors.As(err, &withdrawFail):
		sendError(c, http.StatusBadGateway, err.Error(), err)
	default:
		sendError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage is a helper function that sends a success message
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// sendList is a helper function that sends a paginated list response
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}

// requestCaller reads the authenticated caller address established by the
// auth middleware.
func requestCaller(c *gin.Context) (common.Address, bool) {
	caller, ok := auth.CallerAddress(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Missing caller identity", nil)
		return common.Address{}, false
	}
	return caller, true
}

// parseAddressField parses a 0x-prefixed hex address from a request field.
func parseAddressField(c *gin.Context, value, field string) (common.Address, bool) {
	if !common.IsHexAddress(value) {
		sendError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s address format", field), nil)
		return common.Address{}, false
	}
	return common.HexToAddress(value), true
}

// parseOptionalAddressField parses an address field that may be empty. An
// empty value yields the zero address.
func parseOptionalAddressField(c *gin.Context, value, field string) (common.Address, bool) {
	if value == "" {
		return common.Address{}, true
	}
	return parseAddressField(c, value, field)
}

// parseAmountField parses a base-10 integer amount from a request field. An
// empty value yields nil.
func parseAmountField(c *gin.Context, value, field string) (*big.Int, bool) {
	if value == "" {
		return nil, true
	}
	amount, ok := new(big.Int).SetString(value, 10)
	if !ok {
		sendError(c, http.StatusBadRequest, fmt.Sprintf("Invalid %s amount format", field), nil)
		return nil, false
	}
	return amount, true
}
