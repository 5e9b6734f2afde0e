package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/gregsantos/ip-derivative-agent/internal/domain"
	"github.com/gregsantos/ip-derivative-agent/internal/whitelist"
)

// WhitelistHandler handles whitelist management operations
type WhitelistHandler struct {
	common *CommonServices
}

// NewWhitelistHandler creates a new WhitelistHandler instance
func NewWhitelistHandler(common *CommonServices) *WhitelistHandler {
	return &WhitelistHandler{common: common}
}

// WhitelistEntryRequest represents the request body for adding or removing a
// whitelist entry
type WhitelistEntryRequest struct {
	ParentIPID      string `json:"parent_ip_id" binding:"required"`
	ChildIPID       string `json:"child_ip_id" binding:"required"`
	LicenseTemplate string `json:"license_template" binding:"required"`
	LicenseTermsID  uint64 `json:"license_terms_id"`
	Licensee        string `json:"licensee" binding:"required"`
}

// WildcardEntryRequest represents the request body for wildcard whitelist
// operations, which apply to any licensee
type WildcardEntryRequest struct {
	ParentIPID      string `json:"parent_ip_id" binding:"required"`
	ChildIPID       string `json:"child_ip_id" binding:"required"`
	LicenseTemplate string `json:"license_template" binding:"required"`
	LicenseTermsID  uint64 `json:"license_terms_id"`
}

// BatchWhitelistRequest represents the request body for batch whitelist
// operations. All five lists must have the same length.
type BatchWhitelistRequest struct {
	ParentIPIDs      []string `json:"parent_ip_ids" binding:"required"`
	ChildIPIDs       []string `json:"child_ip_ids" binding:"required"`
	LicenseTemplates []string `json:"license_templates" binding:"required"`
	LicenseTermsIDs  []uint64 `json:"license_terms_ids" binding:"required"`
	Licensees        []string `json:"licensees" binding:"required"`
}

// WhitelistEntryResponse represents a whitelist entry in API responses
type WhitelistEntryResponse struct {
	Key             string `json:"key"`
	ParentIPID      string `json:"parent_ip_id"`
	ChildIPID       string `json:"child_ip_id"`
	LicenseTemplate string `json:"license_template"`
	LicenseTermsID  uint64 `json:"license_terms_id"`
	Licensee        string `json:"licensee"`
}

// AuthorizationResponse reports whether a licensee is authorized
type AuthorizationResponse struct {
	Authorized bool `json:"authorized"`
}

// WhitelistKeyResponse carries the storage key of a whitelist tuple
type WhitelistKeyResponse struct {
	Key string `json:"key"`
}

// BatchWhitelistResponse reports the number of entries a batch touched
type BatchWhitelistResponse struct {
	Count int `json:"count"`
}

func toWhitelistEntryResponse(t whitelist.Terms) WhitelistEntryResponse {
	return WhitelistEntryResponse{
		Key:             t.Key().Hex(),
		ParentIPID:      t.ParentIPID.Hex(),
		ChildIPID:       t.ChildIPID.Hex(),
		LicenseTemplate: t.LicenseTemplate.Hex(),
		LicenseTermsID:  t.LicenseTermsID,
		Licensee:        t.Licensee.Hex(),
	}
}

// termsFromEntryRequest parses the request addresses into whitelist terms.
func (h *WhitelistHandler) termsFromEntryRequest(c *gin.Context, req WhitelistEntryRequest) (whitelist.Terms, bool) {
	parent, ok := parseAddressField(c, req.ParentIPID, "parent IP")
	if !ok {
		return whitelist.Terms{}, false
	}
	child, ok := parseAddressField(c, req.ChildIPID, "child IP")
	if !ok {
		return whitelist.Terms{}, false
	}
	template, ok := parseAddressField(c, req.LicenseTemplate, "license template")
	if !ok {
		return whitelist.Terms{}, false
	}
	licensee, ok := parseAddressField(c, req.Licensee, "licensee")
	if !ok {
		return whitelist.Terms{}, false
	}

	return whitelist.Terms{
		ParentIPID:      parent,
		ChildIPID:       child,
		LicenseTemplate: template,
		LicenseTermsID:  req.LicenseTermsID,
		Licensee:        licensee,
	}, true
}

func (h *WhitelistHandler) termsFromWildcardRequest(c *gin.Context, req WildcardEntryRequest) (whitelist.Terms, bool) {
	parent, ok := parseAddressField(c, req.ParentIPID, "parent IP")
	if !ok {
		return whitelist.Terms{}, false
	}
	child, ok := parseAddressField(c, req.ChildIPID, "child IP")
	if !ok {
		return whitelist.Terms{}, false
	}
	template, ok := parseAddressField(c, req.LicenseTemplate, "license template")
	if !ok {
		return whitelist.Terms{}, false
	}

	return whitelist.Terms{
		ParentIPID:      parent,
		ChildIPID:       child,
		LicenseTemplate: template,
		LicenseTermsID:  req.LicenseTermsID,
	}, true
}

// AddWhitelistEntry godoc
// @Summary Add a whitelist entry
// @Description Authorize a licensee to register a specific derivative relationship
// @Tags whitelist
// @Accept json
// @Produce json
// @Param request body WhitelistEntryRequest true "Whitelist entry"
// @Success 201 {object} WhitelistEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist [post]
func (h *WhitelistHandler) AddWhitelistEntry(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	var req WhitelistEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	terms, ok := h.termsFromEntryRequest(c, req)
	if !ok {
		return
	}

	if err := h.common.agent.AddWhitelist(c.Request.Context(), caller, terms); err != nil {
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusCreated, toWhitelistEntryResponse(terms))
}

// RemoveWhitelistEntry godoc
// @Summary Remove a whitelist entry
// @Description Revoke a licensee's authorization for a derivative relationship
// @Tags whitelist
// @Accept json
// @Produce json
// @Param request body WhitelistEntryRequest true "Whitelist entry"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist [delete]
func (h *WhitelistHandler) RemoveWhitelistEntry(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	var req WhitelistEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	terms, ok := h.termsFromEntryRequest(c, req)
	if !ok {
		return
	}

	if err := h.common.agent.RemoveWhitelist(c.Request.Context(), caller, terms); err != nil {
		var missing *domain.NotWhitelistedError
		if errors.As(err, &missing) {
			sendError(c, http.StatusNotFound, err.Error(), err)
			return
		}
		handleDomainError(c, err)
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Whitelist entry removed")
}

// AddWildcardEntry godoc
// @Summary Add a wildcard whitelist entry
// @Description Authorize any licensee to register a specific derivative relationship
// @Tags whitelist
// @Accept json
// @Produce json
// @Param request body WildcardEntryRequest true "Wildcard entry"
// @Success 201 {object} WhitelistEntryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist/wildcard [post]
func (h *WhitelistHandler) AddWildcardEntry(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	var req WildcardEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	terms, ok := h.termsFromWildcardRequest(c, req)
	if !ok {
		return
	}

	if err := h.common.agent.AddWildcardWhitelist(c.Request.Context(), caller, terms); err != nil {
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusCreated, toWhitelistEntryResponse(terms.Wildcard()))
}

// RemoveWildcardEntry godoc
// @Summary Remove a wildcard whitelist entry
// @Description Revoke the any-licensee authorization for a derivative relationship
// @Tags whitelist
// @Accept json
// @Produce json
// @Param request body WildcardEntryRequest true "Wildcard entry"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist/wildcard [delete]
func (h *WhitelistHandler) RemoveWildcardEntry(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	var req WildcardEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	terms, ok := h.termsFromWildcardRequest(c, req)
	if !ok {
		return
	}

	if err := h.common.agent.RemoveWildcardWhitelist(c.Request.Context(), caller, terms); err != nil {
		var missing *domain.NotWhitelistedError
		if errors.As(err, &missing) {
			sendError(c, http.StatusNotFound, err.Error(), err)
			return
		}
		handleDomainError(c, err)
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Wildcard whitelist entry removed")
}

// batchAddresses parses a list of hex addresses from a batch request field.
func (h *WhitelistHandler) batchAddresses(c *gin.Context, values []string, field string) ([]common.Address, bool) {
	addresses := make([]common.Address, 0, len(values))
	for _, value := range values {
		address, ok := parseAddressField(c, value, field)
		if !ok {
			return nil, false
		}
		addresses = append(addresses, address)
	}
	return addresses, true
}

func (h *WhitelistHandler) parseBatchRequest(c *gin.Context) (parents, children, templates, licensees []common.Address, termIDs []uint64, ok bool) {
	var req BatchWhitelistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return nil, nil, nil, nil, nil, false
	}

	if parents, ok = h.batchAddresses(c, req.ParentIPIDs, "parent IP"); !ok {
		return nil, nil, nil, nil, nil, false
	}
	if children, ok = h.batchAddresses(c, req.ChildIPIDs, "child IP"); !ok {
		return nil, nil, nil, nil, nil, false
	}
	if templates, ok = h.batchAddresses(c, req.LicenseTemplates, "license template"); !ok {
		return nil, nil, nil, nil, nil, false
	}
	if licensees, ok = h.batchAddresses(c, req.Licensees, "licensee"); !ok {
		return nil, nil, nil, nil, nil, false
	}
	return parents, children, templates, licensees, req.LicenseTermsIDs, true
}

// BatchAddWhitelist godoc
// @Summary Add whitelist entries in batch
// @Description Authorize multiple derivative relationships in a single atomic operation
// @Tags whitelist
// @Accept json
// @Produce json
// @Param request body BatchWhitelistRequest true "Batch whitelist entries"
// @Success 201 {object} BatchWhitelistResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist/batch [post]
func (h *WhitelistHandler) BatchAddWhitelist(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	parents, children, templates, licensees, termIDs, ok := h.parseBatchRequest(c)
	if !ok {
		return
	}

	if err := h.common.agent.AddWhitelistBatch(c.Request.Context(), caller, parents, children, templates, termIDs, licensees); err != nil {
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusCreated, BatchWhitelistResponse{Count: len(parents)})
}

// BatchRemoveWhitelist godoc
// @Summary Remove whitelist entries in batch
// @Description Revoke multiple derivative relationships in a single atomic operation
// @Tags whitelist
// @Accept json
// @Produce json
// @Param request body BatchWhitelistRequest true "Batch whitelist entries"
// @Success 200 {object} BatchWhitelistResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist/batch [delete]
func (h *WhitelistHandler) BatchRemoveWhitelist(c *gin.Context) {
	caller, ok := requestCaller(c)
	if !ok {
		return
	}

	parents, children, templates, licensees, termIDs, ok := h.parseBatchRequest(c)
	if !ok {
		return
	}

	if err := h.common.agent.RemoveWhitelistBatch(c.Request.Context(), caller, parents, children, templates, termIDs, licensees); err != nil {
		var missing *domain.NotWhitelistedError
		if errors.As(err, &missing) {
			sendError(c, http.StatusNotFound, err.Error(), err)
			return
		}
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, BatchWhitelistResponse{Count: len(parents)})
}

// whitelistTermsFromQuery parses the whitelist tuple from query parameters.
func (h *WhitelistHandler) whitelistTermsFromQuery(c *gin.Context) (whitelist.Terms, bool) {
	parent, ok := parseAddressField(c, c.Query("parent_ip_id"), "parent IP")
	if !ok {
		return whitelist.Terms{}, false
	}
	child, ok := parseAddressField(c, c.Query("child_ip_id"), "child IP")
	if !ok {
		return whitelist.Terms{}, false
	}
	template, ok := parseAddressField(c, c.Query("license_template"), "license template")
	if !ok {
		return whitelist.Terms{}, false
	}
	licensee, ok := parseAddressField(c, c.Query("licensee"), "licensee")
	if !ok {
		return whitelist.Terms{}, false
	}

	termID := uint64(0)
	if raw := c.Query("license_terms_id"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			sendError(c, http.StatusBadRequest, "Invalid license terms ID format", err)
			return whitelist.Terms{}, false
		}
		termID = parsed
	}

	return whitelist.Terms{
		ParentIPID:      parent,
		ChildIPID:       child,
		LicenseTemplate: template,
		LicenseTermsID:  termID,
		Licensee:        licensee,
	}, true
}

// CheckAuthorization godoc
// @Summary Check licensee authorization
// @Description Report whether a licensee is authorized for a derivative relationship, directly or through a wildcard entry
// @Tags whitelist
// @Produce json
// @Param parent_ip_id query string true "Parent IP ID"
// @Param child_ip_id query string true "Child IP ID"
// @Param license_template query string true "License template address"
// @Param license_terms_id query integer false "License terms ID"
// @Param licensee query string true "Licensee address"
// @Success 200 {object} AuthorizationResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist/authorized [get]
func (h *WhitelistHandler) CheckAuthorization(c *gin.Context) {
	terms, ok := h.whitelistTermsFromQuery(c)
	if !ok {
		return
	}

	authorized, err := h.common.agent.IsAuthorized(c.Request.Context(), terms)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	sendSuccess(c, http.StatusOK, AuthorizationResponse{Authorized: authorized})
}

// GetWhitelistKey godoc
// @Summary Compute a whitelist key
// @Description Compute the storage key for a whitelist tuple
// @Tags whitelist
// @Produce json
// @Param parent_ip_id query string true "Parent IP ID"
// @Param child_ip_id query string true "Child IP ID"
// @Param license_template query string true "License template address"
// @Param license_terms_id query integer false "License terms ID"
// @Param licensee query string true "Licensee address"
// @Success 200 {object} WhitelistKeyResponse
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist/key [get]
func (h *WhitelistHandler) GetWhitelistKey(c *gin.Context) {
	terms, ok := h.whitelistTermsFromQuery(c)
	if !ok {
		return
	}

	sendSuccess(c, http.StatusOK, WhitelistKeyResponse{Key: h.common.agent.KeyOf(terms).Hex()})
}

// ListWhitelistEntries godoc
// @Summary List whitelist entries
// @Description List whitelist entries ordered by key
// @Tags whitelist
// @Produce json
// @Param limit query integer false "Maximum number of entries to return"
// @Param offset query integer false "Number of entries to skip"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Security ApiKeyAuth
// @Router /whitelist/entries [get]
func (h *WhitelistHandler) ListWhitelistEntries(c *gin.Context) {
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

	entries, err := h.common.agent.ListWhitelist(c.Request.Context(), limit, offset)
	if err != nil {
		handleDomainError(c, err)
		return
	}

	items := make([]WhitelistEntryResponse, 0, len(entries))
	for _, entry := range entries {
		items = append(items, toWhitelistEntryResponse(entry))
	}
	sendList(c, items)
}
