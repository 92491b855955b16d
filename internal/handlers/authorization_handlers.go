package handlers

import (
	"errors"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/atlas-card/atlas-api/internal/auth"
	"github.com/atlas-card/atlas-api/internal/db"
	"github.com/atlas-card/atlas-api/internal/delegation"
	"github.com/atlas-card/atlas-api/internal/helpers"
	"github.com/atlas-card/atlas-api/internal/lifecycle"
	"github.com/atlas-card/atlas-api/internal/redeem"
)

// AuthorizationHandler handles authorized app operations
type AuthorizationHandler struct {
	common *CommonServices
}

// NewAuthorizationHandler creates a new instance of AuthorizationHandler
func NewAuthorizationHandler(common *CommonServices) *AuthorizationHandler {
	return &AuthorizationHandler{common: common}
}

// AuthorizedAppResponse represents the standardized API response for authorized app operations
type AuthorizedAppResponse struct {
	ID                  string `json:"id"`
	Object              string `json:"object"`
	UserEmail           string `json:"user_email"`
	BusinessName        string `json:"business_name"`
	BusinessWallet      string `json:"business_wallet"`
	SmartAccountAddress string `json:"smart_account_address"`
	Delegation          string `json:"delegation"`
	CreatedAt           int64  `json:"created_at"`
}

// CreateAuthorizedAppRequest represents the request body for authorizing a business
type CreateAuthorizedAppRequest struct {
	BusinessWallet      string `json:"business_wallet" binding:"required"`
	BusinessName        string `json:"business_name" binding:"required"`
	SmartAccountAddress string `json:"smart_account_address" binding:"required"`
	Token               string `json:"token" binding:"required"`
	PeriodAmount        string `json:"period_amount" binding:"required"`
	PeriodDuration      uint64 `json:"period_duration" binding:"required"`
	StartDate           uint64 `json:"start_date"`
}

// CheckAuthorizationResponse reports whether a recipient is currently authorized
type CheckAuthorizationResponse struct {
	Authorized bool `json:"authorized"`
}

// RevokeConflictResponse is returned when the on-chain disable succeeded but
// the stored record could not be removed
type RevokeConflictResponse struct {
	Error      string `json:"error"`
	UserOpHash string `json:"user_op_hash"`
}

func toAuthorizedAppResponse(a db.UserAuthorization) AuthorizedAppResponse {
	return AuthorizedAppResponse{
		ID:                  a.ID.String(),
		Object:              "authorized_app",
		UserEmail:           a.UserEmail,
		BusinessName:        a.BusinessName,
		BusinessWallet:      a.BusinessWallet,
		SmartAccountAddress: a.SmartAccountAddress,
		Delegation:          a.Delegation,
		CreatedAt:           a.CreatedAt.Time.Unix(),
	}
}

// CreateAuthorizedApp godoc
// @Summary Authorize a business
// @Description Creates a signed spending delegation for a business and stores it
// @Tags authorizedapps
// @Accept json
// @Produce json
// @Param request body CreateAuthorizedAppRequest true "Authorization details"
// @Success 201 {object} AuthorizedAppResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Security BearerAuth
// @Router /authorizedapps [post]
func (h *AuthorizationHandler) CreateAuthorizedApp(c *gin.Context) {
	email, ok := auth.UserEmail(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var req CreateAuthorizedAppRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !helpers.IsAddressValid(req.BusinessWallet) {
		sendError(c, http.StatusBadRequest, "Invalid business wallet address", nil)
		return
	}
	if !helpers.IsAddressValid(req.SmartAccountAddress) {
		sendError(c, http.StatusBadRequest, "Invalid smart account address", nil)
		return
	}

	token, err := h.common.env.Token(req.Token)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Unsupported token", err)
		return
	}

	amount, err := redeem.ParseTokenAmount(req.PeriodAmount, token.Decimals)
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid period amount", err)
		return
	}

	key, err := h.common.keys.GetOrCreateSigningKey(c.Request.Context(), email)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to load signing key", err)
		return
	}
	binder := h.common.newBinder(key, common.HexToAddress(req.SmartAccountAddress))

	record, err := h.common.lifecycle.Authorize(c.Request.Context(), lifecycle.AuthorizeParams{
		UserEmail:      email,
		Binder:         binder,
		BusinessWallet: common.HexToAddress(req.BusinessWallet),
		BusinessName:   req.BusinessName,
		Scope: delegation.SpendingScope{
			TokenAddress:   token.Address,
			PeriodAmount:   amount,
			PeriodDuration: req.PeriodDuration,
			StartDate:      req.StartDate,
		},
	})
	if err != nil {
		var scopeErr *delegation.InvalidScopeError
		switch {
		case errors.Is(err, lifecycle.ErrDuplicateAuthorization):
			sendError(c, http.StatusConflict, "An authorization already exists for this business", err)
		case errors.As(err, &scopeErr):
			sendError(c, http.StatusBadRequest, scopeErr.Error(), err)
		default:
			sendError(c, http.StatusInternalServerError, "Failed to create authorization", err)
		}
		return
	}

	sendSuccess(c, http.StatusCreated, toAuthorizedAppResponse(*record))
}

// ListAuthorizedApps godoc
// @Summary List authorized apps
// @Description Lists the caller's stored authorizations, newest first
// @Tags authorizedapps
// @Produce json
// @Param business_wallet query string false "Filter by business wallet"
// @Param smart_account_address query string false "Filter by smart account"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /authorizedapps [get]
func (h *AuthorizationHandler) ListAuthorizedApps(c *gin.Context) {
	email, ok := auth.UserEmail(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	var filters lifecycle.ListFilters
	if wallet := c.Query("business_wallet"); wallet != "" {
		if !helpers.IsAddressValid(wallet) {
			sendError(c, http.StatusBadRequest, "Invalid business wallet address", nil)
			return
		}
		addr := common.HexToAddress(wallet)
		filters.BusinessWallet = &addr
	}
	if account := c.Query("smart_account_address"); account != "" {
		if !helpers.IsAddressValid(account) {
			sendError(c, http.StatusBadRequest, "Invalid smart account address", nil)
			return
		}
		addr := common.HexToAddress(account)
		filters.SmartAccountAddress = &addr
	}

	records, err := h.common.lifecycle.List(c.Request.Context(), email, filters)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list authorizations", err)
		return
	}

	items := make([]AuthorizedAppResponse, 0, len(records))
	for _, record := range records {
		items = append(items, toAuthorizedAppResponse(record))
	}
	sendList(c, items)
}

// CheckAuthorization godoc
// @Summary Check authorization
// @Description Reports whether the caller currently authorizes the given business
// @Tags authorizedapps
// @Produce json
// @Param business_wallet query string true "Business wallet"
// @Success 200 {object} CheckAuthorizationResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /authorizedapps/check [get]
func (h *AuthorizationHandler) CheckAuthorization(c *gin.Context) {
	email, ok := auth.UserEmail(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	wallet := c.Query("business_wallet")
	if !helpers.IsAddressValid(wallet) {
		sendError(c, http.StatusBadRequest, "Invalid business wallet address", nil)
		return
	}

	authorized, err := h.common.lifecycle.IsAuthorized(c.Request.Context(), email, common.HexToAddress(wallet))
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to check authorization", err)
		return
	}

	sendSuccess(c, http.StatusOK, CheckAuthorizationResponse{Authorized: authorized})
}

// RevokeAuthorizedApp godoc
// @Summary Revoke an authorization
// @Description Disables the delegation on chain and removes the stored record
// @Tags authorizedapps
// @Produce json
// @Param business_wallet path string true "Business wallet"
// @Param smart_account_address query string true "Smart account address"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /authorizedapps/{business_wallet} [delete]
func (h *AuthorizationHandler) RevokeAuthorizedApp(c *gin.Context) {
	email, ok := auth.UserEmail(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	wallet := c.Param("business_wallet")
	if !helpers.IsAddressValid(wallet) {
		sendError(c, http.StatusBadRequest, "Invalid business wallet address", nil)
		return
	}
	account := c.Query("smart_account_address")
	if !helpers.IsAddressValid(account) {
		sendError(c, http.StatusBadRequest, "Invalid smart account address", nil)
		return
	}

	key, err := h.common.keys.GetOrCreateSigningKey(c.Request.Context(), email)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to load signing key", err)
		return
	}
	binder := h.common.newBinder(key, common.HexToAddress(account))

	err = h.common.lifecycle.Revoke(c.Request.Context(), lifecycle.RevokeParams{
		UserEmail:      email,
		Binder:         binder,
		BusinessWallet: common.HexToAddress(wallet),
	})
	if err != nil {
		var corruptErr *lifecycle.CorruptRecordError
		var storeErr *lifecycle.RevokeStoreError
		switch {
		case errors.Is(err, lifecycle.ErrAuthorizationNotFound):
			sendError(c, http.StatusNotFound, "Authorization not found", err)
		case errors.As(err, &corruptErr):
			sendError(c, http.StatusInternalServerError, "Stored delegation is corrupt", err)
		case errors.As(err, &storeErr):
			// Distinct shape: the chain side effect already happened.
			c.JSON(http.StatusInternalServerError, RevokeConflictResponse{
				Error:      "Delegation disabled on chain but the record could not be removed; retry the revoke",
				UserOpHash: storeErr.UserOpHash.Hex(),
			})
		default:
			sendError(c, http.StatusInternalServerError, "Failed to revoke authorization", err)
		}
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Authorization revoked")
}
