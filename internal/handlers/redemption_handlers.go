package handlers

import (
	"errors"
	"net/http"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"

	"github.com/atlas-card/atlas-api/internal/helpers"
	"github.com/atlas-card/atlas-api/internal/redeem"
	"github.com/atlas-card/atlas-api/internal/smartaccount"
)

// RedemptionHandler handles delegation redemption operations
type RedemptionHandler struct {
	common *CommonServices
}

// NewRedemptionHandler creates a new instance of RedemptionHandler
func NewRedemptionHandler(common *CommonServices) *RedemptionHandler {
	return &RedemptionHandler{common: common}
}

// RedeemDelegationRequest represents the request body for redeeming a delegation
type RedeemDelegationRequest struct {
	Delegation         string `json:"delegation" binding:"required"`
	RedeemerPrivateKey string `json:"redeemer_private_key" binding:"required"`
	Token              string `json:"token" binding:"required"`
	Amount             string `json:"amount" binding:"required"`
}

// RedeemDelegationResponse carries the transaction hash of a confirmed redemption
type RedeemDelegationResponse struct {
	TransactionHash string `json:"transaction_hash"`
}

// RedeemDelegation godoc
// @Summary Redeem a delegation
// @Description Spends against an encoded delegation and waits for on-chain confirmation
// @Tags delegations
// @Accept json
// @Produce json
// @Param request body RedeemDelegationRequest true "Redemption details"
// @Success 200 {object} RedeemDelegationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /delegations/redeem [post]
func (h *RedemptionHandler) RedeemDelegation(c *gin.Context) {
	var req RedeemDelegationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !helpers.IsPrivateKeyValid(req.RedeemerPrivateKey) {
		sendError(c, http.StatusBadRequest, "Invalid redeemer private key", nil)
		return
	}

	key, err := ethcrypto.HexToECDSA(strings.TrimPrefix(req.RedeemerPrivateKey, "0x"))
	if err != nil {
		sendError(c, http.StatusBadRequest, "Invalid redeemer private key", err)
		return
	}

	txHash, err := h.common.redeemer.Redeem(c.Request.Context(), req.Delegation, key, req.Token, req.Amount)
	if err != nil {
		var corruptErr *redeem.CorruptDelegationError
		var redemptionErr *redeem.RedemptionError
		switch {
		case errors.Is(err, redeem.ErrEmptyDelegation):
			sendError(c, http.StatusBadRequest, "Delegation is required", err)
		case errors.As(err, &corruptErr):
			sendError(c, http.StatusBadRequest, "Delegation does not decode", err)
		case errors.Is(err, smartaccount.ErrReceiptTimeout):
			sendError(c, http.StatusGatewayTimeout, "Timed out waiting for redemption confirmation", err)
		case errors.As(err, &redemptionErr):
			sendError(c, http.StatusUnprocessableEntity, redemptionErr.Error(), err)
		default:
			sendError(c, http.StatusInternalServerError, "Failed to redeem delegation", err)
		}
		return
	}

	sendSuccess(c, http.StatusOK, RedeemDelegationResponse{TransactionHash: txHash.Hex()})
}
