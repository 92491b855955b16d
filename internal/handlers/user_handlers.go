package handlers

import (
	"net/http"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/gin-gonic/gin"

	"github.com/atlas-card/atlas-api/internal/auth"
)

// UserHandler handles user related operations
type UserHandler struct {
	common *CommonServices
}

// NewUserHandler creates a new instance of UserHandler
func NewUserHandler(common *CommonServices) *UserHandler {
	return &UserHandler{common: common}
}

// SigningKeyResponse carries the address of the user's session signing key.
// The private key itself never leaves the service.
type SigningKeyResponse struct {
	SignerAddress string `json:"signer_address"`
}

// GetSigningKey godoc
// @Summary Get signing key address
// @Description Ensures the caller's session signing key exists and returns its address
// @Tags users
// @Produce json
// @Success 200 {object} SigningKeyResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me/signing-key [get]
func (h *UserHandler) GetSigningKey(c *gin.Context) {
	email, ok := auth.UserEmail(c)
	if !ok {
		sendError(c, http.StatusUnauthorized, "Authentication required", nil)
		return
	}

	key, err := h.common.keys.GetOrCreateSigningKey(c.Request.Context(), email)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to load signing key", err)
		return
	}

	sendSuccess(c, http.StatusOK, SigningKeyResponse{
		SignerAddress: ethcrypto.PubkeyToAddress(key.PublicKey).Hex(),
	})
}
