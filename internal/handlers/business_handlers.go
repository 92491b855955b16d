package handlers

import (
	"net/http"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/atlas-card/atlas-api/internal/db"
	"github.com/atlas-card/atlas-api/internal/helpers"
)

// BusinessHandler handles business registry operations
type BusinessHandler struct {
	common *CommonServices
}

// NewBusinessHandler creates a new instance of BusinessHandler
func NewBusinessHandler(common *CommonServices) *BusinessHandler {
	return &BusinessHandler{common: common}
}

// BusinessResponse represents the standardized API response for business operations
type BusinessResponse struct {
	ID          string `json:"id"`
	Object      string `json:"object"`
	Name        string `json:"name"`
	Wallet      string `json:"wallet"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Banner      string `json:"banner,omitempty"`
	CallbackUrl string `json:"callback_url,omitempty"`
	Country     string `json:"country,omitempty"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// CreateBusinessRequest represents the request body for registering a business
type CreateBusinessRequest struct {
	Name        string `json:"name" binding:"required"`
	Wallet      string `json:"wallet" binding:"required"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	Banner      string `json:"banner"`
	CallbackUrl string `json:"callback_url"`
	Country     string `json:"country"`
}

// UpdateBusinessRequest represents the request body for updating a business
type UpdateBusinessRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Logo        string `json:"logo,omitempty"`
	Banner      string `json:"banner,omitempty"`
}

func toBusinessResponse(b db.Business) BusinessResponse {
	return BusinessResponse{
		ID:          b.ID.String(),
		Object:      "business",
		Name:        b.Name,
		Wallet:      b.Wallet,
		Description: b.Description,
		Logo:        b.Logo,
		Banner:      b.Banner,
		CallbackUrl: b.CallbackUrl,
		Country:     b.Country,
		CreatedAt:   b.CreatedAt.Time.Unix(),
		UpdatedAt:   b.UpdatedAt.Time.Unix(),
	}
}

// normalizedWalletParam validates the wallet path param and returns its
// canonical stored form.
func normalizedWalletParam(c *gin.Context) (string, bool) {
	wallet := c.Param("wallet")
	if !helpers.IsAddressValid(wallet) {
		sendError(c, http.StatusBadRequest, "Invalid wallet address", nil)
		return "", false
	}
	return helpers.NormalizeAddress(common.HexToAddress(wallet)), true
}

// GetBusiness godoc
// @Summary Get business by wallet
// @Description Get business details by wallet address
// @Tags businesses
// @Produce json
// @Param wallet path string true "Business wallet"
// @Success 200 {object} BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /businesses/{wallet} [get]
func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	wallet, ok := normalizedWalletParam(c)
	if !ok {
		return
	}

	business, err := h.common.queries.GetBusinessByWallet(c.Request.Context(), wallet)
	if err != nil {
		handleDBError(c, err, "Business not found")
		return
	}

	sendSuccess(c, http.StatusOK, toBusinessResponse(business))
}

// ListBusinesses godoc
// @Summary List businesses
// @Description Lists all registered businesses
// @Tags businesses
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /businesses [get]
func (h *BusinessHandler) ListBusinesses(c *gin.Context) {
	businesses, err := h.common.queries.ListBusinesses(c.Request.Context())
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to list businesses", err)
		return
	}

	items := make([]BusinessResponse, 0, len(businesses))
	for _, b := range businesses {
		items = append(items, toBusinessResponse(b))
	}
	sendList(c, items)
}

// CreateBusiness godoc
// @Summary Register a business
// @Description Registers a business as a potential delegation recipient
// @Tags businesses
// @Accept json
// @Produce json
// @Param request body CreateBusinessRequest true "Business details"
// @Success 201 {object} BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /businesses [post]
func (h *BusinessHandler) CreateBusiness(c *gin.Context) {
	var req CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if !helpers.IsAddressValid(req.Wallet) {
		sendError(c, http.StatusBadRequest, "Invalid wallet address", nil)
		return
	}

	business, err := h.common.queries.CreateBusiness(c.Request.Context(), db.CreateBusinessParams{
		Name:        strings.TrimSpace(req.Name),
		Wallet:      helpers.NormalizeAddress(common.HexToAddress(req.Wallet)),
		Description: req.Description,
		Logo:        req.Logo,
		Banner:      req.Banner,
		CallbackUrl: req.CallbackUrl,
		Country:     req.Country,
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			sendError(c, http.StatusConflict, "A business with this wallet already exists", err)
			return
		}
		sendError(c, http.StatusInternalServerError, "Failed to create business", err)
		return
	}

	sendSuccess(c, http.StatusCreated, toBusinessResponse(business))
}

// UpdateBusiness godoc
// @Summary Update a business
// @Description Updates mutable business profile fields
// @Tags businesses
// @Accept json
// @Produce json
// @Param wallet path string true "Business wallet"
// @Param request body UpdateBusinessRequest true "Fields to update"
// @Success 200 {object} BusinessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /businesses/{wallet} [put]
func (h *BusinessHandler) UpdateBusiness(c *gin.Context) {
	wallet, ok := normalizedWalletParam(c)
	if !ok {
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	business, err := h.common.queries.UpdateBusiness(c.Request.Context(), db.UpdateBusinessParams{
		Wallet:      wallet,
		Name:        req.Name,
		Description: req.Description,
		Logo:        req.Logo,
		Banner:      req.Banner,
	})
	if err != nil {
		handleDBError(c, err, "Business not found")
		return
	}

	sendSuccess(c, http.StatusOK, toBusinessResponse(business))
}

// DeleteBusiness godoc
// @Summary Delete a business
// @Description Removes a business from the registry
// @Tags businesses
// @Produce json
// @Param wallet path string true "Business wallet"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /businesses/{wallet} [delete]
func (h *BusinessHandler) DeleteBusiness(c *gin.Context) {
	wallet, ok := normalizedWalletParam(c)
	if !ok {
		return
	}

	rows, err := h.common.queries.DeleteBusiness(c.Request.Context(), wallet)
	if err != nil {
		sendError(c, http.StatusInternalServerError, "Failed to delete business", err)
		return
	}
	if rows == 0 {
		sendError(c, http.StatusNotFound, "Business not found", nil)
		return
	}

	sendSuccessMessage(c, http.StatusOK, "Business deleted")
}
