package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/atlas-card/atlas-api/internal/db"
	"github.com/atlas-card/atlas-api/internal/delegation"
	"github.com/atlas-card/atlas-api/internal/keys"
	"github.com/atlas-card/atlas-api/internal/lifecycle"
	"github.com/atlas-card/atlas-api/internal/logger"
	"github.com/atlas-card/atlas-api/internal/redeem"
)

// CommonServices holds common dependencies used across handlers
type CommonServices struct {
	queries   db.Querier
	keys      *keys.Provider
	lifecycle *lifecycle.Manager
	redeemer  *redeem.Executor
	env       *delegation.Environment
	newBinder redeem.BinderFactory
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// NewCommonServices creates a new instance of CommonServices
func NewCommonServices(queries db.Querier, keys *keys.Provider, lifecycle *lifecycle.Manager, redeemer *redeem.Executor, env *delegation.Environment, newBinder redeem.BinderFactory) *CommonServices {
	return &CommonServices{
		queries:   queries,
		keys:      keys,
		lifecycle: lifecycle,
		redeemer:  redeemer,
		env:       env,
		newBinder: newBinder,
	}
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

// handleDBError is a helper function that handles database errors and returns appropriate HTTP status codes
func handleDBError(c *gin.Context, err error, notFoundMsg string) {
	if err == nil {
		return
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		sendError(c, http.StatusNotFound, notFoundMsg, err)
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

// sendList is a helper function that sends a list response
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}
