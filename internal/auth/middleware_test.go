package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlas-card/atlas-api/internal/auth"
)

func protectedRouter(validator *auth.Validator) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", validator.Middleware(), func(c *gin.Context) {
		email, _ := auth.UserEmail(c)
		c.JSON(http.StatusOK, gin.H{"email": email})
	})
	return router
}

func TestValidator_IssueAndValidate(t *testing.T) {
	validator := auth.NewValidator("test-secret")

	token, err := validator.IssueToken("card.user@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "card.user@example.com", claims.Email)
}

func TestValidator_RejectsExpiredToken(t *testing.T) {
	validator := auth.NewValidator("test-secret")

	token, err := validator.IssueToken("card.user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidator_RejectsWrongSecret(t *testing.T) {
	token, err := auth.NewValidator("secret-one").IssueToken("card.user@example.com", time.Hour)
	require.NoError(t, err)

	_, err = auth.NewValidator("secret-two").ValidateToken(token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestMiddleware(t *testing.T) {
	validator := auth.NewValidator("test-secret")
	router := protectedRouter(validator)

	token, err := validator.IssueToken("card.user@example.com", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "valid token", authHeader: "Bearer " + token, wantStatus: http.StatusOK},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "no bearer prefix", authHeader: token, wantStatus: http.StatusUnauthorized},
		{name: "garbage token", authHeader: "Bearer not.a.token", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "card.user@example.com")
			}
		})
	}
}
