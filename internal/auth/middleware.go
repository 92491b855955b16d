package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when the provided token is invalid
var ErrInvalidToken = errors.New("invalid token")

// ContextKeyUserEmail is the gin context key carrying the authenticated
// user's email.
const ContextKeyUserEmail = "userEmail"

// SessionClaims represents the expected structure of the session token claims
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Validator validates HS256 session tokens. The signing secret is injected
// at construction rather than read from the environment at request time.
type Validator struct {
	secret []byte
}

// NewValidator creates a session token validator.
func NewValidator(secret string) *Validator {
	return &Validator{secret: []byte(secret)}
}

// ValidateToken parses and verifies a session token and returns its claims.
func (v *Validator) ValidateToken(token string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Email == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IssueToken mints a session token for the given email. Used by tests and
// local tooling; production tokens come from the identity frontend.
func (v *Validator) IssueToken(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(v.secret)
}

// Middleware authenticates requests with a Bearer session token and places
// the user's email in the gin context.
func (v *Validator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := strings.TrimPrefix(authHeader, "Bearer ")
		if token == "" || token == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := v.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(ContextKeyUserEmail, claims.Email)
		c.Next()
	}
}

// UserEmail extracts the authenticated user's email from the gin context.
func UserEmail(c *gin.Context) (string, bool) {
	email := c.GetString(ContextKeyUserEmail)
	return email, email != ""
}
