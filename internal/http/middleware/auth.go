package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rollquote/quotation-service/internal/auth"
	"github.com/rollquote/quotation-service/internal/model"
)

const principalKey = "principal"

// Auth rejects requests without a valid bearer token.
func Auth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := parsePrincipal(c, parser)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// OptionalAuth attaches a principal when a valid bearer token is
// present and lets anonymous requests through untouched.
func OptionalAuth(parser *auth.Parser) gin.HandlerFunc {
	return func(c *gin.Context) {
		if principal, ok := parsePrincipal(c, parser); ok {
			c.Set(principalKey, principal)
		}
		c.Next()
	}
}

func MustPrincipal(c *gin.Context) (model.Principal, bool) {
	principal := PrincipalFrom(c)
	if principal == nil {
		return model.Principal{}, false
	}
	return *principal, true
}

func PrincipalFrom(c *gin.Context) *model.Principal {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil
	}
	principal, ok := value.(model.Principal)
	if !ok {
		return nil
	}
	return &principal
}

func parsePrincipal(c *gin.Context, parser *auth.Parser) (model.Principal, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || strings.TrimSpace(token) == "" {
		return model.Principal{}, false
	}
	principal, err := parser.Parse(strings.TrimSpace(token))
	if err != nil {
		return model.Principal{}, false
	}
	return *principal, true
}
