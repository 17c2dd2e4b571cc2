package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/ayababa270/ecommerce-Baba-Charaf/common/auth"
)

const (
	// PrincipalKey holds the authenticated username in the gin context.
	PrincipalKey = "principal"
	// ClaimsKey holds the validated JWT claims.
	ClaimsKey = "claims"
	// CredentialKey holds the raw token, forwarded as-is to downstream
	// services (pass-through authentication).
	CredentialKey = "credential"
)

// RequireAuth validates the request credential and stores the principal,
// claims and raw token in the gin context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := auth.TokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Authentication token required"})
			return
		}

		claims, err := auth.ParseAndValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		principal, err := auth.Subject(claims)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		c.Set(PrincipalKey, principal)
		c.Set(ClaimsKey, claims)
		c.Set(CredentialKey, token)
		c.Next()
	}
}

// RequirePolicy enforces an authorization policy for the given action.
// Must run after RequireAuth.
func RequirePolicy(policy auth.Policy, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := Principal(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		if !policy.Allow(principal, Claims(c), action) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// Principal returns the authenticated username set by RequireAuth.
func Principal(c *gin.Context) (string, error) {
	if val, ok := c.Get(PrincipalKey); ok {
		if principal, ok := val.(string); ok && principal != "" {
			return principal, nil
		}
	}
	return "", errors.New("principal not found in context")
}

// Claims returns the validated JWT claims set by RequireAuth.
func Claims(c *gin.Context) jwt.MapClaims {
	if val, ok := c.Get(ClaimsKey); ok {
		if claims, ok := val.(jwt.MapClaims); ok {
			return claims
		}
	}
	return jwt.MapClaims{}
}

// Credential returns the raw token set by RequireAuth.
func Credential(c *gin.Context) string {
	if val, ok := c.Get(CredentialKey); ok {
		if token, ok := val.(string); ok {
			return token
		}
	}
	return ""
}
