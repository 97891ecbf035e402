package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"gomart/internal/tokens"
)

// Context keys set by Auth for downstream handlers.
const (
	CtxUserID   = "user_id"
	CtxUsername = "username"
	CtxEmail    = "email"
	CtxRole     = "role"
)

// public endpoints that do not require a token
func isPublicPath(path string) bool {
	switch path {
	case "/api/auth/register",
		"/api/auth/verify",
		"/api/auth/resend",
		"/api/auth/login",
		"/api/auth/admin/login",
		"/api/auth/refresh",
		"/api/auth/forgot-password",
		"/api/auth/reset-password":
		return true
	}
	if strings.HasPrefix(path, "/swagger") || strings.HasPrefix(path, "/healthz") {
		return true
	}
	return false
}

// Auth validates the Bearer access token and puts the identity into the gin
// context. Public paths and CORS preflight pass through untouched.
func Auth(issuer *tokens.Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}
		if isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := issuer.Verify(tokenStr, tokens.TypeAccess)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUsername, claims.Username)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)

		c.Next()
	}
}
