package middleware

import (
	"context"
	"net/http"
	"strings"

	"asdcare/models"
	"asdcare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys set by JWTAuthMiddleware.
const (
	CtxUserID = "userID"
	CtxRole   = "role"
	CtxClaims = "claims"
)

// RevocationChecker reports whether a token id was revoked at logout.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// JWTAuthMiddleware verifies the bearer token and stores the caller's
// identity in the request context.
func JWTAuthMiddleware(revocations RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}

		claims, err := utils.ExtractClaims(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		if !models.Role(claims.Role).Valid() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		if revocations != nil && claims.TokenID != "" {
			revoked, err := revocations.IsRevoked(c.Request.Context(), claims.TokenID)
			if err != nil {
				// The revocation list lives in Redis; an outage must not lock everyone out.
				zap.L().Warn("revocation check failed", zap.Error(err))
			} else if revoked {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has been revoked"})
				return
			}
		}

		c.Set(CtxUserID, claims.Subject)
		c.Set(CtxRole, models.Role(claims.Role))
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// UserID returns the authenticated caller's id.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// RoleOf returns the authenticated caller's role.
func RoleOf(c *gin.Context) models.Role {
	if v, ok := c.Get(CtxRole); ok {
		if r, ok := v.(models.Role); ok {
			return r
		}
	}
	return ""
}

// Claims returns the verified token claims.
func Claims(c *gin.Context) *utils.TokenClaims {
	if v, ok := c.Get(CtxClaims); ok {
		if claims, ok := v.(*utils.TokenClaims); ok {
			return claims
		}
	}
	return nil
}
