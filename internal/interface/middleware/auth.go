package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/taskdesk-api/pkg/helpers"
	"github.com/oksasatya/taskdesk-api/pkg/response"
)

const (
	CtxClaimsKey    = "claims"
	CtxUserIDKey    = "userID"
	CtxUserEmailKey = "userEmail"
	CtxUserRoleKey  = "userRole"
)

// Auth validates the bearer access token. On success the verified claims and
// their userID, userEmail and userRole are set in the Gin context.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if header == "" || !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			response.Abort(c, http.StatusUnauthorized, "ERROR: Unauthorized.", "missing bearer token")
			return
		}
		claims, err := jwt.ParseAccessToken(strings.TrimSpace(token))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "ERROR: Unauthorized.", reason(err))
			return
		}

		c.Set(CtxClaimsKey, claims)
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserEmailKey, claims.Email)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by Auth, or nil on unauthenticated routes.
func ClaimsFrom(c *gin.Context) *helpers.Claims {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*helpers.Claims)
	return claims
}

func reason(err error) string {
	switch {
	case errors.Is(err, helpers.ErrTokenExpired):
		return "token expired"
	case errors.Is(err, helpers.ErrTokenMalformed):
		return "token malformed"
	default:
		return "invalid token"
	}
}
