package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/taskloop/taskloop/pkg/helpers"
	"github.com/taskloop/taskloop/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxClaimsKey = "claims"
)

// TokenAuth validates the x-access-token header and injects the decoded
// claims into the Gin context. Token failures abort here, before any handler
// can touch the store.
//
// The two status codes are per-surface: the user listing historically answers
// 400 for a missing token and 401 for a bad one, while task routes answer
// 401/403.
func TokenAuth(jwt *helpers.JWTManager, missingStatus, invalidStatus int) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := jwt.Validate(c.GetHeader("x-access-token"))
		if err != nil {
			if errors.Is(err, helpers.ErrTokenMissing) {
				response.AbortError(c, missingStatus, "Token is missing in the request.", nil)
				return
			}
			response.AbortError(c, invalidStatus, "Invalid authentication token.", nil)
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom extracts the validated claims a TokenAuth middleware stored.
func ClaimsFrom(c *gin.Context) (*helpers.Claims, bool) {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*helpers.Claims)
	return claims, ok
}
