// Package identity guards the session-scoped maze routes: a request may
// only drive the maze session named by the token it presents.
package identity

import (
	"net/http"
	"strings"

	"github.com/beka-birhanu/dfs-maze/service/i"
	"github.com/gin-gonic/gin"
)

const (
	// ContextSessionClaims is the key used to store session claims in the Gin context.
	ContextSessionClaims = "sessionClaims"

	// SessionIDClaim is the claim naming the maze session a token may drive.
	SessionIDClaim = "session_id"
)

// Authorize returns a middleware that validates the bearer token on each
// request and attaches its claims to the Gin context.
func Authorize(ts i.Tokenizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Retrieve the access token from the Authorization header.
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Status(http.StatusUnauthorized) // No token found in the header.
			c.Abort()
			return
		}

		// Split the "Bearer" prefix from the token.
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			c.Status(http.StatusUnauthorized) // Malformed Authorization header.
			c.Abort()
			return
		}

		// Validate the token and attach its claims for the controllers.
		claims, err := ts.Decode(parts[1])
		if err != nil {
			c.Status(http.StatusUnauthorized)
			c.Abort()
			return
		}

		c.Set(ContextSessionClaims, claims)
		c.Next()
	}
}

// SessionID extracts the session ID claim attached by Authorize. The
// second return value is false when no valid claim is present.
func SessionID(c *gin.Context) (string, bool) {
	rawClaims, ok := c.Get(ContextSessionClaims)
	if !ok {
		return "", false
	}

	claims, ok := rawClaims.(map[string]interface{})
	if !ok {
		return "", false
	}

	id, ok := claims[SessionIDClaim].(string)
	return id, ok
}
