package i

import "github.com/gin-gonic/gin"

// Controller registers a group of related routes on the router, split by
// whether they sit behind the authorization middleware.
type Controller interface {
	// RegisterPublic registers routes reachable without a session token.
	RegisterPublic(*gin.RouterGroup)

	// RegisterProtected registers routes that require a session token.
	RegisterProtected(*gin.RouterGroup)
}
