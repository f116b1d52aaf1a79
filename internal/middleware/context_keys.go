package middleware

import "github.com/gin-gonic/gin"

// actorIDKey holds the identifier of the authenticated caller: a user ID for
// JWT callers, a producer token ID for upstream modules.
const actorIDKey = contextKey("actorID")

// sourceModuleKey holds the source module a producer token is bound to.
const sourceModuleKey = contextKey("sourceModule")

// GetActorIDFromContext retrieves the authenticated actor ID from the Gin context.
func GetActorIDFromContext(c *gin.Context) (string, bool) {
	actorVal := c.Request.Context().Value(actorIDKey)
	if actorVal == nil {
		return "", false
	}
	actorID, ok := actorVal.(string)
	return actorID, ok
}

// GetSourceModuleFromContext retrieves the source module tag a producer token
// authenticated for, if any.
func GetSourceModuleFromContext(c *gin.Context) (string, bool) {
	v := c.Request.Context().Value(sourceModuleKey)
	if v == nil {
		return "", false
	}
	module, ok := v.(string)
	return module, ok
}
