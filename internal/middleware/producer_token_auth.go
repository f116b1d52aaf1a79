package middleware

import (
	"context"
	"log/slog"
	"net/http"

	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// ProducerTokenHeader is the header upstream modules present their API
// credential in.
const ProducerTokenHeader = "X-Producer-Token"

// ProducerTokenAuthMiddleware authenticates upstream modules by their
// per-tenant API token. When the header is absent the middleware falls
// through so the JWT middleware can take over.
func ProducerTokenAuthMiddleware(tokenSvc portssvc.ProducerTokenSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		plainToken := c.GetHeader(ProducerTokenHeader)
		if plainToken == "" {
			c.Next()
			return
		}

		logger := GetLoggerFromCtx(c.Request.Context())
		tenantID := c.Param("tenantID")
		if tenantID == "" {
			logger.Warn("Producer token presented on a route without tenant scope")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Producer tokens are tenant scoped"})
			return
		}

		token, err := tokenSvc.Authenticate(c.Request.Context(), tenantID, plainToken)
		if err != nil {
			logger.Warn("Producer token authentication failed", slog.String("tenant_id", tenantID))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid producer token"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), actorIDKey, token.TokenID)
		ctx = context.WithValue(ctx, sourceModuleKey, string(token.SourceModule))
		enrichedLogger := logger.With(
			slog.String("actor_id", token.TokenID),
			slog.String("source_module", string(token.SourceModule)),
		)
		ctx = context.WithValue(ctx, loggerCtxKey, enrichedLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
