package handlers

import (
	"github.com/gestika/ledger/cmd/docs"
	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/gestika/ledger/internal/platform/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, services)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the entity
// route registrations. Producer tokens are checked first so upstream modules
// can post without a JWT; everything else requires a bearer token.
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1",
		middleware.ProducerTokenAuthMiddleware(services.ProducerToken),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	)

	registerTenantRoutes(v1, services.Tenant)

	tenant := v1.Group("/tenants/:tenantID")
	registerAccountRoutes(tenant, services.Account)
	registerJournalRoutes(tenant, services.Journal)
	registerExerciseRoutes(tenant, services.Exercise)
	RegisterPostingRoutes(tenant, services.Posting)
	registerQueryRoutes(tenant, services.Query)
	registerProducerTokenRoutes(tenant, services.ProducerToken)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
