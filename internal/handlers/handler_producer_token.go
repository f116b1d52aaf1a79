package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// producerTokenHandler handles issuance of upstream module credentials.
type producerTokenHandler struct {
	tokenService portssvc.ProducerTokenSvcFacade
}

func newProducerTokenHandler(ts portssvc.ProducerTokenSvcFacade) *producerTokenHandler {
	return &producerTokenHandler{tokenService: ts}
}

// registerProducerTokenRoutes registers credential routes under a tenant.
func registerProducerTokenRoutes(rg *gin.RouterGroup, tokenService portssvc.ProducerTokenSvcFacade) {
	h := newProducerTokenHandler(tokenService)

	rg.POST("/producer-tokens", h.issueToken)
}

// issueToken godoc
// @Summary Issue a producer token
// @Description Creates an API credential for one upstream module; the plain token is returned once and never again
// @Tags producer-tokens
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   token body dto.CreateProducerTokenRequest true "Token details"
// @Success 201 {object} dto.ProducerTokenResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /tenants/{tenantID}/producer-tokens [post]
func (h *producerTokenHandler) issueToken(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateProducerTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for issueToken", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	resp, err := h.tokenService.IssueToken(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
