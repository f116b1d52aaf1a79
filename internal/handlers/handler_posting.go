package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// postingHandler handles HTTP requests hitting the posting engine.
type postingHandler struct {
	postingService portssvc.PostingEngineSvcFacade
}

func newPostingHandler(ps portssvc.PostingEngineSvcFacade) *postingHandler {
	return &postingHandler{postingService: ps}
}

// RegisterPostingRoutes registers the posting engine routes under a tenant.
func RegisterPostingRoutes(rg *gin.RouterGroup, postingService portssvc.PostingEngineSvcFacade) {
	h := newPostingHandler(postingService)

	postings := rg.Group("/postings")
	{
		postings.POST("", h.postEntry)
		postings.GET("/:reference", h.getPosting)
		postings.POST("/:reference/reverse", h.reversePosting)
	}
}

// postEntry godoc
// @Summary Commit a batch of entry lines
// @Description Validates the batch against the chart, journal registry, fiscal period and balance invariant, then commits it atomically
// @Tags postings
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   entry body dto.PostEntryRequest true "Entry batch"
// @Success 201 {object} dto.PostingResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Unknown account, journal or exercise"
// @Failure 409 {object} map[string]string "Closed exercise or duplicate reference"
// @Failure 422 {object} map[string]string "Entry lines do not balance"
// @Security BearerAuth
// @Router /tenants/{tenantID}/postings [post]
func (h *postingHandler) postEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.PostEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for postEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	// A producer token is bound to one source module; it cannot post on
	// behalf of another subsystem.
	if boundModule, authed := middleware.GetSourceModuleFromContext(c); authed && boundModule != req.SourceModule {
		logger.Warn("Producer token source module mismatch",
			slog.String("bound", boundModule),
			slog.String("requested", req.SourceModule))
		c.JSON(http.StatusForbidden, gin.H{"error": "Token is not valid for source module " + req.SourceModule})
		return
	}

	posting, err := h.postingService.Post(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingResponse(posting))
}

// getPosting godoc
// @Summary Get a committed posting by reference
// @Tags postings
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   reference path string true "Reference key"
// @Success 200 {object} dto.PostingResponse
// @Failure 404 {object} map[string]string "Reference not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/postings/{reference} [get]
func (h *postingHandler) getPosting(c *gin.Context) {
	tenantID := c.Param("tenantID")
	reference := c.Param("reference")

	posting, err := h.postingService.GetByReference(c.Request.Context(), tenantID, reference)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostingResponse(posting))
}

// reversePosting godoc
// @Summary Reverse a committed posting
// @Description Creates the offsetting posting with debit and credit legs swapped; the original rows stay untouched
// @Tags postings
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   reference path string true "Reference key of the posting to reverse"
// @Success 201 {object} dto.PostingResponse
// @Failure 404 {object} map[string]string "Reference not found"
// @Failure 409 {object} map[string]string "Closed exercise or reversal already exists"
// @Security BearerAuth
// @Router /tenants/{tenantID}/postings/{reference}/reverse [post]
func (h *postingHandler) reversePosting(c *gin.Context) {
	tenantID := c.Param("tenantID")
	reference := c.Param("reference")

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	reversal, err := h.postingService.Reverse(c.Request.Context(), tenantID, reference, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostingResponse(reversal))
}
