package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// queryHandler handles read-side HTTP requests over committed entries.
type queryHandler struct {
	queryService portssvc.LedgerQuerySvcFacade
}

func newQueryHandler(qs portssvc.LedgerQuerySvcFacade) *queryHandler {
	return &queryHandler{queryService: qs}
}

// registerQueryRoutes registers reporting routes under a tenant.
func registerQueryRoutes(rg *gin.RouterGroup, queryService portssvc.LedgerQuerySvcFacade) {
	h := newQueryHandler(queryService)

	rg.GET("/entries", h.listEntries)
	rg.GET("/exercises/:exerciseID/trial-balance", h.trialBalance)
}

// listEntries godoc
// @Summary List committed entry records
// @Description Retrieves committed entry lines joined with their posting context, newest first, with token pagination
// @Tags reporting
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   exerciseID query string false "Filter by exercise"
// @Param   journalID query string false "Filter by journal"
// @Param   accountID query string false "Filter by account"
// @Param   sourceModule query string false "Filter by source module"
// @Param   from query string false "Entry date lower bound (YYYY-MM-DD)"
// @Param   to query string false "Entry date upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Page size"
// @Param   nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListEntriesResponse
// @Failure 400 {object} map[string]string "Invalid filters or pagination token"
// @Security BearerAuth
// @Router /tenants/{tenantID}/entries [get]
func (h *queryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.queryService.ListEntries(c.Request.Context(), tenantID, params)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// trialBalance godoc
// @Summary Trial balance of one exercise
// @Description Aggregates committed debits and credits per account
// @Tags reporting
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   exerciseID path string true "Exercise ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 404 {object} map[string]string "Exercise not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exercises/{exerciseID}/trial-balance [get]
func (h *queryHandler) trialBalance(c *gin.Context) {
	tenantID := c.Param("tenantID")
	exerciseID := c.Param("exerciseID")

	resp, err := h.queryService.TrialBalance(c.Request.Context(), tenantID, exerciseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
