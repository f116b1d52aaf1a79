package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to the journal registry.
type journalHandler struct {
	journalService portssvc.JournalRegistrySvcFacade
}

func newJournalHandler(js portssvc.JournalRegistrySvcFacade) *journalHandler {
	return &journalHandler{journalService: js}
}

// registerJournalRoutes registers journal registry routes under a tenant.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalRegistrySvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.GET("/:journalID", h.getJournal)
		journals.DELETE("/:journalID", h.deleteJournal)
	}
}

// createJournal godoc
// @Summary Register a new journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   journal body dto.CreateJournalRequest true "Journal details"
// @Success 201 {object} dto.JournalResponse
// @Failure 409 {object} map[string]string "Journal code already in use"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	journal, err := h.journalService.CreateJournal(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToJournalResponse(journal))
}

// getJournal godoc
// @Summary Get a journal by ID
// @Tags journals
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	tenantID := c.Param("tenantID")
	journalID := c.Param("journalID")

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), tenantID, journalID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// deleteJournal godoc
// @Summary Delete an unused journal
// @Tags journals
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   journalID path string true "Journal ID"
// @Success 204 "No Content"
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 409 {object} map[string]string "Journal has committed postings"
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals/{journalID} [delete]
func (h *journalHandler) deleteJournal(c *gin.Context) {
	tenantID := c.Param("tenantID")
	journalID := c.Param("journalID")

	if err := h.journalService.DeleteJournal(c.Request.Context(), tenantID, journalID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// listJournals godoc
// @Summary List the journals of a tenant
// @Tags journals
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Success 200 {object} dto.ListJournalsResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	tenantID := c.Param("tenantID")

	resp, err := h.journalService.ListJournals(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
