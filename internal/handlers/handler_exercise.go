package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/gestika/ledger/internal/core/ports/services"
	"github.com/gestika/ledger/internal/dto"
	"github.com/gestika/ledger/internal/middleware"
	"github.com/gin-gonic/gin"
)

// exerciseHandler handles HTTP requests related to fiscal exercises.
type exerciseHandler struct {
	exerciseService portssvc.FiscalPeriodSvcFacade
}

func newExerciseHandler(es portssvc.FiscalPeriodSvcFacade) *exerciseHandler {
	return &exerciseHandler{exerciseService: es}
}

// registerExerciseRoutes registers fiscal period routes under a tenant.
func registerExerciseRoutes(rg *gin.RouterGroup, exerciseService portssvc.FiscalPeriodSvcFacade) {
	h := newExerciseHandler(exerciseService)

	exercises := rg.Group("/exercises")
	{
		exercises.POST("", h.openExercise)
		exercises.GET("", h.listExercises)
		exercises.GET("/active", h.getActiveExercise)
		exercises.GET("/:exerciseID", h.getExercise)
		exercises.POST("/:exerciseID/close", h.closeExercise)
	}
}

// openExercise godoc
// @Summary Open a fiscal exercise
// @Description Opens the exercise for a year; only one open exercise per tenant at a time
// @Tags exercises
// @Accept  json
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   exercise body dto.OpenExerciseRequest true "Exercise details"
// @Success 201 {object} dto.ExerciseResponse
// @Failure 409 {object} map[string]string "Another exercise is active, or the year already exists"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exercises [post]
func (h *exerciseHandler) openExercise(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.OpenExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for openExercise", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.OpenExercise(c.Request.Context(), tenantID, req, actorID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToExerciseResponse(exercise))
}

// closeExercise godoc
// @Summary Close a fiscal exercise
// @Description Irreversibly freezes an exercise after verifying every reference group balances
// @Tags exercises
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   exerciseID path string true "Exercise ID"
// @Success 204 "Exercise closed"
// @Failure 404 {object} map[string]string "Exercise not found"
// @Failure 409 {object} map[string]string "Already closed, or unbalanced reference groups remain"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exercises/{exerciseID}/close [post]
func (h *exerciseHandler) closeExercise(c *gin.Context) {
	tenantID := c.Param("tenantID")
	exerciseID := c.Param("exerciseID")

	actorID, ok := requireActor(c)
	if !ok {
		return
	}

	if err := h.exerciseService.CloseExercise(c.Request.Context(), tenantID, exerciseID, actorID); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// getActiveExercise godoc
// @Summary Get the currently open exercise
// @Tags exercises
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Success 200 {object} dto.ExerciseResponse
// @Failure 404 {object} map[string]string "No active exercise"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exercises/active [get]
func (h *exerciseHandler) getActiveExercise(c *gin.Context) {
	tenantID := c.Param("tenantID")

	exercise, err := h.exerciseService.GetActiveExercise(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}
	if exercise == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No active exercise"})
		return
	}

	c.JSON(http.StatusOK, dto.ToExerciseResponse(exercise))
}

// getExercise godoc
// @Summary Get an exercise by ID
// @Tags exercises
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Param   exerciseID path string true "Exercise ID"
// @Success 200 {object} dto.ExerciseResponse
// @Failure 404 {object} map[string]string "Exercise not found"
// @Security BearerAuth
// @Router /tenants/{tenantID}/exercises/{exerciseID} [get]
func (h *exerciseHandler) getExercise(c *gin.Context) {
	tenantID := c.Param("tenantID")
	exerciseID := c.Param("exerciseID")

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), tenantID, exerciseID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToExerciseResponse(exercise))
}

// listExercises godoc
// @Summary List the exercise history of a tenant
// @Tags exercises
// @Produce  json
// @Param   tenantID path string true "Tenant ID"
// @Success 200 {object} dto.ListExercisesResponse
// @Security BearerAuth
// @Router /tenants/{tenantID}/exercises [get]
func (h *exerciseHandler) listExercises(c *gin.Context) {
	tenantID := c.Param("tenantID")

	resp, err := h.exerciseService.ListExercises(c.Request.Context(), tenantID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
