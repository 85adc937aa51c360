package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hroffice/hroffice_backend/internal/core/domain"
	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	"github.com/hroffice/hroffice_backend/internal/dto"
	"github.com/hroffice/hroffice_backend/internal/middleware"
)

// cashAdvanceHandler handles cash advance requests.
type cashAdvanceHandler struct {
	advanceService portssvc.CashAdvanceSvcFacade
}

func newCashAdvanceHandler(advanceService portssvc.CashAdvanceSvcFacade) *cashAdvanceHandler {
	return &cashAdvanceHandler{advanceService: advanceService}
}

// registerCashAdvanceRoutes sets up cash advance routes on the authenticated group.
func registerCashAdvanceRoutes(rg *gin.RouterGroup, advanceService portssvc.CashAdvanceSvcFacade) {
	h := newCashAdvanceHandler(advanceService)

	advances := rg.Group("/cash-advances")
	{
		advances.POST("", h.createCashAdvance)
		advances.GET("", h.listCashAdvances)
		advances.GET("/:cashAdvanceID", h.getCashAdvance)
		advances.POST("/:cashAdvanceID/decision", h.decideCashAdvance)
	}
}

// createCashAdvance godoc
// @Summary Request a cash advance
// @Description Files a cash advance request for the authenticated employee.
// @Tags cash-advances
// @Accept json
// @Produce json
// @Param advance body dto.CreateCashAdvanceRequest true "Advance details"
// @Success 201 {object} dto.CashAdvanceResponse
// @Failure 400 {object} ErrorResponse
// @Router /cash-advances [post]
func (h *cashAdvanceHandler) createCashAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCashAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	advance, err := h.advanceService.CreateCashAdvance(c.Request.Context(), req, actorID)
	if err != nil {
		status, resp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to create cash advance", slog.String("error", err.Error()))
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCashAdvanceResponse(advance))
}

// getCashAdvance godoc
// @Summary Get a cash advance
// @Tags cash-advances
// @Produce json
// @Param cashAdvanceID path string true "Cash Advance ID"
// @Success 200 {object} dto.CashAdvanceResponse
// @Failure 404 {object} ErrorResponse
// @Router /cash-advances/{cashAdvanceID} [get]
func (h *cashAdvanceHandler) getCashAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cashAdvanceID := c.Param("cashAdvanceID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	advance, err := h.advanceService.GetCashAdvance(c.Request.Context(), cashAdvanceID, actorID)
	if err != nil {
		status, resp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to get cash advance", slog.String("error", err.Error()), slog.String("cash_advance_id", cashAdvanceID))
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAdvanceResponse(advance))
}

// decideCashAdvance godoc
// @Summary Approve or reject a cash advance
// @Description Records an approval decision. Requires the approve_cash_advances capability.
// @Tags cash-advances
// @Accept json
// @Produce json
// @Param cashAdvanceID path string true "Cash Advance ID"
// @Param decision body dto.DecideCashAdvanceRequest true "Decision"
// @Success 200 {object} dto.CashAdvanceResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /cash-advances/{cashAdvanceID}/decision [post]
func (h *cashAdvanceHandler) decideCashAdvance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	cashAdvanceID := c.Param("cashAdvanceID")

	var req dto.DecideCashAdvanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	advance, err := h.advanceService.DecideCashAdvance(c.Request.Context(), cashAdvanceID, req.Action == string(domain.ActionApprove), actorID)
	if err != nil {
		status, resp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to decide cash advance", slog.String("error", err.Error()), slog.String("cash_advance_id", cashAdvanceID))
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, dto.ToCashAdvanceResponse(advance))
}

// listCashAdvances godoc
// @Summary List cash advances
// @Description Pages an employee's advances, newest first. Defaults to the authenticated employee.
// @Tags cash-advances
// @Produce json
// @Param employeeID query string false "Employee ID (approvers only)"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListCashAdvancesResponse
// @Failure 403 {object} ErrorResponse
// @Router /cash-advances [get]
func (h *cashAdvanceHandler) listCashAdvances(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListCashAdvancesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	employeeID := c.Query("employeeID")
	if employeeID == "" {
		employeeID = actorID
	}

	resp, err := h.advanceService.ListCashAdvances(c.Request.Context(), employeeID, params, actorID)
	if err != nil {
		status, errResp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to list cash advances", slog.String("error", err.Error()))
		}
		c.JSON(status, errResp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
