package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/hroffice/hroffice_backend/internal/core/ports/services"
	"github.com/hroffice/hroffice_backend/internal/dto"
	"github.com/hroffice/hroffice_backend/internal/middleware"
)

// liquidationHandler handles liquidation lifecycle requests.
type liquidationHandler struct {
	liquidationService portssvc.LiquidationSvcFacade
}

func newLiquidationHandler(liquidationService portssvc.LiquidationSvcFacade) *liquidationHandler {
	return &liquidationHandler{liquidationService: liquidationService}
}

// registerLiquidationRoutes sets up liquidation routes on the authenticated group.
func registerLiquidationRoutes(rg *gin.RouterGroup, liquidationService portssvc.LiquidationSvcFacade) {
	h := newLiquidationHandler(liquidationService)

	liquidations := rg.Group("/liquidations")
	{
		liquidations.POST("", h.fileLiquidation)
		liquidations.GET("", h.listLiquidations)
		liquidations.GET("/:liquidationID", h.getLiquidation)
		liquidations.PUT("/:liquidationID", h.editLiquidation)
		liquidations.DELETE("/:liquidationID", h.deleteLiquidation)
		liquidations.POST("/:liquidationID/decisions", h.decideLiquidation)
	}
	rg.POST("/receipts", h.uploadReceipt)
}

// fileLiquidation godoc
// @Summary File a liquidation
// @Description Files a liquidation against an approved cash advance. At most one liquidation per advance.
// @Tags liquidations
// @Accept json
// @Produce json
// @Param liquidation body dto.FileLiquidationRequest true "Liquidation details"
// @Success 201 {object} dto.LiquidationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Cash advance already liquidated"
// @Router /liquidations [post]
func (h *liquidationHandler) fileLiquidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.FileLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for fileLiquidation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	liquidation, err := h.liquidationService.FileLiquidation(c.Request.Context(), req, actorID)
	if err != nil {
		status, resp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to file liquidation", slog.String("error", err.Error()))
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusCreated, dto.ToLiquidationResponse(liquidation))
}

// getLiquidation godoc
// @Summary Get a liquidation
// @Description Returns the full aggregate with items, attachments and signed receipt URLs.
// @Tags liquidations
// @Produce json
// @Param liquidationID path string true "Liquidation ID"
// @Success 200 {object} dto.LiquidationResponse
// @Failure 404 {object} ErrorResponse
// @Router /liquidations/{liquidationID} [get]
func (h *liquidationHandler) getLiquidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	liquidationID := c.Param("liquidationID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.liquidationService.GetLiquidation(c.Request.Context(), liquidationID, actorID)
	if err != nil {
		status, errResp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to get liquidation", slog.String("error", err.Error()), slog.String("liquidation_id", liquidationID))
		}
		c.JSON(status, errResp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// editLiquidation godoc
// @Summary Edit a pending liquidation
// @Description Replaces the item set and reconciles the attachment set. Legal only while pending.
// @Tags liquidations
// @Accept json
// @Produce json
// @Param liquidationID path string true "Liquidation ID"
// @Param liquidation body dto.EditLiquidationRequest true "Replacement details"
// @Success 200 {object} dto.LiquidationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Not pending, version conflict, or dangling attachment"
// @Router /liquidations/{liquidationID} [put]
func (h *liquidationHandler) editLiquidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	liquidationID := c.Param("liquidationID")

	var req dto.EditLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for editLiquidation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	liquidation, err := h.liquidationService.EditLiquidation(c.Request.Context(), liquidationID, req, actorID)
	if err != nil {
		status, resp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to edit liquidation", slog.String("error", err.Error()), slog.String("liquidation_id", liquidationID))
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, dto.ToLiquidationResponse(liquidation))
}

// decideLiquidation godoc
// @Summary Approve or reject a liquidation at one level
// @Description Applies a level-1 or level-2 decision. A repeated identical decision returns a conflict, never a duplicate audit record.
// @Tags liquidations
// @Accept json
// @Produce json
// @Param liquidationID path string true "Liquidation ID"
// @Param decision body dto.DecideLiquidationRequest true "Decision"
// @Success 200 {object} dto.LiquidationResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Illegal transition or already decided"
// @Router /liquidations/{liquidationID}/decisions [post]
func (h *liquidationHandler) decideLiquidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	liquidationID := c.Param("liquidationID")

	var req dto.DecideLiquidationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	liquidation, err := h.liquidationService.DecideLiquidation(c.Request.Context(), liquidationID, req.Level, req.Action, actorID, req.Comment)
	if err != nil {
		status, resp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to decide liquidation", slog.String("error", err.Error()), slog.String("liquidation_id", liquidationID))
		}
		c.JSON(status, resp)
		return
	}
	c.JSON(http.StatusOK, dto.ToLiquidationResponse(liquidation))
}

// deleteLiquidation godoc
// @Summary Delete a pending liquidation
// @Description Soft-deletes a liquidation that has no review history yet.
// @Tags liquidations
// @Param liquidationID path string true "Liquidation ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /liquidations/{liquidationID} [delete]
func (h *liquidationHandler) deleteLiquidation(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	liquidationID := c.Param("liquidationID")

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.liquidationService.DeleteLiquidation(c.Request.Context(), liquidationID, actorID); err != nil {
		status, resp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to delete liquidation", slog.String("error", err.Error()), slog.String("liquidation_id", liquidationID))
		}
		c.JSON(status, resp)
		return
	}
	c.Status(http.StatusNoContent)
}

// listLiquidations godoc
// @Summary List liquidations
// @Description Returns a filtered, token-paginated page of liquidation headers, newest first.
// @Tags liquidations
// @Produce json
// @Param status query string false "Status filter"
// @Param storeID query string false "Store filter"
// @Param employeeID query string false "Employee filter"
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Success 200 {object} dto.ListLiquidationsResponse
// @Failure 400 {object} ErrorResponse
// @Router /liquidations [get]
func (h *liquidationHandler) listLiquidations(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListLiquidationsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters"})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	resp, err := h.liquidationService.ListLiquidations(c.Request.Context(), params, actorID)
	if err != nil {
		status, errResp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to list liquidations", slog.String("error", err.Error()))
		}
		c.JSON(status, errResp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// uploadReceipt godoc
// @Summary Upload a receipt file
// @Description Stores receipt bytes and returns the fileRef to cite in a file/edit request. The upload always precedes the metadata record.
// @Tags receipts
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Receipt file"
// @Success 201 {object} dto.UploadReceiptResponse
// @Failure 400 {object} ErrorResponse
// @Router /receipts [post]
func (h *liquidationHandler) uploadReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing receipt file"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read upload"})
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		logger.Error("Failed to read uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to read upload"})
		return
	}

	resp, err := h.liquidationService.UploadReceipt(c.Request.Context(), content, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), actorID)
	if err != nil {
		status, errResp := respondError(err)
		if status == http.StatusInternalServerError {
			logger.Error("Failed to store receipt", slog.String("error", err.Error()))
		}
		c.JSON(status, errResp)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
