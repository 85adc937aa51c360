package handlers

import (
	"log/slog"
	"mime"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/hroffice/hroffice_backend/internal/adapters/storage"
	"github.com/hroffice/hroffice_backend/internal/middleware"
)

// receiptDownloadHandler serves receipt bytes for verified signed links. The
// signature is the authorization: the route carries no session requirement.
type receiptDownloadHandler struct {
	store *storage.LocalFileStorage
}

// registerReceiptDownloadRoutes sets up the public signed-download route.
func registerReceiptDownloadRoutes(rg *gin.Engine, store *storage.LocalFileStorage) {
	h := &receiptDownloadHandler{store: store}
	rg.GET("/receipts/:fileRef", h.downloadReceipt)
}

// downloadReceipt godoc
// @Summary Download a receipt via a signed link
// @Description Serves receipt bytes when the HMAC signature and expiry check out.
// @Tags receipts
// @Param fileRef path string true "Receipt reference"
// @Param expires query string true "Unix expiry"
// @Param sig query string true "HMAC signature"
// @Success 200 {file} binary
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /receipts/{fileRef} [get]
func (h *receiptDownloadHandler) downloadReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	fileRef := c.Param("fileRef")

	if err := h.store.VerifySignature(fileRef, c.Query("expires"), c.Query("sig")); err != nil {
		logger.Warn("Rejected receipt download", slog.String("file_ref", fileRef), slog.String("error", err.Error()))
		status, resp := respondError(err)
		c.JSON(status, resp)
		return
	}

	path, err := h.store.Open(fileRef)
	if err != nil {
		status, resp := respondError(err)
		c.JSON(status, resp)
		return
	}

	if ct := mime.TypeByExtension(filepath.Ext(fileRef)); ct != "" {
		c.Header("Content-Type", ct)
	}
	c.File(path)
}
