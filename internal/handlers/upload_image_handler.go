package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	uploadimagemodels "io.pairapps.ouryear/internal/models/upload_image"
)

// maxUploadBytes caps user uploads.
const maxUploadBytes = 15 << 20

// UploadImage handles direct multipart image uploads into object storage.
func (h *ReportHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File too large"})
		return
	}

	folder := c.PostForm("folder")
	if folder == "" {
		folder = "uploads"
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.logError(c, err, "failed to open uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.logError(c, err, "failed to read uploaded file")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.uploader.Upload(c.Request.Context(), data, contentType, folder)
	if err != nil {
		h.logError(c, err, "failed to upload file", "folder", folder)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	c.JSON(http.StatusOK, uploadimagemodels.UploadImageResponse{URL: url})
}
