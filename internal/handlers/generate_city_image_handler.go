package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	generatecityimagemodels "io.pairapps.ouryear/internal/models/generate_city_image"
)

// GenerateCityImage handles standalone illustration generation for a trip
// destination. The generated image is stored and its public URL returned.
func (h *ReportHandler) GenerateCityImage(c *gin.Context) {
	var req generatecityimagemodels.GenerateCityImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	if strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.Country) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "City and country are required"})
		return
	}

	ctx := c.Request.Context()

	data, contentType, err := h.generator.GenerateCityImage(ctx, req.City, req.Country)
	if err != nil {
		h.logError(c, err, "failed to generate city image", "city", req.City, "country", req.Country)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate city image"})
		return
	}

	url, err := h.uploader.Upload(ctx, data, contentType, "city-images")
	if err != nil {
		h.logError(c, err, "failed to store city image", "city", req.City)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store generated image"})
		return
	}

	c.JSON(http.StatusOK, generatecityimagemodels.GenerateCityImageResponse{URL: url})
}
