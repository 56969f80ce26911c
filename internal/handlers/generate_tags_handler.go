package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"io.pairapps.ouryear/internal/ai"
	generatetagsmodels "io.pairapps.ouryear/internal/models/generate_tags"
	reportmodels "io.pairapps.ouryear/internal/models/report"
)

// GenerateTags handles standalone tag generation for one record.
func (h *ReportHandler) GenerateTags(c *gin.Context) {
	var req generatetagsmodels.GenerateTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	switch req.Type {
	case reportmodels.KindMovie, reportmodels.KindConcert, reportmodels.KindTravel:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
		return
	}

	tags, err := h.generator.GenerateTags(c.Request.Context(), req.Type, ai.Record{
		Title:   req.Data.Title,
		Artist:  req.Data.Artist,
		City:    req.Data.City,
		Country: req.Data.Country,
		Venue:   req.Data.Venue,
		Date:    req.Data.Date,
		Rating:  req.Data.Rating,
	})
	if err != nil {
		h.logError(c, err, "failed to generate tags", "type", req.Type)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate tags"})
		return
	}
	if tags == nil {
		tags = []string{}
	}

	c.JSON(http.StatusOK, generatetagsmodels.GenerateTagsResponse{Tags: tags})
}
