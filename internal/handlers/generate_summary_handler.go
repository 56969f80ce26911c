package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"io.pairapps.ouryear/internal/ai"
	generatesummarymodels "io.pairapps.ouryear/internal/models/generate_summary"
	reportmodels "io.pairapps.ouryear/internal/models/report"
)

// GenerateSummary handles standalone batch-summary generation for one
// category of records.
func (h *ReportHandler) GenerateSummary(c *gin.Context) {
	var req generatesummarymodels.GenerateSummaryRequest
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
	if len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Items are required"})
		return
	}

	records := make([]ai.Record, 0, len(req.Items))
	for _, item := range req.Items {
		records = append(records, ai.Record{
			Title:   item.Title,
			Artist:  item.Artist,
			City:    item.City,
			Country: item.Country,
			Venue:   item.Venue,
			Date:    item.Date,
			Rating:  item.Rating,
		})
	}

	summary, err := h.generator.GenerateSummary(c.Request.Context(), req.Type, records)
	if err != nil {
		h.logError(c, err, "failed to generate summary", "type", req.Type)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate summary"})
		return
	}

	c.JSON(http.StatusOK, generatesummarymodels.GenerateSummaryResponse{Summary: summary})
}
