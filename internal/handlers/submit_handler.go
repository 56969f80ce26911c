package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	submitmodels "io.pairapps.ouryear/internal/models/submit"
)

// Submit handles one full submission: validation, enrichment of every item
// category, persistence and share-code minting. Validation failures reject
// the request before any external call is made.
func (h *ReportHandler) Submit(c *gin.Context) {
	var req submitmodels.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// Validate required fields
	if len(req.MovieList) == 0 && len(req.Concerts) == 0 && len(req.Travels) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission must contain at least one movie, concert or travel"})
		return
	}
	for _, concert := range req.Concerts {
		if strings.TrimSpace(concert.Artist) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Concert artist is required"})
			return
		}
	}
	for _, travel := range req.Travels {
		if strings.TrimSpace(travel.City) == "" || strings.TrimSpace(travel.Country) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Travel city and country are required"})
			return
		}
	}

	// The whole submission runs under one deadline so a slow third party
	// cannot hang the request indefinitely.
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.SubmitTimeout)
	defer cancel()

	result, err := h.pipeline.Run(ctx, &req)
	if err != nil {
		h.logError(c, err, "failed to create report")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	// Persistence failures fail the submission as a whole; enrichment work
	// already done for other categories is not rolled back.
	if len(result.PersistErrors) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": strings.Join(result.PersistErrors, "; ")})
		return
	}

	failed := result.Failed
	if failed == nil {
		failed = []string{}
	}

	c.JSON(http.StatusOK, submitmodels.SubmitResponse{
		ShareCode: result.ShareCode,
		Movies: submitmodels.MoviesOutcome{
			Successful: result.Successful,
			Failed:     failed,
		},
	})
}
