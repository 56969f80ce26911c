package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	reportmodels "io.pairapps.ouryear/internal/models/report"
	"io.pairapps.ouryear/internal/store"
)

// reportCacheTTL bounds how long a rendered report stays in Redis. Reports
// are immutable after creation, so a long TTL is safe.
const reportCacheTTL = 24 * time.Hour

// GetReport handles fetching a full report by its share code. Unknown codes
// are a 404, never an empty report.
func (h *ReportHandler) GetReport(c *gin.Context) {
	shareCode := c.Param("shareCode")
	if shareCode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Share code is required"})
		return
	}

	ctx := c.Request.Context()

	// Check Redis cache first
	cacheKey := fmt.Sprintf("report:%s", shareCode)
	if h.redis != nil {
		cached, err := h.redis.Get(ctx, cacheKey).Result()
		if err == nil && cached != "" {
			var report reportmodels.Report
			if err := json.Unmarshal([]byte(cached), &report); err == nil {
				c.JSON(http.StatusOK, report)
				return
			}
		}
	}

	report, err := h.store.GetByShareCode(ctx, shareCode)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
			return
		}
		h.logError(c, err, "failed to fetch report", "share_code", shareCode)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch report"})
		return
	}

	if h.redis != nil {
		if data, err := json.Marshal(report); err == nil {
			h.redis.Set(context.WithoutCancel(ctx), cacheKey, data, reportCacheTTL)
		}
	}

	c.JSON(http.StatusOK, report)
}
