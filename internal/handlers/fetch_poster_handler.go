package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"io.pairapps.ouryear/internal/imagefetch"
	fetchpostermodels "io.pairapps.ouryear/internal/models/fetch_poster"
	reportmodels "io.pairapps.ouryear/internal/models/report"
)

// FetchPoster handles ad hoc poster lookups outside the main pipeline. A
// resolved poster is copied into object storage; if that copy fails the
// externally hosted URL is returned instead. No match yields a null url.
func (h *ReportHandler) FetchPoster(c *gin.Context) {
	var req fetchpostermodels.FetchPosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx := c.Request.Context()

	var externalURL string
	switch req.Type {
	case reportmodels.KindMovie:
		if req.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		id, ok, err := h.resolver.SearchMovie(ctx, req.Title)
		if err != nil {
			h.logWarn(c, err, "movie search failed", "title", req.Title)
		} else if ok {
			info, err := h.resolver.MovieDetails(ctx, id)
			if err != nil {
				h.logWarn(c, err, "movie details failed", "tmdb_id", id)
			} else {
				externalURL = info.PosterURL
			}
		}
	case reportmodels.KindConcert:
		if req.Artist == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Artist is required"})
			return
		}
		url, ok, err := h.resolver.SearchPersonProfile(ctx, req.Artist)
		if err != nil {
			h.logWarn(c, err, "artist search failed", "artist", req.Artist)
		} else if ok {
			externalURL = url
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid type"})
		return
	}

	if externalURL == "" {
		c.JSON(http.StatusOK, fetchpostermodels.FetchPosterResponse{URL: nil})
		return
	}

	// Store a copy so the report does not depend on the catalog's CDN.
	finalURL := externalURL
	data, contentType, err := imagefetch.Fetch(ctx, h.http, externalURL)
	if err != nil {
		h.logWarn(c, err, "poster download failed", "url", externalURL)
	} else if storedURL, err := h.uploader.Upload(ctx, data, contentType, "posters"); err != nil {
		h.logWarn(c, err, "poster upload failed, keeping external URL")
	} else {
		finalURL = storedURL
	}

	c.JSON(http.StatusOK, fetchpostermodels.FetchPosterResponse{URL: &finalURL})
}
