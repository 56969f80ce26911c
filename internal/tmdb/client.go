package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"io.pairapps.ouryear/internal/config"
)

// metadataCacheTTL bounds how long resolved catalog metadata is reused
// across reports. The cache key is the TMDB id, never the free-text title.
const metadataCacheTTL = 7 * 24 * time.Hour

// MovieInfo is the catalog metadata for one resolved movie. Optional fields
// stay zero-valued when the upstream response omits them.
type MovieInfo struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	ReleaseDate string   `json:"releaseDate"`
	Runtime     int      `json:"runtime"`
	Genres      []string `json:"genres"`
	PosterURL   string   `json:"posterUrl"`
	BackdropURL string   `json:"backdropUrl"`
	LogoURL     string   `json:"logoUrl"`
}

// Client resolves free-text titles and artist names against the TMDB catalog.
// All calls share one rate limiter to respect the upstream quota.
type Client struct {
	apiBaseURL   string
	imageBaseURL string
	bearerToken  string
	language     string
	http         *http.Client
	redis        *redis.Client
	limiter      *rate.Limiter
}

// NewClient builds a resolver. redisClient may be nil, which disables the
// metadata cache (every resolution then hits the API).
func NewClient(cfg *config.Config, httpClient *http.Client, redisClient *redis.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		apiBaseURL:   strings.TrimRight(cfg.TMDBAPIBaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.TMDBImageBaseURL, "/"),
		bearerToken:  cfg.TMDBBearerToken,
		language:     cfg.TMDBLanguage,
		http:         httpClient,
		redis:        redisClient,
		limiter:      rate.NewLimiter(rate.Every(time.Second/4), 4),
	}
}

type searchResponse struct {
	Results []struct {
		ID          int64  `json:"id"`
		ProfilePath string `json:"profile_path"`
	} `json:"results"`
}

// SearchMovie finds the best match for a title, scoped to the current year.
// An empty result set is a no-match, not an error.
func (c *Client) SearchMovie(ctx context.Context, title string) (int64, bool, error) {
	params := url.Values{}
	params.Set("query", title)
	params.Set("include_adult", "false")
	params.Set("language", c.language)
	params.Set("primary_release_year", strconv.Itoa(time.Now().Year()))
	params.Set("page", "1")

	var result searchResponse
	if err := c.get(ctx, "/3/search/movie?"+params.Encode(), &result); err != nil {
		return 0, false, err
	}
	if len(result.Results) == 0 {
		return 0, false, nil
	}
	return result.Results[0].ID, true, nil
}

type detailResponse struct {
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Runtime     int    `json:"runtime"`
	Genres      []struct {
		Name string `json:"name"`
	} `json:"genres"`
	PosterPath   string `json:"poster_path"`
	BackdropPath string `json:"backdrop_path"`
}

type imagesResponse struct {
	Logos []struct {
		FilePath string `json:"file_path"`
	} `json:"logos"`
}

// MovieDetails fetches the descriptive fields and image URLs for a resolved
// id. Results are cached in Redis keyed by id, so repeated submissions of
// the same movie skip the catalog round-trips.
func (c *Client) MovieDetails(ctx context.Context, id int64) (*MovieInfo, error) {
	cacheKey := fmt.Sprintf("tmdb:movie:%d", id)
	if c.redis != nil {
		if cached, err := c.redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			var info MovieInfo
			if err := json.Unmarshal([]byte(cached), &info); err == nil {
				return &info, nil
			}
		}
	}

	var detail detailResponse
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d?language=%s", id, url.QueryEscape(c.language)), &detail); err != nil {
		return nil, err
	}

	info := &MovieInfo{
		ID:          id,
		Title:       detail.Title,
		ReleaseDate: detail.ReleaseDate,
		Runtime:     detail.Runtime,
	}
	for _, g := range detail.Genres {
		if g.Name != "" {
			info.Genres = append(info.Genres, g.Name)
		}
	}
	if detail.PosterPath != "" {
		info.PosterURL = c.imageBaseURL + "/t/p/w500" + detail.PosterPath
	}
	if detail.BackdropPath != "" {
		info.BackdropURL = c.imageBaseURL + "/t/p/w600_and_h600_face" + detail.BackdropPath
	}

	// The logo lookup is best-effort; a missing logo never fails resolution.
	var images imagesResponse
	if err := c.get(ctx, fmt.Sprintf("/3/movie/%d/images?language=%s", id, url.QueryEscape(c.language)), &images); err == nil {
		if len(images.Logos) > 0 && images.Logos[0].FilePath != "" {
			info.LogoURL = c.imageBaseURL + "/t/p/w500" + images.Logos[0].FilePath
		}
	}

	if c.redis != nil {
		if data, err := json.Marshal(info); err == nil {
			c.redis.Set(ctx, cacheKey, data, metadataCacheTTL)
		}
	}

	return info, nil
}

// SearchPersonProfile looks up an artist's profile image, used as the
// concert poster fallback when the user supplied none.
func (c *Client) SearchPersonProfile(ctx context.Context, name string) (string, bool, error) {
	params := url.Values{}
	params.Set("query", name)
	params.Set("include_adult", "false")
	params.Set("language", c.language)
	params.Set("page", "1")

	var result searchResponse
	if err := c.get(ctx, "/3/search/person?"+params.Encode(), &result); err != nil {
		return "", false, err
	}
	if len(result.Results) == 0 || result.Results[0].ProfilePath == "" {
		return "", false, nil
	}
	return c.imageBaseURL + "/t/p/w500" + result.Results[0].ProfilePath, true, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build TMDB request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.bearerToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("TMDB request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}
