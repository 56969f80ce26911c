package tmdb

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"io.pairapps.ouryear/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		TMDBAPIBaseURL:   server.URL,
		TMDBImageBaseURL: "https://image.example.org",
		TMDBBearerToken:  "test-token",
		TMDBLanguage:     "zh-CN",
	}
	return NewClient(cfg, server.Client(), nil), server
}

func TestSearchMovie(t *testing.T) {
	var gotQuery, gotYear, gotAuth string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/movie", r.URL.Path)
		gotQuery = r.URL.Query().Get("query")
		gotYear = r.URL.Query().Get("primary_release_year")
		gotAuth = r.Header.Get("Authorization")
		fmt.Fprint(w, `{"results": [{"id": 550}, {"id": 551}]}`)
	})

	id, ok, err := client.SearchMovie(t.Context(), "Fight Club")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(550), id, "the first result wins")
	assert.Equal(t, "Fight Club", gotQuery)
	assert.Equal(t, strconv.Itoa(time.Now().Year()), gotYear)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestSearchMovieNoResults(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": []}`)
	})

	_, ok, err := client.SearchMovie(t.Context(), "Nonexistent Movie")
	require.NoError(t, err, "an empty result set is a no-match, not an error")
	assert.False(t, ok)
}

func TestSearchMovieUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, _, err := client.SearchMovie(t.Context(), "Fight Club")
	assert.Error(t, err)
}

func TestMovieDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/movie/550":
			fmt.Fprint(w, `{
				"title": "搏击俱乐部",
				"release_date": "1999-10-15",
				"runtime": 139,
				"genres": [{"name": "剧情"}, {"name": ""}],
				"poster_path": "/poster.jpg",
				"backdrop_path": "/backdrop.jpg"
			}`)
		case "/3/movie/550/images":
			fmt.Fprint(w, `{"logos": [{"file_path": "/logo.png"}]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	info, err := client.MovieDetails(t.Context(), 550)
	require.NoError(t, err)
	assert.Equal(t, int64(550), info.ID)
	assert.Equal(t, "搏击俱乐部", info.Title)
	assert.Equal(t, "1999-10-15", info.ReleaseDate)
	assert.Equal(t, 139, info.Runtime)
	assert.Equal(t, []string{"剧情"}, info.Genres, "empty genre names are dropped")
	assert.Equal(t, "https://image.example.org/t/p/w500/poster.jpg", info.PosterURL)
	assert.Equal(t, "https://image.example.org/t/p/w600_and_h600_face/backdrop.jpg", info.BackdropURL)
	assert.Equal(t, "https://image.example.org/t/p/w500/logo.png", info.LogoURL)
}

func TestMovieDetailsOptionalFieldsMissing(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/3/movie/42":
			fmt.Fprint(w, `{"title": "Bare Movie"}`)
		case "/3/movie/42/images":
			// Logo lookup is best-effort; its failure must not surface.
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	info, err := client.MovieDetails(t.Context(), 42)
	require.NoError(t, err)
	assert.Equal(t, "Bare Movie", info.Title)
	assert.Empty(t, info.PosterURL)
	assert.Empty(t, info.BackdropURL)
	assert.Empty(t, info.LogoURL)
	assert.Empty(t, info.Genres)
	assert.Zero(t, info.Runtime)
}

func TestMovieDetailsUpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.MovieDetails(t.Context(), 550)
	assert.Error(t, err)
}

func TestSearchPersonProfile(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/3/search/person", r.URL.Path)
		fmt.Fprint(w, `{"results": [{"id": 7, "profile_path": "/artist.jpg"}]}`)
	})

	url, ok, err := client.SearchPersonProfile(t.Context(), "Jay Chou")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "https://image.example.org/t/p/w500/artist.jpg", url)
}

func TestSearchPersonProfileNoProfileImage(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [{"id": 7, "profile_path": ""}]}`)
	})

	_, ok, err := client.SearchPersonProfile(t.Context(), "Jay Chou")
	require.NoError(t, err, "a match without a profile image is a no-match, not an error")
	assert.False(t, ok)
}
