package models

import "time"

// Record category discriminators used by the tag/summary endpoints and the
// enrichment pipeline.
const (
	KindMovie   = "movie"
	KindConcert = "concert"
	KindTravel  = "travel"
)

// Movie is one watched-movie record belonging to a report. Catalog fields
// are filled in from TMDB when resolution succeeds; every enrichment field
// may legitimately stay empty.
type Movie struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	OriginalTitle  string   `json:"originalTitle"`
	WatchDate      string   `json:"watchDate,omitempty"`
	Rating         int      `json:"rating,omitempty"`
	TMDBID         int64    `json:"tmdbId,omitempty"`
	ReleaseDate    string   `json:"releaseDate,omitempty"`
	Runtime        int      `json:"runtime,omitempty"`
	Genres         []string `json:"genres"`
	PosterURL      string   `json:"posterUrl,omitempty"`
	BackdropURL    string   `json:"backdropUrl,omitempty"`
	LogoURL        string   `json:"logoUrl,omitempty"`
	PosterColors   []string `json:"posterColors"`
	BackdropColors []string `json:"backdropColors"`
	DominantColor  string   `json:"dominantColor,omitempty"`
	Tags           []string `json:"tags"`
	Summary        string   `json:"summary,omitempty"`
}

// Concert is one attended-concert record. PosterURL is a pointer so an
// unresolved poster persists (and serializes) as null rather than "".
type Concert struct {
	ID        string   `json:"id"`
	Artist    string   `json:"artist"`
	Date      string   `json:"date,omitempty"`
	Venue     string   `json:"venue,omitempty"`
	PosterURL *string  `json:"posterUrl"`
	Tags      []string `json:"tags"`
	Summary   string   `json:"summary,omitempty"`
}

// Travel is one trip record. IllustrationURL is null until the generated
// illustration has been stored.
type Travel struct {
	ID              string   `json:"id"`
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Date            string   `json:"date,omitempty"`
	PhotoURLs       []string `json:"photoUrls"`
	IllustrationURL *string  `json:"illustrationUrl"`
	Tags            []string `json:"tags"`
	Summary         string   `json:"summary,omitempty"`
}

// Report owns one submission's full record set and is addressed solely by
// its share code.
type Report struct {
	ID        string    `json:"id"`
	ShareCode string    `json:"shareCode"`
	Movies    []Movie   `json:"movies"`
	Concerts  []Concert `json:"concerts"`
	Travels   []Travel  `json:"travels"`
	CreatedAt time.Time `json:"createdAt"`
}
