package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	reportmodels "io.pairapps.ouryear/internal/models/report"
	"io.pairapps.ouryear/internal/sharecode"
)

// ErrNotFound is returned when no report exists for a share code.
var ErrNotFound = errors.New("report not found")

// uniqueViolation is the Postgres error code for a unique constraint hit.
const uniqueViolation = "23505"

// shareCodeAttempts bounds how often report creation re-mints a share code
// after a uniqueness collision before giving up.
const shareCodeAttempts = 3

// Store is the persistence boundary for reports and their child records.
type Store struct {
	postgres *pgxpool.Pool
}

func New(postgres *pgxpool.Pool) *Store {
	return &Store{postgres: postgres}
}

// CreateReport inserts the report row first so children can reference its
// id. Share-code collisions are retried with a fresh code.
func (s *Store) CreateReport(ctx context.Context) (id string, shareCode string, err error) {
	for attempt := 0; attempt < shareCodeAttempts; attempt++ {
		shareCode, err = sharecode.Generate()
		if err != nil {
			return "", "", fmt.Errorf("failed to generate share code: %w", err)
		}

		id = uuid.New().String()
		_, err = s.postgres.Exec(ctx, `
			INSERT INTO reports (id, share_code, created_at)
			VALUES ($1, $2, $3)
		`, id, shareCode, time.Now())
		if err == nil {
			return id, shareCode, nil
		}

		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			continue
		}
		return "", "", fmt.Errorf("failed to create report: %w", err)
	}
	return "", "", fmt.Errorf("failed to create report: share code collisions on %d attempts", shareCodeAttempts)
}

// InsertMovies persists one category's movie records in submission order.
// The whole category is written in a single transaction; a failure leaves
// the report without movie children rather than with a partial set.
func (s *Store) InsertMovies(ctx context.Context, reportID string, movies []reportmodels.Movie) error {
	if len(movies) == 0 {
		return nil
	}

	tx, err := s.postgres.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for i := range movies {
		movies[i].ID = uuid.New().String()
		_, err = tx.Exec(ctx, `
			INSERT INTO movies (
				id, report_id, title, original_title, watch_date, rating,
				tmdb_id, release_date, runtime, genres, poster_url, backdrop_url,
				logo_url, poster_colors, backdrop_colors, dominant_color,
				tags, summary, position, created_at
			) VALUES (
				$1, $2, $3, $4, $5, NULLIF($6, 0),
				NULLIF($7::bigint, 0), $8, $9, $10, $11, $12,
				$13, $14, $15, NULLIF($16, ''),
				$17, $18, $19, $20
			)
		`, movies[i].ID, reportID, movies[i].Title, movies[i].OriginalTitle,
			movies[i].WatchDate, movies[i].Rating, movies[i].TMDBID,
			movies[i].ReleaseDate, movies[i].Runtime, emptyIfNil(movies[i].Genres),
			movies[i].PosterURL, movies[i].BackdropURL, movies[i].LogoURL,
			emptyIfNil(movies[i].PosterColors), emptyIfNil(movies[i].BackdropColors),
			movies[i].DominantColor, emptyIfNil(movies[i].Tags), movies[i].Summary, i, now)
		if err != nil {
			return fmt.Errorf("failed to insert movie %q: %w", movies[i].OriginalTitle, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit movies: %w", err)
	}
	return nil
}

// InsertConcerts persists one category's concert records in submission order.
func (s *Store) InsertConcerts(ctx context.Context, reportID string, concerts []reportmodels.Concert) error {
	if len(concerts) == 0 {
		return nil
	}

	tx, err := s.postgres.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for i := range concerts {
		concerts[i].ID = uuid.New().String()
		_, err = tx.Exec(ctx, `
			INSERT INTO concerts (
				id, report_id, artist, concert_date, venue, poster_url,
				tags, summary, position, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, concerts[i].ID, reportID, concerts[i].Artist, concerts[i].Date,
			concerts[i].Venue, concerts[i].PosterURL, emptyIfNil(concerts[i].Tags),
			concerts[i].Summary, i, now)
		if err != nil {
			return fmt.Errorf("failed to insert concert %q: %w", concerts[i].Artist, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit concerts: %w", err)
	}
	return nil
}

// InsertTravels persists one category's travel records in submission order.
func (s *Store) InsertTravels(ctx context.Context, reportID string, travels []reportmodels.Travel) error {
	if len(travels) == 0 {
		return nil
	}

	tx, err := s.postgres.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	now := time.Now()
	for i := range travels {
		travels[i].ID = uuid.New().String()
		_, err = tx.Exec(ctx, `
			INSERT INTO travels (
				id, report_id, city, country, travel_date, photo_urls,
				illustration_url, tags, summary, position, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		`, travels[i].ID, reportID, travels[i].City, travels[i].Country,
			travels[i].Date, emptyIfNil(travels[i].PhotoURLs), travels[i].IllustrationURL,
			emptyIfNil(travels[i].Tags), travels[i].Summary, i, now)
		if err != nil {
			return fmt.Errorf("failed to insert travel %q: %w", travels[i].City, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit travels: %w", err)
	}
	return nil
}

// UpdateSummaries applies one batch summary to every record of a category,
// keyed by the owning report.
func (s *Store) UpdateSummaries(ctx context.Context, reportID, kind, summary string) error {
	var table string
	switch kind {
	case reportmodels.KindMovie:
		table = "movies"
	case reportmodels.KindConcert:
		table = "concerts"
	case reportmodels.KindTravel:
		table = "travels"
	default:
		return fmt.Errorf("unknown record kind %q", kind)
	}

	query := fmt.Sprintf(`UPDATE %s SET summary = $1 WHERE report_id = $2`, table)
	if _, err := s.postgres.Exec(ctx, query, summary, reportID); err != nil {
		return fmt.Errorf("failed to update %s summaries: %w", table, err)
	}
	return nil
}

// GetByShareCode loads a report and its full child set, children ordered by
// submission position. Returns ErrNotFound for unknown codes.
func (s *Store) GetByShareCode(ctx context.Context, code string) (*reportmodels.Report, error) {
	report := &reportmodels.Report{
		Movies:   []reportmodels.Movie{},
		Concerts: []reportmodels.Concert{},
		Travels:  []reportmodels.Travel{},
	}

	err := s.postgres.QueryRow(ctx, `
		SELECT id, share_code, created_at FROM reports WHERE share_code = $1
	`, code).Scan(&report.ID, &report.ShareCode, &report.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	if err := s.loadMovies(ctx, report); err != nil {
		return nil, err
	}
	if err := s.loadConcerts(ctx, report); err != nil {
		return nil, err
	}
	if err := s.loadTravels(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

func (s *Store) loadMovies(ctx context.Context, report *reportmodels.Report) error {
	rows, err := s.postgres.Query(ctx, `
		SELECT id, title, original_title, COALESCE(watch_date, ''), COALESCE(rating, 0),
			COALESCE(tmdb_id, 0), COALESCE(release_date, ''), COALESCE(runtime, 0),
			genres, COALESCE(poster_url, ''), COALESCE(backdrop_url, ''),
			COALESCE(logo_url, ''), poster_colors, backdrop_colors,
			COALESCE(dominant_color, ''), tags, COALESCE(summary, '')
		FROM movies WHERE report_id = $1 ORDER BY position
	`, report.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch movies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m reportmodels.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.OriginalTitle, &m.WatchDate, &m.Rating,
			&m.TMDBID, &m.ReleaseDate, &m.Runtime, &m.Genres, &m.PosterURL,
			&m.BackdropURL, &m.LogoURL, &m.PosterColors, &m.BackdropColors,
			&m.DominantColor, &m.Tags, &m.Summary); err != nil {
			return fmt.Errorf("failed to scan movie: %w", err)
		}
		report.Movies = append(report.Movies, m)
	}
	return rows.Err()
}

func (s *Store) loadConcerts(ctx context.Context, report *reportmodels.Report) error {
	rows, err := s.postgres.Query(ctx, `
		SELECT id, artist, COALESCE(concert_date, ''), COALESCE(venue, ''),
			poster_url, tags, COALESCE(summary, '')
		FROM concerts WHERE report_id = $1 ORDER BY position
	`, report.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch concerts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c reportmodels.Concert
		if err := rows.Scan(&c.ID, &c.Artist, &c.Date, &c.Venue,
			&c.PosterURL, &c.Tags, &c.Summary); err != nil {
			return fmt.Errorf("failed to scan concert: %w", err)
		}
		report.Concerts = append(report.Concerts, c)
	}
	return rows.Err()
}

func (s *Store) loadTravels(ctx context.Context, report *reportmodels.Report) error {
	rows, err := s.postgres.Query(ctx, `
		SELECT id, city, country, COALESCE(travel_date, ''), photo_urls,
			illustration_url, tags, COALESCE(summary, '')
		FROM travels WHERE report_id = $1 ORDER BY position
	`, report.ID)
	if err != nil {
		return fmt.Errorf("failed to fetch travels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var t reportmodels.Travel
		if err := rows.Scan(&t.ID, &t.City, &t.Country, &t.Date, &t.PhotoURLs,
			&t.IllustrationURL, &t.Tags, &t.Summary); err != nil {
			return fmt.Errorf("failed to scan travel: %w", err)
		}
		report.Travels = append(report.Travels, t)
	}
	return rows.Err()
}

// emptyIfNil keeps nil slices out of the driver so text[] columns always
// store an array value.
func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
