package enrich

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"io.pairapps.ouryear/internal/ai"
	"io.pairapps.ouryear/internal/colors"
	"io.pairapps.ouryear/internal/imagefetch"
	reportmodels "io.pairapps.ouryear/internal/models/report"
	submitmodels "io.pairapps.ouryear/internal/models/submit"
	"io.pairapps.ouryear/internal/tmdb"
)

// MetadataResolver resolves free-text titles and names against the movie
// catalog.
type MetadataResolver interface {
	SearchMovie(ctx context.Context, title string) (int64, bool, error)
	MovieDetails(ctx context.Context, id int64) (*tmdb.MovieInfo, error)
	SearchPersonProfile(ctx context.Context, name string) (string, bool, error)
}

// ColorExtractor computes a dominant-color palette for an image URL.
type ColorExtractor interface {
	Extract(ctx context.Context, url string) (*colors.Palette, error)
}

// ContentGenerator produces AI tags, batch summaries and city illustrations.
type ContentGenerator interface {
	GenerateTags(ctx context.Context, kind string, rec ai.Record) ([]string, error)
	GenerateSummary(ctx context.Context, kind string, items []ai.Record) (string, error)
	GenerateCityImage(ctx context.Context, city, country string) ([]byte, string, error)
}

// AssetUploader stores image bytes and returns a public URL.
type AssetUploader interface {
	Upload(ctx context.Context, data []byte, contentType, folder string) (string, error)
}

// ReportStore is the persistence boundary the pipeline writes through.
type ReportStore interface {
	CreateReport(ctx context.Context) (id string, shareCode string, err error)
	InsertMovies(ctx context.Context, reportID string, movies []reportmodels.Movie) error
	InsertConcerts(ctx context.Context, reportID string, concerts []reportmodels.Concert) error
	InsertTravels(ctx context.Context, reportID string, travels []reportmodels.Travel) error
	UpdateSummaries(ctx context.Context, reportID, kind, summary string) error
}

// Result is what a submission produces: the share code plus the per-title
// resolution partition. PersistErrors aggregates category-level store
// failures; when it is non-empty the submission failed even though some
// enrichment work completed.
type Result struct {
	ShareCode     string
	Successful    []reportmodels.Movie
	Failed        []string
	PersistErrors []string
}

// Pipeline orchestrates per-item enrichment and the final persistence of a
// submission. Every upstream call is independently fault-tolerant: failures
// degrade the record instead of aborting siblings.
type Pipeline struct {
	resolver    MetadataResolver
	extractor   ColorExtractor
	generator   ContentGenerator
	uploader    AssetUploader
	store       ReportStore
	http        *http.Client
	logger      *zap.SugaredLogger
	concurrency int
	callTimeout time.Duration
}

func NewPipeline(
	resolver MetadataResolver,
	extractor ColorExtractor,
	generator ContentGenerator,
	uploader AssetUploader,
	store ReportStore,
	httpClient *http.Client,
	logger *zap.SugaredLogger,
	concurrency int,
	callTimeout time.Duration,
) *Pipeline {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Pipeline{
		resolver:    resolver,
		extractor:   extractor,
		generator:   generator,
		uploader:    uploader,
		store:       store,
		http:        httpClient,
		logger:      logger,
		concurrency: concurrency,
		callTimeout: callTimeout,
	}
}

// Run enriches and persists one submission. A non-nil error means the report
// row itself could not be created and nothing was persisted; category-level
// persistence failures are reported through Result.PersistErrors instead.
func (p *Pipeline) Run(ctx context.Context, req *submitmodels.SubmitRequest) (*Result, error) {
	// Per-item enrichment, one category at a time. Items within a category
	// fan out concurrently; categories have no cross-dependencies but are
	// processed in a fixed order to keep upstream load predictable.
	movies, failed := p.enrichMovies(ctx, req.MovieList)
	concerts := p.enrichConcerts(ctx, req.Concerts)
	travels := p.enrichTravels(ctx, req.Travels)

	// Batch summaries run only after the whole category has joined, since
	// the prompt covers the full batch.
	movieSummary := p.categorySummary(ctx, reportmodels.KindMovie, movieRecords(movies))
	concertSummary := p.categorySummary(ctx, reportmodels.KindConcert, concertRecords(concerts))
	travelSummary := p.categorySummary(ctx, reportmodels.KindTravel, travelRecords(travels))

	// The report row goes in first so children can reference its id. Its
	// failure is the one fatal persistence outcome.
	reportID, shareCode, err := p.store.CreateReport(ctx)
	if err != nil {
		return nil, err
	}

	var persistErrors []string

	if err := p.store.InsertMovies(ctx, reportID, movies); err != nil {
		p.logger.Errorw("failed to persist movies", "report_id", reportID, "error", err)
		persistErrors = append(persistErrors, err.Error())
	} else if movieSummary != "" {
		if err := p.store.UpdateSummaries(ctx, reportID, reportmodels.KindMovie, movieSummary); err != nil {
			p.logger.Errorw("failed to apply movie summary", "report_id", reportID, "error", err)
			persistErrors = append(persistErrors, err.Error())
		} else {
			for i := range movies {
				movies[i].Summary = movieSummary
			}
		}
	}

	if err := p.store.InsertConcerts(ctx, reportID, concerts); err != nil {
		p.logger.Errorw("failed to persist concerts", "report_id", reportID, "error", err)
		persistErrors = append(persistErrors, err.Error())
	} else if concertSummary != "" {
		if err := p.store.UpdateSummaries(ctx, reportID, reportmodels.KindConcert, concertSummary); err != nil {
			p.logger.Errorw("failed to apply concert summary", "report_id", reportID, "error", err)
			persistErrors = append(persistErrors, err.Error())
		}
	}

	if err := p.store.InsertTravels(ctx, reportID, travels); err != nil {
		p.logger.Errorw("failed to persist travels", "report_id", reportID, "error", err)
		persistErrors = append(persistErrors, err.Error())
	} else if travelSummary != "" {
		if err := p.store.UpdateSummaries(ctx, reportID, reportmodels.KindTravel, travelSummary); err != nil {
			p.logger.Errorw("failed to apply travel summary", "report_id", reportID, "error", err)
			persistErrors = append(persistErrors, err.Error())
		}
	}

	return &Result{
		ShareCode:     shareCode,
		Successful:    movies,
		Failed:        failed,
		PersistErrors: persistErrors,
	}, nil
}

// enrichMovies resolves and enriches each submitted title. Output order
// follows submission order; unresolved titles land in the failed list
// verbatim.
func (p *Pipeline) enrichMovies(ctx context.Context, titles []string) ([]reportmodels.Movie, []string) {
	results := make([]*reportmodels.Movie, len(titles))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for i, title := range titles {
		g.Go(func() error {
			results[i] = p.enrichMovie(ctx, title)
			return nil
		})
	}
	g.Wait()

	successful := make([]reportmodels.Movie, 0, len(titles))
	var failed []string
	for i, m := range results {
		if m == nil {
			failed = append(failed, titles[i])
			continue
		}
		successful = append(successful, *m)
	}
	return successful, failed
}

func (p *Pipeline) enrichMovie(ctx context.Context, title string) *reportmodels.Movie {
	id, ok, err := p.withTimeoutSearch(ctx, title)
	if err != nil {
		p.logger.Warnw("movie search failed", "title", title, "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	info, err := p.resolver.MovieDetails(callCtx, id)
	cancel()
	if err != nil {
		p.logger.Warnw("movie details failed", "title", title, "tmdb_id", id, "error", err)
		return nil
	}

	movie := &reportmodels.Movie{
		Title:         info.Title,
		OriginalTitle: title,
		TMDBID:        info.ID,
		ReleaseDate:   info.ReleaseDate,
		Runtime:       info.Runtime,
		Genres:        info.Genres,
		PosterURL:     info.PosterURL,
		BackdropURL:   info.BackdropURL,
		LogoURL:       info.LogoURL,
	}
	if movie.Title == "" {
		movie.Title = title
	}

	if movie.PosterURL != "" {
		if palette := p.extractPalette(ctx, movie.PosterURL); palette != nil {
			movie.PosterColors = palette.Hex
			movie.DominantColor = palette.Dominant
		}
	}
	if movie.BackdropURL != "" {
		if palette := p.extractPalette(ctx, movie.BackdropURL); palette != nil {
			movie.BackdropColors = palette.Hex
		}
	}

	movie.Tags = p.generateTags(ctx, reportmodels.KindMovie, ai.Record{
		Title:  movie.Title,
		Date:   movie.WatchDate,
		Rating: movie.Rating,
	})

	return movie
}

// enrichConcerts fills poster fallbacks and tags. A concert is never dropped:
// every submitted concert persists, possibly with a null poster.
func (p *Pipeline) enrichConcerts(ctx context.Context, inputs []submitmodels.ConcertInput) []reportmodels.Concert {
	concerts := make([]reportmodels.Concert, len(inputs))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			concerts[i] = p.enrichConcert(ctx, input)
			return nil
		})
	}
	g.Wait()

	return concerts
}

func (p *Pipeline) enrichConcert(ctx context.Context, input submitmodels.ConcertInput) reportmodels.Concert {
	concert := reportmodels.Concert{
		Artist: input.Artist,
		Date:   input.Date,
		Venue:  input.Venue,
	}
	if input.PosterURL != "" {
		concert.PosterURL = &input.PosterURL
	}

	if concert.PosterURL == nil {
		if url := p.resolveArtistPoster(ctx, input.Artist); url != "" {
			concert.PosterURL = &url
		}
	}

	concert.Tags = p.generateTags(ctx, reportmodels.KindConcert, ai.Record{
		Artist: input.Artist,
		Date:   input.Date,
		Venue:  input.Venue,
	})

	return concert
}

// resolveArtistPoster tries the person-search fallback: resolve a profile
// image, download it and store a copy. If storing fails the externally
// hosted URL is used as-is.
func (p *Pipeline) resolveArtistPoster(ctx context.Context, artist string) string {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	externalURL, ok, err := p.resolver.SearchPersonProfile(callCtx, artist)
	if err != nil {
		p.logger.Warnw("artist search failed", "artist", artist, "error", err)
		return ""
	}
	if !ok {
		return ""
	}

	data, contentType, err := imagefetch.Fetch(callCtx, p.http, externalURL)
	if err != nil {
		p.logger.Warnw("poster download failed", "artist", artist, "url", externalURL, "error", err)
		return externalURL
	}

	storedURL, err := p.uploader.Upload(callCtx, data, contentType, "posters")
	if err != nil {
		p.logger.Warnw("poster upload failed, keeping external URL", "artist", artist, "error", err)
		return externalURL
	}
	return storedURL
}

// enrichTravels generates missing illustrations and tags.
func (p *Pipeline) enrichTravels(ctx context.Context, inputs []submitmodels.TravelInput) []reportmodels.Travel {
	travels := make([]reportmodels.Travel, len(inputs))

	g := new(errgroup.Group)
	g.SetLimit(p.concurrency)
	for i, input := range inputs {
		g.Go(func() error {
			travels[i] = p.enrichTravel(ctx, input)
			return nil
		})
	}
	g.Wait()

	return travels
}

func (p *Pipeline) enrichTravel(ctx context.Context, input submitmodels.TravelInput) reportmodels.Travel {
	travel := reportmodels.Travel{
		City:      input.City,
		Country:   input.Country,
		Date:      input.Date,
		PhotoURLs: input.Photos,
	}
	if input.IllustrationURL != "" {
		travel.IllustrationURL = &input.IllustrationURL
	}

	if travel.IllustrationURL == nil {
		if url := p.generateIllustration(ctx, input.City, input.Country); url != "" {
			travel.IllustrationURL = &url
		}
	}

	travel.Tags = p.generateTags(ctx, reportmodels.KindTravel, ai.Record{
		City:    input.City,
		Country: input.Country,
		Date:    input.Date,
	})

	return travel
}

func (p *Pipeline) generateIllustration(ctx context.Context, city, country string) string {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	data, contentType, err := p.generator.GenerateCityImage(callCtx, city, country)
	if err != nil {
		p.logger.Warnw("city illustration failed", "city", city, "country", country, "error", err)
		return ""
	}

	url, err := p.uploader.Upload(callCtx, data, contentType, "city-images")
	if err != nil {
		p.logger.Warnw("city illustration upload failed", "city", city, "error", err)
		return ""
	}
	return url
}

func (p *Pipeline) categorySummary(ctx context.Context, kind string, items []ai.Record) string {
	if len(items) == 0 {
		return ""
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	summary, err := p.generator.GenerateSummary(callCtx, kind, items)
	if err != nil {
		p.logger.Warnw("summary generation failed", "kind", kind, "error", err)
		return ""
	}
	return summary
}

func (p *Pipeline) generateTags(ctx context.Context, kind string, rec ai.Record) []string {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	tags, err := p.generator.GenerateTags(callCtx, kind, rec)
	if err != nil {
		p.logger.Warnw("tag generation failed", "kind", kind, "error", err)
		return []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	return tags
}

func (p *Pipeline) extractPalette(ctx context.Context, url string) *colors.Palette {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()

	palette, err := p.extractor.Extract(callCtx, url)
	if err != nil {
		p.logger.Warnw("color extraction failed", "url", url, "error", err)
		return nil
	}
	return palette
}

func (p *Pipeline) withTimeoutSearch(ctx context.Context, title string) (int64, bool, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	defer cancel()
	return p.resolver.SearchMovie(callCtx, title)
}

func movieRecords(movies []reportmodels.Movie) []ai.Record {
	records := make([]ai.Record, 0, len(movies))
	for _, m := range movies {
		records = append(records, ai.Record{Title: m.Title, Date: m.WatchDate, Rating: m.Rating})
	}
	return records
}

func concertRecords(concerts []reportmodels.Concert) []ai.Record {
	records := make([]ai.Record, 0, len(concerts))
	for _, c := range concerts {
		records = append(records, ai.Record{Artist: c.Artist, Date: c.Date, Venue: c.Venue})
	}
	return records
}

func travelRecords(travels []reportmodels.Travel) []ai.Record {
	records := make([]ai.Record, 0, len(travels))
	for _, t := range travels {
		records = append(records, ai.Record{City: t.City, Country: t.Country, Date: t.Date})
	}
	return records
}
