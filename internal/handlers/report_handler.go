package handlers

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"io.pairapps.ouryear/internal/config"
	"io.pairapps.ouryear/internal/enrich"
	reportmodels "io.pairapps.ouryear/internal/models/report"
	submitmodels "io.pairapps.ouryear/internal/models/submit"
)

// SubmissionPipeline runs the full enrichment and persistence of one
// submission.
type SubmissionPipeline interface {
	Run(ctx context.Context, req *submitmodels.SubmitRequest) (*enrich.Result, error)
}

// ReportGetter loads a persisted report by its share code.
type ReportGetter interface {
	GetByShareCode(ctx context.Context, code string) (*reportmodels.Report, error)
}

// ReportHandler serves the submission pipeline, the report read path and the
// standalone enrichment endpoints.
type ReportHandler struct {
	cfg       *config.Config
	pipeline  SubmissionPipeline
	store     ReportGetter
	redis     *redis.Client
	resolver  enrich.MetadataResolver
	generator enrich.ContentGenerator
	uploader  enrich.AssetUploader
	http      *http.Client
	logger    *zap.SugaredLogger
}

// NewReportHandler creates a new report handler
func NewReportHandler(
	cfg *config.Config,
	pipeline SubmissionPipeline,
	store ReportGetter,
	redisClient *redis.Client,
	resolver enrich.MetadataResolver,
	generator enrich.ContentGenerator,
	uploader enrich.AssetUploader,
	httpClient *http.Client,
	logger *zap.SugaredLogger,
) *ReportHandler {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ReportHandler{
		cfg:       cfg,
		pipeline:  pipeline,
		store:     store,
		redis:     redisClient,
		resolver:  resolver,
		generator: generator,
		uploader:  uploader,
		http:      httpClient,
		logger:    logger,
	}
}
