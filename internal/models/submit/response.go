package models

import (
	reportmodels "io.pairapps.ouryear/internal/models/report"
)

type SubmitResponse struct {
	ShareCode string        `json:"shareCode"`
	Movies    MoviesOutcome `json:"movies"`
}

// MoviesOutcome reports which submitted titles resolved and which did not,
// so the client can show what was skipped.
type MoviesOutcome struct {
	Successful []reportmodels.Movie `json:"successful"`
	Failed     []string             `json:"failed"`
}
