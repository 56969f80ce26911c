package models

type GenerateSummaryResponse struct {
	Summary string `json:"summary"`
}
