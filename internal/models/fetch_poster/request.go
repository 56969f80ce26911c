package models

type FetchPosterRequest struct {
	Type   string `json:"type"` // "movie" or "concert"
	Title  string `json:"title"`
	Artist string `json:"artist"`
}
