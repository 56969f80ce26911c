package models

// FetchPosterResponse carries the stored poster URL, or null when nothing
// could be resolved for the query.
type FetchPosterResponse struct {
	URL *string `json:"url"`
}
