package models

type GenerateTagsResponse struct {
	Tags []string `json:"tags"`
}
