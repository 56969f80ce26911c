package models

type GenerateCityImageResponse struct {
	URL string `json:"url"`
}
