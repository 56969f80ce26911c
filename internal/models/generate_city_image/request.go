package models

type GenerateCityImageRequest struct {
	City    string `json:"city"`
	Country string `json:"country"`
}
