package models

type GenerateSummaryRequest struct {
	Type  string        `json:"type"` // "movie", "concert" or "travel"
	Items []SummaryItem `json:"items"`
}

type SummaryItem struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	City    string `json:"city"`
	Country string `json:"country"`
	Venue   string `json:"venue"`
	Date    string `json:"date"`
	Rating  int    `json:"rating"`
}
