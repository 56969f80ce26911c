package models

type GenerateTagsRequest struct {
	Type string  `json:"type"` // "movie", "concert" or "travel"
	Data TagData `json:"data"`
}

// TagData carries the record fields a tag prompt may mention; only the
// fields matching the request type are read.
type TagData struct {
	Title   string `json:"title"`
	Artist  string `json:"artist"`
	City    string `json:"city"`
	Country string `json:"country"`
	Venue   string `json:"venue"`
	Date    string `json:"date"`
	Rating  int    `json:"rating"`
}
