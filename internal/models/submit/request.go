package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type SubmitRequest struct {
	MovieList MovieList      `json:"movieList"`
	Concerts  []ConcertInput `json:"concerts"`
	Travels   []TravelInput  `json:"travels"`
}

// MovieList accepts either a JSON array of titles or one newline-delimited
// string, the two shapes clients are known to send. Titles are trimmed and
// blanks dropped either way.
type MovieList []string

func (m *MovieList) UnmarshalJSON(data []byte) error {
	var titles []string
	if err := json.Unmarshal(data, &titles); err == nil {
		*m = cleanTitles(titles)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err == nil {
		*m = cleanTitles(strings.Split(joined, "\n"))
		return nil
	}

	return fmt.Errorf("movieList must be a string or an array of strings")
}

func cleanTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

type ConcertInput struct {
	Artist    string `json:"artist"`
	Date      string `json:"date"`
	Venue     string `json:"venue"`
	PosterURL string `json:"posterUrl"`
}

type TravelInput struct {
	City            string   `json:"city"`
	Country         string   `json:"country"`
	Date            string   `json:"date"`
	Photos          []string `json:"photos"`
	IllustrationURL string   `json:"illustrationUrl"`
}
