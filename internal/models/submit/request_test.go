package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieListFromArray(t *testing.T) {
	var req SubmitRequest
	require.NoError(t, json.Unmarshal([]byte(`{"movieList": [" 沙丘2 ", "", "热辣滚烫"]}`), &req))
	assert.Equal(t, MovieList{"沙丘2", "热辣滚烫"}, req.MovieList)
}

func TestMovieListFromNewlineString(t *testing.T) {
	var req SubmitRequest
	require.NoError(t, json.Unmarshal([]byte(`{"movieList": "沙丘2\n\n 热辣滚烫 \n"}`), &req))
	assert.Equal(t, MovieList{"沙丘2", "热辣滚烫"}, req.MovieList)
}

func TestMovieListInvalidShape(t *testing.T) {
	var req SubmitRequest
	assert.Error(t, json.Unmarshal([]byte(`{"movieList": 42}`), &req))
}

func TestSubmitRequestFull(t *testing.T) {
	payload := `{
		"movieList": ["沙丘2"],
		"concerts": [{"artist": "五月天", "date": "2024-05-01", "venue": "鸟巢"}],
		"travels": [{"city": "京都", "country": "日本", "photos": ["https://cdn.example.org/a.jpg"]}]
	}`

	var req SubmitRequest
	require.NoError(t, json.Unmarshal([]byte(payload), &req))
	require.Len(t, req.Concerts, 1)
	assert.Equal(t, "五月天", req.Concerts[0].Artist)
	require.Len(t, req.Travels, 1)
	assert.Equal(t, "京都", req.Travels[0].City)
	assert.Equal(t, []string{"https://cdn.example.org/a.jpg"}, req.Travels[0].Photos)
}
