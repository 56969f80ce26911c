package imagefetch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	data, contentType, err := Fetch(t.Context(), server.Client(), server.URL+"/image.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "image/png", contentType)
}

func TestFetchDefaultsContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Suppress Go's content sniffing so no Content-Type is sent.
		w.Header()["Content-Type"] = nil
		w.Write([]byte{0x01, 0x02})
	}))
	defer server.Close()

	_, contentType, err := Fetch(t.Context(), server.Client(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", contentType)
}

func TestFetchNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, _, err := Fetch(t.Context(), server.Client(), server.URL)
	assert.Error(t, err)
}
