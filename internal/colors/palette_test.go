package colors

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)
	rgbPattern = regexp.MustCompile(`^rgb\(\d{1,3}, \d{1,3}, \d{1,3}\)$`)
)

// testImage paints three vertical color bands so k-means has clearly
// separated clusters to find.
func testImage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 120, 120))
	bands := []color.RGBA{
		{R: 200, G: 40, B: 40, A: 255},
		{R: 40, G: 60, B: 200, A: 255},
		{R: 230, G: 200, B: 60, A: 255},
	}
	for x := 0; x < 120; x++ {
		band := bands[x/40]
		for y := 0; y < 120; y++ {
			img.Set(x, y, band)
		}
	}
	return img
}

func TestFromImage(t *testing.T) {
	palette, err := FromImage(testImage())
	require.NoError(t, err)
	require.NotNil(t, palette)

	assert.True(t, len(palette.Hex) > 0 && len(palette.Hex) <= 3,
		"expected 1-3 swatches, got %d", len(palette.Hex))
	for _, hex := range palette.Hex {
		assert.Regexp(t, hexPattern, hex)
	}
	assert.Regexp(t, rgbPattern, palette.Dominant)
}

func TestFromImageOrdersByLuminance(t *testing.T) {
	palette, err := FromImage(testImage())
	require.NoError(t, err)

	for i := 1; i < len(palette.Hex); i++ {
		prev := parseHexLuminance(t, palette.Hex[i-1])
		cur := parseHexLuminance(t, palette.Hex[i])
		assert.LessOrEqual(t, prev, cur,
			"swatches must be ordered darkest to brightest: %v", palette.Hex)
	}
}

func parseHexLuminance(t *testing.T, hex string) float64 {
	t.Helper()
	var r, g, b uint32
	n, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	return Luminance(r, g, b)
}

func TestExtract(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, testImage()))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		w.Write(buf.Bytes())
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client())
	palette, err := extractor.Extract(t.Context(), server.URL+"/poster.png")
	require.NoError(t, err)
	assert.NotEmpty(t, palette.Hex)
	assert.NotEmpty(t, palette.Dominant)
}

func TestExtractHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client())
	_, err := extractor.Extract(t.Context(), server.URL+"/missing.png")
	assert.Error(t, err)
}

func TestExtractNotAnImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an image</html>"))
	}))
	defer server.Close()

	extractor := NewExtractor(server.Client())
	_, err := extractor.Extract(t.Context(), server.URL)
	assert.Error(t, err)
}

func TestLuminance(t *testing.T) {
	assert.Equal(t, 0.0, Luminance(0, 0, 0))
	assert.InDelta(t, 255.0, Luminance(255, 255, 255), 0.001)
	assert.Greater(t, Luminance(0, 255, 0), Luminance(255, 0, 0), "green is perceptually brighter than red")
	assert.Greater(t, Luminance(255, 0, 0), Luminance(0, 0, 255), "red is perceptually brighter than blue")
}

func TestHexString(t *testing.T) {
	assert.Equal(t, "#000000", HexString(0, 0, 0))
	assert.Equal(t, "#ffffff", HexString(255, 255, 255))
	assert.Equal(t, "#c82828", HexString(200, 40, 40))
}

func TestRGBString(t *testing.T) {
	assert.Equal(t, "rgb(0, 0, 0)", RGBString(0, 0, 0))
	assert.Equal(t, "rgb(200, 40, 40)", RGBString(200, 40, 40))
}
