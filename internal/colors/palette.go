package colors

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"sort"

	// Register decoders for the formats TMDB and user uploads serve.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/EdlinOrg/prominentcolor"

	"io.pairapps.ouryear/internal/imagefetch"
)

// Palette is the color analysis of one image. Hex holds up to three swatches
// ordered by ascending luminance (index 0 is the darkest); Dominant is the
// most prominent color as a CSS rgb() string.
type Palette struct {
	Hex      []string
	Dominant string
}

// Extractor downloads images and computes representative colors.
type Extractor struct {
	client *http.Client
}

func NewExtractor(client *http.Client) *Extractor {
	if client == nil {
		client = http.DefaultClient
	}
	return &Extractor{client: client}
}

// Extract fetches the image at url and runs k-means color extraction on it.
// Any failure returns an error; callers treat that as "no color" and move on.
func (e *Extractor) Extract(ctx context.Context, url string) (*Palette, error) {
	data, _, err := imagefetch.Fetch(ctx, e.client, url)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", url, err)
	}

	return FromImage(img)
}

// FromImage computes the palette of an already-decoded image.
func FromImage(img image.Image) (*Palette, error) {
	items, err := prominentcolor.Kmeans(img)
	if err != nil {
		return nil, fmt.Errorf("failed to extract prominent colors: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no prominent colors found")
	}

	// Kmeans orders by pixel count; the first item is the most prominent.
	dominant := RGBString(items[0].Color.R, items[0].Color.G, items[0].Color.B)

	if len(items) > 3 {
		items = items[:3]
	}
	sort.Slice(items, func(i, j int) bool {
		return Luminance(items[i].Color.R, items[i].Color.G, items[i].Color.B) <
			Luminance(items[j].Color.R, items[j].Color.G, items[j].Color.B)
	})

	hex := make([]string, 0, len(items))
	for _, item := range items {
		hex = append(hex, HexString(item.Color.R, item.Color.G, item.Color.B))
	}

	return &Palette{Hex: hex, Dominant: dominant}, nil
}

// Luminance is the perceptual brightness of an RGB color.
func Luminance(r, g, b uint32) float64 {
	return 0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)
}

// HexString renders a color as #rrggbb.
func HexString(r, g, b uint32) string {
	return fmt.Sprintf("#%02x%02x%02x", uint8(r), uint8(g), uint8(b))
}

// RGBString renders a color in the CSS rgb() form.
func RGBString(r, g, b uint32) string {
	return fmt.Sprintf("rgb(%d, %d, %d)", uint8(r), uint8(g), uint8(b))
}
