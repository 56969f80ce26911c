package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"io.pairapps.ouryear/internal/config"
	reportmodels "io.pairapps.ouryear/internal/models/report"
)

// maxAttempts bounds the retries on a failed generation call. Upstream
// hiccups are common enough that one-shot calls lose real records.
const maxAttempts = 3

// Record carries the user-facing fields a prompt can mention. Only the
// fields relevant to the record's kind are set.
type Record struct {
	Title   string
	Artist  string
	City    string
	Country string
	Venue   string
	Date    string
	Rating  int
}

// Generator produces tags, batch summaries and city illustrations through
// the hosted Gemini and Imagen models.
type Generator struct {
	client     *genai.Client
	textModel  string
	imageModel string
	limiter    *rate.Limiter
}

func NewGenerator(ctx context.Context, cfg *config.Config) (*Generator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Generator{
		client:     client,
		textModel:  cfg.GeminiTextModel,
		imageModel: cfg.ImagenModel,
		limiter:    rate.NewLimiter(rate.Every(time.Second/2), 2),
	}, nil
}

// GenerateTags asks the text model for 3-5 short tags for one record and
// returns them as a cleaned list. An unknown kind is the caller's bug; a
// model failure surfaces as an error the caller downgrades to "no tags".
func (g *Generator) GenerateTags(ctx context.Context, kind string, rec Record) ([]string, error) {
	prompt, err := tagPrompt(kind, rec)
	if err != nil {
		return nil, err
	}

	text, err := g.generateText(ctx, prompt, 0.7, 100)
	if err != nil {
		return nil, err
	}
	return splitTags(text), nil
}

// GenerateSummary asks the text model for one short second-person paragraph
// covering a whole category batch. The returned string is applied to every
// record in the batch.
func (g *Generator) GenerateSummary(ctx context.Context, kind string, items []Record) (string, error) {
	prompt, err := summaryPrompt(kind, items)
	if err != nil {
		return "", err
	}

	text, err := g.generateText(ctx, prompt, 0.8, 300)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// GenerateCityImage produces one square illustration for a trip and returns
// the raw image bytes plus their content type. The caller stores the bytes.
func (g *Generator) GenerateCityImage(ctx context.Context, city, country string) ([]byte, string, error) {
	prompt := fmt.Sprintf("A beautiful, romantic illustration of %s, %s. "+
		"The style should be warm, artistic, and suitable for a couple's travel memory. "+
		"Include iconic landmarks or scenery of the city. "+
		"The image should evoke feelings of love and adventure.", city, country)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return nil, "", err
		}

		resp, err := g.client.Models.GenerateImages(ctx, g.imageModel, prompt, &genai.GenerateImagesConfig{
			NumberOfImages:   1,
			AspectRatio:      "1:1",
			OutputMIMEType:   "image/png",
			IncludeRAIReason: false,
		})
		if err != nil {
			lastErr = err
			continue
		}
		if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
			lastErr = fmt.Errorf("image model returned no images")
			continue
		}

		img := resp.GeneratedImages[0].Image
		contentType := img.MIMEType
		if contentType == "" {
			contentType = "image/png"
		}
		return img.ImageBytes, contentType, nil
	}

	return nil, "", fmt.Errorf("failed to generate city image after %d attempts: %w", maxAttempts, lastErr)
}

func (g *Generator) generateText(ctx context.Context, prompt string, temperature float32, maxTokens int32) (string, error) {
	genConfig := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(temperature),
		MaxOutputTokens: maxTokens,
	}

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", err
		}

		resp, err := g.client.Models.GenerateContent(ctx, g.textModel, genai.Text(prompt), genConfig)
		if err != nil {
			lastErr = err
			continue
		}

		text := resp.Text()
		if text == "" {
			lastErr = fmt.Errorf("text model returned an empty response")
			continue
		}
		return text, nil
	}

	return "", fmt.Errorf("failed generation after %d attempts: %w", maxAttempts, lastErr)
}

// splitTags breaks a model response into tags, accepting both ASCII and
// full-width comma delimiters, trimming whitespace and dropping empties.
func splitTags(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == '，'
	})

	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func tagPrompt(kind string, rec Record) (string, error) {
	switch kind {
	case reportmodels.KindMovie:
		var b strings.Builder
		fmt.Fprintf(&b, "为以下电影生成3-5个个性化标签，用中文，用逗号分隔，只返回标签，不要其他文字：\n电影名称：%s\n", rec.Title)
		if rec.Date != "" {
			fmt.Fprintf(&b, "观看日期：%s\n", rec.Date)
		}
		if rec.Rating > 0 {
			fmt.Fprintf(&b, "评分：%d/5\n", rec.Rating)
		}
		b.WriteString("\n标签应该体现观影感受、电影类型、情感色彩等。")
		return b.String(), nil
	case reportmodels.KindConcert:
		var b strings.Builder
		fmt.Fprintf(&b, "为以下演唱会生成3-5个个性化标签，用中文，用逗号分隔，只返回标签，不要其他文字：\n艺术家：%s\n", rec.Artist)
		if rec.Date != "" {
			fmt.Fprintf(&b, "日期：%s\n", rec.Date)
		}
		if rec.Venue != "" {
			fmt.Fprintf(&b, "场馆：%s\n", rec.Venue)
		}
		b.WriteString("\n标签应该体现音乐风格、现场氛围、情感体验等。")
		return b.String(), nil
	case reportmodels.KindTravel:
		var b strings.Builder
		fmt.Fprintf(&b, "为以下旅行生成3-5个个性化标签，用中文，用逗号分隔，只返回标签，不要其他文字：\n城市：%s\n国家：%s\n", rec.City, rec.Country)
		if rec.Date != "" {
			fmt.Fprintf(&b, "日期：%s\n", rec.Date)
		}
		b.WriteString("\n标签应该体现旅行特色、城市风情、旅行体验等。")
		return b.String(), nil
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
}

func summaryPrompt(kind string, items []Record) (string, error) {
	lines := make([]string, 0, len(items))

	switch kind {
	case reportmodels.KindMovie:
		for _, m := range items {
			line := "- " + m.Title
			if m.Date != "" {
				line += fmt.Sprintf(" (%s)", m.Date)
			}
			if m.Rating > 0 {
				line += fmt.Sprintf(" - 评分：%d/5", m.Rating)
			}
			lines = append(lines, line)
		}
		return fmt.Sprintf("为以下观影记录生成一段温馨、个性化的年度总结（100-150字），用中文，用第二人称\"你们\"：\n%s\n\n总结应该体现观影的回忆、情感体验、共同喜好等，语言要温暖有感情。",
			strings.Join(lines, "\n")), nil
	case reportmodels.KindConcert:
		for _, c := range items {
			line := "- " + c.Artist
			if c.Date != "" {
				line += fmt.Sprintf(" (%s)", c.Date)
			}
			if c.Venue != "" {
				line += " @ " + c.Venue
			}
			lines = append(lines, line)
		}
		return fmt.Sprintf("为以下演唱会记录生成一段温馨、个性化的年度总结（100-150字），用中文，用第二人称\"你们\"：\n%s\n\n总结应该体现音乐的美好、现场的氛围、共同的回忆等，语言要温暖有感情。",
			strings.Join(lines, "\n")), nil
	case reportmodels.KindTravel:
		for _, t := range items {
			line := fmt.Sprintf("- %s, %s", t.City, t.Country)
			if t.Date != "" {
				line += fmt.Sprintf(" (%s)", t.Date)
			}
			lines = append(lines, line)
		}
		return fmt.Sprintf("为以下旅行记录生成一段温馨、个性化的年度总结（100-150字），用中文，用第二人称\"你们\"：\n%s\n\n总结应该体现旅行的美好、探索的乐趣、共同的回忆等，语言要温暖有感情。",
			strings.Join(lines, "\n")), nil
	default:
		return "", fmt.Errorf("unknown record kind %q", kind)
	}
}
