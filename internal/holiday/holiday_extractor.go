package holiday

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// Extractor reads holiday candidates out of a calendar image.
type Extractor interface {
	Extract(ctx context.Context, image []byte, mimeType string) ([]CreateHolidayRequest, error)
}

const extractionPrompt = `Analyze this handwritten or printed holiday list image and extract every holiday.
Return only a JSON array of objects with keys:
  date (YYYY-MM-DD), name, description, is_recurring (boolean), region.
Set is_recurring to true for holidays that repeat every year.
Use an empty string for region when none is mentioned.
Example: [{"date":"2026-01-26","name":"Republic Day","description":"National Holiday","is_recurring":true,"region":""}]`

type GeminiExtractor struct {
	client *genai.Client
	model  string
}

func NewGeminiExtractor(ctx context.Context, apiKey, model string) (*GeminiExtractor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiExtractor{client: client, model: model}, nil
}

func (e *GeminiExtractor) Extract(ctx context.Context, image []byte, mimeType string) ([]CreateHolidayRequest, error) {
	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(extractionPrompt),
			genai.NewPartFromBytes(image, mimeType),
		}, genai.RoleUser),
	}

	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, p := range resp.Candidates[0].Content.Parts {
			text.WriteString(p.Text)
		}
	}
	return ParseCandidates(text.String())
}

// ParseCandidates decodes model output, tolerating a surrounding markdown
// code fence.
func ParseCandidates(raw string) ([]CreateHolidayRequest, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty extraction response")
	}

	var out []CreateHolidayRequest
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, fmt.Errorf("parse extraction response: %w", err)
	}
	return out, nil
}
