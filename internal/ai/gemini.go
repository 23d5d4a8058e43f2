package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"parkd/internal/modules/tariff"
)

// GeminiProvider implements LLMProvider using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey string) (*GeminiProvider, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	// Use Gemini 2.0 Flash for low latency and cost efficiency.
	model := client.GenerativeModel("gemini-2.0-flash")

	// Force JSON response for structured parsing.
	model.ResponseMIMEType = "application/json"

	// Low temperature: the facts come from the breakdown, not from the model.
	model.SetTemperature(0.2)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

// ExplainQuote renders a parking quote breakdown as a plain-language explanation.
func (p *GeminiProvider) ExplainQuote(ctx context.Context, quote *tariff.Quote, language string) (*QuoteExplanation, error) {
	payload, err := json.Marshal(quote)
	if err != nil {
		return nil, fmt.Errorf("marshal quote: %w", err)
	}

	fullPrompt := fmt.Sprintf("%s\n\nQuote JSON: %s", buildExplainPrompt(language), payload)

	resp, err := p.model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return nil, fmt.Errorf("gemini generation error: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("no response candidates from Gemini")
	}

	var responseText strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			responseText.WriteString(string(txt))
		}
	}

	// Clean up potential markdown formatting (though json mode should handle this, safety first).
	cleanJSON := cleanJSONString(responseText.String())

	var result QuoteExplanation
	if err := json.Unmarshal([]byte(cleanJSON), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON response: %w. Raw: %s", err, cleanJSON)
	}

	return &result, nil
}

func buildExplainPrompt(language string) string {
	if language == "" {
		language = "es-CO"
	}
	return fmt.Sprintf(`Role: You are the receipt assistant for a parking operator.
You receive a parking charge quote as JSON. Amounts are integer minor
currency units (e.g. COP centavos are not used; values are whole pesos).

TASK:
Write a short explanation of the charge in language %q.

RULES:
1. NEVER invent, recompute, or round any amount. Quote the JSON values as-is.
2. One sentence per breakdown line: day/night segments, daily maximum cap,
   lost-ticket fee, grace minutes.
3. If "partially_billed" is true or warnings exist, list them under caveats.
4. Respond with JSON only, matching this schema:
   {"summary": string, "line_notes": [string], "caveats": [string]}`, language)
}

func cleanJSONString(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
