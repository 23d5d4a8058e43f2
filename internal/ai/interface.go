package ai

import (
	"context"

	"parkd/internal/modules/tariff"
)

// LLMProvider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.) in the future.
type LLMProvider interface {
	// ExplainQuote turns a computed quote into a short customer-facing
	// explanation in the requested language. It never alters amounts;
	// the quote stays the source of truth.
	ExplainQuote(ctx context.Context, quote *tariff.Quote, language string) (*QuoteExplanation, error)
}
