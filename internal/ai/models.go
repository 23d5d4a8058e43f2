package ai

// QuoteExplanation captures the structured output from the AI model.
type QuoteExplanation struct {
	// Summary is a one-paragraph plain-language account of the charge:
	// how long the vehicle stayed, which periods it crossed, and what
	// drove the total.
	Summary string `json:"summary"`

	// LineNotes explain individual breakdown items (one per segment,
	// cap, or surcharge) in display order.
	LineNotes []string `json:"line_notes,omitempty"`

	// Caveats lists anything the customer should double-check, e.g. a
	// partially billed window or a lost-ticket fee.
	Caveats []string `json:"caveats,omitempty"`
}
