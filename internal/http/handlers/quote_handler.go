// README: Quote handlers: admin simulation and AI explanation.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parkd/internal/ai"
	"parkd/internal/modules/tariff"
	"parkd/internal/types"
)

type QuoteHandler struct {
	tariffs   *tariff.Service
	explainer ai.LLMProvider
}

func NewQuoteHandler(tariffs *tariff.Service, explainer ai.LLMProvider) *QuoteHandler {
	return &QuoteHandler{tariffs: tariffs, explainer: explainer}
}

type simulateQuoteReq struct {
	LotID           string  `json:"lot_id"`
	CompanyID       string  `json:"company_id"`
	VehicleType     string  `json:"vehicle_type"`
	EntryAt         string  `json:"entry_at"`
	ExitAt          string  `json:"exit_at"`
	LostTicket      bool    `json:"lost_ticket"`
	OverrideDayType *string `json:"override_day_type"`
	ApplyGrace      *bool   `json:"apply_grace"`
	ApplyDailyMax   *bool   `json:"apply_daily_max"`
}

func (r simulateQuoteReq) toInput() (tariff.QuoteInput, error) {
	entry, err := time.Parse(time.RFC3339, r.EntryAt)
	if err != nil {
		return tariff.QuoteInput{}, err
	}
	exit, err := time.Parse(time.RFC3339, r.ExitAt)
	if err != nil {
		return tariff.QuoteInput{}, err
	}

	opts := tariff.DefaultOptions()
	opts.LostTicket = r.LostTicket
	if r.ApplyGrace != nil {
		opts.ApplyGrace = *r.ApplyGrace
	}
	if r.ApplyDailyMax != nil {
		opts.ApplyDailyMax = *r.ApplyDailyMax
	}
	if r.OverrideDayType != nil {
		d := tariff.DayType(*r.OverrideDayType)
		opts.OverrideDayType = &d
	}

	return tariff.QuoteInput{
		LotID:       types.ID(r.LotID),
		CompanyID:   types.ID(r.CompanyID),
		VehicleType: tariff.VehicleType(r.VehicleType),
		EntryAt:     entry,
		ExitAt:      exit,
		Options:     opts,
	}, nil
}

// Simulate prices an arbitrary window without touching any session.
// Tariff admins use it for what-if testing, including overrideDayType.
func (h *QuoteHandler) Simulate(c *gin.Context) {
	var req simulateQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(c, http.StatusBadRequest, "entry_at/exit_at must be RFC3339")
		return
	}
	quote, err := h.tariffs.Quote(c.Request.Context(), in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, quote)
}

type explainQuoteReq struct {
	simulateQuoteReq
	Language string `json:"language"`
}

// Explain computes a quote and renders it as a plain-language
// explanation via the configured LLM provider.
func (h *QuoteHandler) Explain(c *gin.Context) {
	if h.explainer == nil {
		writeError(c, http.StatusServiceUnavailable, "quote explainer not configured")
		return
	}
	var req explainQuoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(c, http.StatusBadRequest, "entry_at/exit_at must be RFC3339")
		return
	}
	quote, err := h.tariffs.Quote(c.Request.Context(), in)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	explanation, err := h.explainer.ExplainQuote(c.Request.Context(), quote, req.Language)
	if err != nil {
		writeError(c, http.StatusBadGateway, "explanation failed")
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"quote": quote, "explanation": explanation})
}
