// README: Session handlers: check-in, status, live quote, checkout, cancel.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parkd/internal/modules/session"
	"parkd/internal/modules/tariff"
	"parkd/internal/types"
)

type SessionHandler struct {
	sessions *session.Service
}

func NewSessionHandler(svc *session.Service) *SessionHandler {
	return &SessionHandler{sessions: svc}
}

type checkInReq struct {
	LotID       string  `json:"lot_id"`
	CompanyID   string  `json:"company_id"`
	Plate       string  `json:"plate"`
	VehicleType string  `json:"vehicle_type"`
	SpotCode    *string `json:"spot_code"`
	EntryAt     string  `json:"entry_at"` // optional, RFC3339; defaults to now
}

func (h *SessionHandler) CheckIn(c *gin.Context) {
	var req checkInReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	var entryAt time.Time
	if req.EntryAt != "" {
		t, err := time.Parse(time.RFC3339, req.EntryAt)
		if err != nil {
			writeError(c, http.StatusBadRequest, "entry_at must be RFC3339")
			return
		}
		entryAt = t
	}
	id, err := h.sessions.CheckIn(c.Request.Context(), session.CheckInCommand{
		LotID:       types.ID(req.LotID),
		CompanyID:   types.ID(req.CompanyID),
		Plate:       req.Plate,
		VehicleType: tariff.VehicleType(req.VehicleType),
		SpotCode:    req.SpotCode,
		EntryAt:     entryAt,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"session_id": id, "status": session.StatusOpen})
}

func (h *SessionHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}
	sess, err := h.sessions.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, sess)
}

// LiveQuote prices the open session as if it ended now. The front desk
// display polls this while the car is parked.
func (h *SessionHandler) LiveQuote(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}
	quote, err := h.sessions.LiveQuote(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, quote)
}

type checkoutReq struct {
	ExitAt     string `json:"exit_at"` // optional, RFC3339; defaults to now
	LostTicket bool   `json:"lost_ticket"`
}

func (h *SessionHandler) Checkout(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	var exitAt time.Time
	if req.ExitAt != "" {
		t, err := time.Parse(time.RFC3339, req.ExitAt)
		if err != nil {
			writeError(c, http.StatusBadRequest, "exit_at must be RFC3339")
			return
		}
		exitAt = t
	}
	quote, err := h.sessions.Checkout(c.Request.Context(), session.CheckoutCommand{
		SessionID:  types.ID(id),
		ExitAt:     exitAt,
		LostTicket: req.LostTicket,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": session.StatusCompleted, "quote": quote})
}

func (h *SessionHandler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing session id")
		return
	}
	if err := h.sessions.Cancel(c.Request.Context(), types.ID(id)); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"status": session.StatusCancelled})
}
