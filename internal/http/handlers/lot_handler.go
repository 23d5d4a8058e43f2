// README: Lot handlers (register/get).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkd/internal/modules/lot"
	"parkd/internal/types"
)

type LotHandler struct {
	lots *lot.Service
}

func NewLotHandler(svc *lot.Service) *LotHandler {
	return &LotHandler{lots: svc}
}

type registerLotReq struct {
	CompanyID   string  `json:"company_id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Timezone    string  `json:"timezone"`
	CountryCode string  `json:"country_code"`
	Currency    string  `json:"currency"`
}

func (h *LotHandler) Register(c *gin.Context) {
	var req registerLotReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	id, err := h.lots.Register(c.Request.Context(), lot.RegisterCommand{
		CompanyID:   types.ID(req.CompanyID),
		Name:        req.Name,
		Address:     req.Address,
		Lat:         req.Lat,
		Lng:         req.Lng,
		Timezone:    req.Timezone,
		CountryCode: req.CountryCode,
		Currency:    req.Currency,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"lot_id": id})
}

func (h *LotHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		writeError(c, http.StatusBadRequest, "missing lot id")
		return
	}
	l, err := h.lots.Get(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, l)
}
