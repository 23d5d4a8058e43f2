// README: Holiday calendar admin handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkd/internal/modules/holiday"
)

type HolidayHandler struct {
	holidays *holiday.Service
}

func NewHolidayHandler(svc *holiday.Service) *HolidayHandler {
	return &HolidayHandler{holidays: svc}
}

type addHolidayReq struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Country string `json:"country"`
	Name    string `json:"name"`
}

func (h *HolidayHandler) Add(c *gin.Context) {
	var req addHolidayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	err := h.holidays.Add(c.Request.Context(), holiday.Holiday{
		Date:    req.Date,
		Country: req.Country,
		Name:    req.Name,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"date": req.Date, "country": req.Country})
}

func (h *HolidayHandler) List(c *gin.Context) {
	country := c.Query("country")
	list, err := h.holidays.List(c.Request.Context(), country)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"holidays": list})
}
