// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parkd/internal/modules/holiday"
	"parkd/internal/modules/lot"
	"parkd/internal/modules/session"
	"parkd/internal/modules/tariff"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, tariff.ErrBadRequest),
		errors.Is(err, tariff.ErrInvalidWindow),
		errors.Is(err, session.ErrBadRequest),
		errors.Is(err, lot.ErrBadRequest),
		errors.Is(err, holiday.ErrBadRequest):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, session.ErrNotFound), errors.Is(err, lot.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, session.ErrActiveSession),
		errors.Is(err, session.ErrInvalidState),
		errors.Is(err, session.ErrConflict):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, tariff.ErrNoTariff):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
