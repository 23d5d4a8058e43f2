// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkd/internal/ai"
	"parkd/internal/http/handlers"
	"parkd/internal/http/middleware"
	"parkd/internal/modules/holiday"
	"parkd/internal/modules/lot"
	"parkd/internal/modules/session"
	"parkd/internal/modules/tariff"
)

type ServerDeps struct {
	Sessions  *session.Service
	Tariffs   *tariff.Service
	Lots      *lot.Service
	Holidays  *holiday.Service
	Explainer ai.LLMProvider
}

func NewRouter(deps ServerDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery(), middleware.Auth())

	sessionHandler := handlers.NewSessionHandler(deps.Sessions)
	r.POST("/api/sessions", sessionHandler.CheckIn)
	r.GET("/api/sessions/:id", sessionHandler.Get)
	r.GET("/api/sessions/:id/quote", sessionHandler.LiveQuote)
	r.POST("/api/sessions/:id/checkout", sessionHandler.Checkout)
	r.POST("/api/sessions/:id/cancel", sessionHandler.Cancel)

	quoteHandler := handlers.NewQuoteHandler(deps.Tariffs, deps.Explainer)
	r.POST("/api/quotes/simulate", quoteHandler.Simulate)
	r.POST("/api/admin/quotes/explain", quoteHandler.Explain)

	lotHandler := handlers.NewLotHandler(deps.Lots)
	r.POST("/api/lots", lotHandler.Register)
	r.GET("/api/lots/:id", lotHandler.Get)

	holidayHandler := handlers.NewHolidayHandler(deps.Holidays)
	r.POST("/api/admin/holidays", holidayHandler.Add)
	r.GET("/api/admin/holidays", holidayHandler.List)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
