package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/padelpoint/pairing-engine/handlers"
)

func InitRoutes(drawHandler *handlers.DrawHandler, wsHandler *handlers.WebSocketHandler) *chi.Mux {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/tournaments/{tournamentID}", func(r chi.Router) {
		r.Get("/ranking", drawHandler.RankingHandler)
		r.Get("/draw", drawHandler.GetDrawHandler)

		r.Post("/weights", drawHandler.RecalculateWeightsHandler)
		r.Post("/seeds", drawHandler.AssignSeedsHandler)
		r.Post("/draw", drawHandler.GenerateDrawHandler)
		r.Post("/schedule", drawHandler.ScheduleHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", wsHandler.ServeWs)

	return router
}
