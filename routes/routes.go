package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/pitchside/tournament-scheduler/handlers"
	"github.com/pitchside/tournament-scheduler/middleware"
	"github.com/pitchside/tournament-scheduler/models"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	scheduleHandler *handlers.ScheduleHandler,
	venueHandler *handlers.VenueHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/login", authHandler.LoginHandler)

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/tournaments/{tournamentID}/schedule", func(r chi.Router) {
		// Публичный просмотр расписания
		r.Get("/", scheduleHandler.ListScheduleHandler)

		// Изменение расписания — только для организаторов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleOrganizer))

			r.Put("/", scheduleHandler.UpdateScheduleHandler)
		})
	})

	router.Route("/venues/{venueID}", func(r chi.Router) {
		r.Get("/", venueHandler.GetVenueHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(jwtSecret))
			r.Use(middleware.Authorize(models.RoleOrganizer))

			r.Post("/map", venueHandler.UploadVenueMapHandler)
		})
	})
}
