package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/qaztech-league/esports-league/handlers"
	"github.com/qaztech-league/esports-league/middleware"
)

// SetupRoutes монтирует публичные маршруты сайта и админские маршруты
// под JWT. Все чтения таблиц открыты, любые записи — только админка.
func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	teamHandler *handlers.TeamHandler,
	groupHandler *handlers.GroupHandler,
	standingsHandler *handlers.StandingsHandler,
	matchHandler *handlers.MatchHandler,
	swissHandler *handlers.SwissHandler,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Публичные маршруты для просмотра таблиц
	router.Get("/teams", teamHandler.ListTeams)
	router.Get("/teams/{teamID}", teamHandler.GetTeamByID)
	router.Get("/groups", groupHandler.ListGroups)
	router.Get("/groups/{groupName}", groupHandler.GetGroup)
	router.Get("/groups/standings", standingsHandler.GetGroupStandings)
	router.Get("/standings/overall", standingsHandler.GetOverallStandings)
	router.Get("/matches", matchHandler.ListByGroup)
	router.Get("/matches/{matchID}", matchHandler.GetResult)
	router.Get("/swiss/{stage}/standings", swissHandler.GetStandings)
	router.Get("/brackets/{stage}/matches", bracketHandler.ListMatches)
	router.Get("/ws/standings/{room}", webSocketHandler.ServeWs)

	router.Post("/admin/login", authHandler.Login)

	// Защищенные маршруты только для админки
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(jwtSecret))

		r.Post("/teams", teamHandler.CreateTeam)
		r.Put("/teams/{teamID}", teamHandler.RenameTeam)
		r.Delete("/teams/{teamID}", teamHandler.DeleteTeam)
		r.Post("/teams/{teamID}/logo", teamHandler.UploadLogo)

		r.Post("/groups", groupHandler.CreateGroup)
		r.Delete("/groups/{groupName}", groupHandler.DeleteGroup)
		r.Post("/groups/{groupName}/teams", groupHandler.AddTeam)
		r.Delete("/groups/{groupName}/teams/{teamID}", groupHandler.RemoveTeam)

		r.Post("/matches", matchHandler.CreateResult)
		r.Put("/matches/{matchID}", matchHandler.UpdateResult)
		r.Delete("/matches/{matchID}", matchHandler.DeleteResult)

		r.Post("/swiss/{stage}/teams", swissHandler.RegisterTeam)
		r.Post("/swiss/{stage}/results", swissHandler.ApplyResult)

		r.Post("/brackets/{stage}/seed", bracketHandler.SeedBracket)
		r.Post("/brackets/{stage}/results", bracketHandler.RecordResult)

		r.Post("/admin/sync", standingsHandler.Sync)
	})
}
