/* router.go
 * Contains the chi router wiring: CORS for the frontend origins plus the
 * read endpoints and admin operations
 * Authors: Zachary Bower
 */

package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the HTTP routes for the server
func (s *Server) Router(allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.HealthHandler)
	r.Get("/api/standings", s.StandingsHandler)
	r.Get("/api/bracket", s.BracketHandler)
	r.Get("/api/predictions", s.PredictionsHandler)
	r.Get("/api/matches/upcoming", s.UpcomingMatchesHandler)
	r.Post("/api/update-predictions", s.UpdatePredictionsHandler)
	r.Post("/api/matches/{number}/result", s.RecordResultHandler)

	return r
}
