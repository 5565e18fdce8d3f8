/* handlers.go
 * Contains the HTTP handlers serving the derived tournament data to the frontend
 * and the admin operations that mutate it
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// HealthHandler reports liveness and per-component status. A missing snapshot is
// not an error, a frontend can run before the first pipeline pass has published.
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	components := map[string]string{"database": "connected", "snapshot": "published"}

	if _, err := s.api.GetUpcomingMatches(1); err != nil {
		status = "degraded"
		components["database"] = "unreachable"
	}
	if _, err := s.api.GetLatestSnapshot(); err != nil {
		components["snapshot"] = "missing"
	}

	writeJSON(w, http.StatusOK, map[string]any{"status": status, "components": components})
}

// UpdatePredictionsHandler runs the full derivation pipeline and returns its report.
// A `force=true` query parameter bypasses the unchanged-input skip.
func (s *Server) UpdatePredictionsHandler(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	report, err := s.api.UpdatePredictions(r.Context(), force)
	if err != nil {
		log.Println("update predictions failed:", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// StandingsHandler returns the current group standings
func (s *Server) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	standings, err := s.api.GetStandings()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"groups": standings})
}

// BracketHandler returns the resolved knockout bracket
func (s *Server) BracketHandler(w http.ResponseWriter, r *http.Request) {
	bracket, err := s.api.GetBracket()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bracket": bracket})
}

// PredictionsHandler returns the most recently published snapshot
func (s *Server) PredictionsHandler(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.api.GetLatestSnapshot()
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// UpcomingMatchesHandler returns the next unplayed matches. An optional `limit`
// query parameter caps the count.
func (s *Server) UpcomingMatchesHandler(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = parsed
	}

	matches, err := s.api.GetUpcomingMatches(limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"matches": matches})
}

// RecordResultHandler records a full time result for the match in the URL
func (s *Server) RecordResultHandler(w http.ResponseWriter, r *http.Request) {
	matchNumber, err := strconv.Atoi(chi.URLParam(r, "number"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "match number must be an integer"})
		return
	}

	defer r.Body.Close()
	var body ResultRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	if err := s.api.RecordResult(matchNumber, body.HomeScore, body.AwayScore, body.WinnerTeamID); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	log.Printf("recorded result for match %d: %d-%d", matchNumber, body.HomeScore, body.AwayScore)
	writeJSON(w, http.StatusOK, map[string]string{"status": "recorded"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Println("failed to encode response:", err)
	}
}
