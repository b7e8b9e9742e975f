package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/pefman/citadel-calc/internal/catalog"
	"github.com/pefman/citadel-calc/internal/game"
	"github.com/pefman/citadel-calc/internal/logger"
	"github.com/pefman/citadel-calc/internal/models"
	"github.com/pefman/citadel-calc/internal/session"
)

type server struct {
	cat       *catalog.Catalog
	tuning    game.Tuning
	sessions  *session.Registry
	publicDir string
	log       *zap.Logger
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(logger.Middleware(s.log.Named("http")))

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)
	api.HandleFunc("/citadels", s.handleCitadels).Methods(http.MethodGet)
	api.HandleFunc("/troops", s.handleTroops).Methods(http.MethodGet)
	api.HandleFunc("/pools", s.handlePools).Methods(http.MethodGet)
	api.HandleFunc("/calculate", s.handleCalculate).Methods(http.MethodPost)
	api.HandleFunc("/validate", s.handleValidate).Methods(http.MethodPost)
	api.HandleFunc("/sessions", s.handleSessions).Methods(http.MethodGet)

	r.HandleFunc("/ws", s.handleWS).Methods(http.MethodGet)

	// Serve the form page from the public dir at root
	if s.publicDir != "" {
		r.PathPrefix("/").
			Methods(http.MethodGet, http.MethodHead).
			MatcherFunc(func(r *http.Request, _ *mux.RouteMatch) bool {
				return !strings.HasPrefix(r.URL.Path, "/api/")
			}).
			Handler(http.FileServer(http.Dir(s.publicDir)))
	}
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
	r.MethodNotAllowedHandler = methodNotAllowed()
	return withCORS(r)
}

func methodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, r.Method+" not allowed")
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func writeStatusJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeStatusJSON(w, code, models.ErrorBody{
		Error:   http.StatusText(code),
		Message: msg,
		Status:  code,
	})
}

// simple CORS for GET/POST/OPTIONS
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
