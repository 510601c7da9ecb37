package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonhee/golddash/backend/internal/api/handlers"
	"github.com/wonhee/golddash/backend/pkg/logger"
)

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(
	authHandler *handlers.AuthHandler,
	widgetHandler *handlers.WidgetHandler,
	goldHandler *handlers.GoldHandler,
	authMiddleware mux.MiddlewareFunc,
	log *logger.Logger,
) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Public auth endpoints
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Everything below requires a bearer token
	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware)

	authed.HandleFunc("/auth/me", authHandler.Me).Methods("GET")

	// Widget endpoints. The literal routes must precede /widgets/{id}.
	authed.HandleFunc("/widgets", widgetHandler.List).Methods("GET")
	authed.HandleFunc("/widgets", widgetHandler.Create).Methods("POST")
	authed.HandleFunc("/widgets/layout", widgetHandler.UpdateLayout).Methods("PUT")
	authed.HandleFunc("/widgets/all", widgetHandler.DeleteAll).Methods("DELETE")
	authed.HandleFunc("/widgets/{id:[0-9]+}", widgetHandler.Get).Methods("GET")
	authed.HandleFunc("/widgets/{id:[0-9]+}", widgetHandler.Update).Methods("PUT")
	authed.HandleFunc("/widgets/{id:[0-9]+}", widgetHandler.Delete).Methods("DELETE")

	// Gold data endpoints
	authed.HandleFunc("/gold/international", goldHandler.International).Methods("GET")
	authed.HandleFunc("/gold/krx", goldHandler.KRX).Methods("GET")
	authed.HandleFunc("/gold/premium", goldHandler.Premium).Methods("GET")
	authed.HandleFunc("/gold/recommendation", goldHandler.Recommendation).Methods("GET")

	// Apply middleware
	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "golddash-api",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
