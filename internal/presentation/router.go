package presentation

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/RaikyD/orders-tracker/internal/presentation/helpers"
	"github.com/RaikyD/orders-tracker/internal/session"
)

// NewRouter assembles the JSON API (no session) and the session-backed web pages.
func NewRouter(web *WebHandler, api *APIHandler, sessions session.Store, sessionTTL time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	MountStatic(r)
	api.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(Sessions(sessions, sessionTTL))
		web.Register(r)
	})
	return r
}
