package presentation

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/RaikyD/orders-tracker/internal/logger"
	"github.com/RaikyD/orders-tracker/internal/session"
)

const sessionCookie = "session_id"

type sessionKey struct{}

// Sessions loads the caller's session (creating one when the cookie is
// missing, unknown or expired), exposes it through the request context and
// stores its pending notices after the handler returns. Login state is
// written by the guard when it changes and is never copied back here.
func Sessions(store session.Store, ttl time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			var (
				sess  session.Session
				found bool
			)
			if c, err := r.Cookie(sessionCookie); err == nil {
				s, err := store.Get(ctx, c.Value)
				if err == nil {
					sess, found = s, true
				}
			}
			if !found {
				s, err := store.Create(ctx)
				if err != nil {
					logger.Error("create session failed", "err", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
				sess = s
				http.SetCookie(w, &http.Cookie{
					Name:     sessionCookie,
					Value:    sess.ID,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, sessionKey{}, &sess)))

			if err := store.SaveNotices(context.WithoutCancel(ctx), sess.ID, sess.Notices); err != nil {
				logger.Warn("save session failed", "err", err)
			}
		})
	}
}

func sessionFrom(r *http.Request) *session.Session {
	s, _ := r.Context().Value(sessionKey{}).(*session.Session)
	return s
}

// RequestLogger writes one structured line per request.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		logger.L().Info("request completed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("client_ip", r.RemoteAddr))
	})
}
