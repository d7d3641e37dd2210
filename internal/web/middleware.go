package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/gamebase/internal/cover"
	"github.com/erazemk/gamebase/internal/formtoken"
)

const (
	csrfCookie = "gamebase_csrf"
	csrfField  = "_csrf"

	// maxFormBytes bounds any POST body; cover uploads are the largest.
	maxFormBytes  = cover.MaxUpload + 64<<10
	maxFormMemory = 1 << 20
)

type nonceKey struct{}

func nonceFrom(ctx context.Context) string {
	nonce, _ := ctx.Value(nonceKey{}).(string)
	return nonce
}

// LoggingMiddleware logs HTTP requests with method, path, status, duration
// and request id.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.RequestURI(),
			"status", status,
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// FormTokenMiddleware gives every browser a nonce cookie and rejects POSTs
// whose _csrf field was not issued for that nonce.
func (s *Server) FormTokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var nonce string
		if c, err := r.Cookie(csrfCookie); err == nil {
			nonce = c.Value
		}

		if r.Method == http.MethodPost {
			r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
			if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					http.Error(w, "request too large", http.StatusRequestEntityTooLarge)
					return
				}
				http.Error(w, "invalid form", http.StatusBadRequest)
				return
			}

			if err := s.Tokens.Verify(r.PostFormValue(csrfField), nonce); err != nil {
				slog.Warn("rejected form submission", "path", r.URL.Path, "error", err)
				http.Error(w, "invalid form token", http.StatusForbidden)
				return
			}
		}

		if nonce == "" {
			var err error
			if nonce, err = formtoken.NewNonce(); err != nil {
				slog.Error("failed to create form nonce", "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			http.SetCookie(w, &http.Cookie{
				Name:     csrfCookie,
				Value:    nonce,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), nonceKey{}, nonce)))
	})
}
