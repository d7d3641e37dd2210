package web

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/erazemk/gamebase/internal/formtoken"
	webembed "github.com/erazemk/gamebase/web"
)

// NewRouter creates the web page router with all page routes registered.
func NewRouter(db *sql.DB, tokens *formtoken.Signer) (http.Handler, error) {
	s, err := NewServer(db, tokens)
	if err != nil {
		return nil, err
	}
	return s.Routes(), nil
}

// Routes returns the route table.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(LoggingMiddleware)
	r.Use(middleware.Recoverer)

	// Static assets.
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/catalog/", http.StatusFound)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Use(s.FormTokenMiddleware)

		r.Get("/", s.Index)
		r.Get("/about", s.About)

		r.Get("/games", s.GameList)
		r.Get("/game/create", s.GameCreatePage)
		r.Post("/game/create", s.GameCreateSubmit)
		r.Get("/game/{id}", s.GameDetail)
		r.Get("/game/{id}/update", s.GameUpdatePage)
		r.Post("/game/{id}/update", s.GameUpdateSubmit)
		r.Get("/game/{id}/delete", s.GameDeletePage)
		r.Post("/game/{id}/delete", s.GameDeleteSubmit)
		r.Get("/game/{id}/cover", s.GameCoverGet)
		r.Post("/game/{id}/cover", s.GameCoverSubmit)

		r.Get("/categories", s.CategoryList)
		r.Get("/category/create", s.CategoryCreatePage)
		r.Post("/category/create", s.CategoryCreateSubmit)
		r.Get("/category/{id}", s.CategoryDetail)
		r.Get("/category/{id}/update", s.CategoryUpdatePage)
		r.Post("/category/{id}/update", s.CategoryUpdateSubmit)
		r.Get("/category/{id}/delete", s.CategoryDeletePage)
		r.Post("/category/{id}/delete", s.CategoryDeleteSubmit)

		r.NotFound(s.pageNotFound)
	})

	r.NotFound(s.pageNotFound)
	return r
}
