package web

import (
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Index handles GET /catalog/.
func (s *Server) Index(w http.ResponseWriter, r *http.Request) {
	var games, categories int

	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		games, err = s.Games.Count(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.Categories.Count(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.serverError(w, r, "failed to count catalog", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "index.html", &struct {
		PageData
		GameCount     int
		CategoryCount int
	}{
		PageData:      s.page(r, "Inventario de Videojuegos"),
		GameCount:     games,
		CategoryCount: categories,
	})
}

// About handles GET /catalog/about.
func (s *Server) About(w http.ResponseWriter, r *http.Request) {
	s.Templates.Render(w, http.StatusOK, "about.html", &struct{ PageData }{
		PageData: s.page(r, "Acerca de"),
	})
}
