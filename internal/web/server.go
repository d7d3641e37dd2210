// Package web serves the catalog pages.
package web

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/erazemk/gamebase/internal/catalog"
	"github.com/erazemk/gamebase/internal/formtoken"
)

// PageData is the base data passed to all templates.
type PageData struct {
	Title string
	CSRF  string
}

// Server holds all dependencies for page handlers.
type Server struct {
	Categories *catalog.Categories
	Games      *catalog.Games
	Templates  *Templates
	Tokens     *formtoken.Signer
}

// NewServer wires the services over db and loads the templates.
func NewServer(db *sql.DB, tokens *formtoken.Signer) (*Server, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	return &Server{
		Categories: catalog.NewCategories(db),
		Games:      catalog.NewGames(db),
		Templates:  templates,
		Tokens:     tokens,
	}, nil
}

// page returns the base page data, including a form token bound to the
// request's nonce.
func (s *Server) page(r *http.Request, title string) PageData {
	pd := PageData{Title: title}

	nonce := nonceFrom(r.Context())
	if nonce == "" {
		return pd
	}
	token, err := s.Tokens.Issue(nonce)
	if err != nil {
		slog.Error("failed to issue form token", "error", err)
		return pd
	}
	pd.CSRF = token
	return pd
}

type errorPage struct {
	PageData
	Status  int
	Message string
}

// notFound renders the error page with a 404.
func (s *Server) notFound(w http.ResponseWriter, r *http.Request, message string) {
	s.Templates.Render(w, http.StatusNotFound, "error.html", &errorPage{
		PageData: s.page(r, "No encontrado"),
		Status:   http.StatusNotFound,
		Message:  message,
	})
}

// serverError logs err and renders the generic error page.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	if r.Context().Err() == context.Canceled {
		slog.Warn(msg, "path", r.URL.Path, "error", err)
	} else {
		slog.Error(msg, "path", r.URL.Path, "error", err)
	}
	s.Templates.Render(w, http.StatusInternalServerError, "error.html", &errorPage{
		PageData: s.page(r, "Error"),
		Status:   http.StatusInternalServerError,
		Message:  "Se produjo un error interno. Inténtelo de nuevo más tarde.",
	})
}

// pageNotFound handles unknown routes.
func (s *Server) pageNotFound(w http.ResponseWriter, r *http.Request) {
	s.notFound(w, r, "Página no encontrada")
}
