package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/erazemk/gamebase/internal/catalog"
	"github.com/erazemk/gamebase/internal/model"
)

const gameListURL = "/catalog/games"

type gameForm struct {
	PageData
	Input      catalog.GameInput
	Categories []catalog.CategoryOption
	Errors     []string
}

type gameDetail struct {
	PageData
	*catalog.GameDetail
	Errors []string
}

// gameInput reads the game form. Category checkboxes arrive as zero or
// more "category" values.
func gameInput(r *http.Request) catalog.GameInput {
	return catalog.GameInput{
		Name:        r.PostFormValue("name"),
		Description: r.PostFormValue("description"),
		Price:       r.PostFormValue("price"),
		Quantity:    r.PostFormValue("quantity"),
		Categories:  catalog.NormalizeCategoryIDs(r.PostForm["category"]),
	}
}

// GameList handles GET /catalog/games.
func (s *Server) GameList(w http.ResponseWriter, r *http.Request) {
	games, err := s.Games.ListAll(r.Context())
	if err != nil {
		s.serverError(w, r, "failed to list games", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "game_list.html", &struct {
		PageData
		Games []model.GameSummary
	}{
		PageData: s.page(r, "Lista de Juegos"),
		Games:    games,
	})
}

// GameDetail handles GET /catalog/game/{id}.
func (s *Server) GameDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Games.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		s.notFound(w, r, "Juego no encontrado")
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to get game", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "game_detail.html", &gameDetail{
		PageData:   s.page(r, detail.Game.Name),
		GameDetail: detail,
	})
}

// GameCreatePage handles GET /catalog/game/create.
func (s *Server) GameCreatePage(w http.ResponseWriter, r *http.Request) {
	opts, err := s.Games.FormOptions(r.Context(), nil)
	if err != nil {
		s.serverError(w, r, "failed to list categories", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "game_form.html", &gameForm{
		PageData:   s.page(r, "Agregar Juego"),
		Categories: opts,
	})
}

// GameCreateSubmit handles POST /catalog/game/create.
func (s *Server) GameCreateSubmit(w http.ResponseWriter, r *http.Request) {
	in := gameInput(r)

	g, err := s.Games.Create(r.Context(), in)
	var ferr *catalog.GameFormError
	if errors.As(err, &ferr) {
		s.Templates.Render(w, http.StatusOK, "game_form.html", &gameForm{
			PageData:   s.page(r, "Agregar Juego"),
			Input:      in,
			Categories: ferr.Categories,
			Errors:     ferr.Messages(),
		})
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to create game", err)
		return
	}

	slog.Info("game created", "game", g.Name, "id", g.ID, "categories", len(g.Categories))
	http.Redirect(w, r, g.URL(), http.StatusSeeOther)
}

// GameUpdatePage handles GET /catalog/game/{id}/update.
func (s *Server) GameUpdatePage(w http.ResponseWriter, r *http.Request) {
	g, opts, err := s.Games.EditForm(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		s.notFound(w, r, "Juego no encontrado")
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to load game form", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "game_form.html", &gameForm{
		PageData:   s.page(r, "Actualizar Juego"),
		Input:      catalog.InputFromGame(*g),
		Categories: opts,
	})
}

// GameUpdateSubmit handles POST /catalog/game/{id}/update.
func (s *Server) GameUpdateSubmit(w http.ResponseWriter, r *http.Request) {
	in := gameInput(r)

	g, err := s.Games.Update(r.Context(), chi.URLParam(r, "id"), in)
	var ferr *catalog.GameFormError
	switch {
	case errors.As(err, &ferr):
		s.Templates.Render(w, http.StatusOK, "game_form.html", &gameForm{
			PageData:   s.page(r, "Actualizar Juego"),
			Input:      in,
			Categories: ferr.Categories,
			Errors:     ferr.Messages(),
		})
		return
	case errors.Is(err, catalog.ErrNotFound):
		s.notFound(w, r, "Juego no encontrado")
		return
	case err != nil:
		s.serverError(w, r, "failed to update game", err)
		return
	}

	slog.Info("game updated", "game", g.Name, "id", g.ID)
	http.Redirect(w, r, g.URL(), http.StatusSeeOther)
}

// GameDeletePage handles GET /catalog/game/{id}/delete. A missing game
// sends the browser back to the list.
func (s *Server) GameDeletePage(w http.ResponseWriter, r *http.Request) {
	detail, err := s.Games.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		http.Redirect(w, r, gameListURL, http.StatusSeeOther)
		return
	}
	if err != nil {
		s.serverError(w, r, "failed to get game", err)
		return
	}

	s.Templates.Render(w, http.StatusOK, "game_delete.html", &gameDetail{
		PageData:   s.page(r, "Eliminar Juego"),
		GameDetail: detail,
	})
}

// GameDeleteSubmit handles POST /catalog/game/{id}/delete.
func (s *Server) GameDeleteSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := s.Games.Delete(r.Context(), id)
	if err != nil {
		s.serverError(w, r, "failed to delete game", err)
		return
	}

	if deleted {
		slog.Info("game deleted", "id", id)
	}
	http.Redirect(w, r, gameListURL, http.StatusSeeOther)
}

// GameCoverSubmit handles POST /catalog/game/{id}/cover.
func (s *Server) GameCoverSubmit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var err error
	file, _, ferr := r.FormFile("cover")
	if ferr != nil {
		err = &catalog.ValidationError{Fields: []catalog.FieldError{{Field: "cover", Message: "Seleccione una imagen"}}}
	} else {
		err = s.Games.SetCover(r.Context(), id, file)
		file.Close()
	}

	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		detail, gerr := s.Games.Get(r.Context(), id)
		if errors.Is(gerr, catalog.ErrNotFound) {
			s.notFound(w, r, "Juego no encontrado")
			return
		}
		if gerr != nil {
			s.serverError(w, r, "failed to get game", gerr)
			return
		}
		s.Templates.Render(w, http.StatusOK, "game_detail.html", &gameDetail{
			PageData:   s.page(r, detail.Game.Name),
			GameDetail: detail,
			Errors:     verr.Messages(),
		})
		return
	case errors.Is(err, catalog.ErrNotFound):
		s.notFound(w, r, "Juego no encontrado")
		return
	case err != nil:
		s.serverError(w, r, "failed to store cover", err)
		return
	}

	slog.Info("game cover updated", "id", id)
	http.Redirect(w, r, model.Game{ID: id}.URL(), http.StatusSeeOther)
}

// GameCoverGet handles GET /catalog/game/{id}/cover.
func (s *Server) GameCoverGet(w http.ResponseWriter, r *http.Request) {
	data, mime, err := s.Games.Cover(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("failed to get cover", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Content-Disposition", "inline")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := w.Write(data); err != nil {
		slog.Error("failed to write cover response", "error", err)
	}
}
